package sitecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-docsite/internal/generator"
	"github.com/goliatone/go-docsite/sitemap"
)

const (
	buildSiteMessageType = "docsite.site.build"
	cleanSiteMessageType = "docsite.site.clean"
	listPathsMessageType = "docsite.site.paths"
)

// ResultCallback receives build results produced by generator operations. The
// callback is optional and is invoked synchronously from the handler when a
// BuildResult is available.
type ResultCallback func(ResultEnvelope)

// ResultEnvelope captures the outcome of a site command that ran a build.
type ResultEnvelope struct {
	Result   *generator.BuildResult
	Metadata map[string]any
}

// BuildSiteCommand executes a generator build over the requested routes. An
// empty route list builds the whole site.
type BuildSiteCommand struct {
	Routes         []string       `json:"routes,omitempty"`
	DryRun         bool           `json:"dry_run,omitempty"`
	Force          bool           `json:"force,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate ensures requested routes are well-formed.
func (m BuildSiteCommand) Validate() error {
	errs := validation.Errors{}
	for _, route := range m.Routes {
		if strings.TrimSpace(route) == "" {
			errs["routes"] = validation.NewError("docsite.site.build.route_invalid", "routes must not contain empty values")
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CleanSiteCommand removes generated artifacts from the output directory.
type CleanSiteCommand struct{}

// Type implements command.Message.
func (CleanSiteCommand) Type() string { return cleanSiteMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (CleanSiteCommand) Validate() error { return nil }

// PathsCallback receives the static path enumeration.
type PathsCallback func(sitemap.StaticPaths)

// ListPathsCommand enumerates the static path segments for every sitemap
// route. The callback is optional.
type ListPathsCommand struct {
	ResultCallback PathsCallback `json:"-"`
}

// Type implements command.Message.
func (ListPathsCommand) Type() string { return listPathsMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (ListPathsCommand) Validate() error { return nil }

// FeatureGates exposes runtime switches used to guard handler execution.
type FeatureGates struct {
	GeneratorEnabled func() bool
}

func (g FeatureGates) generatorEnabled() bool {
	if g.GeneratorEnabled == nil {
		return false
	}
	return g.GeneratorEnabled()
}
