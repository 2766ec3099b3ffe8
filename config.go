package docsite

import "github.com/goliatone/go-docsite/internal/runtimeconfig"

var (
	ErrContentDirRequired         = runtimeconfig.ErrContentDirRequired
	ErrSitemapRequired            = runtimeconfig.ErrSitemapRequired
	ErrSitemapConflict            = runtimeconfig.ErrSitemapConflict
	ErrGeneratorOutputDirRequired = runtimeconfig.ErrGeneratorOutputDirRequired
	ErrGeneratorWorkersInvalid    = runtimeconfig.ErrGeneratorWorkersInvalid
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config           = runtimeconfig.Config
	SiteConfig       = runtimeconfig.SiteConfig
	ContentConfig    = runtimeconfig.ContentConfig
	MarkdownConfig   = runtimeconfig.MarkdownConfig
	NavigationConfig = runtimeconfig.NavigationConfig
	BlogConfig       = runtimeconfig.BlogConfig
	EditLinksConfig  = runtimeconfig.EditLinksConfig
	GeneratorConfig  = runtimeconfig.GeneratorConfig
	ThemingConfig    = runtimeconfig.ThemingConfig
	LoggingConfig    = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadSitemapFile reads and validates a sitemap document from disk.
func LoadSitemapFile(path string) (Sitemap, error) {
	return runtimeconfig.LoadSitemapFile(path)
}
