package generator

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	gotheme "github.com/goliatone/go-theme"
)

const assetOutputDir = "assets"

// collectManifestAssets lists the files a theme manifest declares, with the
// selected variant's files layered over the base set.
func collectManifestAssets(selection *gotheme.Selection) []string {
	if selection == nil || selection.Manifest == nil {
		return nil
	}

	assets := selection.Manifest.Assets.Files
	if variant := strings.TrimSpace(selection.Variant); variant != "" {
		if v, ok := selection.Manifest.Variants[variant]; ok && len(v.Assets.Files) > 0 {
			merged := make(map[string]string, len(selection.Manifest.Assets.Files)+len(v.Assets.Files))
			for key, file := range selection.Manifest.Assets.Files {
				merged[key] = file
			}
			for key, file := range v.Assets.Files {
				merged[key] = file
			}
			assets = merged
		}
	}

	seen := map[string]struct{}{}
	var out []string
	for _, asset := range assets {
		asset = strings.TrimPrefix(strings.TrimSpace(asset), "/")
		if asset == "" {
			continue
		}
		if _, ok := seen[asset]; ok {
			continue
		}
		seen[asset] = struct{}{}
		out = append(out, filepath.ToSlash(asset))
	}
	sort.Strings(out)
	return out
}

// copyThemeAssets copies manifest-declared theme files into assets/ under
// the output root. Unchanged assets are skipped unless force is set.
func copyThemeAssets(ctx context.Context, writer artifactWriter, themeFS fs.FS, selection *gotheme.Selection, manifest *buildManifest, force bool, writtenAt time.Time) (built, skipped int, errs []error) {
	assets := collectManifestAssets(selection)
	if len(assets) == 0 {
		return 0, 0, nil
	}
	if themeFS == nil {
		return 0, 0, []error{fmt.Errorf("generator: theme filesystem not configured")}
	}

	for _, asset := range assets {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			return built, skipped, errs
		}

		data, err := fs.ReadFile(themeFS, asset)
		if err != nil {
			errs = append(errs, fmt.Errorf("generator: read theme asset %s: %w", asset, err))
			continue
		}

		output := path.Join(assetOutputDir, asset)
		checksum := computeHash(data)
		if !force {
			if existing, ok := manifest.Artifacts[output]; ok && existing.Checksum == checksum {
				skipped++
				continue
			}
		}

		reader, size := bytesReader(data)
		err = writer.WriteFile(ctx, writeFileRequest{
			Path:        output,
			Content:     reader,
			Size:        size,
			Category:    categoryAsset,
			ContentType: detectAssetContentType(asset),
			Checksum:    checksum,
			Metadata:    map[string]string{"asset": asset, "theme": selection.Theme},
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("generator: write theme asset %s: %w", asset, err))
			continue
		}

		manifest.setArtifact(output, categoryAsset, checksum, size, writtenAt)
		built++
	}

	return built, skipped, errs
}

func detectAssetContentType(asset string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(asset), "."))
	switch ext {
	case "css":
		return "text/css"
	case "js":
		return "application/javascript"
	case "json":
		return "application/json"
	case "svg":
		return "image/svg+xml"
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	case "ico":
		return "image/x-icon"
	default:
		return "application/octet-stream"
	}
}
