// Package markdown resolves logical content paths to Markdown files,
// parses front matter, and renders bodies to HTML. It is the single
// filesystem-facing collaborator of the site pipeline: navigation, blog,
// and props assembly all source their page records here.
package markdown
