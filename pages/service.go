package pages

import "context"

// Loader resolves logical content paths into loaded page records. The
// content root is fixed when the implementation is constructed;
// resolution tries `<path>.md` first and `<path>/index.md` second.
type Loader interface {
	Load(ctx context.Context, path string) (Page, error)
}

// Renderer converts raw Markdown into final markup. It is the rendering
// collaborator used by the props assembler and the static generator.
type Renderer interface {
	Render(ctx context.Context, markdown []byte) ([]byte, error)
}
