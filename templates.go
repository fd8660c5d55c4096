package inspect

import (
	"io/fs"

	"github.com/goliatone/go-inspect/pkg/renderers/web"
)

// EmbeddedTemplates exposes the web host's built-in page templates so callers
// can copy or extend them without importing the host package directly.
func EmbeddedTemplates() fs.FS {
	return web.TemplatesFS()
}
