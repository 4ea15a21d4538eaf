package web

import "embed"

// TemplatesFS embeds the HTML templates served by the status server.
//
//go:embed templates/*.html
var TemplatesFS embed.FS
