// Package preview assembles a project's three documents into the single
// HTML page the client renders in its sandboxed iframe.
package preview

import (
	"fmt"
	"strings"
)

// Assemble combines html, css and js into one standalone document.
//
// Two shapes come in from the editor. A fragment (the common case: just
// markup, no <html>) gets wrapped in a full scaffold with the style in the
// head and the script at the end of the body. A complete document keeps its
// own structure: the style is injected before </head> and the script before
// </body>, falling back to appending when those tags are missing.
func Assemble(title, html, css, js string) string {
	styleTag := ""
	if strings.TrimSpace(css) != "" {
		styleTag = "<style>\n" + css + "\n</style>"
	}
	scriptTag := ""
	if strings.TrimSpace(js) != "" {
		scriptTag = "<script>\n" + js + "\n</script>"
	}

	if isFullDocument(html) {
		doc := html
		if styleTag != "" {
			doc = injectBefore(doc, "</head>", styleTag)
		}
		if scriptTag != "" {
			doc = injectBefore(doc, "</body>", scriptTag)
		}
		return doc
	}

	if title == "" {
		title = "Untitled Project"
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
%s
</head>
<body>
%s
%s
</body>
</html>`, escapeTitle(title), styleTag, html, scriptTag)
}

func isFullDocument(html string) bool {
	lower := strings.ToLower(html)
	return strings.Contains(lower, "<html") || strings.Contains(lower, "<!doctype")
}

// injectBefore inserts content before the last occurrence of marker
// (case-insensitive). If the marker is missing the content is appended, so
// sloppy hand-written documents still render with their style and script.
func injectBefore(doc, marker, content string) string {
	idx := strings.LastIndex(strings.ToLower(doc), marker)
	if idx < 0 {
		return doc + "\n" + content
	}
	return doc[:idx] + content + "\n" + doc[idx:]
}

// escapeTitle keeps a user-supplied title from breaking out of <title>.
func escapeTitle(title string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(title)
}
