package vault

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// isHTML reports whether ext names an HTML document.
func isHTML(ext string) bool {
	switch strings.ToLower(ext) {
	case ".html", ".htm", ".xhtml":
		return true
	}
	return false
}

// textFromHTML reduces an HTML note to readable text, preferring <main> or
// <article> over <body>. Scripts, styles and navigation are dropped.
func textFromHTML(input []byte) string {
	root, err := html.Parse(bytes.NewReader(input))
	if err != nil || root == nil {
		return ""
	}
	content := firstElement(root, "main")
	if content == nil {
		content = firstElement(root, "article")
	}
	if content == nil {
		content = firstElement(root, "body")
	}
	if content == nil {
		return ""
	}
	var b strings.Builder
	writeText(&b, content, false)
	return tidyLines(b.String())
}

func firstElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := firstElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func writeText(b *strings.Builder, n *html.Node, pre bool) {
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "script", "style", "noscript", "nav", "footer", "aside", "iframe", "template":
			return
		case "pre":
			pre = true
			b.WriteString("\n")
		case "br", "hr", "p", "div", "li", "ul", "ol", "tr", "blockquote",
			"h1", "h2", "h3", "h4", "h5", "h6":
			b.WriteString("\n")
		}
	}
	if n.Type == html.TextNode {
		if pre {
			b.WriteString(n.Data)
		} else {
			b.WriteString(strings.NewReplacer("\t", " ", "\r", " ", "\n", " ").Replace(n.Data))
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c, pre)
	}
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "p", "pre", "blockquote", "h1", "h2", "h3", "h4", "h5", "h6":
			b.WriteString("\n\n")
		}
	}
}

// tidyLines trims every line, collapses inner whitespace and keeps at most
// one blank line in a row.
func tidyLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" && (len(out) == 0 || out[len(out)-1] == "") {
			continue
		}
		out = append(out, line)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
