package pom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Link is a hyperlink extracted from a page.
type Link struct {
	Text string
	Href string
}

// Document holds the pieces of a parsed page that leaf page-object methods
// assert against.
type Document struct {
	Title       string
	Description string
	Text        string
	Links       []Link
}

// ParseDocument parses raw HTML and extracts the title, meta description,
// visible text and links. Script, style and other non-content elements are
// skipped.
func ParseDocument(rawHTML string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc := &Document{}
	var text strings.Builder
	walk(root, doc, &text)
	doc.Text = strings.TrimSpace(text.String())
	return doc, nil
}

// skippedElements contribute no visible text. The head element is still
// walked so title and meta description get captured.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

func walk(n *html.Node, doc *Document, text *strings.Builder) {
	if n.Type == html.CommentNode {
		return
	}

	if n.Type == html.ElementNode {
		name := strings.ToLower(n.Data)
		if skippedElements[name] {
			return
		}

		switch name {
		case "title":
			if doc.Title == "" {
				doc.Title = strings.TrimSpace(textContent(n))
			}
			return
		case "meta":
			if strings.EqualFold(attr(n, "name"), "description") {
				doc.Description = attr(n, "content")
			}
			return
		case "a":
			if href := attr(n, "href"); href != "" {
				doc.Links = append(doc.Links, Link{
					Text: strings.TrimSpace(textContent(n)),
					Href: href,
				})
			}
		}
	}

	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			if text.Len() > 0 {
				text.WriteByte(' ')
			}
			text.WriteString(t)
		}
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, doc, text)
	}
}

// textContent concatenates the visible text beneath n.
func textContent(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}
