package search

import (
	"strings"

	"golang.org/x/net/html"
)

// HTML traversal helpers shared by the web-search scrapers.

func parseHTML(content []byte) (*html.Node, error) {
	return html.Parse(strings.NewReader(string(content)))
}

// nodeText extracts the concatenated text content of a node
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}

	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if part := nodeText(c); part != "" {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(part)
		}
	}
	return b.String()
}

// hasClass checks whether an element node carries a CSS class
func hasClass(n *html.Node, className string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, class := range strings.Fields(attr.Val) {
			if class == className {
				return true
			}
		}
	}
	return false
}

// attr returns an attribute value, or "" when absent
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// findAll collects every node matching the predicate, in document order
func findAll(n *html.Node, predicate func(*html.Node) bool) []*html.Node {
	var results []*html.Node

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if predicate(node) {
			results = append(results, node)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return results
}

// findFirst returns the first node matching the predicate
func findFirst(n *html.Node, predicate func(*html.Node) bool) *html.Node {
	var result *html.Node

	var walk func(*html.Node) bool
	walk = func(node *html.Node) bool {
		if predicate(node) {
			result = node
			return true
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}

	walk(n)
	return result
}

func isElement(n *html.Node, name string) bool {
	return n.Type == html.ElementNode && n.Data == name
}
