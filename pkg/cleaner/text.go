package cleaner

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Tags whose content is never visible page text.
var strippedTags = []string{
	"script", "style", "noscript", "template", "iframe", "svg",
	"head", "meta", "link",
}

// Markup-language keyword fragments that occasionally survive element
// stripping on malformed pages (unclosed script tags, inline CSS dumps).
// Matched as whole tokens only.
var boilerplateTokens = regexp.MustCompile(
	`\b(function|var|const|let|return|typeof|undefined|document\.\w+|window\.\w+|` +
		`margin|padding|font-size|font-family|background-color|text-align|display:\s*\w+)\b`)

// TextCleaner extracts visible plain text from HTML.
// It implements the Cleaner interface and never returns an error:
// malformed markup degrades to best-effort text, and a document that
// cannot be parsed at all yields an empty string.
type TextCleaner struct{}

// NewText creates a new plain-text cleaner.
func NewText() *TextCleaner {
	return &TextCleaner{}
}

// Name returns the cleaner type.
func (c *TextCleaner) Name() string {
	return "text"
}

// Clean strips non-content markup and collapses whitespace.
func (c *TextCleaner) Clean(htmlContent string) (string, error) {
	if strings.TrimSpace(htmlContent) == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		// Graceful degradation: no parseable text nodes at all.
		return "", nil
	}

	doc.Find(strings.Join(strippedTags, ", ")).Remove()
	removeComments(doc)

	text := doc.Text()
	text = boilerplateTokens.ReplaceAllString(text, " ")
	return collapseWhitespace(text), nil
}

// removeComments drops HTML comment nodes. goquery has no selector for
// comments, so walk the underlying nodes.
func removeComments(doc *goquery.Document) {
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		child := n.FirstChild
		for child != nil {
			next := child.NextSibling
			if child.Type == html.CommentNode {
				n.RemoveChild(child)
			} else {
				walk(child)
			}
			child = next
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
}

// collapseWhitespace folds runs of whitespace (including newlines) into
// single spaces and trims the ends.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
