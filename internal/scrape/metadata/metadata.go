// Package metadata pulls machine-readable metadata out of rendered HTML:
// meta tags, embedded JSON-LD, and (as a fallback) globals assigned by
// inline scripts.
package metadata

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Parse builds a document from rendered HTML.
func Parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// MetaProperty returns the content of <meta property="..."> if present.
func MetaProperty(doc *goquery.Document, property string) (string, bool) {
	return metaContent(doc, "property", property)
}

// MetaName returns the content of <meta name="..."> if present.
func MetaName(doc *goquery.Document, name string) (string, bool) {
	return metaContent(doc, "name", name)
}

func metaContent(doc *goquery.Document, attr, value string) (string, bool) {
	if doc == nil {
		return "", false
	}
	sel := doc.Find(fmt.Sprintf(`meta[%s=%q]`, attr, value)).First()
	if sel.Length() == 0 {
		return "", false
	}
	content, ok := sel.Attr("content")
	return content, ok
}

// JSONLD returns the body of the first ld+json script tag carrying the given
// test attribute.
func JSONLD(doc *goquery.Document, testID string) (string, bool) {
	if doc == nil {
		return "", false
	}
	sel := doc.Find(fmt.Sprintf(`script[type="application/ld+json"][data-testid=%q]`, testID)).First()
	if sel.Length() == 0 {
		return "", false
	}
	body := strings.TrimSpace(sel.Text())
	return body, body != ""
}
