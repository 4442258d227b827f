package techdetect

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

type patternKind int

const (
	// kindScriptContent matches a <script> element's src attribute, or
	// its inner HTML when src is absent.
	kindScriptContent patternKind = iota
	// kindHTMLContent matches against the raw HTML string.
	kindHTMLContent
	// kindMetaGenerator matches the content attribute of
	// <meta name="generator">.
	kindMetaGenerator
)

// pattern is a closed tagged variant: a single match-dispatch function
// over a small fixed set of kinds, rather than an interface hierarchy.
type pattern struct {
	kind patternKind
	re   *regexp.Regexp
}

// matches dispatches on the pattern's kind against a pre-parsed document
// and the raw HTML it was parsed from.
func (p pattern) matches(html string, doc *goquery.Document) bool {
	switch p.kind {
	case kindScriptContent:
		return matchesScriptContent(p.re, doc)
	case kindHTMLContent:
		return p.re.MatchString(html)
	case kindMetaGenerator:
		return matchesMetaGenerator(p.re, doc)
	default:
		return false
	}
}

func matchesScriptContent(re *regexp.Regexp, doc *goquery.Document) bool {
	if doc == nil {
		return false
	}

	found := false
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if src, ok := s.Attr("src"); ok {
			if re.MatchString(src) {
				found = true
				return false
			}
			return true
		}

		if re.MatchString(s.Text()) {
			found = true
			return false
		}
		return true
	})

	return found
}

func matchesMetaGenerator(re *regexp.Regexp, doc *goquery.Document) bool {
	if doc == nil {
		return false
	}

	content, ok := doc.Find(`meta[name="generator"]`).First().Attr("content")
	if !ok {
		return false
	}
	return re.MatchString(content)
}
