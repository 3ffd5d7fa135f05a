// internal/workers/specialists/scheme-search/templates.go
package schemesearch

import (
	"agri-saarathi/internal/common/config"
	"agri-saarathi/internal/common/lexicon"
)

// TemplateTable is the scheme fallback policy, checked in order.
type TemplateTable []config.SchemeTemplate

// Match returns the first template whose key or keywords appear in question.
func (t TemplateTable) Match(question string) (*config.SchemeTemplate, bool) {
	n := lexicon.Normalize(question)
	for i := range t {
		terms := append([]string{t[i].Key}, t[i].Keywords...)
		if _, ok := lexicon.MatchAny(n, terms); ok {
			tmpl := t[i]
			return &tmpl, true
		}
	}
	return nil, false
}
