// internal/models/search.go
package models

// SearchResult is one search engine hit, kept in engine rank order.
type SearchResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// TrustedResult is a SearchResult whose host matched an allowed domain.
type TrustedResult struct {
	SearchResult
	Domain string `json:"domain"`
}
