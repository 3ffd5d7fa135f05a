package search

import (
	"net/url"
	"strings"

	"agri-saarathi/internal/models"
)

// Allow-list profiles.
var (
	SchemeDomains = []string{"gov.in", "nic.in", "org.in"}
	MarketDomains = []string{"commodityonline.com"}
	VideoDomains  = []string{"youtube.com", "youtu.be"}
)

// Filter keeps results whose link host is, or is a subdomain of, one of the
// allowed domains. Input order is preserved.
func Filter(results []models.SearchResult, allowed []string) []models.TrustedResult {
	trusted := make([]models.TrustedResult, 0, len(results))
	for _, r := range results {
		if domain, ok := MatchDomain(r.Link, allowed); ok {
			trusted = append(trusted, models.TrustedResult{SearchResult: r, Domain: domain})
		}
	}
	return trusted
}

// MatchDomain returns the allowed domain that link's host falls under.
func MatchDomain(link string, allowed []string) (string, bool) {
	host := Host(link)
	if host == "" {
		return "", false
	}
	for _, d := range allowed {
		d = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(d), "."))
		if d == "" {
			continue
		}
		if host == d || strings.HasSuffix(host, "."+d) {
			return d, true
		}
	}
	return "", false
}

// Host returns the lowercased hostname of link without port, or "".
func Host(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
}

// SiteRestrict appends a site: clause per domain, OR-joined.
func SiteRestrict(query string, domains ...string) string {
	if len(domains) == 0 {
		return query
	}
	clauses := make([]string, 0, len(domains))
	for _, d := range domains {
		clauses = append(clauses, "site:"+d)
	}
	return strings.TrimSpace(query) + " " + strings.Join(clauses, " OR ")
}
