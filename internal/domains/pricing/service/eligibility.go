package service

import (
	"strings"

	identity "storefront-backend/internal/domains/identity/model"
)

// DefaultEligibleDomains are the institutional email domains entitled to the
// discount
var DefaultEligibleDomains = []string{"@duoc.cl", "@duocuc.cl", "@profesor.duoc.cl"}

// Eligibility decides whether an identity may receive the discount based on
// its email domain
type Eligibility struct {
	suffixes []string
}

// NewEligibility normalizes domains to lower-case "@domain" suffixes.
// An empty list falls back to DefaultEligibleDomains.
func NewEligibility(domains []string) *Eligibility {
	if len(domains) == 0 {
		domains = DefaultEligibleDomains
	}

	suffixes := make([]string, 0, len(domains))
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == "" || d == "@" {
			continue
		}
		if !strings.HasPrefix(d, "@") {
			d = "@" + d
		}
		suffixes = append(suffixes, d)
	}
	return &Eligibility{suffixes: suffixes}
}

// IsEligible is false for guests
func (e *Eligibility) IsEligible(id *identity.Identity) bool {
	if id == nil {
		return false
	}
	return e.MatchesEmail(id.Email)
}

func (e *Eligibility) MatchesEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, s := range e.suffixes {
		if strings.HasSuffix(email, s) && len(email) > len(s) {
			return true
		}
	}
	return false
}

func (e *Eligibility) Domains() []string {
	out := make([]string, len(e.suffixes))
	copy(out, e.suffixes)
	return out
}
