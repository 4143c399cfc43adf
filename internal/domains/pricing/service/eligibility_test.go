package service

import (
	"testing"

	identity "storefront-backend/internal/domains/identity/model"

	"github.com/stretchr/testify/assert"
)

func TestEligibility_DefaultDomains(t *testing.T) {
	e := NewEligibility(nil)

	tests := []struct {
		email string
		want  bool
	}{
		{"ana@duoc.cl", true},
		{"ana@duocuc.cl", true},
		{"prof@profesor.duoc.cl", true},
		{"  Ana@DUOC.CL ", true},
		{"ana@gmail.com", false},
		{"ana@duoc.cl.evil.com", false},
		{"ana@notduoc.cl", false},
		{"@duoc.cl", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, e.MatchesEmail(tt.email))
		})
	}
}

func TestEligibility_Identity(t *testing.T) {
	e := NewEligibility(nil)

	assert.False(t, e.IsEligible(nil))
	assert.True(t, e.IsEligible(&identity.Identity{ID: 1, Email: "ana@duoc.cl"}))
}

func TestEligibility_CustomDomains(t *testing.T) {
	e := NewEligibility([]string{"Example.org", " @uni.edu ", ""})

	assert.Equal(t, []string{"@example.org", "@uni.edu"}, e.Domains())
	assert.True(t, e.MatchesEmail("x@example.org"))
	assert.False(t, e.MatchesEmail("x@duoc.cl"))
}
