package faq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerms(t *testing.T) {
	assert.Equal(t, []string{"reset", "pos", "device"}, Terms("How do I reset a POS device?"))
	assert.Empty(t, Terms("how do I"))
}

func TestMatches(t *testing.T) {
	e := &Entry{Key: "paper-roll", Question: "Which paper rolls fit?", Answer: "57mm thermal rolls."}
	assert.True(t, e.Matches("where can I buy thermal paper"))
	assert.False(t, e.Matches("settlement timing"))
}
