package domain_test

import (
	"testing"

	"github.com/cifix/cifix/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestLogCorpus_Empty(t *testing.T) {
	var c domain.LogCorpus
	assert.Equal(t, "", c.Text())
	assert.Empty(t, c.Files)
}

func TestLogCorpus_JoinsWithBlankLine(t *testing.T) {
	var c domain.LogCorpus
	c.Add("a.txt", "first")
	c.Add("nested/b.txt", "second")
	c.Skip("locked.txt")

	assert.Equal(t, "first\n\nsecond", c.Text())
	assert.Equal(t, []string{"a.txt", "nested/b.txt"}, c.Files)
	assert.Equal(t, []string{"locked.txt"}, c.Skipped)
}

func TestRemediationReport_Triggered(t *testing.T) {
	r := &domain.RemediationReport{Rules: []domain.RuleOutcome{
		{ID: "a", Triggered: true, Changed: true},
		{ID: "b"},
		{ID: "c", Triggered: true},
	}}
	got := r.Triggered()
	assert.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}
