package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainsAnyTerm(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		terms []string
		want  bool
	}{
		{"exact word", "draft a lease", []string{"lease"}, true},
		{"plural", "two contracts please", []string{"contract"}, true},
		{"inside another word", "this is fine", []string{"hi"}, false},
		{"phrase", "include terms and conditions", []string{"terms and conditions"}, true},
		{"punctuation boundary", "hello, friend", []string{"hello"}, true},
		{"case insensitive", "Draft an NDA", []string{"nda"}, true},
		{"hyphenated term", "add a non-compete clause", []string{"non-compete"}, true},
		{"empty term", "anything", []string{""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsAnyTerm(tt.text, tt.terms))
		})
	}
}

func TestDefaultRules(t *testing.T) {
	r := Default()

	assert.True(t, r.IsSmallTalk("hello, how are you"))
	assert.False(t, r.HasLegalKeyword("hello, how are you"))
	assert.True(t, r.HasLegalKeyword("what is the rent in my contract"))
	assert.True(t, r.MatchesDocumentQuestion("When does this document end?"))
	assert.True(t, r.MatchesDocumentQuestion("What does section 4 say?"))
	assert.True(t, r.MatchesDocumentQuestion("Is anything missing?"))
	assert.True(t, r.MatchesDocumentQuestion("Please explain the third clause"))
	assert.False(t, r.MatchesDocumentQuestion("what is the capital of France"))
	assert.False(t, r.MatchesDocumentQuestion("When does it end?"))
	assert.False(t, r.MatchesDocumentQuestion("how do I cook pasta this evening"))
	assert.False(t, r.MatchesDocumentQuestion("what is the price of bitcoin"))
	assert.False(t, r.MatchesDocumentQuestion("my cat is missing"))
	assert.True(t, r.IsModificationRequest("remove the second section"))
	assert.False(t, r.IsModificationRequest("remove my account"))
	assert.False(t, r.IsModificationRequest("make it rain"))
	assert.False(t, r.IsModificationRequest("extend the party till midnight"))
	assert.True(t, r.HasDraftingKeyword("Please prepare an employment contract"))
	assert.False(t, r.HasDraftingKeyword("What is the notice period?"))
	assert.True(t, r.HasCoarseKeyword("subcontractors"))
}

func TestDetectContractType(t *testing.T) {
	r := Default()

	label, ok := r.DetectContractType("Draft an NDA between Acme and Beta")
	assert.True(t, ok)
	assert.Equal(t, "Non-Disclosure Agreement", label)

	label, ok = r.DetectContractType("draft a lease agreement for $1500/month")
	assert.True(t, ok)
	assert.Equal(t, "Lease Agreement", label)

	_, ok = r.DetectContractType("draft something nice")
	assert.False(t, ok)
}

func TestLoadFileOverlaysNonEmptyLists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := `
small_talk_phrases:
  - "knock knock"
contract_types:
  - label: "Vendor Agreement"
    keywords: ["vendor"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r, err := LoadFile(path)
	require.NoError(t, err)

	assert.True(t, r.IsSmallTalk("knock knock"))
	assert.False(t, r.IsSmallTalk("hello"))
	// untouched lists keep their defaults
	assert.True(t, r.HasLegalKeyword("a lease"))

	label, ok := r.DetectContractType("vendor terms")
	assert.True(t, ok)
	assert.Equal(t, "Vendor Agreement", label)
}

func TestLoadFileRejectsBadPattern(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("document_question_patterns:\n  - \"(unclosed\"\n"), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}
