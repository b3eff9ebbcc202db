package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleAnalysis = `1. CONTRACT OVERVIEW
**Contract Type:** Non-Disclosure Agreement
Parties: Acme Private Limited (Disclosing Party) and Beta LLP (Receiving Party)
Effective Date: 1 January 2025
Term: 2 years
Governing Law: Laws of India, courts at Mumbai

2. KEY CLAUSES
- Confidentiality: Receiving Party keeps all information secret
- Permitted Use: information used only for the evaluation
* Return of Materials: documents returned on termination
3) Remedies: injunctive relief available

3. RIGHTS AND OBLIGATIONS
- Receiving Party must not disclose
`

func TestParseExtractsFields(t *testing.T) {
	res := Parse(sampleAnalysis)

	assert.Equal(t, sampleAnalysis, res.Text)
	assert.Equal(t, "Non-Disclosure Agreement", res.ContractType)
	assert.Equal(t, []string{
		"Confidentiality: Receiving Party keeps all information secret",
		"Permitted Use: information used only for the evaluation",
		"Return of Materials: documents returned on termination",
		"Remedies: injunctive relief available",
	}, res.KeyClauses)
	assert.Equal(t, "1 January 2025", res.Details[DetailEffectiveDate])
	assert.Equal(t, "2 years", res.Details[DetailTerm])
	assert.Equal(t, "Laws of India, courts at Mumbai", res.Details[DetailGoverningLaw])
	assert.Contains(t, res.Details[DetailParties], "Acme Private Limited")
}

func TestParseDegradesGracefully(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"free text", "The contract looks fine overall but lacks a termination clause."},
		{"placeholders only", "Contract Type: [type of contract]\nKEY CLAUSES\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse(tt.in)
			assert.Empty(t, res.ContractType)
			assert.NotNil(t, res.KeyClauses)
			assert.Empty(t, res.KeyClauses)
			assert.Empty(t, res.Details)
		})
	}
}

func TestParseDropsAbsentInformation(t *testing.T) {
	res := Parse("Contract Type: Not specified in the document\n" +
		"Effective Date: Not specified in the document\n" +
		"Term: not specified\n" +
		"Governing Law: N/A\n" +
		"Parties: Acme and Beta\n\n" +
		"KEY CLAUSES\n- Not specified in the document\n- Payment: monthly\n")

	assert.Empty(t, res.ContractType)
	assert.NotContains(t, res.Details, DetailEffectiveDate)
	assert.NotContains(t, res.Details, DetailTerm)
	assert.NotContains(t, res.Details, DetailGoverningLaw)
	assert.Equal(t, "Acme and Beta", res.Details[DetailParties])
	assert.Equal(t, []string{"Payment: monthly"}, res.KeyClauses)
}

func TestKeyClausesStopAtNextHeading(t *testing.T) {
	res := Parse("KEY CLAUSES\n- Payment: monthly\nFINANCIAL TERMS\n- Rent: 1500\n")
	assert.Equal(t, []string{"Payment: monthly"}, res.KeyClauses)
}
