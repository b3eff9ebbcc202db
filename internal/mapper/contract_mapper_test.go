package mapper

import (
	"testing"
	"time"

	"contract-assistant-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func TestActiveContractToDTO(t *testing.T) {
	assert.Nil(t, ActiveContractToDTO(nil))

	now := time.Now()
	doc := &store.Document{ID: "d1", TypeLabel: "NDA", Content: "text", SourceQuery: "draft an nda", CreatedAt: now,
		Modifications: []store.Modification{{Change: "add clause", Timestamp: now}}}

	got := ActiveContractToDTO(doc)
	assert.Equal(t, "d1", got.ContractID)
	assert.Equal(t, "text", got.ContractText)
	assert.Len(t, got.ModificationHistory, 1)
	assert.Equal(t, "add clause", got.ModificationHistory[0].Change)
}

func TestSummariesKeepOrder(t *testing.T) {
	out := SummariesToDTO([]store.DocumentSummary{{ID: "a"}, {ID: "b", IsActive: true}})
	assert.Equal(t, "a", out[0].ContractID)
	assert.True(t, out[1].IsActive)
	assert.NotNil(t, ModificationsToDTO(nil))
}

func TestTurnsToDTO(t *testing.T) {
	assert.NotNil(t, TurnsToDTO(nil))

	now := time.Now()
	out := TurnsToDTO([]store.Turn{{Query: "draft an nda", Response: "NDA", Intent: "DRAFT", Timestamp: now}})
	assert.Len(t, out, 1)
	assert.Equal(t, "draft an nda", out[0].Query)
	assert.Equal(t, "NDA", out[0].Response)
	assert.Equal(t, "DRAFT", out[0].Intent)
	assert.Equal(t, now, out[0].Timestamp)
}
