package nats

import (
	"testing"

	"contract-assistant-be/pkg/events"

	"github.com/stretchr/testify/assert"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "events.CONTRACT_DRAFTED", Subject(events.TypeContractDrafted))
}
