package events

import (
	"testing"

	"contract-assistant-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeKeepsTypeAndTime(t *testing.T) {
	doc := &store.Document{ID: "d1", TypeLabel: "Lease Agreement", Content: "abc",
		Modifications: []store.Modification{{Change: "x"}}}
	evt := ContractModified("s1", doc, "add a clause")

	data, err := Encode(evt)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, TypeContractModified, got.EventType())
	assert.True(t, evt.Timestamp().Equal(got.Timestamp()))
	assert.Equal(t, "s1", got.Payload()["session_id"])
	assert.Equal(t, "add a clause", got.Payload()["change"])
	assert.EqualValues(t, 1, got.Payload()["modifications"])
}

func TestDecodeRejectsUntypedPayload(t *testing.T) {
	_, err := Decode([]byte(`{"data":{}}`))
	assert.Error(t, err)

	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}
