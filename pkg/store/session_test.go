package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCloneIsDeep(t *testing.T) {
	now := time.Now()
	s := NewSession("s1", now)
	s.Documents["d1"] = &Document{ID: "d1", Content: "original", Modifications: []Modification{{Change: "a", Timestamp: now}}}
	s.Order = append(s.Order, "d1")
	s.ActiveDocumentID = "d1"
	s.Turns = append(s.Turns, Turn{Query: "draft a lease", Response: "LEASE AGREEMENT"})

	c := s.Clone()
	c.Documents["d1"].Content = "changed"
	c.Documents["d1"].Modifications[0].Change = "b"
	c.Order[0] = "x"
	c.Turns[0].Query = "changed"

	assert.Equal(t, "original", s.Active().Content)
	assert.Equal(t, "a", s.Active().Modifications[0].Change)
	assert.Equal(t, "d1", s.Order[0])
	assert.Equal(t, "draft a lease", s.Turns[0].Query)
}

func TestActiveWithoutDocument(t *testing.T) {
	assert.Nil(t, NewSession("s1", time.Now()).Active())
}
