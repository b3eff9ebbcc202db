package store

import "time"

// Modification records one successful change request against a document.
type Modification struct {
	Change    string    `json:"change"`
	Timestamp time.Time `json:"timestamp"`
}

// Document is a drafted or uploaded contract owned by exactly one session.
type Document struct {
	ID            string         `json:"id"`
	Content       string         `json:"content"`
	TypeLabel     string         `json:"type_label"`
	SourceQuery   string         `json:"source_query"`
	Modifications []Modification `json:"modifications"`
	CreatedAt     time.Time      `json:"created_at"`
}

// DocumentSummary is the client-facing listing entry.
type DocumentSummary struct {
	ID        string    `json:"contract_id"`
	TypeLabel string    `json:"contract_type"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`
}

// Turn is one answered query, kept for conversation context.
type Turn struct {
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Intent    string    `json:"intent"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is a client's conversation state.
type Session struct {
	ID               string               `json:"id"`
	CreatedAt        time.Time            `json:"created_at"`
	LastActivity     time.Time            `json:"last_activity"`
	Documents        map[string]*Document `json:"documents"`
	Order            []string             `json:"order"` // document ids in creation order
	ActiveDocumentID string               `json:"active_document_id,omitempty"`
	TotalQueries     int                  `json:"total_queries"`
	Turns            []Turn               `json:"turns"` // oldest first
}

func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:           id,
		CreatedAt:    now,
		LastActivity: now,
		Documents:    map[string]*Document{},
		Order:        []string{},
		Turns:        []Turn{},
	}
}

// Active returns the active document or nil.
func (s *Session) Active() *Document {
	if s.ActiveDocumentID == "" {
		return nil
	}
	return s.Documents[s.ActiveDocumentID]
}

// Clone returns a deep copy so callers can mutate without touching stored state.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Order = append([]string(nil), s.Order...)
	c.Turns = append([]Turn(nil), s.Turns...)
	c.Documents = make(map[string]*Document, len(s.Documents))
	for id, d := range s.Documents {
		dc := *d
		dc.Modifications = append([]Modification(nil), d.Modifications...)
		c.Documents[id] = &dc
	}
	return &c
}
