// Package session owns the per-client document store: sessions, their documents
// and the active-document pointer.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"contract-assistant-be/internal/repository/contract"
	"contract-assistant-be/pkg/assistant"
	"contract-assistant-be/pkg/store"

	"github.com/google/uuid"
)

const messageSessionNotFound = "Session not found."

// MaxTurns bounds the conversation history kept per session; older turns are dropped.
const MaxTurns = 50

// Manager is safe for concurrent use. Lock serialises whole operations on one session;
// the individual methods are read-modify-write on the repository and assume the caller holds it.
type Manager struct {
	repo  contract.ISessionRepository
	now   func() time.Time
	newID func() string

	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

type Option func(*Manager)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithIDGenerator overrides uuid generation for sessions and documents.
func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) { m.newID = newID }
}

func NewManager(repo contract.ISessionRepository, opts ...Option) *Manager {
	m := &Manager{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
		locks: map[string]*sessionLock{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Lock blocks until the caller owns sessionID and returns the release func.
func (m *Manager) Lock(sessionID string) func() {
	m.mu.Lock()
	l, ok := m.locks[sessionID]
	if !ok {
		l = &sessionLock{}
		m.locks[sessionID] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, sessionID)
		}
		m.mu.Unlock()
	}
}

// CreateSession reuses requestedID when it names a live session and otherwise starts a new one.
// The bool reports whether a new session was created.
func (m *Manager) CreateSession(ctx context.Context, requestedID string) (*store.Session, bool, error) {
	requestedID = strings.TrimSpace(requestedID)
	if requestedID != "" {
		s, err := m.repo.Get(ctx, requestedID)
		if err == nil {
			return s, false, nil
		}
		if !errors.Is(err, contract.ErrSessionNotFound) {
			return nil, false, err
		}
	}

	s := store.NewSession(m.newID(), m.now())
	if err := m.repo.Save(ctx, s); err != nil {
		return nil, false, err
	}
	return s, true, nil
}

// Acquire resolves requestedID like CreateSession and returns the session locked.
// If the session is deleted while waiting for the lock, a fresh one is created instead.
func (m *Manager) Acquire(ctx context.Context, requestedID string) (*store.Session, bool, func(), error) {
	s, created, err := m.CreateSession(ctx, requestedID)
	if err != nil {
		return nil, false, nil, err
	}
	unlock := m.Lock(s.ID)

	live, err := m.repo.Get(ctx, s.ID)
	if err == nil {
		return live, created, unlock, nil
	}
	unlock()
	if !errors.Is(err, contract.ErrSessionNotFound) {
		return nil, false, nil, err
	}

	s, _, err = m.CreateSession(ctx, "")
	if err != nil {
		return nil, false, nil, err
	}
	return s, true, m.Lock(s.ID), nil
}

// Get loads a session or fails with KindNotFound.
func (m *Manager) Get(ctx context.Context, sessionID string) (*store.Session, error) {
	s, err := m.repo.Get(ctx, sessionID)
	if errors.Is(err, contract.ErrSessionNotFound) {
		return nil, assistant.Fail(assistant.KindNotFound, messageSessionNotFound, err)
	}
	return s, err
}

// AddDocument stores a new document and makes it the active one. Earlier documents are kept.
func (m *Manager) AddDocument(ctx context.Context, sessionID, content, typeLabel, sourceQuery string) (string, error) {
	s, err := m.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}

	now := m.now()
	doc := &store.Document{
		ID:            m.newID(),
		Content:       content,
		TypeLabel:     typeLabel,
		SourceQuery:   sourceQuery,
		Modifications: []store.Modification{},
		CreatedAt:     now,
	}
	s.Documents[doc.ID] = doc
	s.Order = append(s.Order, doc.ID)
	s.ActiveDocumentID = doc.ID
	s.LastActivity = now

	if err := m.repo.Save(ctx, s); err != nil {
		return "", err
	}
	return doc.ID, nil
}

// GetActive returns the active document, or nil when the session has none.
func (m *Manager) GetActive(ctx context.Context, sessionID string) (*store.Document, error) {
	s, err := m.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.Active(), nil
}

// ApplyModification replaces the active document's content and records the change.
// Without an active document it fails and nothing is created.
func (m *Manager) ApplyModification(ctx context.Context, sessionID, newContent, change string) (*store.Document, error) {
	s, err := m.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	doc := s.Active()
	if doc == nil {
		return nil, assistant.Fail(assistant.KindNoActiveDocument, assistant.MessageNoActiveDocument, nil)
	}

	now := m.now()
	doc.Content = newContent
	doc.Modifications = append(doc.Modifications, store.Modification{Change: change, Timestamp: now})
	s.LastActivity = now

	if err := m.repo.Save(ctx, s); err != nil {
		return nil, err
	}
	return doc, nil
}

// ListSummaries lists documents in creation order.
func (m *Manager) ListSummaries(ctx context.Context, sessionID string) ([]store.DocumentSummary, error) {
	s, err := m.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return Summaries(s), nil
}

func Summaries(s *store.Session) []store.DocumentSummary {
	out := make([]store.DocumentSummary, 0, len(s.Order))
	for _, id := range s.Order {
		d, ok := s.Documents[id]
		if !ok {
			continue
		}
		out = append(out, store.DocumentSummary{
			ID:        d.ID,
			TypeLabel: d.TypeLabel,
			CreatedAt: d.CreatedAt,
			IsActive:  d.ID == s.ActiveDocumentID,
		})
	}
	return out
}

// IncrementQueries bumps the query counter and returns the new total.
func (m *Manager) IncrementQueries(ctx context.Context, sessionID string) (int, error) {
	s, err := m.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	s.TotalQueries++
	s.LastActivity = m.now()
	if err := m.repo.Save(ctx, s); err != nil {
		return 0, err
	}
	return s.TotalQueries, nil
}

// AppendTurn records an answered query. A zero Timestamp is set to now.
func (m *Manager) AppendTurn(ctx context.Context, sessionID string, turn store.Turn) error {
	s, err := m.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	now := m.now()
	if turn.Timestamp.IsZero() {
		turn.Timestamp = now
	}
	s.Turns = append(s.Turns, turn)
	if len(s.Turns) > MaxTurns {
		s.Turns = append([]store.Turn(nil), s.Turns[len(s.Turns)-MaxTurns:]...)
	}
	s.LastActivity = now
	return m.repo.Save(ctx, s)
}

// Reset drops oldID, if any, and returns a fresh empty session.
func (m *Manager) Reset(ctx context.Context, oldID string) (*store.Session, error) {
	if oldID = strings.TrimSpace(oldID); oldID != "" {
		if err := m.repo.Delete(ctx, oldID); err != nil {
			return nil, err
		}
	}
	s, _, err := m.CreateSession(ctx, "")
	return s, err
}

// Delete removes a session or fails with KindNotFound.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	if _, err := m.Get(ctx, sessionID); err != nil {
		return err
	}
	return m.repo.Delete(ctx, sessionID)
}

func (m *Manager) Count(ctx context.Context) (int, error) {
	return m.repo.Count(ctx)
}

func (m *Manager) List(ctx context.Context) ([]*store.Session, error) {
	return m.repo.List(ctx)
}
