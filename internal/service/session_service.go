package service

import (
	"context"

	"contract-assistant-be/internal/dto"
	"contract-assistant-be/internal/mapper"
	"contract-assistant-be/internal/pkg/logger"
	"contract-assistant-be/pkg/assistant/session"
	"contract-assistant-be/pkg/events"
)

type ISessionService interface {
	Get(ctx context.Context, sessionID string) (*dto.SessionInfoResponse, error)
	Delete(ctx context.Context, sessionID string) error
	Refresh(ctx context.Context, req *dto.RefreshSessionRequest) (*dto.RefreshSessionResponse, error)
	List(ctx context.Context) (*dto.SessionListResponse, error)
	Count(ctx context.Context) (int, error)
}

type sessionService struct {
	sessions  *session.Manager
	publisher IPublisherService
	logger    logger.ILogger
}

func NewSessionService(sessions *session.Manager, publisher IPublisherService, log logger.ILogger) ISessionService {
	return &sessionService{sessions: sessions, publisher: publisher, logger: log}
}

func (ss *sessionService) Get(ctx context.Context, sessionID string) (*dto.SessionInfoResponse, error) {
	s, err := ss.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &dto.SessionInfoResponse{
		SessionID:      s.ID,
		CreatedAt:      s.CreatedAt,
		LastActivity:   s.LastActivity,
		TotalQueries:   s.TotalQueries,
		Contracts:      mapper.SummariesToDTO(session.Summaries(s)),
		ActiveContract: mapper.ActiveContractToDTO(s.Active()),
		History:        mapper.TurnsToDTO(s.Turns),
	}, nil
}

func (ss *sessionService) Delete(ctx context.Context, sessionID string) error {
	unlock := ss.sessions.Lock(sessionID)
	defer unlock()

	if err := ss.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	ss.logger.Info("SESSION", "Session deleted", map[string]interface{}{"session_id": sessionID})
	ss.publish(ctx, events.SessionDeleted(sessionID))
	return nil
}

// Refresh discards the given session, if any, and starts an empty one.
func (ss *sessionService) Refresh(ctx context.Context, req *dto.RefreshSessionRequest) (*dto.RefreshSessionResponse, error) {
	if req.SessionID != "" {
		unlock := ss.sessions.Lock(req.SessionID)
		defer unlock()
	}

	s, err := ss.sessions.Reset(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	ss.publish(ctx, events.SessionReset(req.SessionID, s.ID))
	return &dto.RefreshSessionResponse{SessionID: s.ID, PreviousSessionID: req.SessionID}, nil
}

func (ss *sessionService) List(ctx context.Context) (*dto.SessionListResponse, error) {
	list, err := ss.sessions.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SessionListItem, 0, len(list))
	for _, s := range list {
		items = append(items, mapper.SessionToListItem(s))
	}
	return &dto.SessionListResponse{ActiveSessions: len(items), Sessions: items}, nil
}

func (ss *sessionService) Count(ctx context.Context) (int, error) {
	return ss.sessions.Count(ctx)
}

func (ss *sessionService) publish(ctx context.Context, event events.Event) {
	if ss.publisher == nil {
		return
	}
	if err := ss.publisher.Publish(ctx, event); err != nil {
		ss.logger.Warn("SESSION", "Failed to publish event", map[string]interface{}{
			"event_type": event.EventType(),
			"error":      err.Error(),
		})
	}
}
