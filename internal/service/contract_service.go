package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"contract-assistant-be/internal/dto"
	"contract-assistant-be/internal/mapper"
	"contract-assistant-be/internal/pkg/logger"
	"contract-assistant-be/pkg/assistant"
	"contract-assistant-be/pkg/assistant/dispatch"
	"contract-assistant-be/pkg/assistant/intent"
	"contract-assistant-be/pkg/assistant/relevance"
	"contract-assistant-be/pkg/assistant/session"
	"contract-assistant-be/pkg/events"
	"contract-assistant-be/pkg/extract"
	"contract-assistant-be/pkg/store"
	"contract-assistant-be/pkg/utils"
)

type IContractService interface {
	// Process always returns a response. err is a *assistant.Failure when the query was not served.
	Process(ctx context.Context, req *dto.ContractRequest) (*dto.ContractResponse, error)
	Upload(ctx context.Context, req *dto.UploadRequest) (*dto.ContractResponse, error)
}

type contractService struct {
	sessions       *session.Manager
	relevance      *relevance.Filter
	classifier     intent.Classifier
	dispatcher     *dispatch.Dispatcher
	publisher      IPublisherService
	maxUploadBytes int
	logger         logger.ILogger
}

func NewContractService(
	sessions *session.Manager,
	relevanceFilter *relevance.Filter,
	classifier intent.Classifier,
	dispatcher *dispatch.Dispatcher,
	publisher IPublisherService,
	maxUploadBytes int,
	log logger.ILogger,
) IContractService {
	return &contractService{
		sessions:       sessions,
		relevance:      relevanceFilter,
		classifier:     classifier,
		dispatcher:     dispatcher,
		publisher:      publisher,
		maxUploadBytes: maxUploadBytes,
		logger:         log,
	}
}

func (cs *contractService) Process(ctx context.Context, req *dto.ContractRequest) (*dto.ContractResponse, error) {
	query := strings.TrimSpace(req.Query)
	res := &dto.ContractResponse{Query: query}
	if query == "" {
		return res, assistant.Fail(assistant.KindValidation, "query is required", nil)
	}

	sess, created, unlock, err := cs.sessions.Acquire(ctx, req.SessionID)
	if err != nil {
		return res, err
	}
	defer unlock()
	res.SessionID = sess.ID
	if created {
		cs.logger.Info("CONTRACT", "Session created", map[string]interface{}{"session_id": sess.ID})
	}

	total, err := cs.sessions.IncrementQueries(ctx, sess.ID)
	if err != nil {
		return res, err
	}
	res.TotalQueries = total

	if verdict := cs.relevance.Evaluate(ctx, query); !verdict.Relevant {
		cs.logger.Info("CONTRACT", "Query rejected as irrelevant", map[string]interface{}{
			"session_id": sess.ID,
			"stage":      string(verdict.Stage),
			"query":      utils.Preview(query, 80),
		})
		return res, assistant.Fail(assistant.KindIrrelevant, assistant.MessageIrrelevant, nil)
	}

	current, err := cs.sessions.Get(ctx, sess.ID)
	if err != nil {
		return res, err
	}
	state := intent.State{History: current.Turns}
	if active := current.Active(); active != nil {
		state.HasActiveDocument = true
		state.ActiveTypeLabel = active.TypeLabel
	}

	cls, err := cs.classifier.Classify(ctx, query, state)
	if cls.Intent != "" {
		res.DetectedIntent = cls.Intent.String()
	}
	if err != nil {
		return res, err
	}

	out, err := cs.dispatcher.Dispatch(ctx, sess.ID, query, cls)
	if err != nil {
		return res, err
	}

	if err := cs.fill(ctx, res, sess.ID, out); err != nil {
		return res, err
	}
	if err := cs.sessions.AppendTurn(ctx, sess.ID, store.Turn{
		Query:    query,
		Response: turnResponse(res),
		Intent:   res.DetectedIntent,
	}); err != nil {
		return res, err
	}
	res.Success = true
	cs.publish(ctx, outcomeEvent(sess.ID, query, out))
	return res, nil
}

// turnResponse is the text kept in the conversation history for a served query.
func turnResponse(res *dto.ContractResponse) string {
	switch {
	case res.Answer != "":
		return res.Answer
	case res.ContractAnalysis != "":
		return res.ContractAnalysis
	}
	return res.ContractText
}

func (cs *contractService) Upload(ctx context.Context, req *dto.UploadRequest) (*dto.ContractResponse, error) {
	filename := filepath.Base(req.Filename)
	res := &dto.ContractResponse{Query: "Analyze uploaded contract " + filename, Filename: filename}

	if len(req.Data) == 0 {
		return res, assistant.Fail(assistant.KindValidation, "file is required", nil)
	}
	if cs.maxUploadBytes > 0 && len(req.Data) > cs.maxUploadBytes {
		return res, assistant.Fail(assistant.KindValidation,
			fmt.Sprintf("file is larger than %d bytes", cs.maxUploadBytes), nil)
	}

	text, err := extract.Text(filename, req.Data)
	if err != nil {
		return res, err
	}

	sess, _, unlock, err := cs.sessions.Acquire(ctx, req.SessionID)
	if err != nil {
		return res, err
	}
	defer unlock()
	res.SessionID = sess.ID

	total, err := cs.sessions.IncrementQueries(ctx, sess.ID)
	if err != nil {
		return res, err
	}
	res.TotalQueries = total
	res.DetectedIntent = assistant.IntentAnalyze.String()

	// Analyze before storing so a failed analysis leaves the session as it was.
	candidate := &store.Document{
		Content:   text,
		TypeLabel: cs.dispatcher.TypeLabel(utils.Truncate(text, 2000), text),
	}
	out, err := cs.dispatcher.Analyze(ctx, candidate)
	if err != nil {
		return res, err
	}
	if candidate.TypeLabel == dispatch.DefaultTypeLabel && out.Analysis.ContractType != "" {
		candidate.TypeLabel = out.Analysis.ContractType
	}

	if _, err := cs.sessions.AddDocument(ctx, sess.ID, text, candidate.TypeLabel, res.Query); err != nil {
		return res, err
	}
	doc, err := cs.sessions.GetActive(ctx, sess.ID)
	if err != nil {
		return res, err
	}
	out.Document = doc

	if err := cs.fill(ctx, res, sess.ID, out); err != nil {
		return res, err
	}
	res.ContractText = doc.Content
	res.Success = true

	cs.logger.Info("CONTRACT", "Document uploaded", map[string]interface{}{
		"session_id":    sess.ID,
		"document_id":   doc.ID,
		"filename":      filename,
		"contract_type": doc.TypeLabel,
	})
	cs.publish(ctx, events.DocumentUploaded(sess.ID, doc, filename))
	return res, nil
}

// fill copies the outcome into the response and attaches the session's contract list.
func (cs *contractService) fill(ctx context.Context, res *dto.ContractResponse, sessionID string, out *dispatch.Outcome) error {
	res.DetectedIntent = out.Intent.String()

	if doc := out.Document; doc != nil {
		res.ContractID = doc.ID
		res.ContractType = doc.TypeLabel
		if out.Intent == assistant.IntentDraft || out.Intent == assistant.IntentModify {
			res.ContractText = doc.Content
		}
		if out.Intent == assistant.IntentModify {
			res.ModificationHistory = mapper.ModificationsToDTO(doc.Modifications)
		}
	}

	switch out.Intent {
	case assistant.IntentQuestion:
		res.Answer = out.Answer
	case assistant.IntentAnalyze:
		res.ContractAnalysis = out.Analysis.Text
		res.KeyClauses = out.Analysis.KeyClauses
		res.ContractDetails = out.Analysis.Details
		if out.Analysis.ContractType != "" {
			res.ContractType = out.Analysis.ContractType
		}
	}

	summaries := out.Summaries
	if summaries == nil {
		var err error
		if summaries, err = cs.sessions.ListSummaries(ctx, sessionID); err != nil {
			return err
		}
	}
	res.ContractsInSession = mapper.SummariesToDTO(summaries)
	return nil
}

func outcomeEvent(sessionID, query string, out *dispatch.Outcome) events.Event {
	switch out.Intent {
	case assistant.IntentDraft:
		return events.ContractDrafted(sessionID, out.Document)
	case assistant.IntentModify:
		return events.ContractModified(sessionID, out.Document, query)
	case assistant.IntentAnalyze:
		return events.ContractAnalyzed(sessionID, out.Document, len(out.Analysis.KeyClauses))
	}
	return nil
}

// publish is best effort; a lost event never fails the request.
func (cs *contractService) publish(ctx context.Context, event events.Event) {
	if event == nil || cs.publisher == nil {
		return
	}
	if err := cs.publisher.Publish(ctx, event); err != nil {
		cs.logger.Warn("CONTRACT", "Failed to publish event", map[string]interface{}{
			"event_type": event.EventType(),
			"error":      err.Error(),
		})
	}
}
