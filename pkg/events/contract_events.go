package events

import (
	"time"

	"contract-assistant-be/pkg/store"
)

const (
	TypeContractDrafted  = "CONTRACT_DRAFTED"
	TypeContractModified = "CONTRACT_MODIFIED"
	TypeContractAnalyzed = "CONTRACT_ANALYZED"
	TypeDocumentUploaded = "DOCUMENT_UPLOADED"
	TypeSessionReset     = "SESSION_RESET"
	TypeSessionDeleted   = "SESSION_DELETED"
)

func documentEvent(eventType, sessionID string, doc *store.Document, extra map[string]interface{}) BaseEvent {
	now := time.Now()
	data := map[string]interface{}{
		"session_id":    sessionID,
		"document_id":   doc.ID,
		"contract_type": doc.TypeLabel,
		"chars":         len(doc.Content),
		"occurred_at":   now,
	}
	for k, v := range extra {
		data[k] = v
	}
	return BaseEvent{Type: eventType, Data: data, OccurredAt: now}
}

func ContractDrafted(sessionID string, doc *store.Document) BaseEvent {
	return documentEvent(TypeContractDrafted, sessionID, doc, nil)
}

func ContractModified(sessionID string, doc *store.Document, change string) BaseEvent {
	return documentEvent(TypeContractModified, sessionID, doc, map[string]interface{}{
		"change":        change,
		"modifications": len(doc.Modifications),
	})
}

func ContractAnalyzed(sessionID string, doc *store.Document, keyClauses int) BaseEvent {
	return documentEvent(TypeContractAnalyzed, sessionID, doc, map[string]interface{}{
		"key_clauses": keyClauses,
	})
}

func DocumentUploaded(sessionID string, doc *store.Document, filename string) BaseEvent {
	return documentEvent(TypeDocumentUploaded, sessionID, doc, map[string]interface{}{
		"filename": filename,
	})
}

func SessionReset(oldSessionID, newSessionID string) BaseEvent {
	now := time.Now()
	return BaseEvent{
		Type: TypeSessionReset,
		Data: map[string]interface{}{
			"old_session_id": oldSessionID,
			"session_id":     newSessionID,
		},
		OccurredAt: now,
	}
}

func SessionDeleted(sessionID string) BaseEvent {
	return BaseEvent{
		Type:       TypeSessionDeleted,
		Data:       map[string]interface{}{"session_id": sessionID},
		OccurredAt: time.Now(),
	}
}
