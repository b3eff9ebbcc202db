package dto

import "time"

type ActiveContractDTO struct {
	ContractID          string            `json:"contract_id"`
	ContractType        string            `json:"contract_type"`
	ContractText        string            `json:"contract_text"`
	SourceQuery         string            `json:"source_query"`
	CreatedAt           time.Time         `json:"created_at"`
	ModificationHistory []ModificationDTO `json:"modification_history"`
}

type ConversationTurnDTO struct {
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Intent    string    `json:"intent,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type SessionInfoResponse struct {
	SessionID      string                `json:"session_id"`
	CreatedAt      time.Time             `json:"created_at"`
	LastActivity   time.Time             `json:"last_activity"`
	TotalQueries   int                   `json:"total_queries"`
	Contracts      []ContractSummaryDTO  `json:"contracts"`
	ActiveContract *ActiveContractDTO    `json:"active_contract,omitempty"`
	History        []ConversationTurnDTO `json:"conversation_history"`
}

type SessionListItem struct {
	SessionID    string    `json:"session_id"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
	TotalQueries int       `json:"total_queries"`
	Contracts    int       `json:"contracts"`
}

type SessionListResponse struct {
	ActiveSessions int               `json:"active_sessions"`
	Sessions       []SessionListItem `json:"sessions"`
}

type RefreshSessionRequest struct {
	SessionID string `json:"session_id,omitempty" validate:"omitempty,max=128"`
}

type RefreshSessionResponse struct {
	SessionID         string `json:"session_id"`
	PreviousSessionID string `json:"previous_session_id,omitempty"`
}

type HealthResponse struct {
	Status         string    `json:"status"`
	ActiveSessions int       `json:"active_sessions"`
	LLMProvider    string    `json:"llm_provider"`
	Timestamp      time.Time `json:"timestamp"`
}

type EndpointDoc struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

type InfoResponse struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Description  string            `json:"description"`
	Jurisdiction string            `json:"jurisdiction"`
	Endpoints    []EndpointDoc     `json:"endpoints"`
	Intents      map[string]string `json:"intents"`
	Examples     []string          `json:"examples"`
}
