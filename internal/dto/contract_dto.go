package dto

import "time"

type ContractRequest struct {
	Query     string `json:"query" validate:"required,max=20000"`
	SessionID string `json:"session_id,omitempty" validate:"omitempty,max=128"`
}

type ModificationDTO struct {
	Change    string    `json:"change"`
	Timestamp time.Time `json:"timestamp"`
}

type ContractSummaryDTO struct {
	ContractID   string    `json:"contract_id"`
	ContractType string    `json:"contract_type"`
	CreatedAt    time.Time `json:"created_at"`
	IsActive     bool      `json:"is_active"`
}

// ContractResponse is returned by every contract operation, successful or not.
type ContractResponse struct {
	Success             bool                 `json:"success"`
	Query               string               `json:"query"`
	SessionID           string               `json:"session_id,omitempty"`
	DetectedIntent      string               `json:"detected_intent,omitempty"`
	ContractID          string               `json:"contract_id,omitempty"`
	ContractText        string               `json:"contract_text,omitempty"`
	ContractType        string               `json:"contract_type,omitempty"`
	Answer              string               `json:"answer,omitempty"`
	ContractAnalysis    string               `json:"contract_analysis,omitempty"`
	KeyClauses          []string             `json:"key_clauses,omitempty"`
	ContractDetails     map[string]string    `json:"contract_details,omitempty"`
	ModificationHistory []ModificationDTO    `json:"modification_history,omitempty"`
	ContractsInSession  []ContractSummaryDTO `json:"contracts_in_session,omitempty"`
	TotalQueries        int                  `json:"total_queries,omitempty"`
	Filename            string               `json:"filename,omitempty"`
	Error               string               `json:"error,omitempty"`
}

// UploadRequest carries an uploaded contract; the file itself comes as multipart data.
type UploadRequest struct {
	SessionID string
	Filename  string
	Data      []byte
}
