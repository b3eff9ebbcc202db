package assistant

import (
	"errors"
	"fmt"
)

// FailureKind classifies why a query could not be served.
type FailureKind string

const (
	KindValidation          FailureKind = "validation"
	KindIrrelevant          FailureKind = "irrelevant"
	KindClassification      FailureKind = "classification"
	KindNoActiveDocument    FailureKind = "no_active_document"
	KindInvalidIntent       FailureKind = "invalid_intent"
	KindMissingDraftKeyword FailureKind = "missing_draft_keyword"
	KindDocumentTooLarge    FailureKind = "document_too_large"
	KindLLM                 FailureKind = "llm"
	KindNotFound            FailureKind = "not_found"
	KindUnsupportedFile     FailureKind = "unsupported_file"
	KindInternal            FailureKind = "internal"
)

// User-facing messages. The irrelevant-query text is fixed.
const (
	MessageIrrelevant = "I am a contract maker specialized in legal drafting. I don't have knowledge outside legal and contract matters. " +
		"Please ask questions about contracts, agreements, or the legal framework."
	MessageClassificationFailed = "I could not understand your request right now. Please try again in a moment."
	MessageNoActiveDocument     = "There is no contract in this session yet. Please draft a contract first, for example: " +
		"\"Draft a rental agreement between A and B\"."
	MessageInvalidIntent = "I can draft a new contract, answer questions about the current contract, modify it or analyze it. " +
		"Please rephrase your request."
	MessageMissingDraftKeyword = "To create a new contract, please say so explicitly, for example: " +
		"\"Draft an NDA between Acme and Beta\"."
	MessageDocumentTooLarge = "This contract is too long to be modified safely in one step. " +
		"You can still ask questions about it or analyze it, or draft a shorter version."
	MessageInternal = "An unexpected error occurred while processing your request."
)

// Failure is a user-reportable error. Message is safe to return to clients; Err keeps the cause.
type Failure struct {
	Kind    FailureKind
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Message, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Fail builds a Failure with the given kind and message.
func Fail(kind FailureKind, message string, cause error) *Failure {
	return &Failure{Kind: kind, Message: message, Err: cause}
}

// AsFailure extracts a Failure from err, wrapping unknown errors as internal ones.
func AsFailure(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return Fail(KindInternal, MessageInternal, err)
}

// IsKind reports whether err is a Failure of the given kind.
func IsKind(err error, kind FailureKind) bool {
	var f *Failure
	return errors.As(err, &f) && f.Kind == kind
}
