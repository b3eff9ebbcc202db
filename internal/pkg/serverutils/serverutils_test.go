package serverutils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"contract-assistant-be/internal/pkg/logger"
	"contract-assistant-be/pkg/assistant"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusForFailure(t *testing.T) {
	tests := []struct {
		kind assistant.FailureKind
		want int
	}{
		{assistant.KindValidation, 400},
		{assistant.KindIrrelevant, 200},
		{assistant.KindNoActiveDocument, 200},
		{assistant.KindInvalidIntent, 200},
		{assistant.KindMissingDraftKeyword, 200},
		{assistant.KindDocumentTooLarge, 200},
		{assistant.KindNotFound, 404},
		{assistant.KindUnsupportedFile, 415},
		{assistant.KindClassification, 502},
		{assistant.KindLLM, 502},
		{assistant.KindInternal, 500},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusForFailure(tt.kind), tt.kind)
	}
}

func TestValidateRequest(t *testing.T) {
	type req struct {
		Query string `validate:"required,max=5"`
	}

	assert.NoError(t, ValidateRequest(req{Query: "ok"}))

	err := ValidateRequest(req{})
	require.Error(t, err)
	f := assistant.AsFailure(err)
	assert.Equal(t, assistant.KindValidation, f.Kind)
	assert.Equal(t, "query is required", f.Message)

	f = assistant.AsFailure(ValidateRequest(req{Query: "too long"}))
	assert.Equal(t, "query must be at most 5 characters", f.Message)
}

func TestErrorHandlingHidesInternalCauses(t *testing.T) {
	log := logger.NewNopLogger()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(log)})
	app.Use(ErrorHandlerMiddleware(log))
	app.Get("/panic", func(*fiber.Ctx) error { panic("boom") })
	app.Get("/raw", func(*fiber.Ctx) error { return errors.New("db password leaked") })
	app.Get("/missing", func(*fiber.Ctx) error {
		return assistant.Fail(assistant.KindNotFound, "Session not found.", nil)
	})

	tests := []struct {
		path    string
		status  int
		message string
	}{
		{"/panic", 500, assistant.MessageInternal},
		{"/raw", 500, assistant.MessageInternal},
		{"/missing", 404, "Session not found."},
		{"/nope", 404, "Cannot GET /nope"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body BaseResponse[any]
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}
