package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"contract-assistant-be/internal/dto"
	"contract-assistant-be/internal/pkg/logger"
	"contract-assistant-be/pkg/assistant"
	"contract-assistant-be/pkg/assistant/intent"
	"contract-assistant-be/pkg/assistant/prompt"
	"contract-assistant-be/pkg/assistant/relevance"
	"contract-assistant-be/pkg/assistant/rules"
	"contract-assistant-be/pkg/events"
	"contract-assistant-be/pkg/llm/llmtest"

	"github.com/fatih/color"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func TestRunNormalize(t *testing.T) {
	var out bytes.Buffer
	err := runNormalize(strings.NewReader("```\n# LEASE AGREEMENT\n\n\n\nThe **tenant** pays rent.\n```"), &out, 40)
	require.NoError(t, err)
	assert.Equal(t, "LEASE AGREEMENT\n\nThe tenant pays rent.\n", out.String())
}

func TestNormalizeCmdReadsStdin(t *testing.T) {
	cmd := newNormalizeCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader("* one\n* two"))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--width", "20"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "- one\n- two\n", out.String())
}

func TestPrintEvent(t *testing.T) {
	var out bytes.Buffer
	printEvent(&out, events.BaseEvent{
		Type:       events.TypeSessionReset,
		Data:       map[string]interface{}{"session_id": "new", "previous_session_id": "old"},
		OccurredAt: time.Date(2024, 5, 1, 10, 30, 0, 0, time.Local),
	})

	line := out.String()
	assert.True(t, strings.HasPrefix(line, "10:30:00 SESSION_RESET"))
	assert.True(t, strings.HasSuffix(line, " previous_session_id=old session_id=new\n"), line)
}

func newTestProber(out *bytes.Buffer) *prober {
	fake := llmtest.New(func(p string) (string, error) {
		q := p[strings.Index(p, "<user_query>"):]
		switch {
		case strings.Contains(q, "Draft"):
			return "DRAFT", nil
		case strings.Contains(q, "pet clause"):
			return "MODIFY", nil
		}
		return "Intent: DRAFT", nil
	})
	r := rules.Default()
	prompts := prompt.NewBuilder(0, "")
	log := logger.NewNopLogger()
	return &prober{
		filter:     relevance.NewFilter(r, prompts, fake, log),
		classifier: intent.NewGuarded(intent.NewLLMClassifier(fake, prompts), r, log),
		out:        out,
	}
}

func TestProbe(t *testing.T) {
	ctx := context.Background()
	noDoc := intent.State{}

	tests := []struct {
		name  string
		query string
		state intent.State
		want  []string
	}{
		{"small talk", "hello, how are you", noDoc, []string{"IRRELEVANT (small_talk)"}},
		{"draft", "Draft an NDA between Acme and Beta", noDoc, []string{"RELEVANT (legal_keyword)", "intent:    DRAFT"}},
		{"modify without contract", "Add a pet clause", noDoc, []string{"intent:    INVALID (" + intent.ReasonNeedsDocument + ")"}},
		{"modify with contract", "Add a pet clause", intent.State{HasActiveDocument: true, ActiveTypeLabel: "Lease Agreement"}, []string{"intent:    MODIFY"}},
		{"draft without keyword", "tell me about leases", noDoc, []string{"DRAFT rejected (" + intent.ReasonNoDraftKeyword + ")"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			newTestProber(&out).probe(ctx, tt.query, tt.state)
			for _, w := range tt.want {
				assert.Contains(t, out.String(), w)
			}
		})
	}
}

type stubContractService struct{}

func (stubContractService) Process(_ context.Context, req *dto.ContractRequest) (*dto.ContractResponse, error) {
	res := &dto.ContractResponse{Query: req.Query, SessionID: "s1"}
	switch req.Query {
	case "hello":
		return res, assistant.Fail(assistant.KindIrrelevant, assistant.MessageIrrelevant, nil)
	case "boom":
		return res, assistant.Fail(assistant.KindLLM, "Contract generation failed: quota", nil)
	}
	res.Success = true
	res.DetectedIntent = "DRAFT"
	return res, nil
}

func (stubContractService) Upload(context.Context, *dto.UploadRequest) (*dto.ContractResponse, error) {
	return nil, nil
}

type stubSessionService struct{}

func (stubSessionService) Get(_ context.Context, id string) (*dto.SessionInfoResponse, error) {
	if id != "s1" {
		return nil, assistant.Fail(assistant.KindNotFound, "Session not found.", nil)
	}
	return &dto.SessionInfoResponse{SessionID: "s1", TotalQueries: 2}, nil
}

func (stubSessionService) Delete(context.Context, string) error { return nil }

func (stubSessionService) Refresh(context.Context, *dto.RefreshSessionRequest) (*dto.RefreshSessionResponse, error) {
	return nil, nil
}

func (stubSessionService) List(context.Context) (*dto.SessionListResponse, error) { return nil, nil }

func (stubSessionService) Count(context.Context) (int, error) { return 0, nil }

func callTool(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestMCPContractQuery(t *testing.T) {
	tools := &mcpTools{contracts: stubContractService{}, sessions: stubSessionService{}}
	ctx := context.Background()

	res, err := tools.handleContractQuery(ctx, callTool(map[string]any{"query": "Draft an NDA"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	var body dto.ContractResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "s1", body.SessionID)

	// guidance failures are regular answers
	res, err = tools.handleContractQuery(ctx, callTool(map[string]any{"query": "hello"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &body))
	assert.False(t, body.Success)
	assert.Equal(t, assistant.MessageIrrelevant, body.Error)

	res, err = tools.handleContractQuery(ctx, callTool(map[string]any{"query": "boom"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "Contract generation failed: quota", resultText(t, res))

	res, err = tools.handleContractQuery(ctx, callTool(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestMCPSessionInfo(t *testing.T) {
	tools := &mcpTools{contracts: stubContractService{}, sessions: stubSessionService{}}
	ctx := context.Background()

	res, err := tools.handleSessionInfo(ctx, callTool(map[string]any{"session_id": "s1"}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), `"total_queries": 2`)

	res, err = tools.handleSessionInfo(ctx, callTool(map[string]any{"session_id": "nope"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "Session not found.", resultText(t, res))

	assert.NotNil(t, tools.newServer())
}
