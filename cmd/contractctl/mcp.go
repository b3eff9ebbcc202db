package main

import (
	"context"
	"encoding/json"
	"net/http"

	"contract-assistant-be/internal/bootstrap"
	"contract-assistant-be/internal/dto"
	"contract-assistant-be/internal/pkg/logger"
	"contract-assistant-be/internal/pkg/serverutils"
	"contract-assistant-be/internal/service"
	"contract-assistant-be/pkg/assistant"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the assistant as MCP tools over stdio",
		Long: `mcp runs an in-process assistant and exposes it to MCP clients on stdin/stdout.
Logs go to LOG_FILE_PATH only, since stdout carries the protocol.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			container, err := bootstrap.NewContainer(ctx, cfg,
				bootstrap.WithLogger(logger.NewIsolatedLogger(cfg.App.LogFilePath)))
			if err != nil {
				return err
			}
			defer container.Close()

			if err := container.ConsumerService.Consume(ctx); err != nil {
				return err
			}

			tools := &mcpTools{contracts: container.ContractService, sessions: container.SessionService}
			return server.ServeStdio(tools.newServer())
		},
	}
}

type mcpTools struct {
	contracts service.IContractService
	sessions  service.ISessionService
}

func (t *mcpTools) newServer() *server.MCPServer {
	s := server.NewMCPServer("contract-assistant", "1.0.0", server.WithToolCapabilities(false))

	s.AddTool(mcp.NewTool("contract_query",
		mcp.WithDescription("Ask the contract assistant to draft, explain, modify or analyze a contract. "+
			"Pass the returned session_id back to keep working on the same contract."),
		mcp.WithString("query", mcp.Required(), mcp.Description("What you want, e.g. 'Draft an NDA between Acme and Beta'")),
		mcp.WithString("session_id", mcp.Description("Session to continue; omit to start a new one")),
	), t.handleContractQuery)

	s.AddTool(mcp.NewTool("session_info",
		mcp.WithDescription("Show a session's contracts and the active contract's modification history."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id returned by contract_query")),
	), t.handleSessionInfo)

	return s
}

func (t *mcpTools) handleContractQuery(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required"), nil
	}

	res, err := t.contracts.Process(ctx, &dto.ContractRequest{
		Query:     query,
		SessionID: req.GetString("session_id", ""),
	})
	if err != nil {
		f := assistant.AsFailure(err)
		// Guidance failures (irrelevant, no contract yet...) are answers, not tool errors.
		if serverutils.StatusForFailure(f.Kind) != http.StatusOK {
			return mcp.NewToolResultError(f.Message), nil
		}
		res.Success = false
		res.Error = f.Message
	}
	return jsonResult(res)
}

func (t *mcpTools) handleSessionInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id is required"), nil
	}

	info, err := t.sessions.Get(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(assistant.AsFailure(err).Message), nil
	}
	return jsonResult(info)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}
