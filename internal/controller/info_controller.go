package controller

import (
	"time"

	"contract-assistant-be/internal/dto"
	"contract-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const Version = "1.0.0"

type IInfoController interface {
	RegisterRoutes(r fiber.Router)
	Root(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type infoController struct {
	sessions     service.ISessionService
	llmProvider  string
	jurisdiction string
}

func NewInfoController(sessions service.ISessionService, llmProvider, jurisdiction string) IInfoController {
	return &infoController{sessions: sessions, llmProvider: llmProvider, jurisdiction: jurisdiction}
}

func (c *infoController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Root)
	r.Get("/health", c.Health)
}

func (c *infoController) Root(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.InfoResponse{
		Name:         "Contract Assistant API",
		Version:      Version,
		Description:  "Drafts, explains, modifies and analyzes legal contracts within a conversation session.",
		Jurisdiction: c.jurisdiction,
		Endpoints: []dto.EndpointDoc{
			{Method: "POST", Path: "/api/contract", Description: "Send a query: {query, session_id?}"},
			{Method: "POST", Path: "/api/contract/upload", Description: "Upload a .pdf or .txt contract (multipart 'file', optional 'session_id') for analysis"},
			{Method: "GET", Path: "/api/session/:id", Description: "Session details and its contracts"},
			{Method: "DELETE", Path: "/api/session/:id", Description: "Delete a session"},
			{Method: "POST", Path: "/api/session/refresh", Description: "Discard a session and start a new one"},
			{Method: "GET", Path: "/api/sessions", Description: "List active sessions"},
			{Method: "GET", Path: "/health", Description: "Service status"},
		},
		Intents: map[string]string{
			"DRAFT":    "Create a new contract",
			"QUESTION": "Ask about the active contract",
			"MODIFY":   "Change the active contract",
			"ANALYZE":  "Review the active contract for risks and gaps",
		},
		Examples: []string{
			"Draft a rental agreement between Rahul and Priya for Rs 25,000 per month",
			"What is the notice period?",
			"Add a clause allowing pets",
			"Analyze the risks in this contract",
		},
	})
}

func (c *infoController) Health(ctx *fiber.Ctx) error {
	count, err := c.sessions.Count(ctx.UserContext())
	status := "healthy"
	if err != nil {
		status = "degraded"
	}
	return ctx.JSON(dto.HealthResponse{
		Status:         status,
		ActiveSessions: count,
		LLMProvider:    c.llmProvider,
		Timestamp:      time.Now().UTC(),
	})
}
