package controller

import (
	"io"

	"contract-assistant-be/internal/dto"
	"contract-assistant-be/internal/pkg/logger"
	"contract-assistant-be/internal/pkg/serverutils"
	"contract-assistant-be/internal/service"
	"contract-assistant-be/pkg/assistant"

	"github.com/gofiber/fiber/v2"
)

type IContractController interface {
	RegisterRoutes(r fiber.Router)
	Process(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
}

type contractController struct {
	service service.IContractService
	logger  logger.ILogger
}

func NewContractController(service service.IContractService, log logger.ILogger) IContractController {
	return &contractController{service: service, logger: log}
}

func (c *contractController) RegisterRoutes(r fiber.Router) {
	r.Post("/contract", c.Process)
	r.Post("/contract/upload", c.Upload)
}

func (c *contractController) Process(ctx *fiber.Ctx) error {
	var req dto.ContractRequest
	if err := ctx.BodyParser(&req); err != nil {
		return c.respond(ctx, &dto.ContractResponse{},
			assistant.Fail(assistant.KindValidation, "request body must be JSON with a query field", err))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return c.respond(ctx, &dto.ContractResponse{Query: req.Query, SessionID: req.SessionID}, err)
	}

	res, err := c.service.Process(ctx.UserContext(), &req)
	return c.respond(ctx, res, err)
}

func (c *contractController) Upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return c.respond(ctx, &dto.ContractResponse{},
			assistant.Fail(assistant.KindValidation, "multipart field 'file' is required", err))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.respond(ctx, &dto.ContractResponse{Filename: fileHeader.Filename}, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.respond(ctx, &dto.ContractResponse{Filename: fileHeader.Filename}, err)
	}

	res, err := c.service.Upload(ctx.UserContext(), &dto.UploadRequest{
		SessionID: ctx.FormValue("session_id"),
		Filename:  fileHeader.Filename,
		Data:      data,
	})
	return c.respond(ctx, res, err)
}

// respond writes res, turning err into success=false with a client-safe message.
func (c *contractController) respond(ctx *fiber.Ctx, res *dto.ContractResponse, err error) error {
	if err == nil {
		return ctx.JSON(res)
	}

	f := assistant.AsFailure(err)
	status := serverutils.StatusForFailure(f.Kind)
	if status >= fiber.StatusInternalServerError {
		c.logger.Error("CONTRACT", "Contract request failed", map[string]interface{}{
			"kind":       string(f.Kind),
			"session_id": res.SessionID,
			"error":      err.Error(),
		})
	}

	res.Success = false
	res.Error = f.Message
	return ctx.Status(status).JSON(res)
}
