package controller

import (
	"errors"

	"ticket-intel-be/internal/dto"
	"ticket-intel-be/internal/pkg/serverutils"
	"ticket-intel-be/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type ITriageController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	Classify(ctx *fiber.Ctx) error
	Results(ctx *fiber.Ctx) error
	Approve(ctx *fiber.Ctx) error
	Reject(ctx *fiber.Ctx) error
}

type triageController struct {
	service  service.ITriageService
	validate *validator.Validate
}

func NewTriageController(triageService service.ITriageService) ITriageController {
	return &triageController{
		service:  triageService,
		validate: validator.New(),
	}
}

func (c *triageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/triage")
	h.Post("/upload", c.Upload)
	h.Post("/classify", c.Classify)
	h.Get("/results", c.Results)
	h.Post("/tickets/:ticketId/approve", c.Approve)
	h.Post("/tickets/:ticketId/reject", c.Reject)
}

func (c *triageController) Upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "multipart field 'file' is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "could not read uploaded file"))
	}
	defer file.Close()

	session := serverutils.SessionFromCtx(ctx)
	res, err := c.service.Upload(ctx.Context(), session, fileHeader.Filename, file)
	if err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(serverutils.ErrorResponse(502, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse(200, "job created", res))
}

func (c *triageController) Classify(ctx *fiber.Ctx) error {
	session := serverutils.SessionFromCtx(ctx)

	res, err := c.service.Classify(ctx.Context(), session)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoJob):
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
		case errors.Is(err, service.ErrNoResults):
			// Warning, not failure: nothing stored, dashboard shows "no results".
			return ctx.JSON(serverutils.SuccessResponse(200, err.Error(), nil))
		default:
			return ctx.Status(fiber.StatusBadGateway).JSON(serverutils.ErrorResponse(502, err.Error()))
		}
	}

	return ctx.JSON(serverutils.SuccessResponse(200, "batch classified", res))
}

func (c *triageController) Results(ctx *fiber.Ctx) error {
	session := serverutils.SessionFromCtx(ctx)

	res, err := c.service.Results(session)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse(200, "ok", res))
}

func (c *triageController) Approve(ctx *fiber.Ctx) error {
	var req dto.ApproveTicketRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := c.validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	session := serverutils.SessionFromCtx(ctx)
	ticketId := ctx.Params("ticketId")

	if err := c.service.Approve(ctx.Context(), session, ticketId, req); err != nil {
		return c.reviewError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse(200, "bot triggered", nil))
}

func (c *triageController) Reject(ctx *fiber.Ctx) error {
	var req dto.RejectTicketRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := c.validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	session := serverutils.SessionFromCtx(ctx)
	ticketId := ctx.Params("ticketId")

	if err := c.service.Reject(ctx.Context(), session, ticketId, req); err != nil {
		return c.reviewError(ctx, err)
	}

	// Deliberately "submitted", not "model updated": the feedback service
	// gives us no way to observe a retraining effect.
	return ctx.JSON(serverutils.SuccessResponse(200, "feedback submitted", nil))
}

func (c *triageController) reviewError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNoBatch), errors.Is(err, service.ErrUnknownTicket):
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	default:
		return ctx.Status(fiber.StatusBadGateway).JSON(serverutils.ErrorResponse(502, err.Error()))
	}
}
