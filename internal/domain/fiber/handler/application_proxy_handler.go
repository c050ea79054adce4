package handler

import (
	"errors"

	"github.com/fadilmartias/jobtrack/internal/client"
	"github.com/fadilmartias/jobtrack/internal/dto"
	"github.com/fadilmartias/jobtrack/internal/model"
	"github.com/fadilmartias/jobtrack/internal/usecase"
	"github.com/fadilmartias/jobtrack/internal/util"
	"github.com/gofiber/fiber/v2"
)

// ApplicationProxyHandler is the dashboard's applications surface. Reads go
// through the query cache, mutations through the pipeline that invalidates
// it, so the UI never sees a stale list after its own write.
type ApplicationProxyHandler struct {
	uc *usecase.ApplicationUsecase
}

func NewApplicationProxyHandler(uc *usecase.ApplicationUsecase) *ApplicationProxyHandler {
	return &ApplicationProxyHandler{uc: uc}
}

func (h *ApplicationProxyHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/applications/", h.List)
	app.Post("/applications/", h.Create)
	app.Get("/applications/:id/", h.Get)
	app.Put("/applications/:id/", h.Update)
	app.Patch("/applications/:id/", h.UpdateStatus)
	app.Delete("/applications/:id/", h.Delete)
	app.Post("/applications/:id/timeline/", h.AddTimelineEvent)
}

func (h *ApplicationProxyHandler) List(c *fiber.Ctx) error {
	params := client.ListParams{
		Status:   c.Query("status"),
		Search:   c.Query("search"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 0),
	}
	page, err := h.uc.List(c.UserContext(), params)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: client.Message(err, "failed to load applications"),
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get applications",
		Data:    page.Results,
		Meta:    fiber.Map{"count": page.Count, "next": page.Next},
	})
}

func (h *ApplicationProxyHandler) Get(c *fiber.Ctx) error {
	app, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusOf(err),
			Message: client.Message(err, "failed to load application"),
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get application",
		Data:    app,
	})
}

func (h *ApplicationProxyHandler) Create(c *fiber.Ctx) error {
	var app model.Application
	if err := c.BodyParser(&app); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Malformed request body",
		}, err)
	}
	created, err := h.uc.Create(c.UserContext(), &app)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusOf(err),
			Message: client.Message(err, "Failed to create application"),
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Application created successfully!",
		Data:    created,
	})
}

func (h *ApplicationProxyHandler) Update(c *fiber.Ctx) error {
	var app model.Application
	if err := c.BodyParser(&app); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Malformed request body",
		}, err)
	}
	updated, err := h.uc.Update(c.UserContext(), c.Params("id"), &app)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusOf(err),
			Message: client.Message(err, "Failed to update application"),
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Application updated successfully!",
		Data:    updated,
	})
}

func (h *ApplicationProxyHandler) UpdateStatus(c *fiber.Ctx) error {
	var body dto.StatusPatchDTO
	if err := c.BodyParser(&body); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Malformed request body",
		}, err)
	}
	updated, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), body.Application.Status)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusOf(err),
			Message: client.Message(err, "Failed to update status"),
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Status updated successfully!",
		Data:    updated,
	})
}

func (h *ApplicationProxyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusOf(err),
			Message: client.Message(err, "Failed to delete application"),
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Application deleted successfully!",
	})
}

func (h *ApplicationProxyHandler) AddTimelineEvent(c *fiber.Ctx) error {
	var event model.TimelineEvent
	if err := c.BodyParser(&event); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Malformed request body",
		}, err)
	}
	updated, err := h.uc.AddTimelineEvent(c.UserContext(), c.Params("id"), event)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusOf(err),
			Message: client.Message(err, "Failed to add timeline event"),
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Timeline event added successfully!",
		Data:    updated,
	})
}

// statusOf maps an upstream failure to the status the dashboard reports:
// the upstream's own status for API errors, 502 for transport failures.
func statusOf(err error) int {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return fiber.StatusBadGateway
}
