package handler

import (
	"encoding/json"
	"errors"
	"net/url"

	"github.com/fadilmartias/jobtrack/internal/analytics"
	"github.com/fadilmartias/jobtrack/internal/model"
	"github.com/fadilmartias/jobtrack/internal/repository"
	"github.com/fadilmartias/jobtrack/internal/response"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApplicationHandler serves the applications REST resource. The wire shape
// follows the usual conventions the dashboard client expects: paginated
// lists as {count, next, previous, results} and errors as {detail}.
type ApplicationHandler struct {
	repo *repository.ApplicationRepository
}

func NewApplicationHandler(repo *repository.ApplicationRepository) *ApplicationHandler {
	return &ApplicationHandler{repo: repo}
}

func (h *ApplicationHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/applications/", h.List)
	app.Post("/applications/", h.Create)
	app.Get("/applications/stats/", h.Stats)
	app.Get("/applications/:id/", h.Get)
	app.Put("/applications/:id/", h.Update)
	app.Patch("/applications/:id/", h.Patch)
	app.Delete("/applications/:id/", h.Delete)
	app.Post("/applications/:id/timeline/", h.AddTimelineEvent)
}

func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := c.QueryInt("page_size", 100)
	if pageSize < 1 || pageSize > 100 {
		pageSize = 100
	}
	filter := repository.ListFilter{
		Status:   c.Query("status"),
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	}

	apps, total, err := h.repo.ListApplications(filter)
	if err != nil {
		return detailError(c, fiber.StatusInternalServerError, "Could not list applications.")
	}

	return c.JSON(response.NewListEnvelope(apps, total, page, pageSize, listURL(c, filter)))
}

func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return detailError(c, fiber.StatusBadRequest, "Invalid application id.")
	}
	app, err := h.repo.FindApplicationByID(id)
	if err != nil {
		return notFoundOr500(c, err)
	}
	return c.JSON(app)
}

func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	var app model.Application
	if err := c.BodyParser(&app); err != nil {
		return detailError(c, fiber.StatusBadRequest, "Malformed request body.")
	}
	app.ID = uuid.Nil // the backend assigns identifiers, never the client
	if err := app.Validate(); err != nil {
		return detailError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := h.repo.CreateApplication(&app); err != nil {
		return detailError(c, fiber.StatusInternalServerError, "Could not create application.")
	}
	return c.Status(fiber.StatusCreated).JSON(app)
}

func (h *ApplicationHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return detailError(c, fiber.StatusBadRequest, "Invalid application id.")
	}
	existing, err := h.repo.FindApplicationByID(id)
	if err != nil {
		return notFoundOr500(c, err)
	}

	var app model.Application
	if err := c.BodyParser(&app); err != nil {
		return detailError(c, fiber.StatusBadRequest, "Malformed request body.")
	}
	app.ID = existing.ID
	app.CreatedAt = existing.CreatedAt
	if err := app.Validate(); err != nil {
		return detailError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := h.repo.UpdateApplication(&app); err != nil {
		return detailError(c, fiber.StatusInternalServerError, "Could not update application.")
	}
	return c.JSON(app)
}

// Patch applies a partial update: only the fields present in the body are
// touched. Status-only changes from the dashboard come through here.
func (h *ApplicationHandler) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return detailError(c, fiber.StatusBadRequest, "Invalid application id.")
	}
	app, err := h.repo.FindApplicationByID(id)
	if err != nil {
		return notFoundOr500(c, err)
	}

	// Unmarshalling into the loaded record merges field by field, leaving
	// everything the body does not mention as it was.
	if err := json.Unmarshal(c.Body(), app); err != nil {
		return detailError(c, fiber.StatusBadRequest, "Malformed request body.")
	}
	app.ID = id
	if err := app.Validate(); err != nil {
		return detailError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := h.repo.UpdateApplication(app); err != nil {
		return detailError(c, fiber.StatusInternalServerError, "Could not update application.")
	}
	return c.JSON(app)
}

func (h *ApplicationHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return detailError(c, fiber.StatusBadRequest, "Invalid application id.")
	}
	if _, err := h.repo.FindApplicationByID(id); err != nil {
		return notFoundOr500(c, err)
	}
	if err := h.repo.DeleteApplication(id); err != nil {
		return detailError(c, fiber.StatusInternalServerError, "Could not delete application.")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ApplicationHandler) AddTimelineEvent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return detailError(c, fiber.StatusBadRequest, "Invalid application id.")
	}
	app, err := h.repo.FindApplicationByID(id)
	if err != nil {
		return notFoundOr500(c, err)
	}

	var event model.TimelineEvent
	if err := c.BodyParser(&event); err != nil {
		return detailError(c, fiber.StatusBadRequest, "Malformed request body.")
	}
	if _, err := model.ParseDate(event.Date); err != nil {
		return detailError(c, fiber.StatusBadRequest, "Timeline event date is not a valid date.")
	}

	app.Timeline = append(app.Timeline, event)
	if err := h.repo.UpdateApplication(app); err != nil {
		return detailError(c, fiber.StatusInternalServerError, "Could not add timeline event.")
	}
	return c.Status(fiber.StatusCreated).JSON(app)
}

func (h *ApplicationHandler) Stats(c *fiber.Ctx) error {
	apps, err := h.repo.GetApplications()
	if err != nil {
		return detailError(c, fiber.StatusInternalServerError, "Could not compute stats.")
	}
	return c.JSON(analytics.Summarize(apps))
}

func detailError(c *fiber.Ctx, code int, detail string) error {
	return c.Status(code).JSON(fiber.Map{"detail": detail})
}

func notFoundOr500(c *fiber.Ctx, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return detailError(c, fiber.StatusNotFound, "Not found.")
	}
	return detailError(c, fiber.StatusInternalServerError, "Could not load application.")
}

// listURL rebuilds the absolute list URL with the active filters so the
// envelope's next/previous links keep them.
func listURL(c *fiber.Ctx, filter repository.ListFilter) string {
	base := c.BaseURL() + c.Path()
	q := url.Values{}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	if len(q) == 0 {
		return base
	}
	return base + "?" + q.Encode()
}
