package handler

import (
	"github.com/fadilmartias/jobtrack/internal/analytics"
	"github.com/fadilmartias/jobtrack/internal/usecase"
	"github.com/fadilmartias/jobtrack/internal/util"
	"github.com/gofiber/fiber/v2"
)

// AnalyticsHandler serves the chart-ready views the dashboard UI renders.
// Every endpoint reduces the same cached full collection, so recomputing on
// each request is cheap and always consistent with the applications list.
type AnalyticsHandler struct {
	uc *usecase.ApplicationUsecase
}

func NewAnalyticsHandler(uc *usecase.ApplicationUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

func (h *AnalyticsHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/analytics/dashboard/", h.Dashboard)
	app.Get("/analytics/skills/", h.Skills)
	app.Get("/analytics/timeline/", h.Timeline)
	app.Get("/analytics/success-rate/", h.SuccessRate)
}

func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	apps, err := h.uc.All(c.UserContext())
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to load applications",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get dashboard stats",
		Data:    analytics.Summarize(apps),
	})
}

func (h *AnalyticsHandler) Skills(c *fiber.Ctx) error {
	apps, err := h.uc.All(c.UserContext())
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to load applications",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get skills demand",
		Data:    analytics.TopSkills(apps),
	})
}

func (h *AnalyticsHandler) Timeline(c *fiber.Ctx) error {
	apps, err := h.uc.All(c.UserContext())
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to load applications",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get application timeline",
		Data:    analytics.MonthlyTimeSeries(apps),
	})
}

func (h *AnalyticsHandler) SuccessRate(c *fiber.Ctx) error {
	apps, err := h.uc.All(c.UserContext())
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to load applications",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get success rate",
		Data: fiber.Map{
			"success_rate":   analytics.SuccessRate(apps),
			"interview_rate": analytics.InterviewRate(apps),
			"rejection_rate": analytics.RejectionRate(apps),
		},
	})
}
