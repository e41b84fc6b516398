package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"runcoach/backend/internal/service"
)

type PlanHandler struct {
	planService *service.PlanService
}

func NewPlanHandler(planService *service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

func (h *PlanHandler) Week(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req service.PlanRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	result, apiErr := h.planService.WeekPlan(c.Request.Context(), userID, req)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *PlanHandler) TwelveWeek(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req service.PlanRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	result, apiErr := h.planService.TwelveWeekPlan(c.Request.Context(), userID, req)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, result)
}
