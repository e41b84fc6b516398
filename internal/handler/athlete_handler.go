package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "runcoach/backend/internal/errors"
	"runcoach/backend/internal/model"
	"runcoach/backend/internal/service"
)

const maxUploadBytes = 10 << 20

type AthleteHandler struct {
	athleteService *service.AthleteService
}

func NewAthleteHandler(athleteService *service.AthleteService) *AthleteHandler {
	return &AthleteHandler{athleteService: athleteService}
}

func (h *AthleteHandler) GetGoal(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	goal, apiErr := h.athleteService.GetGoal(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

func (h *AthleteHandler) PutGoal(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req service.GoalInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}
	goal, apiErr := h.athleteService.SaveGoal(c.Request.Context(), userID, req)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

func (h *AthleteHandler) GetAssessment(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	assessment, apiErr := h.athleteService.GetAssessment(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assessment": assessment})
}

func (h *AthleteHandler) PutAssessment(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req model.FitnessAssessment
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}
	assessment, apiErr := h.athleteService.SaveAssessment(c.Request.Context(), userID, req)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assessment": assessment})
}

func (h *AthleteHandler) ListRuns(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(c, apperrors.BadRequest("invalid_limit", "limit must be an integer"))
			return
		}
		limit = parsed
	}
	runs, apiErr := h.athleteService.ListRuns(c.Request.Context(), userID, limit)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

func (h *AthleteHandler) CreateRun(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req service.RunInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}
	run, apiErr := h.athleteService.AddRun(c.Request.Context(), userID, req)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"run": run})
}

// ImportRuns accepts multipart uploads under the "files" field.
func (h *AthleteHandler) ImportRuns(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		writeError(c, apperrors.BadRequest("invalid_upload", "expected multipart form with files"))
		return
	}

	headers := form.File["files"]
	files := make([]service.UploadedFile, 0, len(headers))
	for _, header := range headers {
		if header.Size > maxUploadBytes {
			writeError(c, apperrors.BadRequest("file_too_large", header.Filename+" exceeds the upload limit"))
			return
		}
		f, err := header.Open()
		if err != nil {
			writeError(c, apperrors.BadRequest("invalid_upload", "could not read "+header.Filename))
			return
		}
		data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
		_ = f.Close()
		if err != nil {
			writeError(c, apperrors.BadRequest("invalid_upload", "could not read "+header.Filename))
			return
		}
		files = append(files, service.UploadedFile{Name: header.Filename, Data: data})
	}

	result, apiErr := h.athleteService.ImportRuns(c.Request.Context(), userID, files)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *AthleteHandler) Status(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	status, apiErr := h.athleteService.Status(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}
