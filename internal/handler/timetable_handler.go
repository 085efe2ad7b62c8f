package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/schedulo-api/internal/dto"
	"github.com/noah-isme/schedulo-api/internal/service"
	appErrors "github.com/noah-isme/schedulo-api/pkg/errors"
	"github.com/noah-isme/schedulo-api/pkg/response"
)

type timetableProvider interface {
	Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error)
	GetClassTimetable(ctx context.Context, classID string) (*dto.TimetableResponse, error)
	GetFacultyTimetable(ctx context.Context, facultyID string) (*dto.TimetableResponse, error)
	ListTimetables(ctx context.Context) ([]dto.TimetableResponse, error)
	DataSummary(ctx context.Context) (*dto.DataSummary, error)
	Export(ctx context.Context, req dto.ExportTimetableRequest) (*dto.ExportFile, error)
}

// TimetableHandler exposes timetable generation and read endpoints.
type TimetableHandler struct {
	service timetableProvider
	logger  *zap.Logger
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(svc *service.TimetableService, logger *zap.Logger) *TimetableHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableHandler{service: svc, logger: logger}
}

// Generate godoc
// @Summary Generate weekly timetables
// @Description Schedules every class from the stored inputs and replaces the stored timetables. Days and periodsPerDay override the institute configuration for this run only. A 422 response carries the diagnostics report in error.details.
// @Tags Timetables
// @Accept json
// @Produce json
// @Param payload body dto.GenerateTimetableRequest false "Generation overrides"
// @Success 201 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /timetables/generate [post]
func (h *TimetableHandler) Generate(c *gin.Context) {
	var req dto.GenerateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generation payload"))
		return
	}

	h.logger.Info("timetable generation requested", requesterFields(c)...)

	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// List godoc
// @Summary List stored timetables
// @Tags Timetables
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timetables [get]
func (h *TimetableHandler) List(c *gin.Context) {
	result, err := h.service.ListTimetables(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, map[string]interface{}{"total": len(result)})
}

// Class godoc
// @Summary Get a class timetable
// @Tags Timetables
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /timetables/class/{id} [get]
func (h *TimetableHandler) Class(c *gin.Context) {
	result, err := h.service.GetClassTimetable(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Faculty godoc
// @Summary Get a faculty timetable
// @Tags Timetables
// @Produce json
// @Param id path string true "Faculty ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /timetables/faculty/{id} [get]
func (h *TimetableHandler) Faculty(c *gin.Context) {
	result, err := h.service.GetFacultyTimetable(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// DataSummary godoc
// @Summary Summarise the stored scheduling inputs
// @Tags Timetables
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timetables/data-summary [get]
func (h *TimetableHandler) DataSummary(c *gin.Context) {
	result, err := h.service.DataSummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// ExportClass godoc
// @Summary Export a class timetable
// @Tags Timetables
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Class ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /timetables/class/{id}/export [get]
func (h *TimetableHandler) ExportClass(c *gin.Context) {
	h.export(c, "class")
}

// ExportFaculty godoc
// @Summary Export a faculty timetable
// @Tags Timetables
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Faculty ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /timetables/faculty/{id}/export [get]
func (h *TimetableHandler) ExportFaculty(c *gin.Context) {
	h.export(c, "faculty")
}

func (h *TimetableHandler) export(c *gin.Context, kind string) {
	file, err := h.service.Export(c.Request.Context(), dto.ExportTimetableRequest{
		Kind:        kind,
		ReferenceID: c.Param("id"),
		Format:      c.DefaultQuery("format", "csv"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
