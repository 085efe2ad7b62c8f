package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/schedulo-api/internal/dto"
	internalmiddleware "github.com/noah-isme/schedulo-api/internal/middleware"
	"github.com/noah-isme/schedulo-api/internal/models"
	"github.com/noah-isme/schedulo-api/internal/scheduler"
	appErrors "github.com/noah-isme/schedulo-api/pkg/errors"
)

type timetableServiceMock struct {
	captured   dto.GenerateTimetableRequest
	exportReq  dto.ExportTimetableRequest
	generateFn func() (*dto.GenerateTimetableResponse, error)
	classFn    func(id string) (*dto.TimetableResponse, error)
}

func (m *timetableServiceMock) Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error) {
	m.captured = req
	if m.generateFn != nil {
		return m.generateFn()
	}
	return &dto.GenerateTimetableResponse{Stats: dto.GenerationStats{TotalTasks: 3, Attempts: 4}}, nil
}

func (m *timetableServiceMock) GetClassTimetable(ctx context.Context, classID string) (*dto.TimetableResponse, error) {
	if m.classFn != nil {
		return m.classFn(classID)
	}
	return &dto.TimetableResponse{Kind: "class", ReferenceID: classID}, nil
}

func (m *timetableServiceMock) GetFacultyTimetable(ctx context.Context, facultyID string) (*dto.TimetableResponse, error) {
	return &dto.TimetableResponse{Kind: "faculty", ReferenceID: facultyID}, nil
}

func (m *timetableServiceMock) ListTimetables(ctx context.Context) ([]dto.TimetableResponse, error) {
	return []dto.TimetableResponse{{Kind: "class", ReferenceID: "c1"}}, nil
}

func (m *timetableServiceMock) DataSummary(ctx context.Context) (*dto.DataSummary, error) {
	return &dto.DataSummary{ClassCount: 2}, nil
}

func (m *timetableServiceMock) Export(ctx context.Context, req dto.ExportTimetableRequest) (*dto.ExportFile, error) {
	m.exportReq = req
	return &dto.ExportFile{Filename: "timetable-class-c1.csv", ContentType: "text/csv", Body: []byte("Day,Period\n")}, nil
}

func newTimetableTestContext(method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	req, _ := http.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func TestTimetableGenerateCreated(t *testing.T) {
	mockSvc := &timetableServiceMock{}
	handler := &TimetableHandler{service: mockSvc, logger: zap.NewNop()}
	c, w := newTimetableTestContext(http.MethodPost, "/timetables/generate", []byte(`{"days":["Mon","Tue"],"periodsPerDay":6}`))

	handler.Generate(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, []string{"Mon", "Tue"}, mockSvc.captured.Days)
	assert.Equal(t, 6, mockSvc.captured.PeriodsPerDay)
}

func TestTimetableGenerateEmptyBody(t *testing.T) {
	mockSvc := &timetableServiceMock{}
	handler := &TimetableHandler{service: mockSvc, logger: zap.NewNop()}
	c, w := newTimetableTestContext(http.MethodPost, "/timetables/generate", nil)

	handler.Generate(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, mockSvc.captured.Days)
}

func TestTimetableGenerateMalformedBody(t *testing.T) {
	handler := &TimetableHandler{service: &timetableServiceMock{}, logger: zap.NewNop()}
	c, w := newTimetableTestContext(http.MethodPost, "/timetables/generate", []byte(`{"days":`))

	handler.Generate(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimetableGenerateUnsatisfiableCarriesDiagnostics(t *testing.T) {
	diag := scheduler.Diagnostics{TotalTasks: 5, Attempts: 900, ProblematicTasks: []scheduler.ProblemTask{{TaskID: "t1", Reason: "no lab rooms are configured"}}}
	mockSvc := &timetableServiceMock{generateFn: func() (*dto.GenerateTimetableResponse, error) {
		return nil, appErrors.WithDetails(appErrors.ErrUnsatisfiable, diag)
	}}
	handler := &TimetableHandler{service: mockSvc, logger: zap.NewNop()}
	c, w := newTimetableTestContext(http.MethodPost, "/timetables/generate", nil)

	handler.Generate(c)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body struct {
		Error struct {
			Code    string                `json:"code"`
			Details scheduler.Diagnostics `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "UNSATISFIABLE", body.Error.Code)
	assert.Equal(t, 900, body.Error.Details.Attempts)
	require.Len(t, body.Error.Details.ProblematicTasks, 1)
	assert.Equal(t, "t1", body.Error.Details.ProblematicTasks[0].TaskID)
}

func TestTimetableGenerateRequiresAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &TimetableHandler{service: &timetableServiceMock{}, logger: zap.NewNop()}
	router := gin.New()
	router.POST("/timetables/generate", func(c *gin.Context) {
		c.Set(internalmiddleware.ContextUserKey, &models.JWTClaims{UserID: "u1", Role: models.RoleViewer})
		c.Next()
	}, internalmiddleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin), handler.Generate)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/timetables/generate", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestTimetableClassNotFound(t *testing.T) {
	mockSvc := &timetableServiceMock{classFn: func(id string) (*dto.TimetableResponse, error) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "class timetable not found")
	}}
	handler := &TimetableHandler{service: mockSvc, logger: zap.NewNop()}
	c, w := newTimetableTestContext(http.MethodGet, "/timetables/class/c9", nil)
	c.Params = gin.Params{{Key: "id", Value: "c9"}}

	handler.Class(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTimetableClassInternalError(t *testing.T) {
	mockSvc := &timetableServiceMock{classFn: func(id string) (*dto.TimetableResponse, error) {
		return nil, errors.New("boom")
	}}
	handler := &TimetableHandler{service: mockSvc, logger: zap.NewNop()}
	c, w := newTimetableTestContext(http.MethodGet, "/timetables/class/c1", nil)
	c.Params = gin.Params{{Key: "id", Value: "c1"}}

	handler.Class(c)

	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestTimetableListAndSummary(t *testing.T) {
	handler := &TimetableHandler{service: &timetableServiceMock{}, logger: zap.NewNop()}

	c, w := newTimetableTestContext(http.MethodGet, "/timetables", nil)
	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	c, w = newTimetableTestContext(http.MethodGet, "/timetables/data-summary", nil)
	handler.DataSummary(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"classCount":2`)
}

func TestTimetableExportClass(t *testing.T) {
	mockSvc := &timetableServiceMock{}
	handler := &TimetableHandler{service: mockSvc, logger: zap.NewNop()}
	c, w := newTimetableTestContext(http.MethodGet, "/timetables/class/c1/export", nil)
	c.Params = gin.Params{{Key: "id", Value: "c1"}}

	handler.ExportClass(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.ExportTimetableRequest{Kind: "class", ReferenceID: "c1", Format: "csv"}, mockSvc.exportReq)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "timetable-class-c1.csv")
	assert.Equal(t, "Day,Period\n", w.Body.String())
}

func TestRequesterFields(t *testing.T) {
	c, _ := newTimetableTestContext(http.MethodPost, "/timetables/generate", nil)
	fields := requesterFields(c)
	require.Len(t, fields, 1)
	assert.Equal(t, "anonymous", fields[0].String)

	c.Set(internalmiddleware.ContextUserKey, &models.JWTClaims{UserID: "u1", Role: models.RoleAdmin})
	fields = requesterFields(c)
	require.Len(t, fields, 2)
	assert.Equal(t, "u1", fields[0].String)
	assert.Equal(t, "ADMIN", fields[1].String)
}
