package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/noah-isme/schedulo-api/internal/dto"
	"github.com/noah-isme/schedulo-api/internal/models"
	"github.com/noah-isme/schedulo-api/internal/scheduler"
	appErrors "github.com/noah-isme/schedulo-api/pkg/errors"
	"github.com/noah-isme/schedulo-api/pkg/export"
)

const (
	timetableCachePattern = "timetables:*"
	timetableCacheAll     = "timetables:all"
)

type timetableStore interface {
	ReplaceAll(ctx context.Context, records []models.TimetableRecord) error
	FindByReference(ctx context.Context, kind models.TimetableKind, referenceID string) (*models.TimetableRecord, error)
	List(ctx context.Context) ([]models.TimetableRecord, error)
}

type timetableCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, pattern string) error
}

type schedulerMetrics interface {
	ObserveSchedulerRun(outcome string, tasks, attempts int, duration time.Duration)
}

type sheetRenderer interface {
	Render(sheet export.Sheet) ([]byte, error)
}

// TimetableServiceConfig tunes the search budget and read caching.
type TimetableServiceConfig struct {
	MaxAttempts  int
	Timeout      time.Duration
	SlotOrder    string
	Seed         int64
	ProblemLimit int
	CacheTTL     time.Duration
}

// TimetableService generates, stores and serves weekly timetables.
type TimetableService struct {
	classes   classReader
	subjects  subjectReader
	faculty   facultyReader
	rooms     roomReader
	institute instituteConfigReader
	store     timetableStore
	cache     timetableCache
	metrics   schedulerMetrics
	csv       sheetRenderer
	pdf       sheetRenderer
	validator *validator.Validate
	logger    *zap.Logger
	cfg       TimetableServiceConfig
}

// TimetableServiceDeps groups the collaborators of TimetableService.
type TimetableServiceDeps struct {
	Classes   classReader
	Subjects  subjectReader
	Faculty   facultyReader
	Rooms     roomReader
	Institute instituteConfigReader
	Store     timetableStore
	Cache     timetableCache
	Metrics   schedulerMetrics
	CSV       sheetRenderer
	PDF       sheetRenderer
	Validator *validator.Validate
	Logger    *zap.Logger
}

// NewTimetableService wires the timetable service.
func NewTimetableService(deps TimetableServiceDeps, cfg TimetableServiceConfig) *TimetableService {
	if deps.Validator == nil {
		deps.Validator = validator.New()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.CSV == nil {
		deps.CSV = export.NewCSVExporter()
	}
	if deps.PDF == nil {
		deps.PDF = export.NewPDFExporter()
	}
	if cfg.ProblemLimit <= 0 || cfg.ProblemLimit > scheduler.ProblemTaskLimit {
		cfg.ProblemLimit = scheduler.ProblemTaskLimit
	}
	return &TimetableService{
		classes:   deps.Classes,
		subjects:  deps.Subjects,
		faculty:   deps.Faculty,
		rooms:     deps.Rooms,
		institute: deps.Institute,
		store:     deps.Store,
		cache:     deps.Cache,
		metrics:   deps.Metrics,
		csv:       deps.CSV,
		pdf:       deps.PDF,
		validator: deps.Validator,
		logger:    deps.Logger,
		cfg:       cfg,
	}
}

// Generate schedules every class from the stored inputs and replaces the persisted timetables.
func (s *TimetableService) Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable generation payload")
	}

	snapshot, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load scheduling data")
	}

	s.logger.Info("timetable generation started",
		zap.Int("classes", len(snapshot.Classes)),
		zap.Int("faculty", len(snapshot.Faculty)),
		zap.Int("rooms", len(snapshot.Rooms)),
		zap.Strings("days", req.Days),
		zap.Int("periods_per_day", req.PeriodsPerDay),
	)

	result, err := scheduler.Generate(snapshot, scheduler.Overrides{Days: req.Days, PeriodsPerDay: req.PeriodsPerDay})
	if err != nil {
		return nil, s.generationError(err)
	}

	records, err := toRecords(result, time.Now().UTC())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode timetables")
	}
	if err := s.store.ReplaceAll(ctx, records); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store timetables")
	}
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, timetableCachePattern)
	}

	s.observe(OutcomeSolved, result.Stats.TotalTasks, result.Stats.Attempts, result.Stats.Elapsed)
	s.logger.Info("timetable generated",
		zap.Int("tasks", result.Stats.TotalTasks),
		zap.Int("lab_tasks", result.Stats.LabTasks),
		zap.Int("attempts", result.Stats.Attempts),
		zap.Duration("elapsed", result.Stats.Elapsed),
		zap.Int("unroomed_lectures", result.Stats.UnroomedLectures),
		zap.Int("records", len(records)),
	)

	return &dto.GenerateTimetableResponse{
		ClassTimetables:   result.ClassTimetables,
		FacultyTimetables: result.FacultyTimetables,
		Stats: dto.GenerationStats{
			TotalTasks:       result.Stats.TotalTasks,
			LabTasks:         result.Stats.LabTasks,
			Attempts:         result.Stats.Attempts,
			ElapsedMs:        result.Stats.Elapsed.Milliseconds(),
			UnroomedLectures: result.Stats.UnroomedLectures,
		},
	}, nil
}

func (s *TimetableService) generationError(err error) error {
	var unsat *scheduler.UnsatisfiableError
	switch {
	case errors.Is(err, scheduler.ErrNoClassesFound):
		s.observe(OutcomeRejected, 0, 0, 0)
		return appErrors.Clone(appErrors.ErrNoClassesFound, "")
	case errors.Is(err, scheduler.ErrNoSubjectsAssigned):
		s.observe(OutcomeRejected, 0, 0, 0)
		return appErrors.Clone(appErrors.ErrNoSubjectsAssigned, "")
	case errors.As(err, &unsat):
		diag := unsat.Diagnostics
		if len(diag.ProblematicTasks) > s.cfg.ProblemLimit {
			diag.ProblematicTasks = diag.ProblematicTasks[:s.cfg.ProblemLimit]
		}
		outcome := OutcomeUnsatisfiable
		message := appErrors.ErrUnsatisfiable.Message
		if diag.BudgetExhausted {
			outcome = OutcomeBudget
			message = "search budget exhausted before a timetable was found"
		}
		s.observe(outcome, diag.TotalTasks, diag.Attempts, time.Duration(diag.ElapsedMs)*time.Millisecond)
		s.logger.Warn("timetable generation failed",
			zap.Int("tasks", diag.TotalTasks),
			zap.Int("attempts", diag.Attempts),
			zap.Int64("elapsed_ms", diag.ElapsedMs),
			zap.Bool("budget_exhausted", diag.BudgetExhausted),
			zap.Int("problematic_tasks", len(diag.ProblematicTasks)),
			zap.Int("overloaded_faculty", len(diag.OverloadedFaculty())),
		)
		return appErrors.WithDetails(appErrors.Wrap(err, appErrors.ErrUnsatisfiable.Code, appErrors.ErrUnsatisfiable.Status, message), diag)
	default:
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate timetable")
	}
}

func (s *TimetableService) observe(outcome string, tasks, attempts int, elapsed time.Duration) {
	if s.metrics != nil {
		s.metrics.ObserveSchedulerRun(outcome, tasks, attempts, elapsed)
	}
}

// GetClassTimetable returns the stored timetable of a class.
func (s *TimetableService) GetClassTimetable(ctx context.Context, classID string) (*dto.TimetableResponse, error) {
	return s.getTimetable(ctx, models.TimetableKindClass, classID)
}

// GetFacultyTimetable returns the stored timetable of a faculty member.
func (s *TimetableService) GetFacultyTimetable(ctx context.Context, facultyID string) (*dto.TimetableResponse, error) {
	return s.getTimetable(ctx, models.TimetableKindFaculty, facultyID)
}

func (s *TimetableService) getTimetable(ctx context.Context, kind models.TimetableKind, referenceID string) (*dto.TimetableResponse, error) {
	if referenceID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "id is required")
	}
	key := fmt.Sprintf("timetables:%s:%s", kind, referenceID)
	return cached(ctx, s.cache, key, s.cfg.CacheTTL, func() (*dto.TimetableResponse, error) {
		record, err := s.store.FindByReference(ctx, kind, referenceID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
		}
		if record == nil {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("%s timetable not found", kind))
		}
		resp, err := toTimetableResponse(*record)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode timetable")
		}
		return &resp, nil
	})
}

// ListTimetables returns every stored timetable, classes first.
func (s *TimetableService) ListTimetables(ctx context.Context) ([]dto.TimetableResponse, error) {
	return cached(ctx, s.cache, timetableCacheAll, s.cfg.CacheTTL, func() ([]dto.TimetableResponse, error) {
		records, err := s.store.List(ctx)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list timetables")
		}
		out := make([]dto.TimetableResponse, 0, len(records))
		for _, record := range records {
			resp, err := toTimetableResponse(record)
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode timetable")
			}
			out = append(out, resp)
		}
		return out, nil
	})
}

// DataSummary reports the stored scheduling inputs, which helps explain empty or rejected runs.
func (s *TimetableService) DataSummary(ctx context.Context) (*dto.DataSummary, error) {
	classes, err := s.classes.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classes")
	}
	assignments, err := s.classes.ListAssignments(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class subjects")
	}
	subjects, err := s.subjects.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subjects")
	}
	faculty, err := s.faculty.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty")
	}
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}

	byClass := lo.GroupBy(assignments, func(a models.ClassSubjectAssignment) string { return a.ClassID })
	summary := &dto.DataSummary{
		ClassCount:   len(classes),
		SubjectCount: len(subjects),
		FacultyCount: len(faculty),
		RoomCount:    len(rooms),
		Classes:      make([]dto.ClassSummary, 0, len(classes)),
		Faculty:      make([]dto.FacultySummaryItem, 0, len(faculty)),
	}
	for _, class := range classes {
		details := lo.Map(byClass[class.ID], func(a models.ClassSubjectAssignment, _ int) dto.ClassSubjectDetail {
			ids := lo.Compact([]string(a.FacultyIDs))
			return dto.ClassSubjectDetail{
				ID:              a.SubjectID,
				Name:            a.SubjectName,
				Code:            a.SubjectCode,
				Kind:            string(a.Kind),
				SessionsPerWeek: a.SessionsPerWeek,
				FacultyAssigned: len(ids),
				FacultyIDs:      ids,
			}
		})
		summary.Classes = append(summary.Classes, dto.ClassSummary{
			ID:           class.ID,
			Name:         class.Name,
			SubjectCount: len(details),
			Subjects:     details,
		})
	}
	for _, f := range faculty {
		availability, err := decodeAvailability(f.Availability)
		if err != nil {
			s.logger.Warn("invalid faculty availability", zap.String("faculty_id", f.ID), zap.Error(err))
		}
		summary.Faculty = append(summary.Faculty, dto.FacultySummaryItem{
			ID:               f.ID,
			Name:             f.Name,
			WeeklyLoadLimit:  f.WeeklyLoadLimit,
			MaxPeriodsPerDay: f.MaxPeriodsPerDay,
			AvailableDays:    lo.CountBy(lo.Values(availability), func(periods []int) bool { return len(periods) > 0 }),
			SubjectCount: lo.CountBy(assignments, func(a models.ClassSubjectAssignment) bool {
				return lo.Contains([]string(a.FacultyIDs), f.ID)
			}),
		})
	}
	return summary, nil
}

// Export renders a stored timetable as CSV or PDF.
func (s *TimetableService) Export(ctx context.Context, req dto.ExportTimetableRequest) (*dto.ExportFile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export request")
	}
	timetable, err := s.getTimetable(ctx, models.TimetableKind(req.Kind), req.ReferenceID)
	if err != nil {
		return nil, err
	}

	sheet := export.Sheet{
		Title: fmt.Sprintf("Timetable: %s", timetable.ReferenceName),
		Rows: lo.Map(timetable.Periods, func(p scheduler.Period, _ int) export.Row {
			return export.Row{
				Day:       p.Day,
				Period:    p.PeriodIndex + 1,
				StartTime: p.StartTime,
				EndTime:   p.EndTime,
				Subject:   p.SubjectName,
				Code:      p.SubjectCode,
				Faculty:   p.FacultyName,
				Class:     p.ClassName,
				Room:      p.RoomName,
				Lab:       p.IsLab,
			}
		}),
	}

	renderer, contentType := s.csv, "text/csv"
	if req.Format == "pdf" {
		renderer, contentType = s.pdf, "application/pdf"
	}
	body, err := renderer.Render(sheet)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render timetable")
	}
	return &dto.ExportFile{
		Filename:    fmt.Sprintf("timetable-%s-%s.%s", req.Kind, req.ReferenceID, req.Format),
		ContentType: contentType,
		Body:        body,
	}, nil
}

func toRecords(result *scheduler.Result, generatedAt time.Time) ([]models.TimetableRecord, error) {
	all := append(append([]scheduler.Timetable{}, result.ClassTimetables...), result.FacultyTimetables...)
	records := make([]models.TimetableRecord, 0, len(all))
	for _, tt := range all {
		periods, err := json.Marshal(tt.Periods)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s periods: %w", tt.Kind, tt.ReferenceID, err)
		}
		records = append(records, models.TimetableRecord{
			Kind:          models.TimetableKind(tt.Kind),
			ReferenceID:   tt.ReferenceID,
			ReferenceName: tt.ReferenceName,
			Periods:       periods,
			GeneratedAt:   generatedAt,
		})
	}
	return records, nil
}

func toTimetableResponse(record models.TimetableRecord) (dto.TimetableResponse, error) {
	resp := dto.TimetableResponse{
		ID:            record.ID,
		Kind:          string(record.Kind),
		ReferenceID:   record.ReferenceID,
		ReferenceName: record.ReferenceName,
		Periods:       []scheduler.Period{},
		GeneratedAt:   record.GeneratedAt,
	}
	if len(record.Periods) > 0 {
		if err := json.Unmarshal(record.Periods, &resp.Periods); err != nil {
			return resp, err
		}
	}
	return resp, nil
}
