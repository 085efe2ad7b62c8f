package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/samber/lo"

	"github.com/noah-isme/schedulo-api/internal/models"
	"github.com/noah-isme/schedulo-api/internal/scheduler"
)

type classReader interface {
	List(ctx context.Context) ([]models.Class, error)
	ListAssignments(ctx context.Context) ([]models.ClassSubjectAssignment, error)
}

type subjectReader interface {
	List(ctx context.Context) ([]models.Subject, error)
}

type facultyReader interface {
	List(ctx context.Context) ([]models.Faculty, error)
}

type roomReader interface {
	List(ctx context.Context) ([]models.Room, error)
}

type instituteConfigReader interface {
	Get(ctx context.Context) (*models.InstituteConfig, error)
}

// loadSnapshot reads every scheduling input and converts it into the engine's plain values.
func (s *TimetableService) loadSnapshot(ctx context.Context) (scheduler.Snapshot, error) {
	var snapshot scheduler.Snapshot

	classes, err := s.classes.List(ctx)
	if err != nil {
		return snapshot, err
	}
	assignments, err := s.classes.ListAssignments(ctx)
	if err != nil {
		return snapshot, err
	}
	faculty, err := s.faculty.List(ctx)
	if err != nil {
		return snapshot, err
	}
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return snapshot, err
	}
	cfg, err := s.institute.Get(ctx)
	if err != nil {
		return snapshot, err
	}

	byClass := lo.GroupBy(assignments, func(a models.ClassSubjectAssignment) string { return a.ClassID })
	snapshot.Classes = lo.Map(classes, func(c models.Class, _ int) scheduler.Class {
		return scheduler.Class{
			ID:       c.ID,
			Name:     c.Name,
			Size:     c.Size,
			Subjects: lo.Map(byClass[c.ID], func(a models.ClassSubjectAssignment, _ int) scheduler.Subject { return toSchedulerSubject(a) }),
		}
	})

	snapshot.Faculty = make([]scheduler.Faculty, 0, len(faculty))
	for _, f := range faculty {
		availability, err := decodeAvailability(f.Availability)
		if err != nil {
			return snapshot, fmt.Errorf("faculty %s availability: %w", f.ID, err)
		}
		snapshot.Faculty = append(snapshot.Faculty, scheduler.Faculty{
			ID:               f.ID,
			Name:             f.Name,
			Availability:     availability,
			MaxPeriodsPerDay: f.MaxPeriodsPerDay,
			WeeklyLoadLimit:  f.WeeklyLoadLimit,
		})
	}

	snapshot.Rooms = make([]scheduler.Room, 0, len(rooms))
	for _, r := range rooms {
		availability, err := decodeAvailability(r.Availability)
		if err != nil {
			return snapshot, fmt.Errorf("room %s availability: %w", r.ID, err)
		}
		snapshot.Rooms = append(snapshot.Rooms, scheduler.Room{
			ID:           r.ID,
			Name:         r.Name,
			Kind:         scheduler.RoomKind(r.Kind),
			Capacity:     r.Capacity,
			Availability: availability,
		})
	}

	if cfg != nil {
		snapshot.Config, err = toSchedulerConfig(*cfg)
		if err != nil {
			return snapshot, err
		}
	}
	snapshot.Config.MaxAttempts = s.cfg.MaxAttempts
	snapshot.Config.Timeout = s.cfg.Timeout
	snapshot.Config.SlotOrder = scheduler.SlotOrder(s.cfg.SlotOrder)
	snapshot.Config.Seed = s.cfg.Seed
	return snapshot, nil
}

func toSchedulerSubject(a models.ClassSubjectAssignment) scheduler.Subject {
	kind := scheduler.SubjectLecture
	if a.Kind == models.SubjectKindLab {
		kind = scheduler.SubjectLab
	}
	return scheduler.Subject{
		ID:              a.SubjectID,
		Name:            a.SubjectName,
		Code:            a.SubjectCode,
		Kind:            kind,
		SessionsPerWeek: a.SessionsPerWeek,
		LabLength:       a.LabLength,
		FacultyIDs:      lo.Compact([]string(a.FacultyIDs)),
	}
}

func toSchedulerConfig(cfg models.InstituteConfig) (scheduler.Config, error) {
	out := scheduler.Config{
		WorkingDays:                     []string(cfg.WorkingDays),
		PeriodsPerDay:                   cfg.PeriodsPerDay,
		PeriodDurationMinutes:           cfg.PeriodDurationMinutes,
		LabAllowedStartPeriods:          lo.Map(cfg.LabAllowedStartPeriods, func(p int64, _ int) int { return int(p) }),
		MaxConsecutivePeriodsForFaculty: cfg.MaxConsecutivePeriods,
		InstituteStartTime:              cfg.InstituteStartTime,
	}
	if len(cfg.Breaks) > 0 {
		var breaks []models.InstituteBreak
		if err := json.Unmarshal(cfg.Breaks, &breaks); err != nil {
			return out, fmt.Errorf("institute breaks: %w", err)
		}
		out.Breaks = lo.Map(breaks, func(b models.InstituteBreak, _ int) scheduler.Break {
			return scheduler.Break{Name: b.Name, AfterPeriod: b.AfterPeriod, DurationMinutes: b.DurationMinutes}
		})
	}
	return out, nil
}

func decodeAvailability(raw []byte) (scheduler.Availability, error) {
	if len(raw) == 0 {
		return scheduler.Availability{}, nil
	}
	var availability scheduler.Availability
	if err := json.Unmarshal(raw, &availability); err != nil {
		return nil, err
	}
	if availability == nil {
		availability = scheduler.Availability{}
	}
	return availability, nil
}
