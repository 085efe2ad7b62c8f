package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"

	"github.com/noah-isme/schedulo-api/internal/scheduler"
	"github.com/noah-isme/schedulo-api/pkg/export"
)

// decodeSnapshot reads a snapshot document. Keys match the engine field names case-insensitively,
// so both "facultyIds" and "FacultyIDs" are accepted.
func decodeSnapshot(r io.Reader) (scheduler.Snapshot, error) {
	var snapshot scheduler.Snapshot

	var raw map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return snapshot, fmt.Errorf("parse snapshot: %w", err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
		Result:     &snapshot,
	})
	if err != nil {
		return snapshot, err
	}
	if err := decoder.Decode(raw); err != nil {
		return snapshot, fmt.Errorf("decode snapshot: %w", err)
	}
	return snapshot, nil
}

func parseDays(raw string) []string {
	if raw == "" {
		return nil
	}
	return lo.Compact(lo.Map(strings.Split(raw, ","), func(d string, _ int) string { return strings.TrimSpace(d) }))
}

func sheetFor(tt scheduler.Timetable) export.Sheet {
	return export.Sheet{
		Title: fmt.Sprintf("%s %s", tt.Kind, tt.ReferenceName),
		Rows: lo.Map(tt.Periods, func(p scheduler.Period, _ int) export.Row {
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
}

// writeTimetables prints one CSV block per timetable, each preceded by a comment line with its title.
func writeTimetables(w io.Writer, timetables []scheduler.Timetable) error {
	csv := export.NewCSVExporter()
	for _, tt := range timetables {
		sheet := sheetFor(tt)
		body, err := csv.Render(sheet)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "# %s\n%s\n", sheet.Title, body); err != nil {
			return err
		}
	}
	return nil
}
