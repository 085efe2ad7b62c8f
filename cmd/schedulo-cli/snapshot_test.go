package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/schedulo-api/internal/scheduler"
)

const sampleSnapshot = `{
  "classes": [
    {"id": "c1", "name": "10A", "size": 30, "subjects": [
      {"id": "math", "name": "Mathematics", "code": "MTH", "kind": "lecture", "sessionsPerWeek": 2, "facultyIds": ["f1"]},
      {"id": "chem", "name": "Chemistry Lab", "kind": "lab", "sessionsPerWeek": 1, "labLength": 2, "facultyIds": ["f1"]}
    ]}
  ],
  "faculty": [
    {"id": "f1", "name": "Ada", "maxPeriodsPerDay": 4, "weeklyLoadLimit": 10,
     "availability": {"Mon": [1, 2, 3, 4], "Tue": [1, 2, 3, 4]}}
  ],
  "rooms": [
    {"id": "r1", "name": "Room 1", "kind": "classroom", "capacity": 40},
    {"id": "l1", "name": "Lab 1", "kind": "lab"}
  ],
  "config": {
    "workingDays": ["Mon", "Tue"],
    "periodsPerDay": 4,
    "breaks": [{"name": "Recess", "afterPeriod": 2, "durationMinutes": 15}],
    "labAllowedStartPeriods": [1, 3],
    "timeout": "2s"
  }
}`

func TestDecodeSnapshot(t *testing.T) {
	snapshot, err := decodeSnapshot(strings.NewReader(sampleSnapshot))
	require.NoError(t, err)

	require.Len(t, snapshot.Classes, 1)
	require.Len(t, snapshot.Classes[0].Subjects, 2)
	lab := snapshot.Classes[0].Subjects[1]
	assert.Equal(t, scheduler.SubjectLab, lab.Kind)
	assert.Equal(t, 2, lab.LabLength)
	assert.Equal(t, []string{"f1"}, lab.FacultyIDs)
	assert.Equal(t, []int{1, 2, 3, 4}, snapshot.Faculty[0].Availability["Tue"])
	assert.Equal(t, scheduler.RoomLab, snapshot.Rooms[1].Kind)
	assert.Equal(t, 2*time.Second, snapshot.Config.Timeout)
	assert.Equal(t, []int{1, 3}, snapshot.Config.LabAllowedStartPeriods)
	require.Len(t, snapshot.Config.Breaks, 1)
	assert.Equal(t, 2, snapshot.Config.Breaks[0].AfterPeriod)
}

func TestDecodeSnapshotRejectsMalformedJSON(t *testing.T) {
	_, err := decodeSnapshot(strings.NewReader(`{"classes": [`))
	assert.Error(t, err)
}

func TestSnapshotGeneratesPrintableTimetables(t *testing.T) {
	snapshot, err := decodeSnapshot(strings.NewReader(sampleSnapshot))
	require.NoError(t, err)

	result, err := scheduler.Generate(snapshot, scheduler.Overrides{})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, writeTimetables(&out, result.ClassTimetables))
	text := out.String()
	assert.True(t, strings.HasPrefix(text, "# class 10A\n"))
	assert.Contains(t, text, "Chemistry Lab")
	assert.Contains(t, text, "Lab 1")
}

func TestParseDays(t *testing.T) {
	assert.Nil(t, parseDays(""))
	assert.Equal(t, []string{"Mon", "Wed"}, parseDays(" Mon, ,Wed "))
}
