package main

import (
	"encoding/json"
	"errors"
	"flag"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/schedulo-api/internal/scheduler"
)

func main() {
	inputPath := flag.String("input", "", "Path to the snapshot JSON file")
	days := flag.String("days", "", "Comma separated working days overriding the snapshot, e.g. Mon,Tue,Wed")
	periods := flag.Int("periods", 0, "Periods per day overriding the snapshot")
	order := flag.String("order", "", `Slot trial order: "ascending" (default) or "random"`)
	seed := flag.Int64("seed", 0, "Seed for the random slot order")
	kind := flag.String("kind", "class", `Timetables to print: "class", "faculty" or "all"`)
	flag.Parse()

	logr, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if *inputPath == "" {
		log.Fatal("an input file must be specified")
	}
	file, err := os.Open(*inputPath)
	if err != nil {
		log.Fatalf("open input: %v", err)
	}
	snapshot, err := decodeSnapshot(file)
	_ = file.Close()
	if err != nil {
		log.Fatal(err)
	}

	if *order != "" {
		snapshot.Config.SlotOrder = scheduler.SlotOrder(strings.ToLower(*order))
	}
	if *seed != 0 {
		snapshot.Config.Seed = *seed
	}

	logr.Info("generating timetables",
		zap.Int("classes", len(snapshot.Classes)),
		zap.Int("faculty", len(snapshot.Faculty)),
		zap.Int("rooms", len(snapshot.Rooms)),
	)

	result, err := scheduler.Generate(snapshot, scheduler.Overrides{Days: parseDays(*days), PeriodsPerDay: *periods})
	var unsat *scheduler.UnsatisfiableError
	switch {
	case errors.As(err, &unsat):
		logr.Warn("no timetable satisfies the constraints", zap.Int("attempts", unsat.Diagnostics.Attempts))
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(unsat.Diagnostics); err != nil {
			log.Fatal(err)
		}
		os.Exit(2)
	case err != nil:
		log.Fatal(err)
	}

	logr.Info("timetables generated",
		zap.Int("tasks", result.Stats.TotalTasks),
		zap.Int("attempts", result.Stats.Attempts),
		zap.Duration("elapsed", result.Stats.Elapsed),
		zap.Int("unroomed_lectures", result.Stats.UnroomedLectures),
	)

	var timetables []scheduler.Timetable
	switch *kind {
	case "faculty":
		timetables = result.FacultyTimetables
	case "all":
		timetables = append(result.ClassTimetables, result.FacultyTimetables...)
	default:
		timetables = result.ClassTimetables
	}
	if err := writeTimetables(os.Stdout, timetables); err != nil {
		log.Fatal(err)
	}
}
