package scheduler

import "time"

const clockLayout = "15:04"

// periodTimes returns "HH:MM" start and end times for every 1-based period of a day. Minutes
// accumulate from the institute start time and each break is inserted after its period.
func periodTimes(cfg Config) (starts, ends []string) {
	origin, err := time.Parse(clockLayout, cfg.InstituteStartTime)
	if err != nil {
		origin, _ = time.Parse(clockLayout, DefaultInstituteStartTime)
	}
	pause := make(map[int]int, len(cfg.Breaks))
	for _, b := range cfg.Breaks {
		pause[b.AfterPeriod] += b.DurationMinutes
	}

	starts = make([]string, cfg.PeriodsPerDay)
	ends = make([]string, cfg.PeriodsPerDay)
	offset := 0
	for p := 0; p < cfg.PeriodsPerDay; p++ {
		starts[p] = origin.Add(time.Duration(offset) * time.Minute).Format(clockLayout)
		offset += cfg.PeriodDurationMinutes
		ends[p] = origin.Add(time.Duration(offset) * time.Minute).Format(clockLayout)
		offset += pause[p+1]
	}
	return starts, ends
}
