package scheduler

// Generate runs the whole pipeline: build, search, then materialize on success or diagnose on
// failure. The failure is returned as *UnsatisfiableError.
func Generate(snapshot Snapshot, overrides Overrides) (*Result, error) {
	problem, err := Build(snapshot, overrides)
	if err != nil {
		return nil, err
	}
	outcome := Solve(problem)
	if !outcome.Solved {
		return nil, &UnsatisfiableError{Diagnostics: Diagnose(problem, outcome)}
	}
	return Materialize(problem, outcome)
}
