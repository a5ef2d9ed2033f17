package scenario

// Status is the outcome of a step, scenario or feature.
type Status string

const (
	StatusPassed    Status = "passed"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
	StatusUndefined Status = "undefined"
)

// StepResult records one executed or skipped step.
type StepResult struct {
	Keyword    string  `json:"keyword"`
	Text       string  `json:"text"`
	Line       int     `json:"line"`
	Status     Status  `json:"status"`
	Error      string  `json:"error,omitempty"`
	DurationMS float64 `json:"duration_ms"`
}

// ScenarioResult records one scenario; outline rows produce one each.
type ScenarioResult struct {
	Name   string       `json:"name"`
	Line   int          `json:"line"`
	Tags   []string     `json:"tags,omitempty"`
	Status Status       `json:"status"`
	Steps  []StepResult `json:"steps"`
}

// FeatureResult records every scenario of one feature file.
type FeatureResult struct {
	URI       string           `json:"uri"`
	Name      string           `json:"name"`
	Status    Status           `json:"status"`
	Scenarios []ScenarioResult `json:"scenarios"`
}

// Counts tallies outcomes by status.
type Counts struct {
	Passed    int `json:"passed"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
	Undefined int `json:"undefined"`
}

func (c *Counts) add(s Status) {
	switch s {
	case StatusPassed:
		c.Passed++
	case StatusFailed:
		c.Failed++
	case StatusSkipped:
		c.Skipped++
	case StatusUndefined:
		c.Undefined++
	}
}

// Summary aggregates a run.
type Summary struct {
	Features  Counts `json:"features"`
	Scenarios Counts `json:"scenarios"`
	Steps     Counts `json:"steps"`
}

// Report is the outcome of one Runner.Run call.
type Report struct {
	RunID    string          `json:"run_id"`
	Features []FeatureResult `json:"features"`
	Summary  Summary         `json:"summary"`
}

// Failed reports whether any scenario failed.
func (r *Report) Failed() bool {
	return r.Summary.Scenarios.Failed > 0
}

func (r *Report) add(fr FeatureResult) {
	r.Features = append(r.Features, fr)
	r.Summary.Features.add(fr.Status)
	for _, sr := range fr.Scenarios {
		r.Summary.Scenarios.add(sr.Status)
		for _, st := range sr.Steps {
			r.Summary.Steps.add(st.Status)
		}
	}
}

func featureStatus(scenarios []ScenarioResult) Status {
	if len(scenarios) == 0 {
		return StatusSkipped
	}
	status := StatusSkipped
	for _, sr := range scenarios {
		switch sr.Status {
		case StatusFailed:
			return StatusFailed
		case StatusPassed:
			status = StatusPassed
		}
	}
	return status
}
