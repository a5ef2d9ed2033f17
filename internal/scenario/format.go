package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formatter renders a report.
type Formatter interface {
	Format(w io.Writer, r *Report) error
}

// Formats lists the names accepted by NewFormatter.
var Formats = []string{"pretty", "json"}

func NewFormatter(name string) (Formatter, error) {
	switch name {
	case "pretty", "":
		return PrettyFormatter{}, nil
	case "json":
		return JSONFormatter{Indent: true}, nil
	}
	return nil, fmt.Errorf("unknown format %q (want one of %s)", name, strings.Join(Formats, ", "))
}

// JSONFormatter writes the report as JSON.
type JSONFormatter struct {
	Indent bool
}

func (f JSONFormatter) Format(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	if f.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(r)
}

// PrettyFormatter writes indented scenarios with a status per step, the
// failing scenarios and summary lines.
type PrettyFormatter struct{}

func (PrettyFormatter) Format(w io.Writer, r *Report) error {
	var b strings.Builder

	type failure struct {
		uri  string
		line int
		name string
	}
	var failures []failure

	for _, fr := range r.Features {
		fmt.Fprintf(&b, "Feature: %s\n", fr.Name)
		for _, sr := range fr.Scenarios {
			fmt.Fprintf(&b, "  Scenario: %s\n", sr.Name)
			for _, st := range sr.Steps {
				fmt.Fprintf(&b, "    %s %s ... %s\n", st.Keyword, st.Text, st.Status)
				if st.Error != "" {
					fmt.Fprintf(&b, "      %s\n", st.Error)
				}
			}
			b.WriteString("\n")
			if sr.Status == StatusFailed {
				failures = append(failures, failure{uri: fr.URI, line: sr.Line, name: sr.Name})
			}
		}
	}

	if len(failures) > 0 {
		b.WriteString("Failing scenarios:\n")
		for _, f := range failures {
			fmt.Fprintf(&b, "  %s:%d  %s\n", f.uri, f.line, f.name)
		}
		b.WriteString("\n")
	}

	s := r.Summary
	fmt.Fprintf(&b, "%s passed, %d failed, %d skipped\n", plural(s.Features.Passed, "feature"), s.Features.Failed, s.Features.Skipped)
	fmt.Fprintf(&b, "%s passed, %d failed, %d skipped\n", plural(s.Scenarios.Passed, "scenario"), s.Scenarios.Failed, s.Scenarios.Skipped)
	fmt.Fprintf(&b, "%s passed, %d failed, %d skipped, %d undefined\n", plural(s.Steps.Passed, "step"), s.Steps.Failed, s.Steps.Skipped, s.Steps.Undefined)

	_, err := io.WriteString(w, b.String())
	return err
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
