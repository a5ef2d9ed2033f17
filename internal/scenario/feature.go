// Package scenario binds human-readable feature files to the calculator.
//
// Feature text is parsed into a Feature, outlines are expanded into one
// Scenario per examples row, and a Runner matches every step against a
// Registry of regular expressions. Each scenario gets its own Context, so
// scenarios never share calculator state.
package scenario

import (
	"fmt"
	"strings"
)

// Step is one line of scenario text.
type Step struct {
	Keyword string `json:"keyword"`
	Text    string `json:"text"`
	Line    int    `json:"line"`
}

func (s Step) String() string {
	return s.Keyword + " " + s.Text
}

// ExampleRow is one data row of an Examples table.
type ExampleRow struct {
	Line  int
	Cells []string
}

// Examples is a table that instantiates a Scenario Outline once per row.
type Examples struct {
	Name   string
	Tags   []string
	Line   int
	Header []string
	Rows   []ExampleRow
}

// ScenarioDef is a Scenario or Scenario Outline as written in the file.
type ScenarioDef struct {
	Name     string
	Tags     []string
	Line     int
	Outline  bool
	Steps    []Step
	Examples []*Examples
}

// Feature is a parsed .feature file.
type Feature struct {
	URI         string
	Name        string
	Description string
	Tags        []string
	Line        int
	Background  []Step
	Scenarios   []*ScenarioDef
}

// Scenario is a runnable scenario: background steps are already prepended
// and outline placeholders substituted.
type Scenario struct {
	Name  string
	Line  int
	Tags  []string
	Steps []Step
}

// Expand returns the runnable scenarios of f in file order.
func (f *Feature) Expand() []Scenario {
	var out []Scenario

	for _, def := range f.Scenarios {
		if !def.Outline {
			out = append(out, Scenario{
				Name:  def.Name,
				Line:  def.Line,
				Tags:  mergeTags(f.Tags, def.Tags),
				Steps: append(cloneSteps(f.Background), def.Steps...),
			})
			continue
		}

		for ti, ex := range def.Examples {
			for ri, row := range ex.Rows {
				replacer := placeholderReplacer(ex.Header, row.Cells)

				steps := cloneSteps(f.Background)
				for _, st := range def.Steps {
					st.Text = replacer.Replace(st.Text)
					steps = append(steps, st)
				}

				name := fmt.Sprintf("%s -- @%d.%d %s", replacer.Replace(def.Name), ti+1, ri+1, ex.Name)
				out = append(out, Scenario{
					Name:  strings.TrimSpace(name),
					Line:  row.Line,
					Tags:  mergeTags(f.Tags, def.Tags, ex.Tags),
					Steps: steps,
				})
			}
		}
	}

	return out
}

func placeholderReplacer(header, cells []string) *strings.Replacer {
	pairs := make([]string, 0, 2*len(header))
	for i, name := range header {
		pairs = append(pairs, "<"+name+">", cells[i])
	}
	return strings.NewReplacer(pairs...)
}

func cloneSteps(steps []Step) []Step {
	return append([]Step(nil), steps...)
}

func mergeTags(groups ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, group := range groups {
		for _, tag := range group {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}
