package scenario

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseError reports malformed feature text.
type ParseError struct {
	URI  string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.URI, e.Line, e.Msg)
}

type section int

const (
	sectionNone section = iota
	sectionFeature
	sectionBackground
	sectionScenario
	sectionExamples
)

var stepKeywords = []string{"Given", "When", "Then", "And", "But"}

type parser struct {
	uri     string
	line    int
	section section

	feature       *Feature
	scenario      *ScenarioDef
	examples      *Examples
	tags          []string
	tagsLine      int
	hasBackground bool
	description   []string
}

// Parse reads one feature from r. uri is only used in error messages and in
// the resulting Feature.
func Parse(r io.Reader, uri string) (*Feature, error) {
	p := &parser{uri: uri}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		p.line++
		text := sc.Text()
		if p.line == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		if err := p.parseLine(strings.TrimSpace(text)); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", uri, err)
	}

	if err := p.finish(); err != nil {
		return nil, err
	}
	return p.feature, nil
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{URI: p.uri, Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parseLine(text string) error {
	if text == "" || strings.HasPrefix(text, "#") {
		return nil
	}

	if strings.HasPrefix(text, "@") {
		return p.parseTags(text)
	}

	if keyword, rest, ok := cutSectionKeyword(text); ok {
		return p.parseSection(keyword, rest)
	}

	if len(p.tags) > 0 {
		return &ParseError{URI: p.uri, Line: p.tagsLine, Msg: "tags must precede Feature, Scenario or Examples"}
	}

	switch {
	case p.feature == nil:
		return p.errorf("expected Feature, got %q", text)
	case strings.HasPrefix(text, "|"):
		return p.parseRow(text)
	case strings.HasPrefix(text, `"""`), strings.HasPrefix(text, "```"):
		return p.errorf("doc strings are not supported")
	}

	if keyword, rest, ok := cutStepKeyword(text); ok {
		return p.addStep(Step{Keyword: keyword, Text: rest, Line: p.line})
	}

	switch {
	case p.section == sectionFeature:
		p.description = append(p.description, text)
		return nil
	case p.section == sectionScenario && p.scenario != nil && len(p.scenario.Steps) == 0:
		// free text between a scenario title and its first step
		return nil
	case p.section == sectionBackground && len(p.feature.Background) == 0:
		return nil
	}

	return p.errorf("unexpected line %q", text)
}

func (p *parser) parseTags(text string) error {
	if i := strings.Index(text, " #"); i >= 0 {
		text = text[:i]
	}
	for _, tag := range strings.Fields(text) {
		if !strings.HasPrefix(tag, "@") || len(tag) == 1 {
			return p.errorf("invalid tag %q", tag)
		}
		p.tags = append(p.tags, tag)
	}
	if p.tagsLine == 0 {
		p.tagsLine = p.line
	}
	return nil
}

func (p *parser) takeTags() []string {
	tags := p.tags
	p.tags = nil
	p.tagsLine = 0
	return tags
}

func (p *parser) parseSection(keyword, name string) error {
	if p.feature == nil && keyword != "Feature" {
		return p.errorf("expected Feature, got %q", keyword)
	}

	switch keyword {
	case "Feature":
		if p.feature != nil {
			return p.errorf("only one Feature per file is supported")
		}
		p.feature = &Feature{URI: p.uri, Name: name, Tags: p.takeTags(), Line: p.line}
		p.section = sectionFeature

	case "Background":
		if len(p.tags) > 0 {
			return p.errorf("tags are not allowed on Background")
		}
		if p.hasBackground {
			return p.errorf("only one Background per Feature is supported")
		}
		if p.section != sectionFeature {
			return p.errorf("Background must come before the first Scenario")
		}
		p.hasBackground = true
		p.section = sectionBackground

	case "Scenario", "Example", "Scenario Outline", "Scenario Template":
		if err := p.closeScenario(); err != nil {
			return err
		}
		p.scenario = &ScenarioDef{
			Name:    name,
			Tags:    p.takeTags(),
			Line:    p.line,
			Outline: keyword == "Scenario Outline" || keyword == "Scenario Template",
		}
		p.feature.Scenarios = append(p.feature.Scenarios, p.scenario)
		p.section = sectionScenario

	case "Examples", "Scenarios":
		if p.scenario == nil || !p.scenario.Outline {
			return p.errorf("Examples are only allowed inside a Scenario Outline")
		}
		if err := p.closeExamples(); err != nil {
			return err
		}
		p.examples = &Examples{Name: name, Tags: p.takeTags(), Line: p.line}
		p.scenario.Examples = append(p.scenario.Examples, p.examples)
		p.section = sectionExamples

	case "Rule":
		return p.errorf("Rule is not supported")
	}

	return nil
}

func (p *parser) addStep(st Step) error {
	switch p.section {
	case sectionBackground:
		p.feature.Background = append(p.feature.Background, st)
	case sectionScenario:
		p.scenario.Steps = append(p.scenario.Steps, st)
	case sectionExamples:
		return p.errorf("steps are not allowed after Examples")
	default:
		return p.errorf("step %q outside of a Scenario", st.String())
	}
	return nil
}

func (p *parser) parseRow(text string) error {
	if p.section != sectionExamples {
		return p.errorf("data tables are not supported")
	}

	cells, err := splitRow(text)
	if err != nil {
		return p.errorf("%v", err)
	}

	if p.examples.Header == nil {
		seen := make(map[string]struct{}, len(cells))
		for _, name := range cells {
			if name == "" {
				return p.errorf("empty column name in Examples header")
			}
			if _, dup := seen[name]; dup {
				return p.errorf("duplicate column %q in Examples header", name)
			}
			seen[name] = struct{}{}
		}
		p.examples.Header = cells
		return nil
	}

	if len(cells) != len(p.examples.Header) {
		return p.errorf("row has %d cells, header has %d", len(cells), len(p.examples.Header))
	}
	p.examples.Rows = append(p.examples.Rows, ExampleRow{Line: p.line, Cells: cells})
	return nil
}

func (p *parser) closeExamples() error {
	if p.examples != nil && p.examples.Header == nil {
		return &ParseError{URI: p.uri, Line: p.examples.Line, Msg: "Examples without a table"}
	}
	p.examples = nil
	return nil
}

func (p *parser) closeScenario() error {
	if err := p.closeExamples(); err != nil {
		return err
	}
	if p.scenario != nil && p.scenario.Outline && len(p.scenario.Examples) == 0 {
		return &ParseError{URI: p.uri, Line: p.scenario.Line, Msg: fmt.Sprintf("Scenario Outline %q has no Examples", p.scenario.Name)}
	}
	p.scenario = nil
	return nil
}

func (p *parser) finish() error {
	if p.feature == nil {
		return p.errorf("no Feature found")
	}
	if len(p.tags) > 0 {
		return &ParseError{URI: p.uri, Line: p.tagsLine, Msg: "dangling tags at end of file"}
	}
	if err := p.closeScenario(); err != nil {
		return err
	}
	p.feature.Description = strings.Join(p.description, "\n")
	return nil
}

// cutSectionKeyword splits "Scenario Outline: name" into its keyword and name.
func cutSectionKeyword(text string) (keyword, name string, ok bool) {
	head, rest, found := strings.Cut(text, ":")
	if !found {
		return "", "", false
	}
	switch head {
	case "Feature", "Background", "Scenario", "Example", "Scenario Outline",
		"Scenario Template", "Examples", "Scenarios", "Rule":
		return head, strings.TrimSpace(rest), true
	}
	return "", "", false
}

func cutStepKeyword(text string) (keyword, rest string, ok bool) {
	if after, found := strings.CutPrefix(text, "* "); found {
		return "*", strings.TrimSpace(after), true
	}
	for _, kw := range stepKeywords {
		if after, found := strings.CutPrefix(text, kw+" "); found {
			return kw, strings.TrimSpace(after), true
		}
	}
	return "", "", false
}

func splitRow(text string) ([]string, error) {
	if len(text) < 2 || !strings.HasSuffix(text, "|") {
		return nil, fmt.Errorf("table row must start and end with |")
	}
	parts := strings.Split(text[1:len(text)-1], "|")
	cells := make([]string, len(parts))
	for i, part := range parts {
		cells[i] = strings.TrimSpace(part)
	}
	return cells, nil
}
