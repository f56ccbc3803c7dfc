// internal/parser/classifier.go
package parser

import (
	"regexp"
	"strings"

	"grant-crosswalk/internal/models"
)

// Canonical section labels, in classification precedence order.
const (
	LabelNeedStatement          = "need_statement"
	LabelOrganizationalCapacity = "organizational_capacity"
	LabelProjectDesign          = "project_design"
	LabelEvaluationPlan         = "evaluation_plan"
	LabelBudget                 = "budget"
	LabelSustainability         = "sustainability"
	LabelDEIEquity              = "dei_equity"
	LabelTimeline               = "timeline"
	LabelAttachments            = "attachments"
)

type labelPatterns struct {
	label    string
	patterns []*regexp.Regexp
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		out = append(out, regexp.MustCompile("(?i)"+expr))
	}
	return out
}

// sectionPatterns is the ordered header-classification table. Order matters:
// a line matching two labels is assigned to whichever appears first here.
var sectionPatterns = []labelPatterns{
	{LabelNeedStatement, compileAll(
		`need\s+statement`, `problem\s+description`, `problem\s+statement`,
		`background`, `statement\s+of\s+need`, `community\s+need`,
	)},
	{LabelOrganizationalCapacity, compileAll(
		`organizational\s+capacity`, `organizational\s+experience`, `organizational\s+profile`,
		`organizational\s+strength`, `qualifications`, `team\s+experience`,
	)},
	{LabelProjectDesign, compileAll(
		`project\s+design`, `program\s+description`, `program\s+design`,
		`project\s+narrative`, `scope\s+of\s+work`, `intervention`,
	)},
	{LabelEvaluationPlan, compileAll(
		`evaluation\s+plan`, `assessment\s+plan`, `measurement`, `outcomes`,
		`evaluation\s+method`, `performance\s+metric`,
	)},
	{LabelBudget, compileAll(
		`budget\s+narrative`, `budget\s+justification`, `budget\s+section`,
		`financial\s+narrative`, `cost\s+effectiveness`,
	)},
	{LabelSustainability, compileAll(
		`sustainability`, `long.?term\s+vision`, `future\s+funding`,
		`continuation`, `plan\s+for\s+sustainability`,
	)},
	{LabelDEIEquity, compileAll(
		`diversity.*equity.*inclusion`, `cultural\s+competency`, `equity\s+statement`,
		`dei`, `social\s+equity`, `health\s+equity`,
	)},
	{LabelTimeline, compileAll(
		`timeline`, `work\s+plan`, `project\s+schedule`, `implementation\s+schedule`,
		`gantt`, `milestone`,
	)},
	{LabelAttachments, compileAll(
		`attachment`, `appendix`, `required\s+document`, `supporting\s+document`,
		`exhibit`,
	)},
}

// CanonicalLabels returns the section labels in precedence order.
func CanonicalLabels() []string {
	labels := make([]string, len(sectionPatterns))
	for i, lp := range sectionPatterns {
		labels[i] = lp.label
	}
	return labels
}

// matchSectionHeader tests a line against the pattern table, returning the
// first label whose pattern list matches.
func matchSectionHeader(line string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(line))
	for _, lp := range sectionPatterns {
		for _, re := range lp.patterns {
			if re.MatchString(lower) {
				return lp.label, true
			}
		}
	}
	return "", false
}

// sectionStateMachine accumulates lines under a current label and flushes a
// finished RequirementSection each time a new header line is recognized.
// Lines before the first recognized header are dropped.
type sectionStateMachine struct {
	current   string
	buffer    []string
	startLine int
	sections  []models.RequirementSection
}

func newSectionStateMachine() *sectionStateMachine {
	return &sectionStateMachine{}
}

func (m *sectionStateMachine) feed(lineNo int, line string) {
	label, matched := matchSectionHeader(line)
	if matched {
		m.flush()
		m.current = label
		m.buffer = []string{line}
		m.startLine = lineNo
		return
	}
	if m.current != "" {
		m.buffer = append(m.buffer, line)
	}
}

func (m *sectionStateMachine) flush() {
	if m.current == "" || len(m.buffer) == 0 {
		return
	}
	m.sections = append(m.sections, models.RequirementSection{
		Label:      m.current,
		Content:    strings.TrimSpace(strings.Join(m.buffer, "\n")),
		Required:   true,
		LineNumber: m.startLine,
	})
	m.current = ""
	m.buffer = nil
}

// classifySections runs the state machine over the full document text.
func classifySections(text string) []models.RequirementSection {
	m := newSectionStateMachine()
	for i, line := range strings.Split(text, "\n") {
		m.feed(i+1, line)
	}
	m.flush()
	return m.sections
}
