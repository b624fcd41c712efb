package output

import (
	"fmt"
	"strings"

	"github.com/curriculumwatch/curriculumwatch/internal/engine"
)

// severityStyle picks the style for a finding's severity label.
func severityStyle(s engine.Severity) func(string) string {
	if s.Rank() == 0 {
		return func(v string) string { return StyleError.Render(v) }
	}
	return func(v string) string { return StyleWarning.Render(v) }
}

// Report renders a full analysis as styled terminal text: the KPI
// summary, year-over-year trends, findings, the action plan, and the
// decision matrix with the current status marked.
func Report(snap engine.Snapshot, result *engine.AnalysisResult) string {
	var sb strings.Builder

	writeSummary(&sb, snap, result)
	writeTrends(&sb, snap.Trends)
	writeFindings(&sb, result.Findings)
	writeActions(&sb, result.Actions)
	writeDecisionMatrix(&sb, result.Status)

	return sb.String()
}

// writeSummary renders the KPI row: overall score, latest licensing
// pass rate, mean employer rating, latest graduation rate, and the
// count of findings demanding action.
func writeSummary(sb *strings.Builder, snap engine.Snapshot, result *engine.AnalysisResult) {
	sb.WriteString(Section("Summary"))
	sb.WriteString("\n ")
	sb.WriteString(ScoreBar(result.OverallScore, 30))
	sb.WriteString("  ")
	sb.WriteString(statusLabel(result.Status))
	sb.WriteString("\n")

	kpi := func(label, value string) {
		fmt.Fprintf(sb, " %s %s\n", StyleLabel.Render(label), StyleBold.Render(value))
	}
	if n := len(snap.Exams); n > 0 {
		kpi("Latest licensing pass", fmt.Sprintf("%g%%", snap.Exams[n-1].PassRate))
	}
	if len(snap.Outcomes) > 0 {
		sum := 0.0
		for _, r := range snap.Outcomes {
			sum += r.Employer
		}
		kpi("Mean employer rating", fmt.Sprintf("%.1f/5.0", sum/float64(len(snap.Outcomes))))
	}
	if n := len(snap.Trends); n > 0 {
		kpi("Latest graduation rate", fmt.Sprintf("%g%%", snap.Trends[n-1].Graduation))
	}
	kpi("Actionable findings", fmt.Sprintf("%d", actionableCount(result.Findings)))
}

// actionableCount counts findings that demand action: critical-ranked
// ones plus those needing improvement.
func actionableCount(findings []engine.Finding) int {
	n := 0
	for _, f := range findings {
		if f.Severity.Rank() <= 1 {
			n++
		}
	}
	return n
}

// writeTrends renders the multi-year indicator table with
// year-over-year deltas.
func writeTrends(sb *strings.Builder, trends []engine.TrendRecord) {
	if len(trends) == 0 {
		return
	}
	sb.WriteString(Section("Trends"))
	sb.WriteString("\n")

	cell := func(value, prev float64, unit string) string {
		return fmt.Sprintf("%g%s %s", value, unit, TrendArrow(value-prev, true))
	}
	tbl := NewTable("Year", "Graduation", "Licensing Pass", "Employer", "Retention")
	for i, t := range trends {
		prev := t
		if i > 0 {
			prev = trends[i-1]
		}
		tbl.AddRow(t.Year,
			cell(t.Graduation, prev.Graduation, "%"),
			cell(t.LicensingPass, prev.LicensingPass, "%"),
			cell(t.Employer, prev.Employer, ""),
			cell(t.Retention, prev.Retention, "%"),
		)
	}
	sb.WriteString(indent(tbl.Render()))
}

func writeFindings(sb *strings.Builder, findings []engine.Finding) {
	sb.WriteString(Section(fmt.Sprintf("Findings (%d)", len(findings))))
	sb.WriteString("\n")
	if len(findings) == 0 {
		sb.WriteString(" " + StyleMuted.Render("no findings") + "\n")
		return
	}
	tbl := NewTable("Severity", "Area", "Detail")
	for _, f := range findings {
		style := severityStyle(f.Severity)
		tbl.AddRow(style(f.Severity.String()), f.Area, f.Detail)
	}
	sb.WriteString(indent(tbl.Render()))
}

func writeActions(sb *strings.Builder, actions []engine.ActionItem) {
	sb.WriteString(Section(fmt.Sprintf("Action Items (%d)", len(actions))))
	sb.WriteString("\n")
	if len(actions) == 0 {
		sb.WriteString(" " + StyleMuted.Render("no action items") + "\n")
		return
	}
	for _, a := range actions {
		label := StyleWarning.Render(a.Priority)
		if a.Priority == engine.PriorityUrgent {
			label = StyleError.Render(a.Priority)
		}
		fmt.Fprintf(sb, " %s  %s\n", label, a.Description)
	}
}

// matrixRow is one tier of the decision matrix.
type matrixRow struct {
	status   engine.Status
	criteria string
	meaning  string
	guidance string
}

var decisionMatrix = []matrixRow{
	{engine.StatusExcellent, ">= 90%", "exceeds target", "maintain level; share best practice"},
	{engine.StatusGood, "80-89%", "on target", "minor refinements; keep monitoring"},
	{engine.StatusNeedsImprovement, "70-79%", "below target", "root-cause analysis; improvement plan"},
	{engine.StatusCritical, "< 70%", "target not achieved", "urgent plan; report to management; revise curriculum"},
}

// writeDecisionMatrix renders the fixed tier table and marks the row
// the programme currently sits in.
func writeDecisionMatrix(sb *strings.Builder, current engine.Status) {
	sb.WriteString(Section("Decision Matrix"))
	sb.WriteString("\n")
	tbl := NewTable("Status", "Criteria", "Meaning", "Guidance", "")
	for _, row := range decisionMatrix {
		marker := ""
		if row.status == current {
			marker = StyleBold.Render("<- current")
		}
		tbl.AddRow(statusLabel(row.status), row.criteria, row.meaning, row.guidance, marker)
	}
	sb.WriteString(indent(tbl.Render()))
}

func statusLabel(s engine.Status) string {
	switch s {
	case engine.StatusExcellent, engine.StatusGood:
		return StyleSuccess.Render(string(s))
	case engine.StatusNeedsImprovement:
		return StyleWarning.Render(string(s))
	default:
		return StyleError.Render(string(s))
	}
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = " " + line
	}
	return strings.Join(lines, "\n") + "\n"
}
