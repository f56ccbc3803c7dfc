// internal/gaps/analyzer.go

// Package gaps audits alignment results and the parsed document for
// systemic weaknesses: missing metrics, thin partnership language,
// evaluation-framework holes, weak alignments, and stale data.
package gaps

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"grant-crosswalk/internal/common/logger"
	"grant-crosswalk/internal/models"
)

// Metric keywords expected inside an evaluation section.
var expectedMetrics = []string{
	"outcome", "measure", "metric", "target", "baseline", "evaluation",
	"assessment", "data collection", "performance", "indicator", "kpi",
}

// commonMetrics are measurement phrases a well-specified RFP usually names.
var commonMetrics = []string{
	"participant engagement rate",
	"completion rate",
	"program retention",
	"outcome achievement",
	"employment rate",
	"earnings increase",
	"recidivism reduction",
	"child welfare incidents",
	"parent-child interaction",
	"cost per participant",
}

var partnershipKeywords = []string{
	"partner", "collaboration", "network", "referral", "coordination",
	"stakeholder", "community", "agency", "provider",
}

var partnerTypes = []string{
	"child welfare agency",
	"workforce development",
	"education provider",
	"health provider",
	"community organizations",
}

// requiredEvaluationElements pairs a detection keyword with the framework
// element it stands for.
var requiredEvaluationElements = []struct {
	keyword     string
	description string
}{
	{"logic model", "Logic model or theory of change"},
	{"pre/post", "Pre-post assessment or comparison group"},
	{"data quality", "Data quality assurance procedures"},
	{"timeline", "Evaluation timeline and milestones"},
	{"responsible party", "Evaluation responsibility assigned"},
	{"outcome", "Specific outcome metrics defined"},
}

var oldYearRe = regexp.MustCompile(`\b(20[01][0-9])\b`)

const (
	maxMetricFindings       = 10
	maxPartnershipFindings  = 8
	maxEvaluationFindings   = 7
	maxWeakAlignmentEntries = 10
	findingsPerCategory     = 3
	maxTopRecommendations   = 8
)

type gapRecord struct {
	section     string
	area        string
	description string
}

type Analyzer struct {
	logger logger.Logger
}

func NewAnalyzer(log logger.Logger) *Analyzer {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Analyzer{logger: log}
}

// Analyze runs the six independent checks concurrently and folds their raw
// strings into severity-ranked findings with overall and per-category scores.
func (a *Analyzer) Analyze(ctx context.Context, results []models.AlignmentResult, doc *models.ParsedDocument) *models.GapAnalysis {
	var (
		alignmentGaps   []gapRecord
		matchGaps       []gapRecord
		missingMetrics  []string
		missingPartners []string
		evalWeaknesses  []string
		weakAlignments  []string
		outdatedData    []string
	)

	var wg sync.WaitGroup
	run := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	run(func() { alignmentGaps, matchGaps = categorizeGaps(results) })
	run(func() { missingMetrics = checkMetrics(doc) })
	run(func() { missingPartners = checkPartnerships(doc) })
	run(func() { evalWeaknesses = checkEvaluation(doc) })
	run(func() { weakAlignments = identifyWeakAlignments(results) })
	run(func() { outdatedData = checkOutdatedData(doc) })
	wg.Wait()

	if err := ctx.Err(); err != nil {
		a.logger.WithError(err).Warn("context done during gap analysis", nil)
	}

	findings := buildFindings(alignmentGaps, matchGaps, missingMetrics, missingPartners, evalWeaknesses, weakAlignments, outdatedData)

	overallRisk, overallScore := calculateOverallRisk(findings)

	analysis := &models.GapAnalysis{
		OverallRiskLevel:     overallRisk,
		OverallScore:         overallScore,
		Findings:             findings,
		RiskDistribution:     calculateRiskDistribution(findings),
		CategoryScores:       calculateCategoryScores(findings),
		TopRecommendations:   generateTopRecommendations(findings),
		MissingMetrics:       missingMetrics,
		WeakAlignments:       weakAlignments,
		OutdatedData:         outdatedData,
		MissingPartnerships:  missingPartners,
		MatchGaps:            gapDescriptions(matchGaps),
		EvaluationWeaknesses: evalWeaknesses,
	}

	a.logger.Info("gap analysis complete", map[string]interface{}{
		"risk":     string(overallRisk),
		"score":    overallScore,
		"findings": len(findings),
	})

	return analysis
}

// categorizeGaps carries alignment-stage gap signals forward: gap-flagged
// results become alignment gaps and level-none results become match gaps.
func categorizeGaps(results []models.AlignmentResult) (alignment, match []gapRecord) {
	for _, r := range results {
		if r.GapFlag {
			alignment = append(alignment, gapRecord{
				section:     r.SectionLabel,
				description: fmt.Sprintf("No alignment found for %s", r.SectionLabel),
			})
		}
		if r.Level == models.AlignmentNone {
			match = append(match, gapRecord{
				section:     r.SectionLabel,
				area:        r.MatchedArea,
				description: fmt.Sprintf("No capability match for %s", r.SectionLabel),
			})
		}
	}
	return alignment, match
}

func sectionText(doc *models.ParsedDocument) string {
	parts := make([]string, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		parts = append(parts, s.Content)
	}
	return strings.Join(parts, "\n")
}

// checkMetrics flags common measurement phrases the document never names,
// plus an evaluation section with thin metric-keyword density.
func checkMetrics(doc *models.ParsedDocument) []string {
	var missing []string
	content := strings.ToLower(sectionText(doc))

	for _, metric := range commonMetrics {
		if !strings.Contains(content, metric) {
			missing = append(missing, metric)
		}
	}

	for _, section := range doc.Sections {
		if !strings.Contains(strings.ToLower(section.Label), "evaluation") {
			continue
		}
		sectionLower := strings.ToLower(section.Content)
		count := 0
		for _, keyword := range expectedMetrics {
			if strings.Contains(sectionLower, keyword) {
				count++
			}
		}
		if count < 3 {
			missing = append(missing, fmt.Sprintf("Weak evaluation metrics in %s", section.Label))
		}
	}

	if len(missing) > maxMetricFindings {
		missing = missing[:maxMetricFindings]
	}
	return missing
}

func checkPartnerships(doc *models.ParsedDocument) []string {
	var missing []string
	content := strings.ToLower(sectionText(doc))

	count := 0
	for _, keyword := range partnershipKeywords {
		if strings.Contains(content, keyword) {
			count++
		}
	}
	if count < 3 {
		missing = append(missing, "Limited collaboration/partnership requirements specified")
	}

	for _, partnerType := range partnerTypes {
		if !strings.Contains(content, partnerType) {
			missing = append(missing, fmt.Sprintf("No mention of %s partnership", partnerType))
		}
	}

	if len(missing) > maxPartnershipFindings {
		missing = missing[:maxPartnershipFindings]
	}
	return missing
}

// checkEvaluation verifies the evaluation section names each required
// framework element; a missing section is itself the single finding.
func checkEvaluation(doc *models.ParsedDocument) []string {
	var evaluationSection string
	found := false
	for _, section := range doc.Sections {
		if strings.Contains(strings.ToLower(section.Label), "evaluation") {
			evaluationSection = strings.ToLower(section.Content)
			found = true
			break
		}
	}

	if !found {
		return []string{"No dedicated evaluation plan section"}
	}

	var weaknesses []string
	for _, element := range requiredEvaluationElements {
		if !strings.Contains(evaluationSection, element.keyword) {
			weaknesses = append(weaknesses, fmt.Sprintf("Missing: %s", element.description))
		}
	}

	if len(weaknesses) > maxEvaluationFindings {
		weaknesses = weaknesses[:maxEvaluationFindings]
	}
	return weaknesses
}

func identifyWeakAlignments(results []models.AlignmentResult) []string {
	var weak []string
	for _, r := range results {
		if r.Level == models.AlignmentPartial || r.Level == models.AlignmentWeak {
			weak = append(weak, fmt.Sprintf("%s: %s alignment (score: %.2f)", r.SectionLabel, r.Level, r.Score))
		}
	}

	if len(weak) > maxWeakAlignmentEntries {
		weak = weak[:maxWeakAlignmentEntries]
	}
	return weak
}

// checkOutdatedData flags 4-digit years before 2020 and "recent" claims
// unaccompanied by any 202x date.
func checkOutdatedData(doc *models.ParsedDocument) []string {
	var outdated []string
	content := sectionText(doc)

	if years := oldYearRe.FindAllString(content, -1); len(years) > 0 {
		oldest := years[0]
		for _, y := range years[1:] {
			if y < oldest {
				oldest = y
			}
		}
		outdated = append(outdated, fmt.Sprintf("Data references from %s may be outdated", oldest))
	}

	if strings.Contains(strings.ToLower(content), "recent") && !strings.Contains(content, "202") {
		outdated = append(outdated, "Vague temporal references without specific dates")
	}

	return outdated
}

// buildFindings orders findings by urgency: alignment gaps first, then
// match gaps, then the heuristic categories capped at three findings each.
func buildFindings(alignmentGaps, matchGaps []gapRecord, missingMetrics, missingPartners, evalWeaknesses, weakAlignments, outdatedData []string) []models.GapFinding {
	var findings []models.GapFinding
	priority := 1

	for _, gap := range alignmentGaps {
		findings = append(findings, models.GapFinding{
			Category:        "alignment",
			Description:     gap.description,
			Severity:        models.RiskRed,
			Recommendation:  "Develop custom content for this section or reconsider program fit",
			Priority:        priority,
			AffectedSection: gap.section,
		})
		priority++
	}

	for _, gap := range matchGaps {
		findings = append(findings, models.GapFinding{
			Category:        "match",
			Description:     gap.description,
			Severity:        models.RiskYellow,
			Recommendation:  fmt.Sprintf("Explore connections to %s or identify new capability areas", gap.area),
			Priority:        priority,
			AffectedSection: gap.section,
		})
		priority++
	}

	for _, metric := range capped(missingMetrics, findingsPerCategory) {
		findings = append(findings, models.GapFinding{
			Category:       "metrics",
			Description:    fmt.Sprintf("Missing metric or measurement approach: %s", metric),
			Severity:       models.RiskYellow,
			Recommendation: "Develop measurement plan for this metric; coordinate with evaluation",
			Priority:       priority,
		})
		priority++
	}

	for _, partnership := range capped(missingPartners, findingsPerCategory) {
		findings = append(findings, models.GapFinding{
			Category:       "partnerships",
			Description:    fmt.Sprintf("Partnership gap: %s", partnership),
			Severity:       models.RiskYellow,
			Recommendation: "Establish partnerships or MOU before application submission",
			Priority:       priority,
		})
		priority++
	}

	for _, weakness := range capped(evalWeaknesses, findingsPerCategory) {
		findings = append(findings, models.GapFinding{
			Category:        "evaluation",
			Description:     fmt.Sprintf("Evaluation framework weakness: %s", weakness),
			Severity:        models.RiskYellow,
			Recommendation:  "Develop robust evaluation plan addressing all required components",
			Priority:        priority,
			AffectedSection: "Evaluation Plan",
		})
		priority++
	}

	for _, alignment := range capped(weakAlignments, findingsPerCategory) {
		findings = append(findings, models.GapFinding{
			Category:       "alignment",
			Description:    fmt.Sprintf("Weak alignment: %s", alignment),
			Severity:       models.RiskYellow,
			Recommendation: "Strengthen alignment through targeted customization",
			Priority:       priority,
		})
		priority++
	}

	for _, issue := range outdatedData {
		findings = append(findings, models.GapFinding{
			Category:       "data",
			Description:    fmt.Sprintf("Data quality issue: %s", issue),
			Severity:       models.RiskYellow,
			Recommendation: "Update data with current sources and timeframes",
			Priority:       priority,
		})
		priority++
	}

	return findings
}

// calculateOverallRisk derives the headline risk level and the 0-100 score.
func calculateOverallRisk(findings []models.GapFinding) (models.RiskLevel, float64) {
	if len(findings) == 0 {
		return models.RiskGreen, 100.0
	}

	red, yellow, green := severityCounts(findings)

	var risk models.RiskLevel
	switch {
	case red >= 3:
		risk = models.RiskRed
	case red >= 1 || yellow >= 5:
		risk = models.RiskYellow
	default:
		risk = models.RiskGreen
	}

	score := 100.0 - float64(red)*15 - float64(yellow)*5 - float64(green)*1
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return risk, score
}

func calculateRiskDistribution(findings []models.GapFinding) map[string]int {
	red, yellow, green := severityCounts(findings)
	return map[string]int{
		"green":  green,
		"yellow": yellow,
		"red":    red,
	}
}

func calculateCategoryScores(findings []models.GapFinding) map[string]float64 {
	scores := map[string]float64{
		"alignment":    1.0,
		"match":        1.0,
		"metrics":      1.0,
		"partnerships": 1.0,
		"evaluation":   1.0,
		"data":         1.0,
	}

	for _, f := range findings {
		if _, ok := scores[f.Category]; !ok {
			continue
		}
		switch f.Severity {
		case models.RiskRed:
			scores[f.Category] -= 0.3
		case models.RiskYellow:
			scores[f.Category] -= 0.15
		case models.RiskGreen:
			scores[f.Category] -= 0.05
		}
	}

	for category, score := range scores {
		if score < 0 {
			scores[category] = 0
		} else if score > 1 {
			scores[category] = 1
		}
	}
	return scores
}

// generateTopRecommendations dedupes the five most urgent finding
// recommendations, then prepends summary lines for red-heavy or
// yellow-heavy analyses, capping the list at eight.
func generateTopRecommendations(findings []models.GapFinding) []string {
	sorted := make([]models.GapFinding, len(findings))
	copy(sorted, findings)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority < sorted[j].Priority
		}
		return string(sorted[i].Severity) < string(sorted[j].Severity)
	})

	var recommendations []string
	limit := len(sorted)
	if limit > 5 {
		limit = 5
	}
	for _, f := range sorted[:limit] {
		duplicate := false
		for _, existing := range recommendations {
			if existing == f.Recommendation {
				duplicate = true
				break
			}
		}
		if !duplicate {
			recommendations = append(recommendations, f.Recommendation)
		}
	}

	red, yellow, _ := severityCounts(findings)
	if red > 0 {
		recommendations = append([]string{"CRITICAL: Address red-level gaps before submission"}, recommendations...)
	}
	if yellow > 3 {
		insertAt := 1
		if insertAt > len(recommendations) {
			insertAt = len(recommendations)
		}
		rest := append([]string{"HIGH PRIORITY: Significant strengthening needed in multiple areas"}, recommendations[insertAt:]...)
		recommendations = append(recommendations[:insertAt:insertAt], rest...)
	}

	if len(recommendations) > maxTopRecommendations {
		recommendations = recommendations[:maxTopRecommendations]
	}
	return recommendations
}

func severityCounts(findings []models.GapFinding) (red, yellow, green int) {
	for _, f := range findings {
		switch f.Severity {
		case models.RiskRed:
			red++
		case models.RiskYellow:
			yellow++
		case models.RiskGreen:
			green++
		}
	}
	return red, yellow, green
}

func gapDescriptions(records []gapRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.description)
	}
	return out
}

func capped(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
