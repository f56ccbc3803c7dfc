// internal/plan/builder.go

// Package plan turns a parsed document, its alignment results, and the gap
// analysis into a section-by-section application plan with word targets,
// content suggestions, a compliance checklist, and a submission timeline.
package plan

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"grant-crosswalk/internal/common/logger"
	"grant-crosswalk/internal/models"
)

const (
	defaultSectionWords = 500
	wordsPerHour        = 200
	hoursPerWeek        = 10
)

// standardSections maps canonical section keys to display titles and
// default scoring weights, in customary RFP order.
var standardSections = []struct {
	key    string
	title  string
	weight float64
}{
	{"need_statement", "Need Statement / Problem Description", 0.15},
	{"organizational_capacity", "Organizational Capacity", 0.15},
	{"project_design", "Project Design / Program Description", 0.25},
	{"evaluation_plan", "Evaluation Plan", 0.15},
	{"budget", "Budget Narrative", 0.15},
	{"sustainability", "Sustainability Plan", 0.10},
	{"timeline", "Timeline / Work Plan", 0.05},
}

// fallbackSections is the generic template used when the parser found no
// sections at all.
var fallbackSections = []string{
	"Executive Summary",
	"Organizational Background",
	"Project Description",
	"Target Population",
	"Goals and Objectives",
	"Evaluation Plan",
	"Budget Narrative",
	"Sustainability Plan",
}

type Builder struct {
	logger logger.Logger
}

func NewBuilder(log logger.Logger) *Builder {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Builder{logger: log}
}

// Build assembles the full application plan. It never errors: missing
// inputs degrade to generic template content.
func (b *Builder) Build(ctx context.Context, doc *models.ParsedDocument, alignments []models.AlignmentResult, gaps *models.GapAnalysis) *models.ApplicationPlan {
	sections := b.createSections(doc, alignments)
	allocateWordCounts(sections, doc)
	for i := range sections {
		sections[i].SuggestedContent = suggestContent(&sections[i], alignments)
		sections[i].CustomizationNotes = customizationNotes(&sections[i])
		sections[i].EstimatedHours = estimateHours(sections[i].WordCountTarget)
	}

	checklist := buildComplianceChecklist(doc, alignments)

	totalWords := 0
	totalHours := 0
	for _, s := range sections {
		totalWords += s.WordCountTarget
		totalHours += s.EstimatedHours
	}

	if err := ctx.Err(); err != nil {
		b.logger.WithError(err).Warn("context done during plan build", nil)
	}

	p := &models.ApplicationPlan{
		ID:                    uuid.New().String(),
		RFPTitle:              doc.Title,
		FunderName:            doc.FunderName,
		Sections:              sections,
		ComplianceChecklist:   checklist,
		ComplianceScore:       calculateComplianceScore(checklist),
		ScoringSummary:        buildScoringSummary(doc, alignments),
		CustomizationPriority: customizationPriority(sections, gaps),
		EstimatedTotalWords:   totalWords,
		EstimatedTotalHours:   totalHours,
		GapAnalysisSummary:    summarizeGapAnalysis(gaps),
		SubmissionTimeline:    submissionTimeline(totalHours),
	}

	b.logger.Info("application plan built", map[string]interface{}{
		"rfpTitle":   p.RFPTitle,
		"sections":   len(sections),
		"totalWords": totalWords,
		"compliance": p.ComplianceScore,
	})

	return p
}

func (b *Builder) createSections(doc *models.ParsedDocument, alignments []models.AlignmentResult) []models.PlanSection {
	if len(doc.Sections) == 0 {
		sections := make([]models.PlanSection, 0, len(fallbackSections))
		for i, title := range fallbackSections {
			sections = append(sections, models.PlanSection{
				Title:           title,
				Order:           i + 1,
				WordCountTarget: defaultSectionWords,
				ScoringWeight:   0.1,
				RiskLevel:       models.RiskYellow,
				AlignmentStatus: "unknown",
			})
		}
		return sections
	}

	sections := make([]models.PlanSection, 0, len(doc.Sections))
	for i, reqSection := range doc.Sections {
		label := strings.ToLower(reqSection.Label)

		title := reqSection.Label
		weight := 0.1
		for _, std := range standardSections {
			if strings.Contains(label, std.key) || strings.Contains(std.key, label) {
				title = std.title
				weight = std.weight
				break
			}
		}

		alignment := "unknown"
		risk := models.RiskYellow
		for _, r := range alignments {
			if strings.EqualFold(r.SectionLabel, reqSection.Label) {
				alignment = string(r.Level)
				risk = r.Risk
				break
			}
		}

		sections = append(sections, models.PlanSection{
			Title:           title,
			Order:           i + 1,
			WordCountTarget: reqSection.WordLimit,
			ScoringWeight:   weight,
			RiskLevel:       risk,
			AlignmentStatus: alignment,
		})
	}
	return sections
}

// allocateWordCounts fills in word targets: a stated limit always wins,
// otherwise the section's weight share of the document's word budget,
// otherwise an even split.
func allocateWordCounts(sections []models.PlanSection, doc *models.ParsedDocument) {
	totalWords := 0
	for _, s := range doc.Sections {
		if s.WordLimit > 0 {
			totalWords += s.WordLimit
		} else {
			totalWords += defaultSectionWords
		}
	}
	if totalWords == 0 {
		totalWords = defaultSectionWords * len(sections)
	}

	for i := range sections {
		if i < len(doc.Sections) && doc.Sections[i].WordLimit > 0 {
			sections[i].WordCountTarget = doc.Sections[i].WordLimit
			continue
		}
		if sections[i].ScoringWeight > 0 {
			sections[i].WordCountTarget = int(float64(totalWords) * sections[i].ScoringWeight)
		} else if len(sections) > 0 {
			sections[i].WordCountTarget = totalWords / len(sections)
		}
	}
}

func relatedAlignments(title string, alignments []models.AlignmentResult) []models.AlignmentResult {
	titleLower := strings.ToLower(title)
	var related []models.AlignmentResult
	for _, r := range alignments {
		key := strings.ReplaceAll(strings.ToLower(r.SectionLabel), "_", " ")
		if key != "" && strings.Contains(titleLower, key) {
			related = append(related, r)
		}
	}
	return related
}

func suggestContent(section *models.PlanSection, alignments []models.AlignmentResult) []string {
	var suggestions []string

	related := relatedAlignments(section.Title, alignments)
	if len(related) == 0 {
		switch section.AlignmentStatus {
		case string(models.AlignmentStrong):
			suggestions = append(suggestions, fmt.Sprintf("Use existing content for %s (strong alignment)", section.Title))
		case string(models.AlignmentPartial):
			suggestions = append(suggestions, fmt.Sprintf("Adapt existing content for %s; add RFP-specific details", section.Title))
		default:
			suggestions = append(suggestions, fmt.Sprintf("Develop custom content for %s", section.Title))
		}
	} else {
		if len(related) > 3 {
			related = related[:3]
		}
		for _, result := range related {
			switch result.Level {
			case models.AlignmentStrong:
				suggestions = append(suggestions, fmt.Sprintf("Use existing content from %s: %s...", result.MatchedEntryName, truncate(result.MatchedExcerpt, 80)))
			case models.AlignmentPartial:
				suggestions = append(suggestions, fmt.Sprintf("Adapt content from %s; supplement with: %s", result.MatchedEntryName, result.CustomizationNeeded))
			default:
				action := "RFP alignment"
				if len(result.RecommendedActions) > 0 {
					action = result.RecommendedActions[0]
				}
				suggestions = append(suggestions, fmt.Sprintf("Develop custom narrative emphasizing: %s", action))
			}
		}
	}

	suggestions = append(suggestions, sectionTypeSuggestions(section.Title)...)
	return suggestions
}

// sectionTypeSuggestions returns the fixed bullets for a section type,
// selected by substring match on the title.
func sectionTypeSuggestions(title string) []string {
	titleLower := strings.ToLower(title)
	switch {
	case strings.Contains(titleLower, "need"):
		return []string{
			"Open with target population context and scale of service",
			"Reference local demographics and needs data",
		}
	case strings.Contains(titleLower, "organizational"):
		return []string{
			"Lead with nonprofit status and organizational history",
			"Highlight relevant program experience and outcomes",
			"Include staff qualifications and organizational structure",
		}
	case strings.Contains(titleLower, "design"):
		return []string{
			"Describe the program model and its core components",
			"Include evidence-based practice references",
			"Detail target population and service delivery approach",
		}
	case strings.Contains(titleLower, "evaluation"):
		return []string{
			"Present logic model connecting activities to outcomes",
			"Define specific, measurable outcome targets",
			"Describe data collection and reporting procedures",
		}
	case strings.Contains(titleLower, "budget"):
		return []string{
			"Connect all line items to program design and outcomes",
			"Justify staffing, training, and capacity building costs",
			"Show cost-effectiveness analysis if the RFP requires it",
		}
	case strings.Contains(titleLower, "sustainability"):
		return []string{
			"Detail diversified funding strategy beyond the grant period",
			"Show evidence of community investment and partnerships",
			"Connect to the organizational strategic plan",
		}
	}
	return nil
}

func customizationNotes(section *models.PlanSection) []string {
	var notes []string
	if section.RiskLevel == models.RiskRed {
		notes = append(notes, "High-risk section; budget extra review time")
	}
	switch section.AlignmentStatus {
	case string(models.AlignmentPartial):
		notes = append(notes, "Existing content needs RFP-specific tailoring")
	case string(models.AlignmentWeak), string(models.AlignmentNone):
		notes = append(notes, "Little reusable content; plan for original drafting")
	}
	return notes
}

func buildComplianceChecklist(doc *models.ParsedDocument, alignments []models.AlignmentResult) []models.ComplianceItem {
	var checklist []models.ComplianceItem

	for _, section := range doc.Sections {
		status := models.ComplianceMet
		notes := fmt.Sprintf("Section: %s", section.Label)

		for _, r := range alignments {
			if !strings.EqualFold(r.SectionLabel, section.Label) {
				continue
			}
			switch r.Level {
			case models.AlignmentStrong:
				notes += " - Strong organizational alignment"
			case models.AlignmentPartial:
				status = models.CompliancePartial
				notes += " - Partial organizational alignment; requires customization"
			default:
				status = models.ComplianceUnmet
				notes += " - No organizational alignment; custom content needed"
			}
			break
		}

		checklist = append(checklist, models.ComplianceItem{
			Requirement: fmt.Sprintf("Complete %s", section.Label),
			Status:      status,
			Notes:       notes,
			Section:     section.Label,
		})
	}

	for _, fmtReq := range limit(doc.FormattingRequirements, 5) {
		checklist = append(checklist, models.ComplianceItem{
			Requirement: fmt.Sprintf("Formatting: %s", fmtReq),
			Status:      models.CompliancePending,
			Notes:       "Must verify before final submission",
		})
	}

	for _, elig := range limit(doc.EligibilityRequirements, 3) {
		checklist = append(checklist, models.ComplianceItem{
			Requirement: fmt.Sprintf("Eligibility: %s", elig),
			Status:      models.ComplianceMet,
			Notes:       "The organization meets this requirement",
		})
	}

	for _, attachment := range limit(doc.RequiredAttachments, 5) {
		checklist = append(checklist, models.ComplianceItem{
			Requirement: fmt.Sprintf("Attachment: %s", attachment),
			Status:      models.CompliancePending,
			Notes:       "Must prepare before submission",
		})
	}

	for _, criterion := range limit(doc.ScoringCriteria, 5) {
		checklist = append(checklist, models.ComplianceItem{
			Requirement: fmt.Sprintf("Scoring: %s", criterion.Description),
			Status:      models.CompliancePending,
			Notes:       fmt.Sprintf("Worth %.0f points", criterion.MaxPoints),
		})
	}

	return checklist
}

// calculateComplianceScore averages the checklist: met counts 100%,
// partial 50%, unmet and pending 0%.
func calculateComplianceScore(checklist []models.ComplianceItem) float64 {
	if len(checklist) == 0 {
		return 0.0
	}

	points := 0.0
	for _, item := range checklist {
		switch item.Status {
		case models.ComplianceMet:
			points += 100
		case models.CompliancePartial:
			points += 50
		}
	}

	score := points / float64(len(checklist))
	return math.Min(100.0, math.Max(0.0, score))
}

func buildScoringSummary(doc *models.ParsedDocument, alignments []models.AlignmentResult) models.ScoringSummary {
	summary := models.ScoringSummary{
		CriteriaBySection: map[string][]models.CriterionSummary{},
	}

	for _, criterion := range doc.ScoringCriteria {
		summary.TotalPointsAvailable += criterion.MaxPoints
		summary.CriteriaBySection[criterion.Section] = append(summary.CriteriaBySection[criterion.Section], models.CriterionSummary{
			Description: criterion.Description,
			Points:      criterion.MaxPoints,
			Weight:      criterion.Weight,
		})
	}

	for _, criterion := range limit(doc.ScoringCriteria, 5) {
		sectionLower := strings.ToLower(criterion.Section)
		var best *models.AlignmentResult
		for i := range alignments {
			if !strings.Contains(strings.ToLower(alignments[i].SectionLabel), sectionLower) {
				continue
			}
			if best == nil || alignments[i].Score > best.Score {
				best = &alignments[i]
			}
		}
		if best != nil {
			summary.AlignmentByCriteria = append(summary.AlignmentByCriteria, models.CriterionAlignment{
				Criterion: criterion.Description,
				Points:    criterion.MaxPoints,
				Level:     best.Level,
				Score:     best.Score,
			})
		}
	}

	return summary
}

// customizationPriority ranks the work: heavy sections with shaky alignment
// first, then red-risk sections, then the gap analyzer's top advice.
func customizationPriority(sections []models.PlanSection, gaps *models.GapAnalysis) []string {
	var priorities []string

	var weakHighWeight []models.PlanSection
	for _, s := range sections {
		if s.ScoringWeight > 0.15 && (s.AlignmentStatus == string(models.AlignmentWeak) || s.AlignmentStatus == string(models.AlignmentPartial)) {
			weakHighWeight = append(weakHighWeight, s)
		}
	}
	sort.SliceStable(weakHighWeight, func(i, j int) bool {
		return weakHighWeight[i].ScoringWeight > weakHighWeight[j].ScoringWeight
	})
	for _, s := range weakHighWeight {
		priorities = append(priorities, fmt.Sprintf("1. Strengthen %s (%.0f%% weight, %s alignment)", s.Title, s.ScoringWeight*100, s.AlignmentStatus))
	}

	for _, s := range sections {
		if s.RiskLevel == models.RiskRed {
			priorities = append(priorities, fmt.Sprintf("2. Resolve red-risk %s", s.Title))
		}
	}

	if gaps != nil {
		recs := gaps.TopRecommendations
		if len(recs) > 3 {
			recs = recs[:3]
		}
		for i, rec := range recs {
			priorities = append(priorities, fmt.Sprintf("%d. %s", i+3, rec))
		}
	}

	return priorities
}

// estimateHours budgets 200 words per hour plus a 50% buffer for research
// and revision, never less than one hour.
func estimateHours(wordCount int) int {
	hours := int(math.Round(float64(wordCount) / wordsPerHour * 1.5))
	if hours < 1 {
		return 1
	}
	return hours
}

func summarizeGapAnalysis(gaps *models.GapAnalysis) string {
	if gaps == nil {
		return "No gap analysis available"
	}

	summary := fmt.Sprintf(
		"Overall Risk: %s (Score: %.0f/100). Key gaps: %d red-level, %d yellow-level findings.",
		strings.ToUpper(string(gaps.OverallRiskLevel)),
		gaps.OverallScore,
		gaps.RiskDistribution["red"],
		gaps.RiskDistribution["yellow"],
	)

	if len(gaps.TopRecommendations) > 0 {
		summary += fmt.Sprintf(" Top priority: %s", gaps.TopRecommendations[0])
	}
	return summary
}

func submissionTimeline(estimatedHours int) string {
	weeks := estimatedHours / hoursPerWeek
	if weeks < 1 {
		weeks = 1
	}

	switch {
	case weeks <= 2:
		return "2 weeks (expedited timeline; prioritize customization)"
	case weeks <= 4:
		return "4 weeks (standard timeline)"
	case weeks <= 8:
		return "8 weeks (comprehensive development and multiple review cycles)"
	default:
		return fmt.Sprintf("%d weeks (complex application; consider team division of labor)", weeks)
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func limit[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
