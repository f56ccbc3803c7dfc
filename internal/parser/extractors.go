// internal/parser/extractors.go
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"grant-crosswalk/internal/models"
)

const (
	maxEligibilityItems = 10
	maxAttachmentItems  = 15
)

var (
	scoringSectionRe = regexp.MustCompile(`(?is)(?:evaluation\s+criteria|scoring\s+criteria|points?\s+possible|rubric)(.*?)(?:\n\n|\z)`)
	scoringPointRe   = regexp.MustCompile(`(.*?)\s*[:\-–]\s*(\d+)\s+(?:point|%)`)

	wordLimitRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:not\s+to\s+exceed|maximum|limit\s+of)\s+(\d+)\s+words?`),
		regexp.MustCompile(`(?i)(\d+).?word\s+(?:limit|maximum|cap|restriction)`),
		regexp.MustCompile(`(?i)pages?.*?(?:not\s+to\s+exceed|maximum)\s+(\d+)`),
		regexp.MustCompile(`(?i)limit\s+to\s+(\d+)\s+(?:words?|pages?)`),
	}

	eligibilityRe = regexp.MustCompile(`(?is)(?:eligibility|eligible|must|requirements?|qualif[iy])(.*?)(?:\n\n|\z)`)
	attachmentRe  = regexp.MustCompile(`(?is)(?:attachment|appendix|required\s+document|supporting\s+document|exhibit)s?(.*?)(?:\n\n|\z)`)
	bulletSplitRe = regexp.MustCompile(`[\n•\-\d)\.]\s*`)

	deadlineRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)deadline[:\s]+([^,\n]+)`),
		regexp.MustCompile(`(?i)submit\s+(?:by|by\s+)?([A-Za-z]+\s+\d+,?\s+20\d{2})`),
		regexp.MustCompile(`(?i)application\s+(?:due|close)[:\s]+([^,\n]+)`),
		regexp.MustCompile(`(?i)due\s+date[:\s]+([^,\n]+)`),
	}

	fundingRes = []*regexp.Regexp{
		regexp.MustCompile(`\$\s*(\d+(?:,\d{3})*(?:\.\d{2})?)`),
		regexp.MustCompile(`(\d+(?:,\d{3})*(?:\.\d{2})?)\s*dollar`),
		regexp.MustCompile(`award[:\s]+\$?\s*(\d+(?:,\d{3})*(?:\.\d{2})?)`),
		regexp.MustCompile(`total\s+(?:award|funding)[:\s]+\$?\s*(\d+(?:,\d{3})*(?:\.\d{2})?)`),
	}

	formattingRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:font|typeface)[:\s]+([^\n]+?)(?:\n|$)`),
		regexp.MustCompile(`(?i)(?:font\s+)?size[:\s]+([^\n]+?)(?:\n|$)`),
		regexp.MustCompile(`(?i)margin[:\s]+([^\n]+?)(?:\n|$)`),
		regexp.MustCompile(`(?i)spacing[:\s]+([^\n]+?)(?:\n|$)`),
		regexp.MustCompile(`(?i)line\s+spacing[:\s]+([^\n]+?)(?:\n|$)`),
	}

	funderRe = regexp.MustCompile(`(?i)(?:from|by|issued\s+by|offered\s+by)[:\s]+([^,\n]+)`)
)

// extractScoringCriteria finds scoring blocks and pulls "description: N points"
// entries out of each, attributing them to canonical sections where the
// description names one.
func extractScoringCriteria(text string) []models.ScoringCriterion {
	var criteria []models.ScoringCriterion

	for _, block := range scoringSectionRe.FindAllStringSubmatch(text, -1) {
		for _, point := range scoringPointRe.FindAllStringSubmatch(block[1], -1) {
			description := strings.TrimSpace(point[1])
			maxPoints, err := strconv.ParseFloat(point[2], 64)
			if err != nil || description == "" || maxPoints <= 0 {
				continue
			}

			section := "general"
			lowerDesc := strings.ToLower(description)
			for _, label := range CanonicalLabels() {
				if strings.Contains(lowerDesc, strings.ReplaceAll(label, "_", " ")) {
					section = label
					break
				}
			}

			criteria = append(criteria, models.ScoringCriterion{
				Section:     section,
				MaxPoints:   maxPoints,
				Description: description,
			})
		}
	}

	return criteria
}

// extractWordLimits maps canonical section labels to stated word limits.
// Each limit is attributed to the section named in a 200-character context
// window before the match.
func extractWordLimits(text string) map[string]int {
	limits := make(map[string]int)

	for _, re := range wordLimitRes {
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			count, err := strconv.Atoi(text[loc[2]:loc[3]])
			if err != nil {
				continue
			}

			start := loc[0] - 200
			if start < 0 {
				start = 0
			}
			context := strings.ToLower(text[start:loc[0]])

			for _, label := range CanonicalLabels() {
				if strings.Contains(context, strings.ReplaceAll(label, "_", " ")) {
					limits[label] = count
					break
				}
			}
		}
	}

	return limits
}

func extractEligibility(text string) []string {
	var eligibility []string

	for _, block := range eligibilityRe.FindAllStringSubmatch(text, -1) {
		for _, item := range bulletSplitRe.Split(block[1], -1) {
			item = strings.TrimSpace(item)
			if len(item) > 10 {
				eligibility = append(eligibility, item)
			}
		}
	}

	if len(eligibility) > maxEligibilityItems {
		eligibility = eligibility[:maxEligibilityItems]
	}
	return eligibility
}

func extractAttachments(text string) []string {
	var attachments []string

	for _, block := range attachmentRe.FindAllStringSubmatch(text, -1) {
		for _, item := range bulletSplitRe.Split(block[1], -1) {
			item = strings.TrimSpace(item)
			if len(item) > 5 {
				attachments = append(attachments, item)
			}
		}
	}

	if len(attachments) > maxAttachmentItems {
		attachments = attachments[:maxAttachmentItems]
	}
	return attachments
}

func extractDeadline(text string) string {
	for _, re := range deadlineRes {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// extractFundingAmount collects every dollar figure in the text and reports
// the largest, on the assumption it is the total award.
func extractFundingAmount(text string) string {
	var amounts []float64

	for _, re := range fundingRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			raw := strings.ReplaceAll(m[1], ",", "")
			amount, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				continue
			}
			amounts = append(amounts, amount)
		}
	}

	if len(amounts) == 0 {
		return ""
	}

	largest := amounts[0]
	for _, a := range amounts[1:] {
		if a > largest {
			largest = a
		}
	}
	return formatUSD(largest)
}

func extractFormattingRequirements(text string) []string {
	var requirements []string
	seen := make(map[string]bool)

	for _, re := range formattingRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			req := strings.TrimSpace(m[1])
			if req != "" && !seen[req] {
				seen[req] = true
				requirements = append(requirements, req)
			}
		}
	}

	return requirements
}

// extractTitleAndFunder scans the opening lines for a solicitation title and
// the full text for an issuing-organization phrase.
func extractTitleAndFunder(text string) (string, string) {
	var title, funder string

	lines := strings.Split(text, "\n")
	limit := len(lines)
	if limit > 20 {
		limit = 20
	}
	for _, line := range lines[:limit] {
		line = strings.TrimSpace(line)
		if len(line) > 10 && len(line) < 200 {
			if strings.Contains(line, "RFP") || strings.Contains(line, "REQUEST") || strings.Contains(line, "NOTICE") {
				title = line
				break
			}
		}
	}

	if m := funderRe.FindStringSubmatch(text); m != nil {
		funder = strings.TrimSpace(m[1])
	}

	if len(title) > 200 {
		title = title[:200]
	}
	if len(funder) > 100 {
		funder = funder[:100]
	}
	return title, funder
}

// calculateConfidence scores parse quality: a base constant plus capped
// contributions for recovered structure, clamped to 1.0.
func calculateConfidence(sections, criteria int, deadline string) float64 {
	score := 0.1

	sectionScore := float64(sections) / 5
	if sectionScore > 0.4 {
		sectionScore = 0.4
	}
	score += sectionScore

	criteriaScore := float64(criteria) / 3
	if criteriaScore > 0.3 {
		criteriaScore = 0.3
	}
	score += criteriaScore

	if deadline != "" {
		score += 0.2
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// formatUSD renders an amount as $1,234,567.89.
func formatUSD(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	parts := strings.SplitN(s, ".", 2)

	intPart := parts[0]
	var grouped []string
	for len(intPart) > 3 {
		grouped = append([]string{intPart[len(intPart)-3:]}, grouped...)
		intPart = intPart[:len(intPart)-3]
	}
	grouped = append([]string{intPart}, grouped...)

	return fmt.Sprintf("$%s.%s", strings.Join(grouped, ","), parts[1])
}
