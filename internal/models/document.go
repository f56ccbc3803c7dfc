// internal/models/document.go
package models

// RequirementSection is one classified block of RFP text. Label is one of the
// canonical section labels produced by the classifier (need_statement,
// organizational_capacity, project_design, evaluation_plan, budget,
// sustainability, dei_equity, timeline, attachments).
type RequirementSection struct {
	Label           string  `json:"label"`
	Content         string  `json:"content"`
	WordLimit       int     `json:"wordLimit,omitempty"`
	ScoringWeight   float64 `json:"scoringWeight,omitempty"`
	FormattingNotes string  `json:"formattingNotes,omitempty"`
	Required        bool    `json:"required"`
	LineNumber      int     `json:"lineNumber"`
}

type ScoringCriterion struct {
	Section     string  `json:"section"`
	MaxPoints   float64 `json:"maxPoints"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
}

// ParsedDocument is the structured view of a single RFP after extraction and
// parsing. ConfidenceScore is a heuristic in [0.1, 1.0] reflecting how much
// structure the parser recovered, not correctness of the source document.
type ParsedDocument struct {
	Title                   string               `json:"title"`
	FunderName              string               `json:"funderName"`
	Sections                []RequirementSection `json:"sections"`
	ScoringCriteria         []ScoringCriterion   `json:"scoringCriteria"`
	EligibilityRequirements []string             `json:"eligibilityRequirements"`
	Deadline                string               `json:"deadline,omitempty"`
	FundingAmount           string               `json:"fundingAmount,omitempty"`
	FormattingRequirements  []string             `json:"formattingRequirements"`
	RequiredAttachments     []string             `json:"requiredAttachments"`
	RawText                 string               `json:"rawText"`
	ExtractionMethod        string               `json:"extractionMethod"`
	ConfidenceScore         float64              `json:"confidenceScore"`
}
