// internal/models/plan.go
package models

type ComplianceStatus string

const (
	ComplianceMet     ComplianceStatus = "met"
	CompliancePartial ComplianceStatus = "partial"
	ComplianceUnmet   ComplianceStatus = "unmet"
	CompliancePending ComplianceStatus = "pending"
)

type ComplianceItem struct {
	Requirement string           `json:"requirement"`
	Status      ComplianceStatus `json:"status"`
	Notes       string           `json:"notes,omitempty"`
	Section     string           `json:"section,omitempty"`
}

// PlanSection is one section of the draft application plan.
// AlignmentStatus is an AlignmentLevel string, or "unknown" when no
// alignment result covered the section.
type PlanSection struct {
	Title              string    `json:"title"`
	Order              int       `json:"order"`
	WordCountTarget    int       `json:"wordCountTarget"`
	SuggestedContent   []string  `json:"suggestedContent"`
	CustomizationNotes []string  `json:"customizationNotes"`
	ScoringWeight      float64   `json:"scoringWeight"`
	RiskLevel          RiskLevel `json:"riskLevel"`
	AlignmentStatus    string    `json:"alignmentStatus"`
	EstimatedHours     int       `json:"estimatedHours"`
}

type CriterionSummary struct {
	Description string  `json:"description"`
	Points      float64 `json:"points"`
	Weight      float64 `json:"weight"`
}

type CriterionAlignment struct {
	Criterion string         `json:"criterion"`
	Points    float64        `json:"points"`
	Level     AlignmentLevel `json:"level"`
	Score     float64        `json:"score"`
}

type ScoringSummary struct {
	TotalPointsAvailable float64                       `json:"totalPointsAvailable"`
	CriteriaBySection    map[string][]CriterionSummary `json:"criteriaBySection"`
	AlignmentByCriteria  []CriterionAlignment          `json:"alignmentByCriteria"`
}

// ApplicationPlan is the final pipeline artifact handed to a grant writer.
type ApplicationPlan struct {
	ID                    string           `json:"id"`
	RFPTitle              string           `json:"rfpTitle"`
	FunderName            string           `json:"funderName"`
	Sections              []PlanSection    `json:"sections"`
	ComplianceChecklist   []ComplianceItem `json:"complianceChecklist"`
	ComplianceScore       float64          `json:"complianceScore"`
	ScoringSummary        ScoringSummary   `json:"scoringSummary"`
	CustomizationPriority []string         `json:"customizationPriority"`
	EstimatedTotalWords   int              `json:"estimatedTotalWords"`
	EstimatedTotalHours   int              `json:"estimatedTotalHours"`
	GapAnalysisSummary    string           `json:"gapAnalysisSummary"`
	SubmissionTimeline    string           `json:"submissionTimeline"`
}
