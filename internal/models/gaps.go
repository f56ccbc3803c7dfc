// internal/models/gaps.go
package models

// GapFinding is one discrete weakness surfaced by the gap analyzer.
// Priority sorts ascending (1 is most urgent).
type GapFinding struct {
	Category        string    `json:"category"`
	Description     string    `json:"description"`
	Severity        RiskLevel `json:"severity"`
	Recommendation  string    `json:"recommendation"`
	Priority        int       `json:"priority"`
	AffectedSection string    `json:"affectedSection,omitempty"`
}

type GapAnalysis struct {
	OverallRiskLevel     RiskLevel          `json:"overallRiskLevel"`
	OverallScore         float64            `json:"overallScore"`
	Findings             []GapFinding       `json:"findings"`
	RiskDistribution     map[string]int     `json:"riskDistribution"`
	CategoryScores       map[string]float64 `json:"categoryScores"`
	TopRecommendations   []string           `json:"topRecommendations"`
	MissingMetrics       []string           `json:"missingMetrics"`
	WeakAlignments       []string           `json:"weakAlignments"`
	OutdatedData         []string           `json:"outdatedData"`
	MissingPartnerships  []string           `json:"missingPartnerships"`
	MatchGaps            []string           `json:"matchGaps"`
	EvaluationWeaknesses []string           `json:"evaluationWeaknesses"`
}
