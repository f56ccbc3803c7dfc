// internal/models/alignment.go
package models

type AlignmentLevel string

const (
	AlignmentStrong  AlignmentLevel = "strong"
	AlignmentPartial AlignmentLevel = "partial"
	AlignmentWeak    AlignmentLevel = "weak"
	AlignmentNone    AlignmentLevel = "none"
)

type RiskLevel string

const (
	RiskGreen  RiskLevel = "green"
	RiskYellow RiskLevel = "yellow"
	RiskRed    RiskLevel = "red"
)

// ContentCorpusEntry is one reusable block of organizational boilerplate.
// Area is the program-area key the entry is filed under in the corpus.
type ContentCorpusEntry struct {
	Area    string   `json:"area"`
	Name    string   `json:"name"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// AlignmentResult links one RFP requirement to its best-matching corpus
// entry. Excerpts are truncated copies, not references into the source text.
type AlignmentResult struct {
	RequirementExcerpt  string         `json:"requirementExcerpt"`
	SectionLabel        string         `json:"sectionLabel"`
	MatchedArea         string         `json:"matchedArea"`
	MatchedEntryName    string         `json:"matchedEntryName"`
	MatchedExcerpt      string         `json:"matchedExcerpt"`
	Score               float64        `json:"score"`
	Level               AlignmentLevel `json:"level"`
	GapFlag             bool           `json:"gapFlag"`
	Risk                RiskLevel      `json:"risk"`
	CustomizationNeeded string         `json:"customizationNeeded"`
	RecommendedActions  []string       `json:"recommendedActions"`
	Confidence          float64        `json:"confidence"`
}
