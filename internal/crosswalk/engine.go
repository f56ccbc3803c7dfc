// internal/crosswalk/engine.go

// Package crosswalk maps parsed RFP requirements against a corpus of
// organizational content, producing one best-match alignment result per
// requirement with a score, alignment level, and risk level.
package crosswalk

import (
	"context"
	"sort"
	"strings"
	"sync"

	"grant-crosswalk/internal/common/logger"
	"grant-crosswalk/internal/models"
)

// DefaultMaxFeatures caps the TF-IDF vocabulary size.
const DefaultMaxFeatures = 5000

const (
	requirementExcerptLen = 200
	matchedExcerptLen     = 300
)

// Engine aligns requirement sections against a content corpus. The fitted
// vector space is built once at construction and read-only afterwards, so
// an Engine is safe for concurrent use.
type Engine struct {
	corpus map[string]models.ContentCorpusEntry
	space  *vectorSpace
	logger logger.Logger
}

// NewEngine builds an engine over the given corpus, falling back to the
// built-in default corpus when corpus is nil. An empty (non-nil) corpus is
// honored as-is: every requirement then yields a gap result.
func NewEngine(corpus map[string]models.ContentCorpusEntry, maxFeatures int, log logger.Logger) *Engine {
	if corpus == nil {
		corpus = DefaultCorpus()
	}
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	// Normalize into a private copy; the caller's map is never written.
	normalized := make(map[string]models.ContentCorpusEntry, len(corpus))
	for key, entry := range corpus {
		if entry.Area == "" {
			entry.Area = key
		}
		normalized[key] = entry
	}
	corpus = normalized

	e := &Engine{corpus: corpus, logger: log}

	texts := make([]string, 0, len(corpus))
	for _, key := range sortedKeys(corpus) {
		texts = append(texts, corpus[key].Content)
	}
	space, err := fitVectorSpace(texts, maxFeatures)
	if err != nil {
		log.WithError(err).Warn("vector space fit failed, using token-overlap similarity", nil)
	} else {
		e.space = space
	}

	return e
}

// Align produces one AlignmentResult per requirement section. Sections are
// matched concurrently against the shared read-only corpus and vector
// space; result order follows section order.
func (e *Engine) Align(ctx context.Context, doc *models.ParsedDocument) []models.AlignmentResult {
	results := make([]models.AlignmentResult, len(doc.Sections))

	var wg sync.WaitGroup
	for i := range doc.Sections {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = e.matchSection(doc.Sections[i])
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		e.logger.WithError(err).Warn("context done during alignment", nil)
	}

	strong, gaps := 0, 0
	for _, r := range results {
		if r.Level == models.AlignmentStrong {
			strong++
		}
		if r.GapFlag {
			gaps++
		}
	}
	e.logger.Info("generated crosswalk", map[string]interface{}{
		"requirements": len(results),
		"strong":       strong,
		"gaps":         gaps,
	})

	return results
}

// matchSection scores a requirement against every keyword-matched corpus
// area and keeps the single best-scoring entry. No matching area, or a
// corpus with no usable entries, yields the degenerate gap result.
func (e *Engine) matchSection(section models.RequirementSection) models.AlignmentResult {
	importance := section.ScoringWeight
	if importance == 0 {
		importance = 0.5
	}

	areas := identifyMatchingAreas(section.Content)

	var (
		best      *models.ContentCorpusEntry
		bestScore float64
		bestLevel models.AlignmentLevel
		bestSim   float64
		bestTags  float64
	)

	for _, area := range sortedKeys(areas) {
		entry, ok := e.corpus[area]
		if !ok {
			continue
		}

		similarity := e.similarity(section.Content, entry.Content)
		tagMatch := matchTags(section.Content, entry.Tags)
		score, level := scoreAlignment(similarity, tagMatch)

		if best == nil || score > bestScore {
			entryCopy := entry
			best = &entryCopy
			bestScore = score
			bestLevel = level
			bestSim = similarity
			bestTags = tagMatch
		}
	}

	if best == nil {
		return e.gapResult(section)
	}

	gap := bestLevel == models.AlignmentNone
	risk := assessRisk(bestLevel, importance)

	confidence := bestSim
	if e.space == nil {
		confidence = bestTags
	}

	return models.AlignmentResult{
		RequirementExcerpt:  truncate(section.Content, requirementExcerptLen),
		SectionLabel:        section.Label,
		MatchedArea:         best.Area,
		MatchedEntryName:    best.Name,
		MatchedExcerpt:      truncate(best.Content, matchedExcerptLen),
		Score:               bestScore,
		Level:               bestLevel,
		GapFlag:             gap,
		Risk:                risk,
		CustomizationNeeded: identifyCustomization(bestLevel),
		RecommendedActions:  recommendActions(best.Name, bestLevel, gap),
		Confidence:          confidence,
	}
}

// gapResult links an unmatched requirement to the first available corpus
// entry purely to satisfy a non-null reference. The GapFlag and
// AlignmentNone level are the meaningful signal.
func (e *Engine) gapResult(section models.RequirementSection) models.AlignmentResult {
	var entry models.ContentCorpusEntry
	if keys := sortedKeys(e.corpus); len(keys) > 0 {
		entry = e.corpus[keys[0]]
	}

	return models.AlignmentResult{
		RequirementExcerpt:  truncate(section.Content, requirementExcerptLen),
		SectionLabel:        section.Label,
		MatchedArea:         entry.Area,
		MatchedEntryName:    entry.Name,
		MatchedExcerpt:      truncate(entry.Content, matchedExcerptLen),
		Score:               0.0,
		Level:               models.AlignmentNone,
		GapFlag:             true,
		Risk:                models.RiskRed,
		CustomizationNeeded: identifyCustomization(models.AlignmentNone),
		RecommendedActions:  recommendActions(entry.Name, models.AlignmentNone, true),
		Confidence:          0.0,
	}
}

func (e *Engine) similarity(requirement, content string) float64 {
	if e.space == nil {
		return jaccard(requirement, content)
	}
	return e.space.cosine(requirement, content)
}

// identifyMatchingAreas scores each keyword area by the fraction of its
// keywords found in the content; areas with zero hits are excluded.
func identifyMatchingAreas(content string) map[string]float64 {
	matches := make(map[string]float64)
	lower := strings.ToLower(content)

	for area, keywords := range areaKeywordMap {
		hits := 0
		for _, keyword := range keywords {
			if strings.Contains(lower, strings.ToLower(keyword)) {
				hits++
			}
		}
		if hits > 0 {
			strength := float64(hits) / float64(len(keywords))
			if strength > 1.0 {
				strength = 1.0
			}
			matches[area] = strength
		}
	}

	return matches
}

// matchTags is the fraction of entry tags found as substrings of the
// requirement text.
func matchTags(requirement string, tags []string) float64 {
	if len(tags) == 0 {
		return 0.0
	}

	lower := strings.ToLower(requirement)
	matched := 0
	for _, tag := range tags {
		if strings.Contains(lower, strings.ToLower(tag)) {
			matched++
		}
	}
	return float64(matched) / float64(len(tags))
}

// scoreAlignment combines similarity and tag match into a single score and
// threshold-derived level. The thresholds are exclusive at the lower bound:
// a score of exactly 0.7 is partial, not strong.
func scoreAlignment(similarity, tagMatch float64) (float64, models.AlignmentLevel) {
	score := similarity*0.6 + tagMatch*0.4

	switch {
	case score > 0.7:
		return score, models.AlignmentStrong
	case score > 0.4:
		return score, models.AlignmentPartial
	case score > 0.2:
		return score, models.AlignmentWeak
	default:
		return score, models.AlignmentNone
	}
}

// assessRisk derives consequence from alignment level weighted by the
// requirement's importance.
func assessRisk(level models.AlignmentLevel, importance float64) models.RiskLevel {
	switch level {
	case models.AlignmentStrong:
		return models.RiskGreen
	case models.AlignmentPartial:
		if importance > 0.5 {
			return models.RiskYellow
		}
		return models.RiskGreen
	case models.AlignmentWeak:
		if importance > 0.5 {
			return models.RiskRed
		}
		return models.RiskYellow
	default:
		if importance > 0.5 {
			return models.RiskRed
		}
		return models.RiskYellow
	}
}

func identifyCustomization(level models.AlignmentLevel) string {
	switch level {
	case models.AlignmentStrong:
		return "Minor adjustments for RFP-specific terminology and metrics"
	case models.AlignmentPartial:
		return "Significant adaptation needed; supplement with additional program details"
	case models.AlignmentWeak:
		return "Major rewrite required; limited boilerplate relevance"
	default:
		return "No boilerplate match; content must be developed from scratch"
	}
}

func recommendActions(entryName string, level models.AlignmentLevel, gap bool) []string {
	var actions []string

	switch level {
	case models.AlignmentStrong:
		actions = append(actions,
			"Use boilerplate from '"+entryName+"' as primary content",
			"Adapt terminology and metrics to match RFP requirements",
		)
	case models.AlignmentPartial:
		actions = append(actions,
			"Use boilerplate from '"+entryName+"' as foundation",
			"Add program-specific details to address gaps",
			"Include relevant outcome metrics and evaluation data",
		)
	case models.AlignmentWeak:
		actions = append(actions,
			"Develop custom content focusing on RFP requirements",
			"Reference boilerplate from '"+entryName+"' for context",
			"Emphasize the organization's unique value proposition",
		)
	default:
		actions = append(actions,
			"No boilerplate available for this requirement",
			"Develop entirely custom narrative",
			"Consider whether existing programs address this requirement",
		)
	}

	if gap {
		actions = append(actions, "FLAG: Significant gap identified; review for risk implications")
	}

	return actions
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
