// internal/parser/parser.go

// Package parser classifies RFP text into labeled sections and pulls out
// scoring criteria, word limits, deadlines, funding amounts, formatting
// rules, eligibility criteria, attachments, and the title/funder pair.
//
// Parsing never fails: each field extractor runs independently and a
// failure in one degrades only its own field to an empty value. Callers
// inspect ConfidenceScore to judge how much structure was recovered.
package parser

import (
	"context"
	"strings"
	"sync"

	"grant-crosswalk/internal/common/logger"
	"grant-crosswalk/internal/models"
)

type Service struct {
	logger logger.Logger
}

func NewService(log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Service{logger: log}
}

// Parse builds a ParsedDocument from extracted text. The field extractors
// share no state and are fanned out concurrently; a panic in one is
// recovered and logged, leaving that field at its zero value.
func (s *Service) Parse(ctx context.Context, text, extractionMethod, filename string) *models.ParsedDocument {
	var (
		sections    []models.RequirementSection
		criteria    []models.ScoringCriterion
		wordLimits  map[string]int
		eligibility []string
		deadline    string
		funding     string
		formatting  []string
		attachments []string
		title       string
		funder      string
	)

	var wg sync.WaitGroup
	run := func(name string, fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					s.logger.Warn("field extractor failed", map[string]interface{}{
						"extractor": name,
						"panic":     r,
						"filename":  filename,
					})
				}
			}()
			fn()
		}()
	}

	run("sections", func() { sections = classifySections(text) })
	run("scoring_criteria", func() { criteria = extractScoringCriteria(text) })
	run("word_limits", func() { wordLimits = extractWordLimits(text) })
	run("eligibility", func() { eligibility = extractEligibility(text) })
	run("deadline", func() { deadline = extractDeadline(text) })
	run("funding_amount", func() { funding = extractFundingAmount(text) })
	run("formatting", func() { formatting = extractFormattingRequirements(text) })
	run("attachments", func() { attachments = extractAttachments(text) })
	run("title_funder", func() { title, funder = extractTitleAndFunder(text) })
	wg.Wait()

	if err := ctx.Err(); err != nil {
		s.logger.WithError(err).Warn("context done during parse, returning partial result", nil)
	}

	for i := range sections {
		if limit, ok := wordLimits[strings.ToLower(sections[i].Label)]; ok {
			sections[i].WordLimit = limit
		}
	}

	if title == "" {
		title = filename
	}
	if title == "" {
		title = "Untitled RFP"
	}
	if funder == "" {
		funder = "Unknown Funder"
	}

	doc := &models.ParsedDocument{
		Title:                   title,
		FunderName:              funder,
		Sections:                sections,
		ScoringCriteria:         criteria,
		EligibilityRequirements: eligibility,
		Deadline:                deadline,
		FundingAmount:           funding,
		FormattingRequirements:  formatting,
		RequiredAttachments:     attachments,
		RawText:                 text,
		ExtractionMethod:        extractionMethod,
		ConfidenceScore:         calculateConfidence(len(sections), len(criteria), deadline),
	}

	s.logger.Info("parsed document", map[string]interface{}{
		"title":      doc.Title,
		"funder":     doc.FunderName,
		"sections":   len(sections),
		"criteria":   len(criteria),
		"confidence": doc.ConfidenceScore,
	})

	return doc
}
