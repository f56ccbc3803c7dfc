// internal/pipeline/pipeline.go

// Package pipeline chains the five analysis stages end to end: extract,
// parse, align, analyze gaps, and build the application plan.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"grant-crosswalk/internal/common/errors"
	"grant-crosswalk/internal/common/logger"
	"grant-crosswalk/internal/common/metrics"
	"grant-crosswalk/internal/common/observability"
	"grant-crosswalk/internal/extract"
	"grant-crosswalk/internal/models"
)

// DocumentExtractor pulls plain text out of raw document bytes.
type DocumentExtractor interface {
	Extract(ctx context.Context, data []byte, fileType, filename string) (*extract.Result, error)
}

// DocumentParser structures extracted text into a parsed document.
type DocumentParser interface {
	Parse(ctx context.Context, text, extractionMethod, filename string) *models.ParsedDocument
}

// Aligner maps requirement sections to content corpus entries.
type Aligner interface {
	Align(ctx context.Context, doc *models.ParsedDocument) []models.AlignmentResult
}

// GapAnalyzer audits alignment results and the document for weaknesses.
type GapAnalyzer interface {
	Analyze(ctx context.Context, results []models.AlignmentResult, doc *models.ParsedDocument) *models.GapAnalysis
}

// PlanBuilder assembles the final application plan.
type PlanBuilder interface {
	Build(ctx context.Context, doc *models.ParsedDocument, alignments []models.AlignmentResult, gaps *models.GapAnalysis) *models.ApplicationPlan
}

// RunResult carries every artifact produced by one pipeline run.
type RunResult struct {
	RunID      string                   `json:"runId"`
	Document   *models.ParsedDocument   `json:"document"`
	Alignments []models.AlignmentResult `json:"alignments"`
	Gaps       *models.GapAnalysis      `json:"gaps"`
	Plan       *models.ApplicationPlan  `json:"plan"`
}

type Pipeline struct {
	extractor DocumentExtractor
	parser    DocumentParser
	aligner   Aligner
	gaps      GapAnalyzer
	planner   PlanBuilder
	tracing   *observability.Tracing
	logger    logger.Logger
}

func New(extractor DocumentExtractor, parser DocumentParser, aligner Aligner, gaps GapAnalyzer, planner PlanBuilder, tracing *observability.Tracing, log logger.Logger) *Pipeline {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	if tracing == nil {
		tracing, _ = observability.NewTracing("grant-crosswalk", false)
	}
	return &Pipeline{
		extractor: extractor,
		parser:    parser,
		aligner:   aligner,
		gaps:      gaps,
		planner:   planner,
		tracing:   tracing,
		logger:    log,
	}
}

// Run processes one document through all five stages. Only extraction can
// fail; downstream stages always produce a result.
func (p *Pipeline) Run(ctx context.Context, data []byte, fileType, filename string) (*RunResult, error) {
	runID := uuid.New().String()
	log := p.logger.WithFields(map[string]interface{}{
		"runId":    runID,
		"filename": filename,
	})

	ctx, span := p.tracing.Start(ctx, "pipeline.run", trace.WithAttributes(
		attribute.String("run.id", runID),
		attribute.String("file.type", fileType),
	))
	defer span.End()

	log.Info("pipeline run started", map[string]interface{}{"fileType": fileType, "bytes": len(data)})

	extracted, err := p.runExtract(ctx, data, fileType, filename)
	if err != nil {
		metrics.PipelineRunsCompleted.WithLabelValues("failed").Inc()
		metrics.PipelineRunsFailed.WithLabelValues("extract", string(errors.Code(err))).Inc()
		log.WithError(err).Error("extraction failed", nil)
		return nil, err
	}
	metrics.DocumentsExtracted.WithLabelValues(extracted.Method).Inc()

	doc := p.runParse(ctx, extracted.Text, extracted.Method, filename)
	alignments := p.runAlign(ctx, doc)
	gapAnalysis := p.runGaps(ctx, alignments, doc)
	applicationPlan := p.runPlan(ctx, doc, alignments, gapAnalysis)

	metrics.PipelineRunsCompleted.WithLabelValues("success").Inc()
	log.Info("pipeline run complete", map[string]interface{}{
		"sections":   len(doc.Sections),
		"alignments": len(alignments),
		"findings":   len(gapAnalysis.Findings),
		"risk":       string(gapAnalysis.OverallRiskLevel),
	})

	return &RunResult{
		RunID:      runID,
		Document:   doc,
		Alignments: alignments,
		Gaps:       gapAnalysis,
		Plan:       applicationPlan,
	}, nil
}

func (p *Pipeline) runExtract(ctx context.Context, data []byte, fileType, filename string) (*extract.Result, error) {
	ctx, span := p.tracing.Start(ctx, "pipeline.extract")
	defer span.End()
	defer observeStage("extract")()

	return p.extractor.Extract(ctx, data, fileType, filename)
}

func (p *Pipeline) runParse(ctx context.Context, text, method, filename string) *models.ParsedDocument {
	ctx, span := p.tracing.Start(ctx, "pipeline.parse")
	defer span.End()
	defer observeStage("parse")()

	return p.parser.Parse(ctx, text, method, filename)
}

func (p *Pipeline) runAlign(ctx context.Context, doc *models.ParsedDocument) []models.AlignmentResult {
	ctx, span := p.tracing.Start(ctx, "pipeline.align")
	defer span.End()
	defer observeStage("align")()

	alignments := p.aligner.Align(ctx, doc)
	for _, r := range alignments {
		metrics.AlignmentScores.Observe(r.Score)
	}
	return alignments
}

func (p *Pipeline) runGaps(ctx context.Context, alignments []models.AlignmentResult, doc *models.ParsedDocument) *models.GapAnalysis {
	ctx, span := p.tracing.Start(ctx, "pipeline.gaps")
	defer span.End()
	defer observeStage("gaps")()

	analysis := p.gaps.Analyze(ctx, alignments, doc)
	for severity, count := range analysis.RiskDistribution {
		metrics.GapFindingsActive.WithLabelValues(severity).Set(float64(count))
	}
	return analysis
}

func (p *Pipeline) runPlan(ctx context.Context, doc *models.ParsedDocument, alignments []models.AlignmentResult, gaps *models.GapAnalysis) *models.ApplicationPlan {
	ctx, span := p.tracing.Start(ctx, "pipeline.plan")
	defer span.End()
	defer observeStage("plan")()

	return p.planner.Build(ctx, doc, alignments, gaps)
}

func observeStage(stage string) func() {
	start := time.Now()
	return func() {
		metrics.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	}
}
