// cmd/crosswalk/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"grant-crosswalk/internal/common/cli"
	"grant-crosswalk/internal/common/config"
	"grant-crosswalk/internal/common/logger"
	"grant-crosswalk/internal/common/observability"
	"grant-crosswalk/internal/corpus"
	"grant-crosswalk/internal/crosswalk"
	"grant-crosswalk/internal/extract"
	"grant-crosswalk/internal/gaps"
	"grant-crosswalk/internal/models"
	"grant-crosswalk/internal/parser"
	"grant-crosswalk/internal/pipeline"
	"grant-crosswalk/internal/plan"
)

var (
	configFile string
	corpusFile string
	outputFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "crosswalk",
		Short: "RFP analysis and grant application planning",
		Long: `Crosswalk extracts text from RFP documents, classifies requirement
sections, aligns them against a content corpus, audits for gaps, and
builds a section-by-section application plan.`,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file path")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [document]",
		Short: "Run the full analysis pipeline on an RFP document",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}
	analyzeCmd.Flags().StringVar(&corpusFile, "corpus", "", "Content corpus JSON file (overrides built-in defaults)")
	analyzeCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the full result JSON to a file")
	rootCmd.AddCommand(analyzeCmd)

	parseCmd := &cobra.Command{
		Use:   "parse [document]",
		Short: "Extract and parse an RFP document without alignment",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	rootCmd.AddCommand(parseCmd)

	validateCmd := &cobra.Command{
		Use:   "corpus-validate [corpus]",
		Short: "Validate a content corpus JSON file",
		Args:  cobra.ExactArgs(1),
		RunE:  runCorpusValidate,
	}
	rootCmd.AddCommand(validateCmd)

	if err := rootCmd.Execute(); err != nil {
		cli.PrintError("Error: %v", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configFile != "" {
		return config.LoadFromFile(configFile)
	}
	return config.Load()
}

func fileType(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

func buildPipeline(cfg *config.Config, log logger.Logger) (*pipeline.Pipeline, *observability.Tracing, error) {
	var ocr extract.Engine
	if cfg.Extraction.OCREnabled {
		ocr = extract.NewTesseractEngine(cfg.Extraction.OCRLanguage)
	}
	extractor := extract.NewExtractor(ocr, cfg.Extraction.MinTextLength, log)

	var contentCorpus map[string]models.ContentCorpusEntry
	corpusPath := corpusFile
	if corpusPath == "" {
		corpusPath = cfg.Crosswalk.CorpusPath
	}
	if corpusPath != "" {
		var err error
		contentCorpus, err = corpus.LoadFile(corpusPath)
		if err != nil {
			return nil, nil, err
		}
	}
	engine := crosswalk.NewEngine(contentCorpus, cfg.Crosswalk.MaxFeatures, log)

	tracing, err := observability.NewTracing(cfg.App.Name, cfg.Tracing.Enabled)
	if err != nil {
		return nil, nil, err
	}

	p := pipeline.New(
		extractor,
		parser.NewService(log),
		engine,
		gaps.NewAnalyzer(log),
		plan.NewBuilder(log),
		tracing,
		log,
	)
	return p, tracing, nil
}

func serveMetrics(cfg *config.Config, log logger.Logger) {
	if !cfg.Metrics.Enabled {
		return
	}
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{
			Addr:              cfg.Metrics.Address,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Warn("metrics server stopped", nil)
		}
	}()
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	documentPath := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	serveMetrics(cfg, log)

	p, tracing, err := buildPipeline(cfg, log)
	if err != nil {
		return err
	}
	defer tracing.Shutdown()

	data, err := os.ReadFile(documentPath)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	cli.PrintTitle("Analyzing %s", filepath.Base(documentPath))

	result, err := p.Run(context.Background(), data, fileType(documentPath), filepath.Base(documentPath))
	if err != nil {
		return err
	}

	printRunSummary(result)

	if outputFile != "" {
		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		if err := os.WriteFile(outputFile, encoded, 0o644); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
		cli.PrintSuccess("Full result written to %s", outputFile)
	}

	return nil
}

func printRunSummary(result *pipeline.RunResult) {
	doc := result.Document

	cli.PrintSeparator()
	cli.PrintInfo("Title: %s", doc.Title)
	cli.PrintInfo("Funder: %s", doc.FunderName)
	if doc.Deadline != "" {
		cli.PrintInfo("Deadline: %s", doc.Deadline)
	}
	if doc.FundingAmount != "" {
		cli.PrintInfo("Funding: %s", doc.FundingAmount)
	}
	cli.PrintInfo("Sections: %d, criteria: %d, confidence: %.2f",
		len(doc.Sections), len(doc.ScoringCriteria), doc.ConfidenceScore)

	cli.PrintSeparator()
	cli.PrintTitle("Alignment")
	for _, r := range result.Alignments {
		fmt.Printf("  %-28s %-10s score=%.2f risk=%s matched=%s\n",
			r.SectionLabel, cli.AlignmentString(r.Level), r.Score, cli.RiskString(r.Risk), r.MatchedEntryName)
	}

	cli.PrintSeparator()
	cli.PrintTitle("Gap Analysis")
	fmt.Printf("  Overall: %s (score %.0f/100)\n", cli.RiskString(result.Gaps.OverallRiskLevel), result.Gaps.OverallScore)
	for _, rec := range result.Gaps.TopRecommendations {
		fmt.Printf("  - %s\n", rec)
	}

	cli.PrintSeparator()
	cli.PrintTitle("Application Plan")
	for _, s := range result.Plan.Sections {
		fmt.Printf("  %d. %-40s %5d words  %2dh  risk=%s\n",
			s.Order, s.Title, s.WordCountTarget, s.EstimatedHours, cli.RiskString(s.RiskLevel))
	}
	fmt.Printf("  Total: %d words, %d hours. Compliance %.0f%%. Timeline: %s\n",
		result.Plan.EstimatedTotalWords, result.Plan.EstimatedTotalHours,
		result.Plan.ComplianceScore, result.Plan.SubmissionTimeline)
}

func runParse(cmd *cobra.Command, args []string) error {
	documentPath := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)

	var ocr extract.Engine
	if cfg.Extraction.OCREnabled {
		ocr = extract.NewTesseractEngine(cfg.Extraction.OCRLanguage)
	}
	extractor := extract.NewExtractor(ocr, cfg.Extraction.MinTextLength, log)

	data, err := os.ReadFile(documentPath)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	extracted, err := extractor.Extract(context.Background(), data, fileType(documentPath), filepath.Base(documentPath))
	if err != nil {
		return err
	}

	doc := parser.NewService(log).Parse(context.Background(), extracted.Text, extracted.Method, filepath.Base(documentPath))

	cli.PrintTitle("Parsed %s (%s)", filepath.Base(documentPath), extracted.Method)
	cli.PrintInfo("Title: %s", doc.Title)
	cli.PrintInfo("Funder: %s", doc.FunderName)
	cli.PrintInfo("Confidence: %.2f", doc.ConfidenceScore)
	for _, s := range doc.Sections {
		limitNote := ""
		if s.WordLimit > 0 {
			limitNote = fmt.Sprintf(" (limit %d words)", s.WordLimit)
		}
		fmt.Printf("  [line %d] %s%s\n", s.LineNumber, s.Label, limitNote)
	}
	for _, c := range doc.ScoringCriteria {
		fmt.Printf("  scoring: %s - %.0f points (%s)\n", c.Description, c.MaxPoints, c.Section)
	}

	return nil
}

func runCorpusValidate(cmd *cobra.Command, args []string) error {
	corpusPath := args[0]

	loaded, err := corpus.LoadFile(corpusPath)
	if err != nil {
		return err
	}

	cli.PrintSuccess("Corpus %s is valid: %d areas", filepath.Base(corpusPath), len(loaded))
	for area, entry := range loaded {
		fmt.Printf("  %-20s %s (%d tags)\n", area, entry.Name, len(entry.Tags))
	}
	return nil
}
