package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/oluyemi-1/plagiarism-backend/internal/extract"
	"github.com/oluyemi-1/plagiarism-backend/internal/report"
)

var (
	outJSON   string
	outMD     string
	timeout   time.Duration
	noSearch  bool
	noCache   bool
	llmEnable bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a single document for plagiarism",
	Long: `Analyze segments the document into sentences, searches each sentence
across the configured providers and the built-in corpus, and scores
every candidate snippet.

Example:
  plagiarism analyze essay.txt
  plagiarism analyze thesis.pdf --json report.json --md report.md
  plagiarism analyze paper.docx --no-search`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path")
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().BoolVar(&noSearch, "no-search", false, "skip live provider search, corpus only")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable provider result caching")
	analyzeCmd.Flags().BoolVar(&llmEnable, "llm", false, "generate an LLM summary (requires OPENAI_API_KEY)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if noSearch {
		cfg.Search.Enabled = false
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if !llmEnable {
		cfg.LLM.APIKey = ""
	}

	a, err := buildApp(cfg)
	if err != nil {
		return err
	}

	content, err := extract.FromFile(path)
	if err != nil {
		return fmt.Errorf("extract %s: %w", path, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Extracted %d words from %s\n", content.WordCount, content.Filename)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	rep, err := a.analyzer.Analyze(ctx, content.Text, content.Filename)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", path, err)
	}

	report.PrintSummary(os.Stdout, rep)

	if outJSON != "" {
		data, err := report.RenderJSON(rep)
		if err != nil {
			return err
		}
		if err := os.WriteFile(outJSON, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outJSON, err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := os.WriteFile(outMD, []byte(report.RenderMarkdown(rep)), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outMD, err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", outMD)
		}
	}
	return nil
}
