package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/accordhq/accord/internal/conflict"
	"github.com/accordhq/accord/internal/pipeline"
	"github.com/accordhq/accord/internal/worker"
)

var (
	outJSON        string
	outMD          string
	sourcesFile    string
	strategyName   string
	resolveTimeout time.Duration
	userAgent      string
	maxBytes       int64
	noCache        bool
	noFooter       bool
	embedProvider  string
	llmEnabled     bool
	llmProvider    string
	llmModel       string
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve [source...]",
	Short: "Reconcile claims across multiple documents",
	Long: `Resolve fetches a set of documents (URLs or local files), classifies each
one, scores its credibility with a type-specific rubric, extracts its
claims, and cross-checks the claims against each other:

- Semantically similar claims from different sources form conflicts
- Each conflict is settled by a strategy chosen from the dominant
  document type, or by an explicit --strategy override
- The output is one reconciled claim set plus the full conflict record

Example:
  accord resolve https://example.org/study https://example.com/coverage
  accord resolve --sources urls.txt --json report.json --md report.md
  accord resolve a.txt b.txt --strategy highest_credibility_wins
  accord resolve --sources urls.txt --llm --llm-provider openai`,
	Args: cobra.ArbitraryArgs,
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	// Input/output flags
	resolveCmd.Flags().StringVar(&sourcesFile, "sources", "", "file listing sources, one per line (# comments allowed)")
	resolveCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	resolveCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")

	// Resolution flags
	resolveCmd.Flags().StringVar(&strategyName, "strategy", "",
		"override strategy (weighted_vote, majority_vote, highest_credibility_wins, conservative)")

	// HTTP flags
	resolveCmd.Flags().DurationVar(&resolveTimeout, "timeout", 5*time.Minute, "overall job timeout")
	resolveCmd.Flags().StringVar(&userAgent, "ua", "Accord/0.1 (+https://github.com/accordhq/accord)", "HTTP User-Agent")
	resolveCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	resolveCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the trust cache")
	resolveCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Provider flags
	resolveCmd.Flags().StringVar(&embedProvider, "embedding", "openai", "embedding provider (openai, mock)")
	resolveCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM features (classification fallback, author checks, summary)")
	resolveCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	resolveCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runResolve(cmd *cobra.Command, args []string) error {
	sources, err := collectSources(args)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return fmt.Errorf("no sources given: pass them as arguments or via --sources")
	}

	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.Cache.Enabled = !noCache
	cfg.Embedding.Provider = embedProvider
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if llmEnabled {
		if err := applyLLMEnv(cfg, llmProvider, llmModel); err != nil {
			return err
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Sources: %d\n", len(sources))
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", resolveTimeout)
		if strategyName != "" {
			fmt.Fprintf(os.Stderr, "Strategy override: %s\n", strategyName)
		}
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	report, err := p.Run(ctx, sources, conflict.StrategyName(strategyName))
	if err != nil {
		return fmt.Errorf("resolve failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Analyzed %d documents\n", len(report.Documents))
		fmt.Fprintf(os.Stderr, "✓ Reconciled %d claims, %d conflicts\n",
			len(report.ResolvedClaims), len(report.Conflicts))
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	return nil
}

// collectSources merges positional arguments with the --sources file
func collectSources(args []string) ([]string, error) {
	sources := append([]string(nil), args...)
	if sourcesFile != "" {
		fromFile, err := worker.ReadSourceList(sourcesFile)
		if err != nil {
			return nil, err
		}
		sources = append(sources, fromFile...)
	}
	return sources, nil
}
