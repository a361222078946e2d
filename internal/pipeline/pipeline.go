package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/accordhq/accord/internal/authority"
	"github.com/accordhq/accord/internal/cache"
	"github.com/accordhq/accord/internal/classify"
	"github.com/accordhq/accord/internal/cluster"
	"github.com/accordhq/accord/internal/conflict"
	"github.com/accordhq/accord/internal/credibility"
	"github.com/accordhq/accord/internal/embed"
	"github.com/accordhq/accord/internal/extract"
	"github.com/accordhq/accord/internal/llm"
	"github.com/accordhq/accord/internal/model"
	"github.com/accordhq/accord/internal/scholar"
	"github.com/accordhq/accord/internal/worker"
)

// Pipeline orchestrates a full reconciliation job: fetch, classify, score,
// extract, cross-check, and optionally summarize.
type Pipeline struct {
	fetcher    *Fetcher
	classifier *classify.Classifier
	scorers    *credibility.Registry
	extractor  *extract.Extractor
	engine     *conflict.Engine
	summarizer *llm.Summarizer // optional, nil when disabled
	renderer   *Renderer
	config     *model.Config
}

// NewPipeline wires every stage from configuration. The LLM provider and
// summarizer are optional; everything else is required.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}

	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM summarizer disabled: %v\n", err)
		} else {
			summarizer = s
		}
	}

	var trustCache cache.Cache
	if cfg.Cache.Enabled && cfg.Cache.Dir != "" {
		trustCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	} else {
		trustCache = cache.NewMemoryCache(cfg.Cache.MemoryTTL, 10*time.Minute)
	}
	store := authority.NewTrustStore(trustCache, cfg.Cache.DiskTTL)

	var popularity authority.PopularityIndex
	if cfg.Authority.PageRankKey != "" {
		popularity = authority.NewPageRankClient(cfg.Authority.PageRankURL, cfg.Authority.PageRankKey, cfg.Authority.Timeout)
	}

	var rater authority.DomainRater
	if provider != nil {
		rater = llm.NewDomainRater(provider)
	}

	resolver := authority.NewResolver(store, popularity, rater, cfg.Authority.Overrides)

	var papers *scholar.Client
	if cfg.Scholar.BaseURL != "" {
		papers = scholar.NewClient(cfg.Scholar)
	}

	embedder, err := embed.NewProvider(cfg.Embedding)
	if err != nil {
		return nil, fmt.Errorf("create embedding provider: %w", err)
	}

	return &Pipeline{
		fetcher:    NewFetcher(cfg.HTTP),
		classifier: classify.NewClassifier(provider),
		scorers:    credibility.NewRegistry(resolver, papers, provider),
		extractor:  extract.NewExtractor(provider),
		engine:     conflict.NewEngine(cluster.NewClusterer(embedder, cfg.Cluster)),
		summarizer: summarizer,
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		config:     cfg,
	}, nil
}

// Run reconciles the given sources into a single report. strategy may be
// empty, in which case the dominant document type selects it. Sources that
// fail to fetch are skipped with a warning; the job fails only when nothing
// could be fetched.
func (p *Pipeline) Run(ctx context.Context, sources []string, strategy conflict.StrategyName) (*model.Report, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("no sources given")
	}

	docs, err := p.fetchAll(ctx, sources)
	if err != nil {
		return nil, err
	}

	// Classify, score and extract each document concurrently. Stages within
	// one document stay sequential: scoring and extraction both depend on
	// the document type.
	pool := worker.NewPool(p.config.Concurrency.ScoreWorkers)
	tasks := make([]worker.Task, len(docs))
	for i := range docs {
		doc := docs[i]
		tasks[i] = func(ctx context.Context) error {
			doc.DocType = p.classifier.Classify(ctx, doc.RawText, doc.Title)
			doc.Credibility = p.scorers.ForType(doc.DocType).Score(ctx, doc)
			doc.Claims = p.extractor.Extract(ctx, doc)
			return nil
		}
	}
	for i, err := range pool.Run(ctx, tasks) {
		if err != nil {
			return nil, fmt.Errorf("analyze document %s: %w", docs[i].ID, err)
		}
	}

	selected := p.engine.SelectStrategy(docs, strategy)
	resolved, conflicts, err := p.engine.Resolve(ctx, docs, strategy)
	if err != nil {
		return nil, fmt.Errorf("resolve conflicts: %w", err)
	}

	report := &model.Report{
		Strategy:        string(selected),
		DocTypesPresent: docTypesPresent(docs),
		Documents:       docScores(docs),
		ResolvedClaims:  resolved,
		Conflicts:       conflicts,
		GeneratedAt:     time.Now().UTC(),
	}

	// Summary runs last and never affects resolution or scores
	if p.summarizer.IsEnabled() {
		summary, err := p.summarizer.Summarize(ctx, resolved, conflicts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: summary generation failed: %v\n", err)
		} else {
			report.Summary = summary
		}
	}

	return report, nil
}

// fetchAll loads every source concurrently, dropping the ones that fail
func (p *Pipeline) fetchAll(ctx context.Context, sources []string) ([]*model.Document, error) {
	fetched := make([]*model.Document, len(sources))

	pool := worker.NewPool(p.config.Concurrency.FetchWorkers)
	tasks := make([]worker.Task, len(sources))
	for i := range sources {
		i := i
		tasks[i] = func(ctx context.Context) error {
			doc, err := p.fetcher.Fetch(ctx, sources[i])
			if err != nil {
				return err
			}
			fetched[i] = doc
			return nil
		}
	}

	var docs []*model.Document
	for i, err := range pool.Run(ctx, tasks) {
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", sources[i], err)
			continue
		}
		docs = append(docs, fetched[i])
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("none of the %d sources could be fetched", len(sources))
	}
	return docs, nil
}

// RenderReport writes the report to the requested outputs and prints the
// stdout summary
func (p *Pipeline) RenderReport(report *model.Report, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(report)
	return nil
}

func docTypesPresent(docs []*model.Document) []model.DocType {
	seen := make(map[model.DocType]bool, len(docs))
	var types []model.DocType
	for _, d := range docs {
		if !seen[d.DocType] {
			seen[d.DocType] = true
			types = append(types, d.DocType)
		}
	}
	return types
}

func docScores(docs []*model.Document) []model.DocScore {
	scores := make([]model.DocScore, 0, len(docs))
	for _, d := range docs {
		ds := model.DocScore{
			DocID:     d.ID,
			DocType:   d.DocType,
			Title:     d.Title,
			SourceURL: d.SourceURL,
		}
		if d.Credibility != nil {
			ds.Overall = d.Credibility.Overall
		}
		scores = append(scores, ds)
	}
	return scores
}
