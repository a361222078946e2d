package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/accordhq/accord/internal/authority"
	"github.com/accordhq/accord/internal/cache"
)

// trustCmd represents the trust command
var trustCmd = &cobra.Command{
	Use:   "trust <url>",
	Short: "Show the source-authority score for a URL",
	Long: `Trust runs a URL through the tiered source-authority cascade (curated
overrides, TLD patterns, cached priors, popularity index, default) and
prints the resulting 0-1 score.

Example:
  accord trust https://www.nature.com/articles/s41586-024-1
  accord trust https://random-blog.example.com/post`,
	Args: cobra.ExactArgs(1),
	RunE: runTrust,
}

func init() {
	rootCmd.AddCommand(trustCmd)
}

func runTrust(cmd *cobra.Command, args []string) error {
	rawURL := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := authority.NewTrustStore(cache.NewMemoryCache(time.Hour, time.Hour), time.Hour)

	var popularity authority.PopularityIndex
	if cfg.Authority.PageRankKey != "" {
		popularity = authority.NewPageRankClient(cfg.Authority.PageRankURL, cfg.Authority.PageRankKey, cfg.Authority.Timeout)
	}

	resolver := authority.NewResolver(store, popularity, nil, cfg.Authority.Overrides)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Authority.Timeout+5*time.Second)
	defer cancel()

	score := resolver.Resolve(ctx, rawURL)
	domain := authority.RegistrableDomain(rawURL)

	fmt.Printf("URL:    %s\n", rawURL)
	fmt.Printf("Domain: %s\n", domain)
	fmt.Printf("Trust:  %.2f\n", score)

	if entry, ok := store.Get(domain); ok {
		fmt.Printf("Method: %s\n", entry.Method)
	}
	return nil
}
