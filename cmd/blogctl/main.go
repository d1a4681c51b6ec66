package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clearledger/blogen/internal/config"
	"github.com/clearledger/blogen/internal/importer"
	"github.com/clearledger/blogen/internal/logger"
	"github.com/clearledger/blogen/internal/relay"
	githubvcs "github.com/clearledger/blogen/internal/vcs/github"
)

var (
	templateOut   string
	relayEndpoint string
	relayToken    string
)

var rootCmd = &cobra.Command{
	Use:   "blogctl",
	Short: "Editorial tooling for the blog content repository",
	Long:  `Generates the CSV import template and publishes validated CSV batches as pull requests.`,
}

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Write the CSV import template",
	RunE: func(cmd *cobra.Command, args []string) error {
		body := importer.SampleTemplate()
		if templateOut == "" || templateOut == "-" {
			fmt.Print(body)
			return nil
		}
		if err := os.WriteFile(templateOut, []byte(body), 0o644); err != nil {
			return fmt.Errorf("failed to write template: %w", err)
		}
		fmt.Printf("Template written to %s\n", templateOut)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Validate a CSV batch and publish each row as a pull request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if err := logger.Init(logger.Config{Level: cfg.LogLevel, Output: "stderr", Pretty: true}); err != nil {
			return err
		}

		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer file.Close()

		rows, err := importer.ParseCSV(file)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return fmt.Errorf("%s contains no data rows", args[0])
		}

		if errs := importer.NewValidator().ValidateRows(rows); len(errs) > 0 {
			fmt.Fprintln(os.Stderr, "Validation failed:")
			for _, e := range errs {
				fmt.Fprintf(os.Stderr, "  %s\n", e)
			}
			return fmt.Errorf("%d validation error(s), nothing was published", len(errs))
		}

		repo, err := buildRepository(cfg)
		if err != nil {
			return err
		}

		tracker := importer.NewTracker(len(rows))
		pipeline := importer.NewPipeline(repo, importer.Options{
			DefaultBranch: cfg.DefaultBranch,
			BranchPrefix:  cfg.BranchPrefix,
			ContentPath:   cfg.ContentPath,
			Label:         cfg.ImportLabel,
			DefaultAuthor: cfg.DefaultAuthor,
			RowDelay:      cfg.RowDelay,
		})

		pipeline.Run(cmd.Context(), rows, tracker)

		batch := tracker.Snapshot()
		failed := 0
		for _, row := range batch.Rows {
			if row.Error != "" {
				failed++
				fmt.Printf("Row %d (%s): FAILED: %s\n", row.Row, row.Title, row.Error)
				continue
			}
			pr := "-"
			if row.PRNumber != nil {
				pr = fmt.Sprintf("#%d", *row.PRNumber)
			}
			fmt.Printf("Row %d (%s): branch %s, pull request %s\n", row.Row, row.Title, row.Slug, pr)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d row(s) failed", failed, batch.Total)
		}
		fmt.Printf("Published %d post(s)\n", batch.Total)
		return nil
	},
}

// buildRepository picks the publishing backend: the relay endpoint when
// one is given, otherwise the GitHub API directly.
func buildRepository(cfg *config.Config) (importer.Repository, error) {
	if relayEndpoint != "" {
		return relay.NewClient(relayEndpoint, relayToken, cfg.DefaultBranch), nil
	}
	if cfg.GitHubOwner == "" || cfg.GitHubRepo == "" {
		return nil, fmt.Errorf("GITHUB_OWNER and GITHUB_REPO must be set (or use --relay)")
	}
	if cfg.GitHubToken == "" {
		return nil, fmt.Errorf("GITHUB_TOKEN must be set")
	}
	return githubvcs.NewClient(cfg.GitHubOwner, cfg.GitHubRepo, cfg.DefaultBranch, cfg.GitHubToken), nil
}

func init() {
	templateCmd.Flags().StringVarP(&templateOut, "output", "o", "blog-import-template.csv", "Output file, or - for stdout")
	importCmd.Flags().StringVar(&relayEndpoint, "relay", "", "Publish through a relay endpoint instead of the GitHub API")
	importCmd.Flags().StringVar(&relayToken, "relay-token", "", "Bearer token for the relay endpoint")
	rootCmd.AddCommand(templateCmd, importCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
