// IntelliBrief — real-time company intelligence briefs for B2B outreach.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Sumitagarwal-i/intellibrief/api"
	"github.com/Sumitagarwal-i/intellibrief/internal/brief"
	"github.com/Sumitagarwal-i/intellibrief/internal/config"
	"github.com/Sumitagarwal-i/intellibrief/internal/llm"
	"github.com/Sumitagarwal-i/intellibrief/internal/logging"
	"github.com/Sumitagarwal-i/intellibrief/internal/signals"
	"github.com/Sumitagarwal-i/intellibrief/internal/store"
	"github.com/Sumitagarwal-i/intellibrief/pkg/models"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "intellibrief",
	Short: "IntelliBrief — real-time company intelligence briefs",
	Long: `IntelliBrief aggregates live signals about a target company (news
coverage, hiring activity, technology stack) and synthesizes them into
a strategic outreach brief.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(briefCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("IntelliBrief %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.New(cfg.Logging)

		pipeline, st, err := buildPipeline(cfg, log)
		if err != nil {
			return err
		}
		defer st.Close()

		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		log.WithField("addr", addr).Info("starting IntelliBrief API server")
		return api.NewServer(cfg, pipeline, st, log).ListenAndServe(addr)
	},
}

// --- Brief Command (one-shot generation) ---

var briefCmd = &cobra.Command{
	Use:   "brief [company]",
	Short: "Generate a single brief from the command line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		website, _ := cmd.Flags().GetString("website")
		intent, _ := cmd.Flags().GetString("intent")

		log := logging.New(cfg.Logging)
		pipeline, st, err := buildPipeline(cfg, log)
		if err != nil {
			return err
		}
		defer st.Close()

		b, err := pipeline.Run(cmd.Context(), models.BriefRequest{
			CompanyName: args[0],
			Website:     website,
			UserIntent:  intent,
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(b)
	},
}

func init() {
	briefCmd.Flags().String("website", "", "company website URL")
	briefCmd.Flags().String("intent", "", "what you want to pitch (required)")
}

// buildPipeline wires the signal fetchers, insight generator, and store
// from configuration.
func buildPipeline(cfg *config.Config, log *logrus.Logger) (*brief.Pipeline, store.Store, error) {
	st, err := store.NewPostgresStore(cfg.Database.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("database setup failed: %w", err)
	}

	var provider llm.Provider
	if cfg.LLM.GroqKey != "" {
		p, err := llm.NewGroqProvider(cfg.LLM.GroqKey,
			llm.WithGroqBaseURL(cfg.LLM.BaseURL),
			llm.WithGroqModel(cfg.LLM.Model),
		)
		if err != nil {
			st.Close()
			return nil, nil, fmt.Errorf("LLM setup failed: %w", err)
		}
		provider = p
	} else {
		log.Warn("no Groq API key configured, briefs will use placeholder insights")
	}

	insight := brief.NewInsightGenerator(provider, llm.ChatOptions{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}, cfg.LLM.Timeout(), log)

	timeout := cfg.Signals.Timeout()
	pipeline := brief.NewPipeline(
		signals.NewNewsFetcher(cfg.Signals.NewsDataKey, timeout),
		signals.NewJobsFetcher(cfg.Signals.JSearchKey, timeout),
		signals.NewTechFetcher(cfg.Signals.BuiltWithKey, timeout),
		signals.NewSiteProfiler(timeout),
		insight,
		st,
		log,
	)
	return pipeline, st, nil
}
