package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ideaforge/cmd/ideaforge/ui"
	"ideaforge/internal/config"
	"ideaforge/internal/export"
	"ideaforge/internal/favorites"
	"ideaforge/internal/gemini"
	"ideaforge/internal/ideas"
	"ideaforge/internal/types"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Generate flags
	flagIndustry string
	flagAudience string
	flagBudget   string
	flagTime     string
	flagSkills   []string
	flagJSON     bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ideaforge",
	Short: "ideaforge - AI-powered startup idea validation",
	Long: `ideaforge generates startup ideas matched to your constraints and
validates them against live market data via search-grounded analysis.

Each idea comes back with a market opportunity score, competitors, trends,
costs, revenue potential, risk assessment, and concrete next steps.

Run without arguments to start the interactive interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		// Interactive mode owns the terminal; keep logs out of it.
		if cmd.CalledAs() == "ideaforge" {
			home, err := os.UserHomeDir()
			if err != nil {
				home = "."
			}
			logDir := filepath.Join(home, ".ideaforge")
			if err := os.MkdirAll(logDir, 0755); err == nil {
				zcfg.OutputPaths = []string{filepath.Join(logDir, "ideaforge.log")}
				zcfg.ErrorOutputPaths = zcfg.OutputPaths
			}
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()
		return ui.Run(ui.Deps{
			Ideas:     app.Service,
			Favorites: app.Favorites,
			Renderer:  app.Renderer,
			Exporter:  app.Exporter,
			Log:       logger,
		})
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and validate a batch of startup ideas",
	Long: `Runs one generation round trip with the given constraints and prints
the validated ideas. All flags are optional; unset constraints are left
open for the model to decide.

Example:
  ideaforge generate --industry Tech --budget "$10k-$50k" --skills Technical,Marketing`,
	RunE: runGenerate,
}

var planCmd = &cobra.Command{
	Use:   "plan [idea title]",
	Short: "Generate a mini business plan for an idea",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlan,
}

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List saved favorite ideas",
	RunE:  runFavorites,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export saved favorites to a PDF document",
	RunE:  runExport,
}

// app bundles the wired components behind the commands.
type app struct {
	Config    *config.Config
	Service   *ideas.Service
	Favorites *favorites.Store
	Renderer  *export.Renderer
	Exporter  *export.Exporter
}

func (a *app) Close() {
	if a.Favorites != nil {
		_ = a.Favorites.Close()
	}
}

func buildApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	client := gemini.NewClient(gemini.Config{
		APIKey:          cfg.Gemini.APIKey,
		BaseURL:         cfg.Gemini.BaseURL,
		IdeaModel:       cfg.Gemini.IdeaModel,
		PlanModel:       cfg.Gemini.PlanModel,
		Timeout:         cfg.GeminiTimeout(),
		MaxOutputTokens: cfg.Gemini.MaxOutputTokens,
		ThinkingBudget:  cfg.Gemini.ThinkingBudget,
	}, logger)

	store, err := favorites.Open(cfg.Storage.FavoritesPath, logger)
	if err != nil {
		return nil, err
	}

	renderer, err := export.NewRenderer(cfg.Export.RenderWidth)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &app{
		Config:    cfg,
		Service:   ideas.NewService(client, logger),
		Favorites: store,
		Renderer:  renderer,
		Exporter:  export.NewExporter(cfg.Export.OutputDir, logger),
	}, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if !types.KnownBudgetRange(flagBudget) {
		return fmt.Errorf("unknown budget range %q (choose one of: %s)",
			flagBudget, strings.Join(types.BudgetRangeOptions, ", "))
	}

	app, err := buildApp()
	if err != nil {
		return err
	}
	defer app.Close()

	req := types.UserRequest{
		Industry:       flagIndustry,
		TargetAudience: flagAudience,
		BudgetRange:    flagBudget,
		TimeToMarket:   flagTime,
		Skills:         flagSkills,
	}
	result, err := app.Service.GenerateIdeas(context.Background(), req)
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	for i, idea := range result.Ideas {
		fmt.Printf("%d. %s  [%s, %.1f/10]\n", i+1, idea.Title, idea.RiskAnalysis, idea.MarketOpportunityScore)
		fmt.Printf("   %s\n", idea.Description)
		fmt.Printf("   Costs: %s   Revenue: %s   Time to market: %s\n",
			idea.EstimatedStartupCosts, idea.RevenuePotential, idea.TimeToMarket)
		if len(idea.NextSteps) > 0 {
			fmt.Printf("   Next: %s\n", strings.Join(idea.NextSteps, "; "))
		}
		fmt.Println()
	}
	if len(result.GroundingLinks) > 0 {
		fmt.Println("Sources:")
		for _, link := range result.GroundingLinks {
			fmt.Printf("  %s - %s\n", link.Title, link.URI)
		}
	}
	return nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	app, err := buildApp()
	if err != nil {
		return err
	}
	defer app.Close()

	plan, err := app.Service.GeneratePlan(context.Background(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Println(plan)
	return nil
}

func runFavorites(cmd *cobra.Command, args []string) error {
	app, err := buildApp()
	if err != nil {
		return err
	}
	defer app.Close()

	saved := app.Favorites.All()
	if len(saved) == 0 {
		fmt.Println("No favorites saved yet.")
		return nil
	}
	for i, idea := range saved {
		fmt.Printf("%d. %s  [%s, %.1f/10]\n", i+1, idea.Title, idea.RiskAnalysis, idea.MarketOpportunityScore)
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	app, err := buildApp()
	if err != nil {
		return err
	}
	defer app.Close()

	saved := app.Favorites.All()
	if len(saved) == 0 {
		return fmt.Errorf("no favorites to export")
	}
	img, err := app.Renderer.Render(saved, nil)
	if err != nil {
		return err
	}
	path, err := app.Exporter.Export(img)
	if err != nil {
		return err
	}
	fmt.Printf("Saved %s\n", path)
	return nil
}

func init() {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	defaultConfig := filepath.Join(home, ".ideaforge", "config.yaml")

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfig, "path to config file")

	generateCmd.Flags().StringVar(&flagIndustry, "industry", "", "industry or sector")
	generateCmd.Flags().StringVar(&flagAudience, "audience", "", "target audience")
	generateCmd.Flags().StringVar(&flagBudget, "budget", "", "budget range, e.g. \"$10k-$50k\"")
	generateCmd.Flags().StringVar(&flagTime, "time-to-market", "", "time to market preference")
	generateCmd.Flags().StringSliceVar(&flagSkills, "skills", nil, "available skills (comma separated)")
	generateCmd.Flags().BoolVar(&flagJSON, "json", false, "print the raw result as JSON")

	rootCmd.AddCommand(generateCmd, planCmd, favoritesCmd, exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
