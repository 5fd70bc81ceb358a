package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"docgen/internal/ai"
	"docgen/internal/analyzer"
	"docgen/internal/config"
	"docgen/internal/docgen"
	"docgen/internal/repo"
	"docgen/internal/runlog"
	"docgen/internal/storage"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "docgen",
		Short: "AI docstring generator for Python projects",
	}
	dbPath  string
	cfgPath string

	flagStyle       string
	flagLanguage    string
	flagMax         int
	flagExclude     []string
	flagSkipImports []string
	flagDryRun      bool
	flagRepoURL     string
	flagReportPath  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "docgen.db", "Path to the local run database (SQLite)")
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "Path to the YAML config file")

	generateCmd.Flags().StringVar(&flagStyle, "style", "", "Docstring style: google | numpy | rst | pep257")
	generateCmd.Flags().StringVar(&flagLanguage, "language", "", "Docstring language: en | zh")
	generateCmd.Flags().IntVar(&flagMax, "max", 0, "Cap on the number of generated docstrings (0 = unlimited)")
	generateCmd.Flags().StringSliceVar(&flagExclude, "exclude", nil, "Glob patterns to exclude, relative to the project root")
	generateCmd.Flags().StringSliceVar(&flagSkipImports, "skip-import", nil, "Skip modules whose source mentions these imports")
	generateCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Report what would be generated without mutating files")
	generateCmd.Flags().StringVar(&flagRepoURL, "repo", "", "Clone this repository and run against the clone")
	generateCmd.Flags().StringVar(&flagReportPath, "report", "", "Write the run report JSON to this path")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(cloneCmd)
	rootCmd.AddCommand(runsCmd)
}

func initStore() (*storage.SQLiteStore, error) {
	return storage.NewSQLiteStore(dbPath)
}

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Inventory a Python project and report documentation coverage",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := "."
		if len(args) > 0 {
			path = args[0]
		}
		absPath, err := filepath.Abs(path)
		if err != nil {
			log.Fatalf("Failed to resolve path: %v", err)
		}

		cfg, err := config.LoadConfig(cfgPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		fmt.Printf("📂 Scanning directory: %s\n", absPath)
		start := time.Now()
		modules, err := analyzer.Analyze(absPath, cfg.Generation.Exclude)
		if err != nil {
			log.Fatalf("Scan failed: %v", err)
		}

		cov := docgen.Summarize(modules)
		fmt.Printf("✅ Scanned %d modules in %v\n", cov.Modules, time.Since(start))
		fmt.Printf("   classes: %d  functions: %d  methods: %d\n", cov.Classes, cov.Functions, cov.Methods)
		fmt.Printf("   missing docs — modules: %d  functions: %d  methods: %d\n",
			cov.MissingModuleDocs, cov.MissingFunctionDocs, cov.MissingMethodDocs)
		for _, m := range cov.TopModules {
			marker := " "
			if !m.HasDoc {
				marker = "∅"
			}
			fmt.Printf("   %s %-40s classes=%d functions=%d\n", marker, m.Module, m.Classes, m.Functions)
		}
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Generate missing docstrings and splice them into the source",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(cfgPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		path := cfg.Project.Root
		if len(args) > 0 {
			path = args[0]
		}
		if path == "" {
			path = "."
		}

		ctx := context.Background()

		if flagRepoURL != "" {
			cwd, err := os.Getwd()
			if err != nil {
				log.Fatalf("Failed to get working directory: %v", err)
			}
			workRoot, err := repo.RuntimeRoot(cwd)
			if err != nil {
				log.Fatalf("Failed to prepare runtime directory: %v", err)
			}
			fmt.Printf("🌐 Cloning %s ...\n", flagRepoURL)
			cloned, err := repo.Clone(ctx, flagRepoURL, repo.Options{WorkRoot: workRoot})
			if err != nil {
				log.Fatalf("Clone failed: %v", err)
			}
			path = cloned
		}

		opts := buildOptions(cfg)

		gen, err := ai.New(ctx, ai.Options{
			Provider:        cfg.AI.Provider,
			APIKey:          cfg.AI.APIKey,
			Model:           cfg.AI.Model,
			BaseURL:         cfg.AI.BaseURL,
			Timeout:         time.Duration(cfg.AI.TimeoutSeconds) * time.Second,
			DisableFallback: cfg.AI.DisableFallback,
		})
		if err != nil {
			log.Fatalf("Failed to create generator: %v", err)
		}

		cwd, err := os.Getwd()
		if err != nil {
			log.Fatalf("Failed to get working directory: %v", err)
		}
		rlog, err := runlog.New(cwd)
		if err != nil {
			log.Fatalf("Failed to open run log: %v", err)
		}
		defer rlog.Close()

		fmt.Printf("🚀 Generating docstrings in %s (dry run: %v)\n", path, opts.DryRun)
		start := time.Now()
		report, err := docgen.New(gen, rlog).Run(ctx, path, opts)
		if err != nil {
			log.Fatalf("Run failed: %v", err)
		}

		fmt.Printf("✅ Done in %v — scanned=%d generated=%d skipped=%d errors=%d\n",
			time.Since(start),
			report.Summary.Scanned, report.Summary.Generated,
			report.Summary.Skipped, report.Summary.Errors)
		fmt.Printf("📝 Run log: %s\n", report.LogPath)

		if flagReportPath != "" {
			if err := docgen.SaveReport(flagReportPath, report); err != nil {
				log.Fatalf("Failed to write report: %v", err)
			}
			fmt.Printf("📄 Report: %s\n", flagReportPath)
		}

		store, err := initStore()
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer store.Close()
		runID, err := store.SaveReport(ctx, report)
		if err != nil {
			log.Fatalf("Failed to persist run: %v", err)
		}
		fmt.Printf("💾 Saved as run #%d in %s\n", runID, dbPath)
	},
}

var cloneCmd = &cobra.Command{
	Use:   "clone <url> [dest]",
	Short: "Shallow-clone a repository under the runtime directory",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			log.Fatalf("Failed to get working directory: %v", err)
		}
		workRoot, err := repo.RuntimeRoot(cwd)
		if err != nil {
			log.Fatalf("Failed to prepare runtime directory: %v", err)
		}

		opts := repo.Options{WorkRoot: workRoot}
		if len(args) > 1 {
			opts.DestDir = args[1]
		}

		dest, err := repo.Clone(context.Background(), args[0], opts)
		if err != nil {
			log.Fatalf("Clone failed: %v", err)
		}
		fmt.Printf("✅ Cloned to %s\n", dest)
	},
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent generation runs from the local database",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := initStore()
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer store.Close()

		runs, err := store.RecentRuns(context.Background(), 10)
		if err != nil {
			log.Fatalf("Failed to list runs: %v", err)
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded yet.")
			return
		}
		for _, r := range runs {
			mode := ""
			if r.DryRun {
				mode = " (dry run)"
			}
			fmt.Printf("#%d %s%s\n", r.ID, r.TargetDir, mode)
			fmt.Printf("   %s — scanned=%d generated=%d skipped=%d errors=%d\n",
				r.StartedAt, r.Summary.Scanned, r.Summary.Generated, r.Summary.Skipped, r.Summary.Errors)
		}
	},
}

func buildOptions(cfg *config.Config) docgen.Options {
	style := cfg.Generation.Style
	if flagStyle != "" {
		style = flagStyle
	}
	language := cfg.Generation.Language
	if flagLanguage != "" {
		language = flagLanguage
	}
	max := cfg.Generation.MaxEntities
	if flagMax > 0 {
		max = flagMax
	}
	exclude := cfg.Generation.Exclude
	if len(flagExclude) > 0 {
		exclude = flagExclude
	}
	skipImports := cfg.Generation.SkipImports
	if len(flagSkipImports) > 0 {
		skipImports = flagSkipImports
	}

	return docgen.Options{
		Style:           ai.NormalizeStyle(style),
		Language:        ai.NormalizeLanguage(language),
		MaxEntities:     max,
		ExcludePatterns: exclude,
		SkipImports:     skipImports,
		DryRun:          flagDryRun || cfg.Generation.DryRun,
	}
}
