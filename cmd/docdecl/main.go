package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"docdecl/internal/config"
	"docdecl/internal/crawler"
	"docdecl/internal/extractor"
	"docdecl/internal/render"
	"docdecl/internal/storage"
)

var (
	rootCmd = &cobra.Command{
		Use:   "docdecl",
		Short: "Documentation extractor for annotated C++ declarations",
	}
	configPath string
	dbPath     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Path to the extraction database (overrides config)")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(renderCmd)
}

func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	return cfg
}

var extractCmd = &cobra.Command{
	Use:   "extract [path]",
	Short: "Scan a C++ project and store every documented declaration",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		root := cfg.Project.Root
		if len(args) > 0 {
			root = args[0]
		}

		store, err := storage.NewSQLiteStore(cfg.Database.Path)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer store.Close()

		cr := crawler.NewCrawler(extractor.New(), cfg.Jobs)
		cr.Ignore(cfg.Project.Ignore...)

		fmt.Printf("📂 Scanning directory: %s\n", root)
		start := time.Now()

		ctx := context.Background()
		files, entities, commentErrs := 0, 0, 0
		skipped, err := cr.ScanProject(ctx, root, func(r *extractor.FileResult) {
			for _, cerr := range r.CommentErrors {
				commentErrs++
				log.Printf("⚠️  %s: %v", r.File, cerr)
			}
			if err := store.SaveResult(ctx, r); err != nil {
				log.Fatalf("Failed to save %s: %v", r.File, err)
			}
			files++
			entities += len(r.Entities)
		})
		if err != nil {
			log.Fatalf("Scan failed: %v", err)
		}
		for _, fe := range skipped {
			log.Printf("⚠️  skipped %v", fe)
		}

		fmt.Printf("✅ Extracted %d entities from %d files in %v.\n", entities, files, time.Since(start))
		if len(skipped) > 0 {
			fmt.Printf("⚠️  %d files could not be extracted and were skipped.\n", len(skipped))
		}
		if commentErrs > 0 {
			fmt.Printf("⚠️  %d comments could not be lexed; their entities have no documentation.\n", commentErrs)
		}
		fmt.Printf("🎉 Extraction complete! Database: %s\n", cfg.Database.Path)
	},
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render stored declarations as Markdown",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		store, err := storage.NewSQLiteStore(cfg.Database.Path)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer store.Close()

		ctx := context.Background()
		files, err := store.Files(ctx)
		if err != nil {
			log.Fatalf("Failed to list files: %v", err)
		}
		if len(files) == 0 {
			fmt.Println("⚠️  Nothing stored yet. Run 'docdecl extract' first.")
			return
		}

		var results []*extractor.FileResult
		for _, file := range files {
			r, err := store.LoadResult(ctx, file)
			if err != nil {
				log.Fatalf("Failed to load %s: %v", file, err)
			}
			results = append(results, r)
		}

		fmt.Printf("✍️  Rendering %d files...\n", len(results))
		gen := render.NewMarkdownGenerator()
		if err := gen.GenerateDocs(cfg.Output.Dir, results); err != nil {
			log.Fatalf("Failed to render docs: %v", err)
		}

		fmt.Printf("✅ Documentation written to '%s'.\n", cfg.Output.Dir)
	},
}
