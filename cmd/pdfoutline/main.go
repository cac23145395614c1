package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/pdfoutline/internal/api"
	"github.com/dgallion1/pdfoutline/internal/config"
	"github.com/dgallion1/pdfoutline/internal/outline"
	"github.com/dgallion1/pdfoutline/internal/pipeline"
	"github.com/dgallion1/pdfoutline/internal/textpat"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	rootCmd := &cobra.Command{
		Use:   "pdfoutline",
		Short: "PDF outline extractor",
		Long: `pdfoutline extracts a structural outline (title plus H1-H3
headings) from PDF documents, writing one JSON file per input PDF.
Heading detection is heuristic, driven by font statistics, text
patterns and page geometry.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(extractCmd(log))
	rootCmd.AddCommand(serveCmd(log))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildExtractor wires the detector from config, loading a pattern
// override file when one is set.
func buildExtractor(cfg config.Config, log *slog.Logger) (*outline.Extractor, error) {
	ocfg := outline.DefaultConfig()
	ocfg.MinScore = cfg.MinHeadingScore
	ocfg.MaxPerPage = cfg.MaxHeadingsPerPage
	if cfg.PatternsFile != "" {
		ps, err := textpat.Load(cfg.PatternsFile)
		if err != nil {
			return nil, fmt.Errorf("load patterns: %w", err)
		}
		ocfg.Patterns = ps
	}
	return outline.NewExtractor(ocfg, log), nil
}

func extractCmd(log *slog.Logger) *cobra.Command {
	var inputDir, outputDir, patternsFile string
	var workers int

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract outlines from every PDF in a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if inputDir != "" {
				cfg.InputDir = inputDir
			}
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}
			if patternsFile != "" {
				cfg.PatternsFile = patternsFile
			}
			if workers > 0 {
				cfg.WorkerCount = workers
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ext, err := buildExtractor(cfg, log)
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(cfg, ext, log)
			results, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}

			failed := 0
			for _, res := range results {
				if res.Err != nil {
					failed++
					fmt.Printf("✗ %s: %v\n", res.File, res.Err)
					continue
				}
				fmt.Printf("✓ %s: %d headings in %.2fs\n", res.File, res.Headings, res.Duration.Seconds())
			}
			fmt.Printf("processed %d file(s), %d failed\n", len(results), failed)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputDir, "input", "i", "", "input directory (default $INPUT_DIR or ./input)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (default $OUTPUT_DIR or ./output)")
	cmd.Flags().StringVarP(&patternsFile, "patterns", "p", "", "YAML file with extra classifier patterns")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "parallel documents (default $WORKER_COUNT or 4)")

	return cmd
}

func serveCmd(log *slog.Logger) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve outline extraction over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if port != "" {
				cfg.Port = port
			}

			ext, err := buildExtractor(cfg, log)
			if err != nil {
				return err
			}

			srv := api.NewServer(ext, log, cfg)
			httpServer := &http.Server{
				Addr:         ":" + cfg.Port,
				Handler:      srv,
				ReadTimeout:  30 * time.Second,
				WriteTimeout: 120 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			go func() {
				sigCh := make(chan os.Signal, 1)
				signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
				<-sigCh
				log.Info("shutting down...")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				httpServer.Shutdown(shutdownCtx)
			}()

			log.Info("starting pdfoutline", "port", cfg.Port)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (default $PORT or 8091)")

	return cmd
}
