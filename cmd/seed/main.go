package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"locallibrary/internal/author"
	"locallibrary/internal/book"
	"locallibrary/internal/bookinstance"
	"locallibrary/internal/config"
	"locallibrary/internal/genre"
	"locallibrary/internal/ingest"
	"locallibrary/internal/platform/logging"
	"locallibrary/internal/platform/openlibrary"
	"locallibrary/internal/store"

	"github.com/spf13/cobra"
)

var (
	reset           bool
	fromOpenLibrary bool
	booksPerSubject int
	copiesPerBook   int
)

var rootCmd = &cobra.Command{
	Use:   "seed [subjects...]",
	Short: "Populate the catalog with sample records",
	Long: `Populate the configured record store.

Without flags a small fixed library of authors, genres, books and copies is
created. With --openlibrary the named subjects are imported from Open Library
instead.

Examples:
  seed                                   # load the sample library
  seed --reset                           # wipe every record, then load the sample
  seed --openlibrary fantasy "science fiction"`,
	RunE: runSeed,
}

func init() {
	rootCmd.Flags().BoolVar(&reset, "reset", false, "Delete every record before seeding")
	rootCmd.Flags().BoolVar(&fromOpenLibrary, "openlibrary", false, "Import the given subjects from Open Library")
	rootCmd.Flags().IntVar(&booksPerSubject, "books-per-subject", 20, "Works imported per subject")
	rootCmd.Flags().IntVar(&copiesPerBook, "copies", 1, "Copies created for each imported book")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if fromOpenLibrary && len(args) == 0 {
		return fmt.Errorf("--openlibrary needs at least one subject")
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handle, err := store.Open(ctx, store.Config{
		Driver:        cfg.StoreDriver,
		MongoURI:      cfg.MongoURI,
		MongoDatabase: cfg.MongoDatabase,
		PostgresDSN:   cfg.DatabaseDSN,
		BadgerDir:     cfg.BadgerDir,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := handle.Close(context.Background()); err != nil {
			logger.Warn("close store", slog.String("error", err.Error()))
		}
	}()

	if reset {
		n, err := wipe(ctx, handle.Store)
		if err != nil {
			return err
		}
		logger.Info("store emptied", slog.Int("deleted", n))
	}

	svc := ingest.Services{
		Authors:   author.NewService(handle.Store, cfg.StoreTimeout),
		Genres:    genre.NewService(handle.Store, cfg.StoreTimeout),
		Books:     book.NewService(handle.Store, cfg.StoreTimeout),
		Instances: bookinstance.NewService(handle.Store, cfg.StoreTimeout),
	}

	if !fromOpenLibrary {
		start := time.Now()
		n, err := loadSample(ctx, svc)
		if err != nil {
			return err
		}
		logger.Info("sample library loaded", slog.Int("records", n), slog.Duration("took", time.Since(start)))
		return nil
	}

	client := openlibrary.NewClient("", cfg.OpenLibraryUserAgent, cfg.OpenLibraryRPS, 3)
	importer := ingest.NewService(client, svc, logger, ingest.Config{
		Subjects:        args,
		BooksPerSubject: booksPerSubject,
		CopiesPerBook:   copiesPerBook,
	})
	run, err := importer.Run(ctx)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	logger.Info("import finished",
		slog.Int("fetched", run.Fetched),
		slog.Int("created", run.Created()),
		slog.Int("skipped", run.Skipped),
	)
	return nil
}
