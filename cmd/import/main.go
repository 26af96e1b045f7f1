// Command import loads journal entries from a YAML or JSON file into the
// SQLite database.
//
// Usage:
//
//	go run ./cmd/import -file data/journal.yaml -db data/arvelie.db
//
// The file holds a list of entries, each with an ISO or Arvelie date:
//
//	entries:
//	  - date: 2025-06-21
//	    note: longest day
//	  - date: 25+00
//	    note: year day
//
// This tool:
// 1. Parses the file and every date in it
// 2. Creates/opens the SQLite database and runs migrations
// 3. Imports all entries in a single transaction
//
// A bad date or empty note anywhere in the file aborts the whole import.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zapponejosh/arvelie/internal/arvelie"
	"github.com/zapponejosh/arvelie/internal/database"
)

func main() {
	// Parse command line flags
	filePath := flag.String("file", "data/journal.yaml", "Path to YAML or JSON entries file")
	dbPath := flag.String("db", "data/arvelie.db", "Path to SQLite database")
	offset := flag.Int("offset", 2000, "Year offset added to two-digit Arvelie years")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	// Setup logger
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	if err := run(*filePath, *dbPath, *offset, logger); err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("import complete")
}

// ImportFile is the layout of an entries file.
type ImportFile struct {
	Entries []ImportEntry `json:"entries" yaml:"entries"`
}

// ImportEntry is one journal entry as written in the file.
type ImportEntry struct {
	Date string `json:"date" yaml:"date"`
	Note string `json:"note" yaml:"note"`
}

// ImportStats tracks import statistics.
type ImportStats struct {
	Entries     int
	SpecialDays int
	Years       map[int]int
}

func run(filePath, dbPath string, offset int, logger *slog.Logger) error {
	ctx := context.Background()
	startTime := time.Now()

	// =========================================================================
	// Step 1: Read and parse the entries file
	// =========================================================================
	logger.Info("reading entries file", slog.String("path", filePath))

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read entries file: %w", err)
	}

	file, err := decodeFile(data, filepath.Ext(filePath))
	if err != nil {
		return err
	}

	entries, err := buildEntries(file.Entries, offset)
	if err != nil {
		return err
	}

	logger.Info("parsed entries file", slog.Int("entries", len(entries)))

	// =========================================================================
	// Step 2: Open database and run migrations
	// =========================================================================
	logger.Info("opening database", slog.String("path", dbPath))

	db, err := database.Open(dbPath, logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	migrated, err := db.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("migrations complete", slog.Int("applied", migrated))

	// =========================================================================
	// Step 3: Import data in a transaction
	// =========================================================================
	logger.Info("starting import")

	stats, err := importEntries(ctx, db, entries, logger)
	if err != nil {
		return fmt.Errorf("import data: %w", err)
	}

	// =========================================================================
	// Step 4: Verify import
	// =========================================================================
	total, err := db.CountEntries(ctx)
	if err != nil {
		return fmt.Errorf("count entries: %w", err)
	}

	elapsed := time.Since(startTime)

	logger.Info("import verified",
		slog.Int("imported", stats.Entries),
		slog.Int("total_entries", total),
		slog.Duration("elapsed", elapsed),
	)

	// Print summary
	fmt.Println()
	fmt.Println("=== Import Summary ===")
	fmt.Printf("Entries imported:    %d\n", stats.Entries)
	fmt.Printf("Special days:        %d\n", stats.SpecialDays)
	fmt.Printf("Distinct years:      %d\n", len(stats.Years))
	fmt.Printf("Entries in database: %d\n", total)
	fmt.Printf("Time elapsed:        %v\n", elapsed.Round(time.Millisecond))

	return nil
}

// decodeFile decodes JSON for a .json extension and YAML otherwise.
func decodeFile(data []byte, ext string) (*ImportFile, error) {
	var file ImportFile

	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	}

	return &file, nil
}

// buildEntries parses every date up front so a bad line fails before the
// database is touched.
func buildEntries(raw []ImportEntry, offset int) ([]*database.Entry, error) {
	entries := make([]*database.Entry, 0, len(raw))
	for i, e := range raw {
		d, err := arvelie.Parse(strings.TrimSpace(e.Date), arvelie.WithYearOffset(offset))
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		entries = append(entries, database.NewEntry(d, strings.TrimSpace(e.Note)))
	}
	return entries, nil
}

// importEntries writes all entries in one transaction.
func importEntries(ctx context.Context, db *database.DB, entries []*database.Entry, logger *slog.Logger) (*ImportStats, error) {
	stats := &ImportStats{Years: make(map[int]int)}

	err := db.WithTx(ctx, func(tx *database.Tx) error {
		for i, e := range entries {
			if err := tx.CreateEntry(ctx, e); err != nil {
				return fmt.Errorf("create entry %d (%s): %w", i+1, e.Arvelie, err)
			}

			stats.Entries++
			stats.Years[e.Year]++
			if e.DayOfYear >= arvelie.YearDay {
				stats.SpecialDays++
			}

			// Progress logging every 100 entries
			if (i+1)%100 == 0 {
				logger.Debug("import progress",
					slog.Int("entry", i+1),
					slog.Int("total", len(entries)),
				)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return stats, nil
}
