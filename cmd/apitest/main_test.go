package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"github.com/zapponejosh/arvelie/internal/api"
	"github.com/zapponejosh/arvelie/internal/config"
	"github.com/zapponejosh/arvelie/internal/database"
	"github.com/zapponejosh/arvelie/internal/logger"
)

func TestRunner_AgainstServer(t *testing.T) {
	log := logger.Discard()

	db, err := database.Open(database.MemoryPath, log)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if _, err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		Env:                config.EnvProduction,
		APIKey:             "smoke-test-key",
		YearOffset:         2000,
		TraditionalSeasons: true,
		Timezone:           "UTC",
	}

	srv := httptest.NewServer(api.SetupRoutes(api.NewHandlers(db, cfg, log), cfg, log))
	defer srv.Close()

	var out bytes.Buffer
	runner := NewTestRunner(srv.URL, cfg.APIKey, &out, true)
	runner.Run()

	if runner.errorCount != 0 {
		t.Fatalf("runner reported %d failure(s):\n%s", runner.errorCount, out.String())
	}
	if runner.successCount == 0 {
		t.Fatal("runner recorded no checks")
	}
}
