package cmd

import (
	"io"
	"testing"

	"github.com/utahvbr/bizdirctl/internal/config"
	"github.com/utahvbr/bizdirctl/internal/directory/markdown"
)

func setupTestStore(t *testing.T) *markdown.Store {
	t.Helper()
	s, err := markdown.New(t.TempDir())
	if err != nil {
		t.Fatalf("creating test storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// setupTestEnv points the command globals at a fresh markdown store.
func setupTestEnv(t *testing.T) *markdown.Store {
	t.Helper()
	s := setupTestStore(t)
	dir = s
	appConfig = &config.Config{Backend: "markdown", MaxWidth: 120}
	jsonOutput = false
	showIDOnly = false
	seedForce = false
	seedCount = 60

	prevTerminal := isTerminal
	isTerminal = func() bool { return false }
	t.Cleanup(func() { isTerminal = prevTerminal })
	return s
}

// seededEnv is setupTestEnv plus the sample data.
func seededEnv(t *testing.T, count int) *markdown.Store {
	t.Helper()
	s := setupTestEnv(t)
	if err := runSeed(io.Discard, s, count, 1); err != nil {
		t.Fatalf("seeding: %v", err)
	}
	return s
}
