package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSource(t *testing.T, path string, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestCollectViolationsFlagsApplicationAdapterImport(t *testing.T) {
	t.Chdir(t.TempDir())

	writeSource(t, "contexts/election/voting-core/application/ok.go", `package application

import (
	"context"

	"evote/contexts/election/voting-core/ports"
)

var _ context.Context
var _ ports.Clock
`)
	writeSource(t, "contexts/election/voting-core/application/queries/bad.go", `package queries

import (
	"evote/contexts/election/voting-core/adapters/memory"
	"evote/internal/platform/config"
)

var _ = memory.NewStore
var _ = config.Load
`)
	writeSource(t, "contexts/election/voting-core/application/queries/bad_test.go", `package queries

import "evote/contexts/election/voting-core/adapters/memory"

var _ = memory.NewStore
`)

	violations := collectViolations("contexts")
	rules := make(map[string]bool)
	for _, v := range violations {
		if filepath.Base(v.File) != "bad.go" {
			t.Fatalf("unexpected violation in %s: %s", v.File, v.Rule)
		}
		rules[v.Rule] = true
	}
	for _, rule := range []string{
		"application must not import adapters",
		"application must not import runtime infrastructure",
		"application import is outside explicit allowlist",
	} {
		if !rules[rule] {
			t.Fatalf("expected rule %q to fire, got %+v", rule, violations)
		}
	}
}

func TestIsStdlib(t *testing.T) {
	if !isStdlib("log/slog") {
		t.Fatalf("log/slog is stdlib")
	}
	if isStdlib("gorm.io/gorm") || isStdlib("evote/contexts/election/voting-core/ports") {
		t.Fatalf("module and third-party imports are not stdlib")
	}
}
