package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSuiteNamesSorted(t *testing.T) {
	var got = strings.Join(suiteNames(), ",")
	if got != "bk,eigenmann,wac" {
		t.Fatalf("got %v", got)
	}
}

func TestResolveSuiteFromRegistry(t *testing.T) {
	var dir = t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "wac.epd"), []byte("fen;bm Qg6\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var name, path, err = resolveSuite(Config{Suite: "wac", SuiteDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if name != "wac" {
		t.Fatalf("name: got %v", name)
	}
	if path != filepath.Join(dir, "wac.epd") {
		t.Fatalf("path: got %v", path)
	}
}

func TestResolveSuiteUnknownName(t *testing.T) {
	var _, _, err = resolveSuite(Config{Suite: "nosuch", SuiteDir: t.TempDir()})
	if err == nil || !strings.Contains(err.Error(), "unknown suite") {
		t.Fatalf("got %v", err)
	}
}

func TestResolveSuiteMissingFile(t *testing.T) {
	var _, _, err = resolveSuite(Config{Suite: "bk", SuiteDir: t.TempDir()})
	if err == nil || !strings.Contains(err.Error(), "suite file not found") {
		t.Fatalf("got %v", err)
	}
}

func TestResolveSuiteExplicitFileWins(t *testing.T) {
	var file = filepath.Join(t.TempDir(), "custom.epd")
	if err := os.WriteFile(file, []byte("fen;bm Qg6\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var name, path, err = resolveSuite(Config{Suite: "wac", SuiteFile: file})
	if err != nil {
		t.Fatal(err)
	}
	if name != "" {
		t.Fatalf("explicit files carry no registry name, got %v", name)
	}
	if path != file {
		t.Fatalf("path: got %v", path)
	}
}

func TestResolveEngineByPath(t *testing.T) {
	var file = filepath.Join(t.TempDir(), "engine")
	if err := os.WriteFile(file, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	var path, err = resolveEngine(file)
	if err != nil {
		t.Fatal(err)
	}
	if path != file {
		t.Fatalf("path: got %v", path)
	}
}

func TestResolveEngineMissingName(t *testing.T) {
	var _, err = resolveEngine("tacticrun-surely-not-installed")
	if err == nil || !strings.Contains(err.Error(), "engine binary not found") {
		t.Fatalf("got %v", err)
	}
}

func TestMapPathHome(t *testing.T) {
	var got = mapPath("~/engines/counter")
	if strings.HasPrefix(got, "~") {
		t.Fatalf("home not expanded: %v", got)
	}
	if !strings.HasSuffix(got, filepath.Join("engines", "counter")) {
		t.Fatalf("got %v", got)
	}
	if mapPath("engines/counter") != "engines/counter" {
		t.Fatal("plain relative paths must pass through")
	}
}
