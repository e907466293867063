package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/scacchista/tacticrun/internal/tactic"
)

var logger = log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile)

// suiteFiles maps the suite names accepted by -suite to their files inside
// -suitedir.
var suiteFiles = map[string]string{
	"wac":       "wac.epd",
	"bk":        "bk.epd",
	"eigenmann": "eigenmann.epd",
}

type Config struct {
	Suite       string
	SuiteDir    string
	SuiteFile   string
	Engine      string
	Depth       int
	Threads     int
	Limit       int
	Timeout     time.Duration
	Concurrency int
}

var config Config

func main() {
	var err = run()
	if err != nil {
		logger.Println(err)
		os.Exit(1)
	}
}

func run() error {
	flag.StringVar(&config.Suite, "suite", "wac",
		"named suite to run: "+strings.Join(suiteNames(), ", "))
	flag.StringVar(&config.SuiteDir, "suitedir", "testsuites",
		"directory holding the named suite files")
	flag.StringVar(&config.SuiteFile, "suitefile", "",
		"explicit suite file, overrides -suite")
	flag.StringVar(&config.Engine, "engine", "scacchista",
		"engine binary, a command name or a path")
	flag.IntVar(&config.Depth, "depth", 6, "search depth per position")
	flag.IntVar(&config.Threads, "threads", 1, "engine search threads")
	flag.IntVar(&config.Limit, "limit", -1,
		"run only the first N positions, negative runs all")
	flag.DurationVar(&config.Timeout, "timeout", 0,
		"give up on a position after this long, 0 waits forever")
	flag.IntVar(&config.Concurrency, "concurrency", 1,
		"engine processes to run at once")
	flag.Parse()

	logger.Printf("%+v", config)

	var suiteName, suitePath, err = resolveSuite(config)
	if err != nil {
		return err
	}
	enginePath, err := resolveEngine(config.Engine)
	if err != nil {
		return err
	}

	_, err = tactic.Run(context.Background(), tactic.Config{
		SuiteName:   suiteName,
		SuitePath:   suitePath,
		EnginePath:  enginePath,
		Depth:       config.Depth,
		Threads:     config.Threads,
		Limit:       config.Limit,
		Timeout:     config.Timeout,
		Concurrency: config.Concurrency,
	}, os.Stdout, logger)
	return err
}

func suiteNames() []string {
	var names = maps.Keys(suiteFiles)
	slices.Sort(names)
	return names
}

// resolveSuite picks the suite file to run: an explicit -suitefile wins,
// otherwise -suite is looked up in the registry under -suitedir. The
// returned name is empty for explicit files.
func resolveSuite(cfg Config) (string, string, error) {
	if cfg.SuiteFile != "" {
		var path = mapPath(cfg.SuiteFile)
		if _, err := os.Stat(path); err != nil {
			return "", "", fmt.Errorf("suite file not found: %v", path)
		}
		return "", path, nil
	}
	var file, ok = suiteFiles[cfg.Suite]
	if !ok {
		return "", "", fmt.Errorf("unknown suite %q, expected one of: %v",
			cfg.Suite, strings.Join(suiteNames(), ", "))
	}
	var path = filepath.Join(mapPath(cfg.SuiteDir), file)
	if _, err := os.Stat(path); err != nil {
		return "", "", fmt.Errorf("suite file not found: %v", path)
	}
	return cfg.Suite, path, nil
}

// resolveEngine accepts either a bare command name looked up on PATH or a
// path to the binary.
func resolveEngine(engine string) (string, error) {
	if !strings.ContainsRune(engine, os.PathSeparator) {
		var path, err = exec.LookPath(engine)
		if err != nil {
			return "", fmt.Errorf("engine binary not found: %v", engine)
		}
		return path, nil
	}
	var path = mapPath(engine)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("engine binary not found: %v", path)
	}
	return path, nil
}
