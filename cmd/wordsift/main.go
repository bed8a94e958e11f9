// Copyright 2025 The WordSift Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the wordsift CLI and msgpack IPC server.

WordSift finds the sentences hidden in a string: every way of deleting
characters from the input is tried, and the results that split into known
words are kept, checked by a grammar filter and ranked by how common their
words are.

# Usage

Run interactively, answering the cutoff and input prompts:

	wordsift

Search one input against the 2000 most common words:

	wordsift -n 2000 -i "icamhappy"

Serve msgpack requests on stdin/stdout:

	wordsift -s

# Configuration

Runtime configuration is read from a TOML file, created with defaults when
missing:

	[dict]
	path = "data/words.txt"
	cutoff = 5000

	[search]
	max_input_len = 40
	workers = 1

	[grammar]
	mode = "heuristic"

Command line flags override config values.

# Command Line Flags

	-config string
	    Path to a custom config file
	-data string
	    Dictionary file (.txt, .msgpack or .db)
	-n int
	    Dictionary cutoff, the number of most common words used
	-i string
	    Input to search; skips the prompts
	-d  Enable debug mode with detailed logging
	-s  Run the msgpack IPC server
	-workers int
	    Parallel search shards
	-naive
	    Validate every mask, no skip-ahead
	-no-progress
	    Hide the progress bar
	-version
	    Show current version
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordsift/internal/cli"
	"github.com/bastiangx/wordsift/internal/logger"
	"github.com/bastiangx/wordsift/internal/utils"
	"github.com/bastiangx/wordsift/pkg/config"
	"github.com/bastiangx/wordsift/pkg/dictionary"
	"github.com/bastiangx/wordsift/pkg/finder"
	"github.com/bastiangx/wordsift/pkg/grammar"
	"github.com/bastiangx/wordsift/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0"
	AppName = "wordsift"
	gh      = "https://github.com/bastiangx/wordsift"
)

// main loads the config and dictionary, then hands over to the server or
// the interactive CLI. It does not implement search logic itself.
func main() {
	// Ctrl+C stops the current search; the partial results still print.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configFile := flag.String("config", "", "Path to custom config file")
	showVersion := flag.Bool("version", false, "Show current version")
	dataPath := flag.String("data", "", "Dictionary file (.txt, .msgpack, .db); default from config")
	cutoff := flag.Int("n", 0, "Dictionary cutoff: number of most common words to use")
	input := flag.String("i", "", "Input string to search; skips the prompts")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	serverMode := flag.Bool("s", false, "Run the msgpack IPC server on stdin/stdout")
	workers := flag.Int("workers", 0, "Parallel search shards (default from config)")
	naive := flag.Bool("naive", false, "Validate every mask without skip-ahead")
	noProgress := flag.Bool("no-progress", false, "Hide the progress bar")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	defaultConfigPath, err := pathResolver.GetConfigPath("config.toml")
	if err != nil {
		log.Warnf("Failed to determine config path: %v", err)
		defaultConfigPath = ""
	}
	appConfig, configPath, err := config.LoadConfigWithPriority(*configFile, defaultConfigPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(logger.ParseLevel(appConfig.Log.Level))
	}
	if configPath != "" {
		log.Debugf("Using config file: %s", config.GetActiveConfigPath(configPath))
	}

	// flags override the file
	if *dataPath != "" {
		appConfig.Dict.Path = *dataPath
	}
	if *cutoff != 0 {
		appConfig.Dict.Cutoff = *cutoff
	}
	if *workers > 0 {
		appConfig.Search.Workers = *workers
	}
	if *naive {
		appConfig.Search.Naive = true
	}
	if *noProgress {
		appConfig.Search.Progress = false
	}
	if err := appConfig.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	resolvedData := pathResolver.ResolveDataFile(appConfig.Dict.Path)
	dict, err := dictionary.Open(ctx, resolvedData, appConfig.Dict.MaxCutoff)
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}
	log.Debugf("Loaded %d words from %s", dict.Len(), resolvedData)

	filter, closeFilter, err := buildFilter(appConfig.Grammar)
	if err != nil {
		log.Fatalf("Failed to set up grammar filter: %v", err)
	}
	defer closeFilter()

	if *serverMode {
		log.Debug("spawning IPC")
		srv := server.NewServer(dict, filter, appConfig, os.Stdin, os.Stdout)
		if err := srv.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Errorf("Server stopped: %v", err)
			closeFilter()
			os.Exit(1)
		}
		return
	}

	opts := appConfig.SearchOptions()
	progress := appConfig.Search.Progress

	if *input != "" {
		n := appConfig.Dict.Cutoff
		f := finder.New(dict.WithCutoff(n), filter, opts)
		f.SetTimeout(appConfig.SearchTimeout())
		err := cli.Run(ctx, f, utils.NormalizeInput(*input), os.Stdout, progress)
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			log.Errorf("Search failed: %v", err)
			closeFilter()
			os.Exit(1)
		}
		return
	}

	// -n alone presets the cutoff; otherwise it is asked for
	presetCutoff := 0
	if *cutoff != 0 {
		presetCutoff = appConfig.Dict.Cutoff
	}
	prompter := cli.NewPrompter(os.Stdin, os.Stdout)
	handler := cli.NewInputHandler(prompter, os.Stdout, dict, filter, opts,
		appConfig.Dict.MinCutoff, appConfig.Dict.MaxCutoff, progress)
	if err := handler.Start(ctx, presetCutoff, appConfig.SearchTimeout()); err != nil && !errors.Is(err, context.Canceled) {
		log.Errorf("CLI error: %v", err)
		closeFilter()
		os.Exit(1)
	}
}

// buildFilter creates the grammar filter selected by cfg. The returned func
// releases whatever the filter holds.
func buildFilter(cfg config.GrammarConfig) (grammar.Filter, func(), error) {
	noop := func() {}
	switch cfg.Mode {
	case config.GrammarNone:
		return grammar.AcceptAll(grammar.Period), noop, nil
	case config.GrammarCommand:
		cmd := grammar.NewCommand(cfg.Command, cfg.Args...)
		return cmd, func() {
			if err := cmd.Close(); err != nil {
				log.Warnf("Closing grammar command: %v", err)
			}
		}, nil
	default:
		lex, err := grammar.LoadLexicon(cfg.Lexicon)
		if err != nil {
			return nil, noop, err
		}
		log.Debugf("Lexicon holds %d words", lex.Len())
		return grammar.NewHeuristic(lex), noop, nil
	}
}

func printVersion() {
	vlog := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	vlog.SetStyles(styles)

	vlog.Print("")
	vlog.Print(fmt.Sprintf("[ %s ] Finds the sentences hiding in a string", AppName))
	vlog.Print("", "version", Version)
	vlog.Print("")
	vlog.Print("use -h or --help to see available options")
	vlog.Print("Github Repo", "gh", gh)
}
