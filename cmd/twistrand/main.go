// Twistrand is a deterministic, replayable random toolkit built on the
// Mersenne Twister.
// Usage: twistrand [--version] [--plain] [--trace] [--seed <n>] [--script <file>] [preset_directory]
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/nathoo/twistrand/cli"
	"github.com/nathoo/twistrand/config"
	"github.com/nathoo/twistrand/engine"
	"github.com/nathoo/twistrand/loader"
	"github.com/nathoo/twistrand/session"
	"github.com/nathoo/twistrand/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	plain := false
	trace := false
	seedSet := false
	var seed int32
	var presetDir string
	var scriptFile string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("twistrand %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--seed":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--seed requires a value\n")
				os.Exit(1)
			}
			i++
			v, err := strconv.ParseInt(args[i], 10, 32)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Bad seed: %s\n", args[i])
				os.Exit(1)
			}
			seed = int32(v)
			seedSet = true
		case "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--script requires a file path\n")
				os.Exit(1)
			}
			i++
			scriptFile = args[i]
		default:
			if presetDir == "" {
				presetDir = args[i]
			}
		}
	}

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Flags override config; config overrides defaults.
	if !seedSet && cfg.DefaultSeed != 0 {
		seed = cfg.DefaultSeed
		seedSet = true
	}
	if presetDir == "" {
		presetDir = cfg.PresetDir
	}
	trace = trace || cfg.Trace
	plain = plain || cfg.Plain

	if !seedSet {
		seed = engine.NewSeed()
	}
	s := session.New(seed)

	// Preset packs are optional: without one, only the preset commands
	// (table/dice/curve/charset) are unavailable.
	if presetDir != "" {
		lib, err := loader.Load(presetDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading presets: %v\n", err)
			os.Exit(1)
		}
		s.SetLibrary(lib)
	}

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := newCLI(s, cfg)
		c.In = f
		c.EchoInput = true
		c.Trace = trace
		c.Run()
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain || !isTerminal() {
		c := newCLI(s, cfg)
		c.Trace = trace
		c.Run()
		return
	}

	if err := tui.Run(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newCLI(s *session.Session, cfg config.Config) *cli.CLI {
	c := cli.New(s)
	if cfg.SaveDir != "" {
		c.SaveDir = cfg.SaveDir
	}
	return c
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
