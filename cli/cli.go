// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for the twistrand session.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nathoo/twistrand/engine"
	"github.com/nathoo/twistrand/engine/save"
	"github.com/nathoo/twistrand/session"
	"github.com/nathoo/twistrand/types"
)

// CLI handles line-mode interaction with the user.
type CLI struct {
	Session   *session.Session
	In        io.Reader
	Out       io.Writer
	SaveDir   string
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given session.
func New(s *session.Session) *CLI {
	home, _ := os.UserHomeDir()
	saveDir := filepath.Join(home, ".twistrand", "saves")
	return &CLI{
		Session: s,
		In:      os.Stdin,
		Out:     os.Stdout,
		SaveDir: saveDir,
	}
}

// Run starts the command loop: prompt → input → dispatch → output.
func (c *CLI) Run() {
	c.printSystem(fmt.Sprintf("Engine %q seeded with %d. Type help for commands.",
		c.Session.ActiveName(), c.Session.Active().RootSeed()))

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		if strings.ToLower(input) == "help" {
			c.cmdHelp()
			continue
		}

		// "again" / "g" repeats the last sampling command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Session.Eval(input)
		c.printResult(result)

		if c.Trace && !result.IsErr {
			c.printTrace(result)
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the session should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/engine":
		c.cmdEngine(args)

	case "/seed":
		c.cmdSeed(args)

	case "/reset":
		c.Session.Active().Reset()
		c.printSystem("Engine reset to its seed.")

	case "/jump":
		c.cmdJump(args)

	case "/discard":
		c.cmdDiscard(args)

	case "/state":
		c.cmdState()

	case "/save":
		c.cmdSave(firstArg(args))

	case "/load":
		c.cmdLoad(firstArg(args))

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	case "/help":
		c.cmdHelp()

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

// cmdEngine manages named engines: /engine new <name> [seed],
// /engine use <name>, /engine list.
func (c *CLI) cmdEngine(args []string) {
	if len(args) == 0 {
		c.printSystem("Usage: /engine new <name> [seed] | use <name> | list")
		return
	}

	switch args[0] {
	case "new":
		if len(args) < 2 {
			c.printSystem("Usage: /engine new <name> [seed]")
			return
		}
		seed := engine.NewSeed()
		if len(args) >= 3 {
			v, err := strconv.ParseInt(args[2], 10, 32)
			if err != nil {
				c.printSystem(fmt.Sprintf("Bad seed: %s", args[2]))
				return
			}
			seed = int32(v)
		}
		c.Session.Add(args[1], seed)
		c.printSystem(fmt.Sprintf("Engine %q created with seed %d.", args[1], seed))

	case "use":
		if len(args) < 2 {
			c.printSystem("Usage: /engine use <name>")
			return
		}
		if !c.Session.Use(args[1]) {
			c.printSystem(fmt.Sprintf("No engine named %q.", args[1]))
			return
		}
		c.printSystem(fmt.Sprintf("Now using engine %q.", args[1]))

	case "list":
		for _, name := range c.Session.Names() {
			marker := " "
			if name == c.Session.ActiveName() {
				marker = "*"
			}
			c.printLine(fmt.Sprintf("%s %s", marker, name))
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown engine subcommand: %s", args[0]))
	}
}

// cmdSeed reseeds the active engine: /seed [value]. No value draws a new
// seed from entropy.
func (c *CLI) cmdSeed(args []string) {
	name := c.Session.ActiveName()
	seed := engine.NewSeed()
	if len(args) > 0 {
		v, err := strconv.ParseInt(args[0], 10, 32)
		if err != nil {
			c.printSystem(fmt.Sprintf("Bad seed: %s", args[0]))
			return
		}
		seed = int32(v)
	}
	c.Session.Add(name, seed)
	c.printSystem(fmt.Sprintf("Engine %q reseeded with %d.", name, seed))
}

func (c *CLI) cmdJump(args []string) {
	if len(args) != 1 {
		c.printSystem("Usage: /jump <count>")
		return
	}
	target, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		c.printSystem(fmt.Sprintf("Bad count: %s", args[0]))
		return
	}
	c.Session.Active().JumpToState(uint32(target))
	c.printSystem(fmt.Sprintf("Jumped to count %d.", target))
}

func (c *CLI) cmdDiscard(args []string) {
	if len(args) != 1 {
		c.printSystem("Usage: /discard <n>")
		return
	}
	n, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		c.printSystem(fmt.Sprintf("Bad count: %s", args[0]))
		return
	}
	c.Session.Active().Discard(uint32(n))
	c.printSystem(fmt.Sprintf("Discarded %d draws (count now %d).", n, c.Session.Active().State()))
}

func (c *CLI) cmdState() {
	e := c.Session.Active()
	c.printSystem(fmt.Sprintf("Engine: %s", c.Session.ActiveName()))
	c.printSystem(fmt.Sprintf("Seed: %d", e.RootSeed()))
	c.printSystem(fmt.Sprintf("Count: %d", e.State()))
	if lib := c.Session.Library(); lib != nil {
		c.printSystem(fmt.Sprintf("Presets: %d tables, %d dice, %d curves, %d charsets",
			len(lib.Tables), len(lib.Dice), len(lib.Curves), len(lib.Charsets)))
	}
}

func (c *CLI) cmdSave(name string) {
	if name == "" {
		name = "quicksave"
	}

	data, err := save.Save(c.Session.Snapshot())
	if err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	if err := os.MkdirAll(c.SaveDir, 0o755); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	path := filepath.Join(c.SaveDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	c.printSystem(fmt.Sprintf("Session saved to %s.", name))
}

func (c *CLI) cmdLoad(name string) {
	if name == "" {
		name = "quicksave"
	}

	path := filepath.Join(c.SaveDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	sd, err := save.Load(data)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	c.Session.ApplySnapshot(sd)
	e := c.Session.Active()
	c.printSystem(fmt.Sprintf("Session loaded from %s (engine %q, seed %d, count %d).",
		name, c.Session.ActiveName(), e.RootSeed(), e.State()))
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /engine new <name> [seed] — Create and select an engine",
		"  /engine use <name>        — Select an engine",
		"  /engine list              — List engines",
		"  /seed [value]             — Reseed the active engine",
		"  /reset                    — Rewind the active engine to its seed",
		"  /jump <count>             — Jump to an absolute consumption count",
		"  /discard <n>              — Discard n draws",
		"  /state                    — Show engine name, seed, and count",
		"  /save [name]              — Save the session (default: quicksave)",
		"  /load [name]              — Load a session (default: quicksave)",
		"  /trace                    — Toggle per-command consumption output",
		"  /quit                     — Exit",
		"",
		"Sampling:",
		"  int [min max]             — Uniform integer (default 0..99)",
		"  float [min max]           — Uniform float (default 0..1)",
		"  bool [p]                  — Weighted coin (default 0.5)",
		"  biased <min> <max> <toward> <force>",
		"  bbool <p> <true|false> <force>",
		"  gauss [mean stddev]       — Normal sample (default 0, 1)",
		"  clamped <min> <max> <bias> <spread> [attempts]",
		"  trunc <min> <max> <bias> <spread>",
		"  weighted <w1> <w2> ...    — Weighted index",
		"  roll <N>d<S>              — Dice total, e.g. roll 3d6",
		"  dice/table/curve/charset <preset> — Sample a loaded preset",
		"  str/password/ident/name/hex/pattern — Random strings",
		"  guid                      — Fresh 128-bit identifier",
		"  color/vec/unitvec/vec2/circle/sphere/quat/rotator",
		"  pick <items...> / shuffle <items...>",
		"  luck float|bool|curve ... — Score a value's rarity",
		"  again (g)                 — Repeat your last command",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) printTrace(result types.Result) {
	c.printSystem(fmt.Sprintf("[trace] units: %d, count: %d", result.Units, result.Count))
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}

func firstArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
