package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/twistrand/engine"
	"github.com/nathoo/twistrand/engine/save"
	"github.com/nathoo/twistrand/session"
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed user input
	isSystem bool // true for system messages
}

// Model is the Bubble Tea model for the twistrand TUI.
type Model struct {
	session *session.Session

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // accumulated output lines (unstyled, for re-wrapping)

	width    int
	height   int
	ready    bool
	trace    bool
	quitting bool
	lastCmd  string
	saveDir  string
}

// sessionOutputMsg carries output from the session into the Update loop.
type sessionOutputMsg struct {
	input    string   // echoed user input (empty for the banner)
	lines    []string // output lines
	isSystem bool     // true for meta-command output
	isErr    bool     // true for failed commands
}

// New creates a TUI model wired to the given session.
func New(s *session.Session) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	home, _ := os.UserHomeDir()
	return Model{
		session: s,
		input:   ti,
		history: NewHistory(100),
		saveDir: filepath.Join(home, ".twistrand", "saves"),
	}
}

// Run starts the Bubble Tea program.
func Run(s *session.Session) error {
	m := New(s)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init returns the initial command that produces the banner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput())
}

func (m Model) initialOutput() tea.Cmd {
	return func() tea.Msg {
		e := m.session.Active()
		lines := []string{
			fmt.Sprintf("Engine %q seeded with %d.", m.session.ActiveName(), e.RootSeed()),
			"Type a sampling command, or /help for the full list.",
		}
		if lib := m.session.Library(); lib != nil && lib.Pack.Name != "" {
			lines = append(lines, fmt.Sprintf("Preset pack: %s", lib.Pack.Name))
		}
		return sessionOutputMsg{lines: lines, isSystem: true}
	}
}

// Update handles messages (key presses, window resize, session output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.ResetCursor()
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case sessionOutputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()

	// Handle "again" / "g".
	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m = m.appendOutput(sessionOutputMsg{
				input: input, lines: []string{"Nothing to repeat."}, isSystem: true,
			})
			return m, nil
		}
		input = m.lastCmd
	} else if !strings.HasPrefix(input, "/") {
		m.lastCmd = input
	}

	// Meta-commands.
	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(sessionOutputMsg{input: input, lines: output, isSystem: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if lower == "help" {
		m = m.appendOutput(sessionOutputMsg{input: input, lines: m.cmdHelp(), isSystem: true})
		return m, nil
	}

	// Sampling command.
	result := m.session.Eval(input)
	output := result.Output
	if m.trace && !result.IsErr {
		output = append(output, fmt.Sprintf("[trace] units: %d, count: %d", result.Units, result.Count))
	}
	m = m.appendOutput(sessionOutputMsg{input: input, lines: output, isErr: result.IsErr})
	return m, nil
}

// appendOutput adds lines to the transcript and refreshes the viewport.
func (m Model) appendOutput(msg sessionOutputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{
			text: "> " + msg.input, isInput: true,
		})
	}

	for _, line := range msg.lines {
		rl := rawLine{text: line, isSystem: msg.isSystem}
		if !msg.isSystem {
			rl.kind = classifyLine(line)
			if msg.isErr {
				rl.kind = kindError
			}
		}
		m.rawLines = append(m.rawLines, rl)
	}

	// Blank line separator between commands.
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()

	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordWrap(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries. Preserves existing newlines within the text.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wLen := len(word)

		if i == 0 {
			result.WriteString(word)
			lineLen = wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	parts := strings.Fields(input)
	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/engine":
		return m.cmdEngine(args), false

	case "/seed":
		return m.cmdSeed(args), false

	case "/reset":
		m.session.Active().Reset()
		return []string{"Engine reset to its seed."}, false

	case "/jump":
		return m.cmdJump(args), false

	case "/discard":
		return m.cmdDiscard(args), false

	case "/state":
		return m.cmdState(), false

	case "/save":
		return m.cmdSave(firstArg(args)), false

	case "/load":
		return m.cmdLoad(firstArg(args)), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	case "/help":
		return m.cmdHelp(), false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) cmdEngine(args []string) []string {
	if len(args) == 0 {
		return []string{"Usage: /engine new <name> [seed] | use <name> | list"}
	}

	switch args[0] {
	case "new":
		if len(args) < 2 {
			return []string{"Usage: /engine new <name> [seed]"}
		}
		seed := engine.NewSeed()
		if len(args) >= 3 {
			v, err := strconv.ParseInt(args[2], 10, 32)
			if err != nil {
				return []string{fmt.Sprintf("Bad seed: %s", args[2])}
			}
			seed = int32(v)
		}
		m.session.Add(args[1], seed)
		return []string{fmt.Sprintf("Engine %q created with seed %d.", args[1], seed)}

	case "use":
		if len(args) < 2 {
			return []string{"Usage: /engine use <name>"}
		}
		if !m.session.Use(args[1]) {
			return []string{fmt.Sprintf("No engine named %q.", args[1])}
		}
		return []string{fmt.Sprintf("Now using engine %q.", args[1])}

	case "list":
		var out []string
		for _, name := range m.session.Names() {
			marker := " "
			if name == m.session.ActiveName() {
				marker = "*"
			}
			out = append(out, fmt.Sprintf("%s %s", marker, name))
		}
		return out

	default:
		return []string{fmt.Sprintf("Unknown engine subcommand: %s", args[0])}
	}
}

func (m *Model) cmdSeed(args []string) []string {
	name := m.session.ActiveName()
	seed := engine.NewSeed()
	if len(args) > 0 {
		v, err := strconv.ParseInt(args[0], 10, 32)
		if err != nil {
			return []string{fmt.Sprintf("Bad seed: %s", args[0])}
		}
		seed = int32(v)
	}
	m.session.Add(name, seed)
	return []string{fmt.Sprintf("Engine %q reseeded with %d.", name, seed)}
}

func (m *Model) cmdJump(args []string) []string {
	if len(args) != 1 {
		return []string{"Usage: /jump <count>"}
	}
	target, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return []string{fmt.Sprintf("Bad count: %s", args[0])}
	}
	m.session.Active().JumpToState(uint32(target))
	return []string{fmt.Sprintf("Jumped to count %d.", target)}
}

func (m *Model) cmdDiscard(args []string) []string {
	if len(args) != 1 {
		return []string{"Usage: /discard <n>"}
	}
	n, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return []string{fmt.Sprintf("Bad count: %s", args[0])}
	}
	m.session.Active().Discard(uint32(n))
	return []string{fmt.Sprintf("Discarded %d draws (count now %d).", n, m.session.Active().State())}
}

func (m *Model) cmdState() []string {
	e := m.session.Active()
	out := []string{
		fmt.Sprintf("Engine: %s", m.session.ActiveName()),
		fmt.Sprintf("Seed: %d", e.RootSeed()),
		fmt.Sprintf("Count: %d", e.State()),
	}
	if lib := m.session.Library(); lib != nil {
		out = append(out, fmt.Sprintf("Presets: %d tables, %d dice, %d curves, %d charsets",
			len(lib.Tables), len(lib.Dice), len(lib.Curves), len(lib.Charsets)))
	}
	return out
}

func (m *Model) cmdSave(name string) []string {
	if name == "" {
		name = "quicksave"
	}

	data, err := save.Save(m.session.Snapshot())
	if err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	if err := os.MkdirAll(m.saveDir, 0o755); err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	path := filepath.Join(m.saveDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	return []string{fmt.Sprintf("Session saved to %s.", name)}
}

func (m *Model) cmdLoad(name string) []string {
	if name == "" {
		name = "quicksave"
	}

	path := filepath.Join(m.saveDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}

	sd, err := save.Load(data)
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}

	m.session.ApplySnapshot(sd)
	e := m.session.Active()
	return []string{fmt.Sprintf("Session loaded from %s (engine %q, seed %d, count %d).",
		name, m.session.ActiveName(), e.RootSeed(), e.State())}
}

func (m *Model) cmdHelp() []string {
	return []string{
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
		"  biased / bbool / gauss / clamped / trunc",
		"  weighted <w1> <w2> ...    — Weighted index",
		"  roll <N>d<S>              — Dice total, e.g. roll 3d6",
		"  dice/table/curve/charset <preset> — Sample a loaded preset",
		"  str/password/ident/name/hex/pattern — Random strings",
		"  guid / color / vec / unitvec / vec2 / circle / sphere / quat / rotator",
		"  pick <items...> / shuffle <items...>",
		"  luck float|bool|curve ... — Score a value's rarity",
		"  again (g)                 — Repeat your last command",
		"",
		"Navigation: PgUp/PgDn to scroll, Up/Down for command history",
	}
}

func firstArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
