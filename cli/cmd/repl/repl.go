// Package repl implements the interactive translation session.
//
// The session maintains a prelude of constant definitions. Entering a
// definition adds it to the prelude; entering a value translates it against
// the prelude and prints the JSON result.
package repl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/binconf/lang"
	"github.com/ardnew/binconf/log"
)

// editSessionMsg is sent when prelude editing completes successfully.
type editSessionMsg struct {
	src  string
	defs []lang.Field
}

// editCancelledMsg is sent when the user cleared the editor content.
type editCancelledMsg struct{}

// editDeclinedMsg is sent when the user declined to re-edit after a
// translation error.
type editDeclinedMsg struct{}

// editErrorMsg is sent when the edit process encounters an unrelated error.
type editErrorMsg struct{ err error }

const (
	evalPrompt = "➜ "
	ctrlPrompt = " :"
)

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help     Print this cruft
  list     List session constants
  edit     Edit definitions in external $EDITOR
  clear    Clear screen
  quit     Exit session

Usage:
  Type a value to translate it against the session constants
  Type a definition like (def name 0b1010); to add a constant
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Esc to toggle between eval and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// echoLine renders the echo of a submitted input under its mode prompt.
func echoLine(mode inputMode, input string) string {
	if mode == modeCtrl {
		return ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input)
	}

	return promptStyle.Render(evalPrompt) + inputStyle.Render(input)
}

// lineState captures the text and cursor of one mode's input line so each
// mode keeps its own line across Esc toggles.
type lineState struct {
	text   string
	cursor int
}

// model is the Bubble Tea model for the session.
type model struct {
	ctxFunc     func() context.Context
	input       textinput.Model
	session     *session
	logger      log.Logger
	history     *History
	histIdx     int
	matches     fuzzy.Matches // ranked candidates for the word at the cursor
	candidates  []string
	wordStart   int // byte offsets of the word under the cursor
	wordEnd     int
	pickIdx     int  // candidate selected while cycling
	cycling     bool // Tab cycling in progress
	cycleOrigin lineState
	width       int
	quitting    bool
	mode        inputMode
	saved       [2]lineState // per-mode line state, indexed by inputMode
}

// Run starts the session with an optional prelude of constant definitions.
func Run(
	ctx context.Context,
	prelude string,
	cacheDir string,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger.TraceContext(
		ctx,
		"repl start",
		slog.String("cache_dir", cacheDir),
		slog.Bool("has_prelude", prelude != ""),
	)

	sess, err := newSession(ctx, prelude, logger)
	if err != nil {
		return err
	}

	logger.TraceContext(
		ctx,
		"repl session loaded",
		slog.Int("constant_count", len(sess.defs)),
	)

	history := NewHistory(filepath.Join(cacheDir, baseHistory))
	if err := history.Load(); err != nil {
		fmt.Printf("Warning: could not load history: %v\n", err)
	}

	logger.TraceContext(
		ctx,
		"repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	m := newModel(ctx, sess, history, logger)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	sess *session,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc: func() context.Context { return ctx },
		input:   ti,
		session: sess,
		logger:  logger,
		history: history,
		histIdx: history.Len(),
		width:   defaultWidth,
		mode:    modeEval,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(evalPrompt) - 2

		return m, nil

	case editSessionMsg:
		m.session.replace(msg.src, msg.defs)
		m.logger.TraceContext(
			m.ctxFunc(),
			"repl edit complete",
			slog.Int("constant_count", len(msg.defs)),
		)

		return m, tea.Println(resultStyle.Render(fmt.Sprintf(
			"✔ — session updated: %d constants", len(msg.defs),
		)))

	case editCancelledMsg:
		return m, tea.Println(hintStyle.Render("🗴 — edit cancelled."))

	case editDeclinedMsg:
		m.quitting = true

		return m, tea.Quit

	case editErrorMsg:
		return m, tea.Println(
			errorStyle.Render("🗴 — error: " + msg.err.Error()),
		)
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	// The line below the input shows exactly one of: the history position,
	// a mode hint on blank input, or the candidate bar.
	switch {
	case m.histIdx < m.history.Len():
		pos := lipgloss.NewStyle().Bold(true).Render(
			strconv.Itoa(m.histIdx + 1),
		)
		b.WriteString(hintStyle.Render(
			fmt.Sprintf("%s/%d", pos, m.history.Len()),
		))

	case strings.TrimSpace(m.input.Value()) == "":
		hint := "Type a value or definition, or press Esc for commands"
		if m.mode == modeCtrl {
			hint = "Type: help, list, edit, clear, quit (press Esc to return)"
		}

		b.WriteString(hintStyle.Render(hint))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(
			m.matches, m.pickIdx, m.cycling, m.width,
		))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(
		m.ctxFunc(),
		"repl keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.cycling = false
		m.histIdx = m.history.Len()
		m.refreshMatches(false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.cycling || len(m.matches) == 0 {
			return m.executeInput()
		}
		// Lock in the cycled candidate without executing.
		m.cycling = false
		m.refreshMatches(true)

		return m, nil

	case tea.KeyTab:
		return m.cycleCandidates(+1)

	case tea.KeyShiftTab:
		return m.cycleCandidates(-1)

	case tea.KeyUp:
		return m.seekHistory(-1)

	case tea.KeyDown:
		return m.seekHistory(+1)

	case tea.KeyShiftUp:
		return m.seekHistoryInMode(-1)

	case tea.KeyShiftDown:
		return m.seekHistoryInMode(+1)

	case tea.KeyEsc:
		if m.cycling {
			// Abandon cycling and restore the line as typed.
			m.cycling = false
			m.input.SetValue(m.cycleOrigin.text)
			m.input.SetCursor(m.cycleOrigin.cursor)
			m.refreshMatches(false)

			return m, nil
		}

		return m.switchToMode(1 - m.mode)

	case tea.KeyRunes:
		if m.cycling && msg.String() == " " {
			m.cycling = false
		}

		var cmd tea.Cmd

		m.histIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		m.refreshMatches(true)

		return m, cmd
	}

	// Backspace, delete, cursor movement: recompute matches but never
	// auto-confirm, so edits stay predictable.
	var cmd tea.Cmd

	m.cycling = false
	m.histIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refreshMatches(false)

	return m, cmd
}

// cycleCandidates advances the candidate selection by step (+1 forward, -1
// backward), starting a cycle if one is not in progress. A lone candidate is
// completed and confirmed immediately.
func (m model) cycleCandidates(step int) (model, tea.Cmd) {
	switch len(m.matches) {
	case 0:
		return m, nil

	case 1:
		m.replaceWord(m.matches[0].Str)
		m.cycling = false
		m.pickIdx = -1
		m.matches = nil

		return m, nil
	}

	if m.cycling {
		m.pickIdx = (m.pickIdx + step + len(m.matches)) % len(m.matches)
	} else {
		m.cycling = true
		m.cycleOrigin = lineState{m.input.Value(), m.input.Position()}

		m.pickIdx = 0
		if step < 0 {
			m.pickIdx = len(m.matches) - 1
		}
	}

	m.replaceWord(m.matches[m.pickIdx].Str)

	return m, nil
}

// replaceWord substitutes the word under the cursor with replacement and
// places the cursor after it.
func (m *model) replaceWord(replacement string) {
	input := m.input.Value()

	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])
	m.input.SetCursor(m.wordStart + len(replacement))

	m.wordEnd = m.wordStart + len(replacement)
}

// refreshMatches recomputes fuzzy matches for the current input state. When
// autoConfirm is set and the typed word already equals the sole remaining
// candidate, the completion is confirmed in place. Deletions and cursor
// navigation pass false so edits never trigger surprise completions.
func (m *model) refreshMatches(autoConfirm bool) {
	m.matches, m.candidates, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.cycling {
		m.pickIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	candidate := m.matches[0].Str
	if m.input.Value()[m.wordStart:m.wordEnd] == candidate {
		m.replaceWord(candidate)
		m.cycling = false
		m.pickIdx = -1
		m.matches = nil
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	// Both modes start from a clean line after submission.
	m.saved = [2]lineState{}
	m.input.SetValue("")

	_, _ = m.history.WriteWithMode(input, m.mode)
	m.histIdx = m.history.Len()

	if m.mode == modeCtrl {
		m.logger.TraceContext(
			m.ctxFunc(),
			"repl command",
			slog.String("input", input),
		)

		return m.executeCommand(input)
	}

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl eval",
		slog.String("input", input),
	)

	echoCmd := tea.Println(echoLine(modeEval, input))

	// A leading "(" means the input is one or more constant definitions
	// rather than a value.
	if strings.HasPrefix(input, "(") {
		if err := m.session.define(m.ctxFunc(), input); err != nil {
			return m, tea.Sequence(
				echoCmd,
				tea.Println(errorStyle.Render("error: "+err.Error())),
			)
		}

		return m, tea.Sequence(
			echoCmd,
			tea.Println(resultStyle.Render(fmt.Sprintf(
				"✔ — session has %d constants", len(m.session.defs),
			))),
		)
	}

	val, err := m.session.translate(m.ctxFunc(), input)
	if err != nil {
		m.logger.TraceContext(
			m.ctxFunc(),
			"repl eval result",
			slog.String("result_type", "error"),
			slog.String("error", err.Error()),
		)

		return m, tea.Sequence(
			echoCmd,
			tea.Println(errorStyle.Render("error: "+err.Error())),
		)
	}

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl eval result",
		slog.String("result_type", val.Type.String()),
	)

	var buf bytes.Buffer
	if err := val.EncodeJSON(&buf, 2); err != nil {
		return m, tea.Sequence(
			echoCmd,
			tea.Println(errorStyle.Render("error: "+err.Error())),
		)
	}

	return m, tea.Sequence(
		echoCmd,
		tea.Println(resultStyle.Render(strings.TrimRight(buf.String(), "\n"))),
	)
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	echoCmd := tea.Println(echoLine(modeCtrl, input))

	cmd := parts[0]

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl exec command",
		slog.String("command", cmd),
	)

	switch cmd {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echoCmd, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echoCmd, tea.Println(helpMessage()))

	case "l", "list":
		return m, tea.Sequence(echoCmd, tea.Println(m.listConstants()))

	case "c", "clear":
		return m, tea.ClearScreen

	case "e", "edit":
		var editCmd tea.Cmd

		m, editCmd = m.handleEdit()

		return m, tea.Sequence(echoCmd, editCmd)

	default:
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + cmd + " (try 'help')"),
		)
	}
}

func (m model) handleEdit() (model, tea.Cmd) {
	cmd := &editSessionCommand{
		src:     m.session.src,
		ctxFunc: m.ctxFunc,
		logger:  m.logger,
	}

	return m, tea.Exec(cmd, func(err error) tea.Msg {
		if errors.Is(err, ErrEditDeclined) {
			return editDeclinedMsg{}
		}

		if err != nil {
			return editErrorMsg{err: err}
		}

		if !cmd.edited {
			return editCancelledMsg{}
		}

		return editSessionMsg{src: cmd.newSrc, defs: cmd.newDefs}
	})
}

// recallEntry loads the history entry at idx into the input line, switching
// modes when the entry was recorded under the other mode.
func (m *model) recallEntry(idx int) {
	entry, err := m.history.GetEntry(idx)
	if err != nil {
		return
	}

	m.histIdx = idx

	if m.mode != entry.Mode {
		*m, _ = m.switchToMode(entry.Mode)
	}

	m.input.SetValue(entry.Line)
	m.input.SetCursor(len(entry.Line))
	m.refreshMatches(false)
}

// seekHistory moves one entry backward or forward through the full history.
// Stepping past the newest entry restores a blank line.
func (m model) seekHistory(step int) (model, tea.Cmd) {
	idx := m.histIdx + step

	switch {
	case idx < 0:
		return m, nil

	case idx >= m.history.Len():
		m.histIdx = m.history.Len()
		m.input.SetValue("")
		m.refreshMatches(false)

	default:
		m.recallEntry(idx)
	}

	return m, nil
}

// seekHistoryInMode moves through history like seekHistory but only visits
// entries recorded under the current mode.
func (m model) seekHistoryInMode(step int) (model, tea.Cmd) {
	for idx := m.histIdx + step; 0 <= idx && idx < m.history.Len(); idx += step {
		entry, err := m.history.GetEntry(idx)
		if err != nil || entry.Mode != m.mode {
			continue
		}

		m.histIdx = idx
		m.input.SetValue(entry.Line)
		m.input.SetCursor(len(entry.Line))
		m.refreshMatches(false)

		return m, nil
	}

	// Walked off the end of this mode's entries.
	if step > 0 && m.histIdx < m.history.Len() {
		m.histIdx = m.history.Len()
		m.input.SetValue("")
		m.refreshMatches(false)
	}

	return m, nil
}

func (m model) listConstants() string {
	if len(m.session.defs) == 0 {
		return hintStyle.Render("  (no constants defined)")
	}

	var b strings.Builder

	for _, def := range m.session.defs {
		b.WriteString(fmt.Sprintf(
			"  %s %s\n", def.Key, hintStyle.Render(preview(def.Value)),
		))
	}

	return strings.TrimRight(b.String(), "\n")
}

// switchToMode activates the given mode. Each mode's line text and cursor
// survive the switch.
func (m model) switchToMode(mode inputMode) (model, tea.Cmd) {
	m.saved[m.mode] = lineState{m.input.Value(), m.input.Position()}

	m.mode = mode

	if mode == modeEval {
		m.input.Prompt = promptStyle.Render(evalPrompt)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
	}

	m.input.SetValue(m.saved[mode].text)
	m.input.SetCursor(m.saved[mode].cursor)

	m.refreshMatches(false)

	return m, nil
}
