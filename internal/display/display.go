// Package display is the terminal front end of the chat command.
//
// Bubble Tea owns the bottom of the screen: an order status bar and the
// input line. Replies are pushed into the scrollback above it through
// Program.Println, which is safe from any goroutine.
package display

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ── Palette ──────────────────────────────────────────────────────

var (
	colorMuted  = lipgloss.Color("#78716c")
	colorText   = lipgloss.Color("#d6d3d1")
	colorAccent = lipgloss.Color("#fdba74")
	colorGood   = lipgloss.Color("#86efac")
	colorBad    = lipgloss.Color("#f87171")
	colorReply  = lipgloss.Color("#fef3c7")
)

var (
	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#292524")).
			Foreground(colorText)

	statusKeyStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	statusValueStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	openBadgeStyle   = lipgloss.NewStyle().Foreground(colorGood)
	closedBadgeStyle = lipgloss.NewStyle().Foreground(colorBad)
	dividerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#44403c"))

	// BannerStyle colours the startup banner and the hints under it.
	BannerStyle = lipgloss.NewStyle().Foreground(colorAccent)

	replyStyle  = lipgloss.NewStyle().Foreground(colorReply)
	linkStyle   = lipgloss.NewStyle().Foreground(colorGood).Underline(true)
	hintStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle  = lipgloss.NewStyle().Foreground(colorBad).Bold(true)
	echoStyle   = lipgloss.NewStyle().Foreground(colorText)
	youStyle    = lipgloss.NewStyle().Foreground(colorAccent)
	cursorStyle = lipgloss.NewStyle().Foreground(colorAccent)
)

// inputPrompt stays unstyled text; the textinput width math counts bytes.
const inputPrompt = "voce> "

// historySize bounds the recall buffer of sent lines.
const historySize = 50

// Status is what the bar shows about the order in progress.
type Status struct {
	Restaurant string
	Step       string
	Items      int
	Total      string
	Open       bool
}

type statusMsg Status

// ── UI ───────────────────────────────────────────────────────────

// UI runs the Bubble Tea program for one chat.
//
// After [UI.WaitReady] returns, any goroutine may print, call
// [UI.SetStatus] and receive from [UI.InputChan].
type UI struct {
	prog    *tea.Program
	lines   chan string
	ready   chan struct{}
	stopped chan struct{}
	first   Status
	exited  atomic.Bool
}

// NewUI creates the display showing initial until the first update.
func NewUI(initial Status) *UI {
	return &UI{
		first:   initial,
		lines:   make(chan string, 16),
		ready:   make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

func (u *UI) live() bool { return u.prog != nil && !u.exited.Load() }

// Println writes above the input area, or to stdout once the program
// has stopped.
func (u *UI) Println(a ...interface{}) {
	if u.live() {
		u.prog.Println(a...)
		return
	}
	fmt.Println(a...)
}

// InputChan delivers each line the user submits.
func (u *UI) InputChan() <-chan string { return u.lines }

// SetStatus replaces the status bar contents.
func (u *UI) SetStatus(s Status) {
	if u.live() {
		u.prog.Send(statusMsg(s))
	}
}

// printStyled renders every line of text with an indent.
func (u *UI) printStyled(style lipgloss.Style, text string) {
	for _, line := range strings.Split(text, "\n") {
		u.Println(style.Render("  " + line))
	}
}

// PrintChat prints an assistant reply.
func (u *UI) PrintChat(text string) { u.printStyled(replyStyle, text) }

// PrintUrgent prints an error.
func (u *UI) PrintUrgent(text string) { u.printStyled(errorStyle, text) }

// PrintLink prints the checkout link.
func (u *UI) PrintLink(link string) {
	u.Println(hintStyle.Render("  whatsapp: ") + linkStyle.Render(link))
}

// PrintUserInput echoes a submitted line into the scrollback.
func (u *UI) PrintUserInput(text string) {
	u.Println(youStyle.Render("voce> ") + echoStyle.Render(text))
}

// WaitReady blocks until the event loop runs.
func (u *UI) WaitReady() { <-u.ready }

// Quit stops the event loop.
func (u *UI) Quit() {
	if u.prog != nil {
		u.prog.Quit()
	}
}

// QuitChan is closed once Run has returned.
func (u *UI) QuitChan() <-chan struct{} { return u.stopped }

// Run blocks until the user quits or Quit is called.
func (u *UI) Run() error {
	u.prog = tea.NewProgram(newChatModel(u.first, u.lines, u.ready, u.PrintUserInput))
	_, err := u.prog.Run()
	u.exited.Store(true)
	close(u.stopped)
	return err
}

// ── Model ────────────────────────────────────────────────────────

type chatModel struct {
	input   textinput.Model
	out     chan<- string
	ready   chan struct{}
	echo    func(string)
	status  Status
	width   int
	history []string
	// recall indexes history while browsing; len(history) means a fresh line.
	recall int
}

func newChatModel(initial Status, out chan<- string, ready chan struct{}, echo func(string)) chatModel {
	in := textinput.New()
	in.Prompt = inputPrompt
	in.PromptStyle = youStyle
	in.TextStyle = echoStyle
	in.Cursor.Style = cursorStyle
	in.CharLimit = 500
	in.Width = 60
	in.Focus()

	return chatModel{input: in, out: out, ready: ready, echo: echo, status: initial}
}

func (m chatModel) Init() tea.Cmd {
	ready := m.ready
	return tea.Batch(
		textinput.Blink,
		tea.SetWindowTitle(m.title()),
		func() tea.Msg {
			close(ready)
			return nil
		},
	)
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyUp:
			return m.browse(-1), nil
		case tea.KeyDown:
			return m.browse(1), nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > len(inputPrompt) {
			m.input.Width = msg.Width - len(inputPrompt)
		}
		return m, nil

	case statusMsg:
		m.status = Status(msg)
		return m, tea.SetWindowTitle(m.title())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit forwards the current line and records it for recall.
func (m chatModel) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()
	if strings.TrimSpace(line) == "" {
		return m, nil
	}

	m.history = append(m.history, line)
	if len(m.history) > historySize {
		m.history = m.history[len(m.history)-historySize:]
	}
	m.recall = len(m.history)

	m.out <- line
	// Println from Update would deadlock the program.
	echo := m.echo
	return m, func() tea.Msg {
		if echo != nil {
			echo(line)
		}
		return nil
	}
}

// browse moves through sent lines; stepping past the newest clears the input.
func (m chatModel) browse(step int) chatModel {
	next := m.recall + step
	if next < 0 || next > len(m.history) {
		return m
	}
	m.recall = next
	if next == len(m.history) {
		m.input.SetValue("")
	} else {
		m.input.SetValue(m.history[next])
	}
	m.input.CursorEnd()
	return m
}

func (m chatModel) title() string {
	if m.status.Restaurant == "" {
		return "ottoorder"
	}
	return "ottoorder: " + m.status.Restaurant
}

func (m chatModel) View() string {
	return m.statusBar() + "\n\n" + m.input.View()
}

func (m chatModel) statusBar() string {
	s := m.status
	badge := closedBadgeStyle.Render("fechado")
	if s.Open {
		badge = openBadgeStyle.Render("aberto")
	}

	field := func(key, value string) string {
		return statusKeyStyle.Render(key+" ") + statusValueStyle.Render(value)
	}
	cells := []string{
		statusValueStyle.Render(s.Restaurant),
		field("etapa", s.Step),
		field("itens", fmt.Sprint(s.Items)),
		field("total", s.Total),
		badge,
	}

	width := m.width
	if width <= 0 {
		width = 80
	}
	return statusBarStyle.Width(width).Render(" " + strings.Join(cells, dividerStyle.Render(" · ")) + " ")
}
