package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"makina/interp"
)

const fancyTickPace = 100 * time.Millisecond

const maxLogLines = 200

var (
	gridStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
	logStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	headStyle = lipgloss.NewStyle().Bold(true)
	cursorGlyphStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("212")).
				Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// Fancy is a redrawing terminal UI built on bubbletea, adapting the
// panel-composition style of the teacher pack's worktree dashboard
// (elvisnm-wt's internal/app Model/Update/View) to a much smaller
// domain: one grid panel overlaying live automaton positions, and one
// scrolling log panel underneath.
//
// The interpreter core calls Log/Blit/Error synchronously from its
// tick loop; Fancy forwards each call to the running tea.Program via
// Send, which is safe to call from any goroutine.
type Fancy struct {
	interp.NullDisplay
	program *tea.Program
	done    chan struct{}
}

// NewFancy starts the TUI immediately in the background. w is unused;
// Fancy takes over the terminal directly the way bubbletea programs
// do, rather than writing through an io.Writer.
func NewFancy(_ io.Writer) *Fancy {
	m := newFancyModel()
	p := tea.NewProgram(m, tea.WithAltScreen())
	f := &Fancy{program: p, done: make(chan struct{})}
	go func() {
		p.Run()
		close(f.done)
	}()
	return f
}

func (f *Fancy) Log(text, end string) {
	f.program.Send(fancyLogMsg{line: text + end})
}

func (f *Fancy) Blit(w *interp.World) {
	f.program.Send(snapshotFromWorld(w))
	time.Sleep(fancyTickPace)
}

func (f *Fancy) Error(err error, pos [2]int) {
	f.program.Send(fancyErrMsg{err: err, pos: pos})
}

type fancyLogMsg struct{ line string }
type fancyErrMsg struct {
	err error
	pos [2]int
}
type fancySnapshot struct {
	rows     [][]string
	cursors  map[[2]int]int
	position [2]int
}

func snapshotFromWorld(w *interp.World) fancySnapshot {
	g := w.Grid()
	rows := make([][]string, g.Height())
	for r := range rows {
		rows[r] = g.Row(r)
	}
	cursors := make(map[[2]int]int)
	var last [2]int
	for _, a := range w.Live() {
		cursors[a.Position]++
		last = a.Position
	}
	return fancySnapshot{rows: rows, cursors: cursors, position: last}
}

type fancyModel struct {
	width, height int
	snapshot       fancySnapshot
	log            []string
	errMsg         string
}

func newFancyModel() fancyModel {
	return fancyModel{}
}

func (m fancyModel) Init() tea.Cmd {
	return nil
}

func (m fancyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	case fancyLogMsg:
		m.log = append(m.log, strings.Split(strings.TrimRight(msg.line, "\n"), "\n")...)
		if len(m.log) > maxLogLines {
			m.log = m.log[len(m.log)-maxLogLines:]
		}
		return m, nil
	case fancySnapshot:
		m.snapshot = msg
		return m, nil
	case fancyErrMsg:
		m.errMsg = fmt.Sprintf("error at %s: %v", interp.FormatPosition(msg.pos), msg.err)
		return m, nil
	}
	return m, nil
}

func (m fancyModel) View() string {
	var grid strings.Builder
	for r, row := range m.snapshot.rows {
		for c, glyph := range row {
			if glyph == "" {
				glyph = " "
			}
			if n := m.snapshot.cursors[[2]int{r, c}]; n > 0 {
				grid.WriteString(cursorGlyphStyle.Render(glyph))
			} else {
				grid.WriteString(glyph)
			}
		}
		grid.WriteString("\n")
	}

	live := 0
	for _, n := range m.snapshot.cursors {
		live += n
	}
	header := headStyle.Render(fmt.Sprintf("makina — %d live", live))
	gridPane := gridStyle.Render(strings.TrimRight(grid.String(), "\n"))
	logPane := logStyle.Render(strings.Join(m.log, "\n"))

	view := lipgloss.JoinVertical(lipgloss.Left, header, gridPane, logPane)
	if m.errMsg != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, view, errorStyle.Render(m.errMsg))
	}
	return view
}
