// Package tui renders a live game in the terminal with bubbletea. The
// match runs on its own goroutine and streams applied moves into the
// program; interactive seats pick their moves with the cursor keys.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tictactoe/engine"
	"tictactoe/game"
	"tictactoe/player"
)

const (
	updateBuffer = 64
	recentMoves  = 8
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
	xStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	oStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	winStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true).Reverse(true)
	selectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	resultStyle = lipgloss.NewStyle().Bold(true)
)

// moveMsg carries one applied move and the position it produced.
type moveMsg struct {
	entry game.HistoryEntry
	view  game.BoardView
}

// moveRequestMsg asks the display to pick a move for an interactive
// seat. The reply channel is buffered so the UI never blocks on it.
type moveRequestMsg struct {
	side  game.Cell
	legal map[game.Move]bool
	reply chan moveReply
}

type moveReply struct {
	mv  game.Move
	err error
}

// doneMsg closes the update stream with the final result.
type doneMsg struct {
	result engine.Result
	err    error
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForUpdate(updates chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-updates
	}
}

type model struct {
	size      int
	winLength int
	nameX     string
	nameO     string
	updates   chan tea.Msg

	view    game.BoardView
	last    *game.Move
	toMove  game.Cell
	moves   int
	recent  []string
	started time.Time
	elapsed time.Duration

	selecting bool
	pending   moveRequestMsg
	cursor    game.Move

	finished bool
	result   engine.Result
	runErr   error
	winLine  map[game.Move]bool
}

func newModel(size, winLength int, nameX, nameO string, updates chan tea.Msg) model {
	board, _ := game.NewBoard(size, winLength)
	return model{
		size:      size,
		winLength: winLength,
		nameX:     nameX,
		nameO:     nameO,
		updates:   updates,
		view:      board.Snapshot(),
		toMove:    game.X,
		cursor:    game.Move{Row: size / 2, Col: size / 2},
		started:   time.Now(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.updates), tick())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		if m.finished {
			return m, nil
		}
		m.elapsed = time.Since(m.started)
		return m, tick()

	case moveMsg:
		mv := msg.entry.Move
		m.view = msg.view
		m.last = &mv
		m.toMove = msg.entry.Player.Opponent()
		m.moves++
		line := fmt.Sprintf("%3d. %s (%d, %d)", m.moves, msg.entry.Player, mv.Row, mv.Col)
		m.recent = append([]string{line}, m.recent...)
		if len(m.recent) > recentMoves {
			m.recent = m.recent[:recentMoves]
		}
		return m, waitForUpdate(m.updates)

	case moveRequestMsg:
		m.selecting = true
		m.pending = msg
		return m, waitForUpdate(m.updates)

	case doneMsg:
		return m.finish(msg), nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.selecting {
			m.pending.reply <- moveReply{err: errors.New("player left the game")}
			m.selecting = false
			m.pending = moveRequestMsg{}
			return m, nil
		}
		return m, tea.Quit
	case "up":
		if m.selecting && m.cursor.Row > 0 {
			m.cursor.Row--
		}
	case "down":
		if m.selecting && m.cursor.Row < m.size-1 {
			m.cursor.Row++
		}
	case "left":
		if m.selecting && m.cursor.Col > 0 {
			m.cursor.Col--
		}
	case "right":
		if m.selecting && m.cursor.Col < m.size-1 {
			m.cursor.Col++
		}
	case "enter", " ":
		if m.selecting && m.pending.legal[m.cursor] {
			m.pending.reply <- moveReply{mv: m.cursor}
			m.selecting = false
			m.pending = moveRequestMsg{}
		}
	}
	return m, nil
}

// finish rebuilds the final position from the recorded history, so the
// last frame is exact even when streamed frames were dropped.
func (m model) finish(msg doneMsg) model {
	m.finished = true
	m.selecting = false
	m.pending = moveRequestMsg{}
	m.result = msg.result
	m.runErr = msg.err
	m.moves = len(msg.result.Moves)

	board, err := game.NewBoard(m.size, m.winLength)
	if err != nil {
		return m
	}
	for _, e := range msg.result.Moves {
		board.ApplyMove(e.Move.Row, e.Move.Col, e.Player)
	}
	m.view = board.Snapshot()
	if n := len(msg.result.Moves); n > 0 {
		last := msg.result.Moves[n-1].Move
		m.last = &last
		if msg.result.Winner != game.Empty {
			m.winLine = lineSet(board.WinningLine(last.Row, last.Col))
		}
	}
	return m
}

func lineSet(line []game.Move) map[game.Move]bool {
	if len(line) == 0 {
		return nil
	}
	set := make(map[game.Move]bool, len(line))
	for _, mv := range line {
		set[mv] = true
	}
	return set
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (X) vs %s (O)", m.nameX, m.nameO)))
	b.WriteByte('\n')
	b.WriteString(faintStyle.Render(fmt.Sprintf("%dx%d board, %d in a row", m.size, m.size, m.winLength)))
	b.WriteString("\n\n")

	for row := 0; row < m.size; row++ {
		for col := 0; col < m.size; col++ {
			if col > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(m.renderCell(row, col))
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	b.WriteString(m.statusLine())
	b.WriteByte('\n')

	if len(m.recent) > 0 {
		b.WriteByte('\n')
		b.WriteString(faintStyle.Render("recent moves"))
		b.WriteByte('\n')
		for _, line := range m.recent {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m model) renderCell(row, col int) string {
	cell := m.view.At(row, col)
	mv := game.Move{Row: row, Col: col}

	style := emptyStyle
	switch cell {
	case game.X:
		style = xStyle
	case game.O:
		style = oStyle
	}
	switch {
	case m.winLine[mv]:
		style = winStyle
	case m.selecting && m.cursor == mv:
		style = style.Reverse(true)
	case m.last != nil && *m.last == mv:
		style = style.Underline(true)
	}
	return style.Render(cell.String())
}

func (m model) statusLine() string {
	if m.finished {
		return resultStyle.Render(m.resultLine()) + "\n" + faintStyle.Render("press q to quit")
	}
	who := m.nameX
	if m.toMove == game.O {
		who = m.nameO
	}
	status := fmt.Sprintf("move %d, %s (%s) to move, %s elapsed",
		m.moves+1, who, m.toMove, m.elapsed.Round(time.Second))
	if m.selecting {
		return status + "\n" + selectStyle.Render("your turn: arrow keys move, enter plays, q forfeits")
	}
	return status
}

func (m model) resultLine() string {
	if m.runErr != nil {
		return fmt.Sprintf("game failed: %v", m.runErr)
	}
	res := m.result
	switch {
	case res.Forfeit():
		return fmt.Sprintf("%s forfeits (%s), %s wins", res.Offender, res.Reason, res.WinnerName())
	case res.Winner == game.Empty:
		return "game drawn"
	default:
		return fmt.Sprintf("%s (%s) wins", res.WinnerName(), res.Winner)
	}
}

// Run plays one game inside a full-screen terminal program and returns
// its result. Quitting the display forfeits interactive seats; a
// spectated game keeps running to completion.
func Run(size, winLength int, px, po player.MoveSource, opts ...engine.Option) (engine.Result, error) {
	updates := make(chan tea.Msg, updateBuffer)
	done := make(chan struct{})

	for _, src := range []player.MoveSource{px, po} {
		if cp, ok := src.(*CursorPlayer); ok {
			cp.attach(updates, done)
		}
	}

	observer := func(entry game.HistoryEntry, view game.BoardView) {
		// A dropped frame is fine, every later one carries the full position.
		select {
		case updates <- moveMsg{entry: entry, view: view}:
		default:
		}
	}
	match, err := engine.NewMatch(size, winLength, append(opts, engine.WithObserver(observer))...)
	if err != nil {
		return engine.Result{}, err
	}

	var (
		result  engine.Result
		playErr error
	)
	gameOver := make(chan struct{})
	go func() {
		defer close(gameOver)
		result, playErr = match.Play(px, po)
		select {
		case updates <- doneMsg{result: result, err: playErr}:
		case <-done:
		}
	}()

	program := tea.NewProgram(newModel(size, winLength, px.Name(), po.Name(), updates), tea.WithAltScreen())
	_, runErr := program.Run()
	close(done)
	<-gameOver

	if runErr != nil {
		return result, fmt.Errorf("display failed: %w", runErr)
	}
	return result, playErr
}
