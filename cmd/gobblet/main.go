package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/buchanae/gobblet"
)

var (
	sizeFlag   = flag.Int("size", gobblet.DefaultBoardSize, "board size")
	stacksFlag = flag.Int("stacks", gobblet.DefaultNumStacks, "dugout stacks per size")

	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginLeft(2)

	infoStyle = lipgloss.NewStyle().
			MarginLeft(2)

	boardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1).
			MarginLeft(2)

	cellStyle = lipgloss.NewStyle().
			Width(3).
			Height(1).
			Align(lipgloss.Center)

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true).
			MarginLeft(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true).
			MarginLeft(2)
)

func main() {
	flag.Parse()

	g, err := gobblet.NewGame(*sizeFlag, gobblet.DefaultSizeNames, *stacksFlag,
		"Player 1", "Player 2")
	if err != nil {
		log.Fatal(err)
	}

	p := tea.NewProgram(initialModel(g), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

type model struct {
	game  *gobblet.Game
	input textinput.Model
	error string
}

func initialModel(g *gobblet.Game) model {
	ti := textinput.New()
	ti.Placeholder = "2a1 or a1>b2"
	ti.CharLimit = 16
	ti.Width = 20
	ti.Focus()

	return model{game: g, input: ti}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			if text == "q" || text == "quit" {
				return m, tea.Quit
			}
			m.input.SetValue("")
			m.error = ""

			mv, err := gobblet.NewMove(text)
			if err != nil {
				m.error = err.Error()
				return m, nil
			}
			if err := m.game.Apply(m.game.CurrentPlayer(), mv); err != nil {
				m.error = err.Error()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	title := titleStyle.Render("Gobblet")
	board := m.renderBoard()

	var status string
	if winner, over := m.game.GameOver(); over {
		status = winStyle.Render(fmt.Sprintf("%s wins!", winner.Name()))
	} else {
		status = infoStyle.Render(fmt.Sprintf("%s to move | sizes: %s",
			m.game.CurrentPlayer().Name(), m.renderDugout()))
	}

	help := infoStyle.Render("Enter a move (\"2a1\" places size 2 on a1, \"a1>b2\" moves a stack top), esc to quit")
	input := infoStyle.Render(m.input.View())

	content := []string{title, "", board, "", status, "", input, "", help}
	if m.error != "" {
		content = append(content, "", errorStyle.Render(m.error))
	}

	return lipgloss.JoinVertical(lipgloss.Left, content...)
}

// renderDugout shows the sizes the current player can still place.
func (m model) renderDugout() string {
	var sizes []string
	for _, p := range m.game.CurrentPlayer().DugoutView().AvailablePieces() {
		sizes = append(sizes, fmt.Sprintf("%d (%s)", p.Size, p.Name))
	}
	if len(sizes) == 0 {
		return "none"
	}
	return strings.Join(sizes, ", ")
}

func (m model) renderBoard() string {
	cells := m.game.Board.Cells()
	size := len(cells)
	var rows []string

	header := "   "
	for i := 0; i < size; i++ {
		header += fmt.Sprintf(" %c ", 'a'+i)
	}
	rows = append(rows, header)

	// Highest row number on top.
	for r := size - 1; r >= 0; r-- {
		row := fmt.Sprintf("%2d ", r+1)
		for c := 0; c < size; c++ {
			row += m.renderCell(cells[r][c])
		}
		row += fmt.Sprintf(" %d", r+1)
		rows = append(rows, row)
	}

	footer := "   "
	for i := 0; i < size; i++ {
		footer += fmt.Sprintf(" %c ", 'a'+i)
	}
	rows = append(rows, footer)

	return boardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m model) renderCell(cell gobblet.Stack) string {
	top, ok := cell.Top()
	if !ok {
		return cellStyle.Foreground(lipgloss.Color("240")).Render("·")
	}

	color := "205" // first player
	if top.Player == m.game.Players[1].ID() {
		color = "69"
	}

	return cellStyle.
		Foreground(lipgloss.Color(color)).
		Render(fmt.Sprintf("%d", top.Size))
}
