// Package tui is the interactive nearest-word explorer.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"featgen/internal/domain"
)

// NeighborPort is the TUI-facing subset of the embedding explorer.
type NeighborPort interface {
	Neighbors(word string, topK int) ([]domain.Neighbor, error)
}

// Model is the Bubble Tea model for the neighbour explorer.
type Model struct {
	explorer NeighborPort
	topK     int
	prompt   textinput.Model
	list     viewport.Model
	words    []domain.Neighbor
	caption  string
	status   string
	selected int
	sized    bool
	query    string
}

// New creates an explorer model; caption is shown under the title.
func New(explorer NeighborPort, caption string, topK int) Model {
	in := textinput.New()
	in.Prompt = "word> "
	in.Placeholder = "type a word, Enter to search, Tab to follow"
	in.Focus()
	return Model{
		explorer: explorer,
		topK:     topK,
		prompt:   in,
		list:     viewport.New(0, 0),
		caption:  caption,
		status:   "Ready.",
	}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if word := strings.TrimSpace(m.prompt.Value()); word != "" {
				m.search(word)
				return m, nil
			}
		case tea.KeyDown:
			if m.move(1) {
				return m, nil
			}
		case tea.KeyUp:
			if m.move(-1) {
				return m, nil
			}
		case tea.KeyTab:
			if len(m.words) > 0 {
				m.prompt.SetValue(m.words[m.selected].Word)
				m.prompt.CursorEnd()
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) resize(width, height int) {
	m.sized = true
	_, listFrame := listStyle.GetFrameSize()
	_, promptFrame := promptStyle.GetFrameSize()
	// title, caption, status and the prompt line
	free := height - 4 - promptFrame - listFrame
	m.list.Width = max(20, width)
	m.list.Height = max(3, free)
	m.list.SetContent(m.renderList())
}

func (m *Model) search(word string) {
	res, err := m.explorer.Neighbors(word, m.topK)
	if err != nil {
		m.status = "Error: " + err.Error()
		m.words = nil
	} else {
		m.status = fmt.Sprintf("%d neighbours of %q", len(res), word)
		m.words = res
		m.selected = 0
		m.query = word
	}
	m.list.SetContent(m.renderList())
}

// move shifts the selection, wrapping around. It reports whether a list was shown.
func (m *Model) move(delta int) bool {
	n := len(m.words)
	if n == 0 {
		return false
	}
	m.selected = (m.selected + delta + n) % n
	m.list.SetContent(m.renderList())
	return true
}

func (m Model) View() string {
	if !m.sized {
		return "Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Embedding Explorer"),
		captionStyle.Render(m.caption),
		listStyle.Render(m.list.View()),
		promptStyle.Render(m.prompt.View()),
		statusStyle.Render(m.status),
	)
}

func (m Model) renderList() string {
	if len(m.words) == 0 {
		return "No results yet."
	}
	lines := make([]string, 0, len(m.words)+2)
	lines = append(lines, fmt.Sprintf("Nearest to %q (%d/%d)", m.query, m.selected+1, len(m.words)), "")
	for i, n := range m.words {
		line := fmt.Sprintf("%2d. %-24s %.4f", i+1, n.Word, n.Score)
		if i == m.selected {
			line = selectedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	captionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	listStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	promptStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)
