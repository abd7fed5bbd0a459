package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/fanchart/pkg/pedigree"
)

var (
	listDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	listQueryStyle = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// IndividualPickerModel - Interactive root selection
// =============================================================================

// IndividualPickerModel is the bubbletea model for choosing the root
// individual. Typing filters the list by name or id.
type IndividualPickerModel struct {
	All      []pedigree.Individual
	Visible  []pedigree.Individual
	Query    string
	Cursor   int
	Offset   int
	Height   int
	Selected *pedigree.Individual
}

// NewIndividualPickerModel creates a picker over list.
func NewIndividualPickerModel(list []pedigree.Individual) IndividualPickerModel {
	return IndividualPickerModel{All: list, Visible: list, Height: 15}
}

func (m IndividualPickerModel) Init() tea.Cmd {
	return nil
}

func (m IndividualPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp:
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case tea.KeyDown:
			if m.Cursor < len(m.Visible)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case tea.KeyEnter:
			if len(m.Visible) == 0 {
				return m, nil
			}
			ind := m.Visible[m.Cursor]
			m.Selected = &ind
			return m, tea.Quit
		case tea.KeyBackspace:
			if m.Query != "" {
				r := []rune(m.Query)
				m = m.filter(string(r[:len(r)-1]))
			}
		case tea.KeyRunes, tea.KeySpace:
			m = m.filter(m.Query + string(msg.Runes))
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

// filter applies a new query and resets the cursor.
func (m IndividualPickerModel) filter(query string) IndividualPickerModel {
	m.Query = query
	m.Visible = filterIndividuals(m.All, query)
	m.Cursor, m.Offset = 0, 0
	return m
}

func (m IndividualPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Root Individual"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("type to filter  ↑/↓ navigate  ⏎ select  esc quit"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("filter: ") + listQueryStyle.Render(m.Query))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Visible))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, append([]string{cursor}, individualRow(m.Visible[i])...))
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Name", "Sex", "Born", "Died").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col >= 4 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	if len(m.Visible) == 0 {
		b.WriteString(listDimStyle.Render("  no match"))
	} else {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Visible))))
	}
	return b.String()
}

// pickIndividual runs the picker. It returns nil when the user quits.
func pickIndividual(list []pedigree.Individual) (*pedigree.Individual, error) {
	p := tea.NewProgram(NewIndividualPickerModel(list), tea.WithOutput(os.Stderr))
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	fm, ok := finalModel.(IndividualPickerModel)
	if !ok {
		return nil, nil
	}
	return fm.Selected, nil
}
