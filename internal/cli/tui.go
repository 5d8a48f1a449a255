package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/brickforge/brickstep/pkg/build"
	"github.com/brickforge/brickstep/pkg/ldraw"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// StepListModel is the bubbletea model for interactive step browsing.
// The list shows one row per step; the pane below lists the parts added
// by the selected step.
type StepListModel struct {
	Steps  []*build.BuildStep
	Cursor int
	Height int
	Offset int
}

// newStepListModel creates a step browser over the unwrapped sequence.
func newStepListModel(steps []*build.BuildStep) StepListModel {
	return StepListModel{
		Steps:  steps,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m StepListModel) Init() tea.Cmd {
	return nil
}

func (m StepListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Steps)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 12
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m StepListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Build Steps"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Steps) {
		end = len(m.Steps)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		s := m.Steps[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		qty := ""
		if s.Qty > 1 {
			qty = fmt.Sprintf("x%d", s.Qty)
		}

		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("%d", s.Num),
			ldraw.StripExt(s.ModelName),
			fmt.Sprintf("%d", s.Level),
			qty,
			fmt.Sprintf("%d", len(s.StepParts())),
			fmt.Sprintf("%d", len(s.ModelParts())),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Step", "Model", "Level", "Qty", "Parts", "Total").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(m.partsView())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Steps))))

	return b.String()
}

// partsView lists the parts added by the selected step.
func (m StepListModel) partsView() string {
	if len(m.Steps) == 0 {
		return ""
	}
	pli := m.Steps[m.Cursor].PLI()
	if len(pli) == 0 {
		return listDimStyle.Render("  no new parts in this step")
	}

	keys := make([]string, 0, len(pli))
	for k := range pli {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(StyleHighlight.Render("  Parts in this step"))
	b.WriteString("\n")
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("    %s %s\n",
			StyleValue.Render(fmt.Sprintf("%-20s", k)),
			listDimStyle.Render(fmt.Sprintf("x%d", pli[k]))))
	}
	return b.String()
}
