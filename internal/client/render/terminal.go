package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Styles used by Terminal.
type Styles struct {
	Header lipgloss.Style
	Cell   lipgloss.Style
	Title  lipgloss.Style
	Label  lipgloss.Style
	Muted  lipgloss.Style
	Card   lipgloss.Style
	Border lipgloss.Style
}

// DefaultStyles returns the palette used by the CLI.
func DefaultStyles() Styles {
	accent := lipgloss.Color("#8BC34A")
	muted := lipgloss.Color("#6b7280")
	return Styles{
		Header: lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Cell:   lipgloss.NewStyle().Padding(0, 1),
		Title:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		Label:  lipgloss.NewStyle().Bold(true),
		Muted:  lipgloss.NewStyle().Foreground(muted),
		Card:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1),
		Border: lipgloss.NewStyle().Foreground(muted),
	}
}

// Terminal draws Views to a writer.
type Terminal struct {
	out    io.Writer
	styles Styles
}

func NewTerminal(out io.Writer, styles Styles) *Terminal {
	return &Terminal{out: out, styles: styles}
}

// Print writes the rendered view followed by a newline.
func (t *Terminal) Print(v View) error {
	_, err := fmt.Fprintln(t.out, t.Render(v))
	return err
}

// Render returns the view as a string.
func (t *Terminal) Render(v View) string {
	if !v.IsList {
		return v.Text
	}
	if len(v.Rows) == 0 {
		return t.styles.Muted.Render("(no results)")
	}
	if v.Layout == LayoutNarrow {
		return t.cards(v)
	}
	return t.table(v)
}

func (t *Terminal) table(v View) string {
	cols := v.Columns()
	withActions := v.HasActions()

	headers := append([]string{}, cols...)
	if withActions {
		headers = append(headers, "actions")
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(t.styles.Border).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return t.styles.Header
			}
			return t.styles.Cell
		})

	for _, row := range v.Rows {
		cells := make([]string, 0, len(headers))
		for _, c := range cols {
			val, _ := row.Value(c)
			cells = append(cells, val)
		}
		if withActions {
			cells = append(cells, actionList(row.Actions))
		}
		tbl.Row(cells...)
	}
	return tbl.String()
}

func (t *Terminal) cards(v View) string {
	cards := make([]string, 0, len(v.Rows))
	for _, row := range v.Rows {
		var b strings.Builder
		title := string(row.Kind)
		if row.ID != "" {
			title += " #" + row.ID
		}
		if title != "" {
			b.WriteString(t.styles.Title.Render(title))
		}
		for _, f := range row.Fields {
			if f.Name == fieldID {
				continue
			}
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(t.styles.Label.Render(f.Name+":") + " " + f.Value)
		}
		if len(row.Actions) > 0 {
			b.WriteString("\n" + t.styles.Muted.Render(actionList(row.Actions)))
		}

		style := t.styles.Card
		if v.Width > 4 {
			style = style.Width(v.Width - 2)
		}
		cards = append(cards, style.Render(b.String()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func actionList(actions []Action) string {
	cmds := make([]string, 0, len(actions))
	for _, a := range actions {
		cmds = append(cmds, a.Command())
	}
	return strings.Join(cmds, " | ")
}
