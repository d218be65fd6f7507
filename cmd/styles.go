package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mindflowapp/mindflow/models"
	"github.com/mindflowapp/mindflow/store"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	doneStyle      = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("240"))
	faintStyle     = lipgloss.NewStyle().Faint(true)
	dueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	scoreStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	todayCellStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// tagTermColors maps each registry palette entry to a terminal color. The
// registry stores web class names; the terminal needs ANSI codes.
var tagTermColors = map[string]lipgloss.Color{
	"bg-red-100 text-red-700":         lipgloss.Color("1"),
	"bg-orange-100 text-orange-700":   lipgloss.Color("208"),
	"bg-amber-100 text-amber-700":     lipgloss.Color("214"),
	"bg-green-100 text-green-700":     lipgloss.Color("2"),
	"bg-emerald-100 text-emerald-700": lipgloss.Color("35"),
	"bg-teal-100 text-teal-700":       lipgloss.Color("30"),
	"bg-cyan-100 text-cyan-700":       lipgloss.Color("6"),
	"bg-blue-100 text-blue-700":       lipgloss.Color("4"),
	"bg-indigo-100 text-indigo-700":   lipgloss.Color("62"),
	"bg-violet-100 text-violet-700":   lipgloss.Color("93"),
	"bg-purple-100 text-purple-700":   lipgloss.Color("5"),
	"bg-fuchsia-100 text-fuchsia-700": lipgloss.Color("201"),
	"bg-pink-100 text-pink-700":       lipgloss.Color("205"),
	"bg-rose-100 text-rose-700":       lipgloss.Color("211"),
}

// tagBadge renders a tag name in its registry color.
func tagBadge(tag models.Tag) string {
	style := lipgloss.NewStyle()
	if c, ok := tagTermColors[tag.Color]; ok {
		style = style.Foreground(c)
	}
	return style.Render("#" + tag.Name)
}

// renderTaskLine formats one task for list output, resolving tag ids against
// the registry. Stale tag ids are skipped.
func renderTaskLine(t models.Task, tags store.TagStore) string {
	check := "[ ]"
	text := t.Text
	if t.Completed {
		check = "[x]"
		text = doneStyle.Render(text)
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%s %s", check, text))
	if !t.DueDate.IsZero() {
		parts = append(parts, dueStyle.Render("due "+t.DueDate.String()))
	}
	if tags != nil {
		for _, id := range t.Tags {
			if tag, ok, err := tags.Lookup(id); err == nil && ok {
				parts = append(parts, tagBadge(tag))
			}
		}
	}
	parts = append(parts, faintStyle.Render(shortID(t.ID)))
	return strings.Join(parts, "  ")
}

// shortID truncates a uuid for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
