package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/boolean-maybe/sieve/config"
	"github.com/boolean-maybe/sieve/item"
	"github.com/boolean-maybe/sieve/search"
)

// chipColors maps catalog color names to ANSI colors.
var chipColors = map[string]lipgloss.Color{
	"blue":   lipgloss.Color("12"),
	"red":    lipgloss.Color("9"),
	"orange": lipgloss.Color("208"),
	"yellow": lipgloss.Color("11"),
	"green":  lipgloss.Color("10"),
	"purple": lipgloss.Color("13"),
}

const (
	markerActive   = "●"
	markerInverted = "⊘"
	markerInactive = "○"
)

func chipMarker(f search.FilterOption) string {
	switch {
	case f.Inverted:
		return markerInverted
	case f.Active:
		return markerActive
	default:
		return markerInactive
	}
}

// renderFilters writes one block per category in display order, skipping
// categories with no filters.
func renderFilters(w io.Writer, grouped map[search.FilterCategory][]search.FilterOption, showNext bool) {
	colors := config.GetColors()
	title := lipgloss.NewStyle().Bold(true).Foreground(colors.CategoryTitle)

	first := true
	for _, c := range search.Categories() {
		filters := grouped[c]
		if len(filters) == 0 {
			continue
		}
		if !first {
			_, _ = fmt.Fprintln(w)
		}
		first = false

		_, _ = fmt.Fprintln(w, title.Render(c.Label()))
		for _, f := range filters {
			_, _ = fmt.Fprintln(w, renderChip(f, showNext, colors))
		}
	}
}

func renderChip(f search.FilterOption, showNext bool, colors *config.ColorConfig) string {
	border := colors.ChipInactiveBorder
	switch {
	case f.Inverted:
		border = colors.ChipInvertedBorder
	case f.Active:
		border = colors.ChipActiveBorder
	}
	marker := lipgloss.NewStyle().Foreground(border).Render(chipMarker(f))

	labelColor, ok := chipColors[f.Color]
	if !ok {
		labelColor = colors.ChipText
	}
	label := lipgloss.NewStyle().
		Foreground(labelColor).
		Bold(f.Active).
		Width(20).
		Render(f.Label)

	line := "  " + marker + " " + label + " " + f.Query
	if showNext {
		next := f.NextQuery
		if next == "" {
			next = `""`
		}
		line += lipgloss.NewStyle().Foreground(colors.ChipNextQuery).Render("  → " + next)
	}
	return line
}

// renderItems writes one line per item: id, status, priority, due date and
// title.
func renderItems(w io.Writer, items []*item.Item, now time.Time) {
	colors := config.GetColors()
	idStyle := lipgloss.NewStyle().Foreground(colors.ItemID).Width(6)
	labelStyle := lipgloss.NewStyle().Foreground(colors.ItemLabel)
	titleStyle := lipgloss.NewStyle().Foreground(colors.ItemTitle)
	overdueStyle := lipgloss.NewStyle().Foreground(colors.ItemOverdue)
	doneStyle := lipgloss.NewStyle().Foreground(colors.ItemComplete).Strikethrough(true)

	for _, it := range items {
		due := "-"
		dueStyle := labelStyle
		if it.DueDate != nil {
			due = it.DueDate.Format("2006-01-02")
			if it.IsOverdue(now) {
				dueStyle = overdueStyle
			}
		}
		title := titleStyle
		if it.Completed {
			title = doneStyle
		}

		_, _ = fmt.Fprintf(w, "%s %s %s %s %s\n",
			idStyle.Render("#"+strconv.Itoa(it.ID)),
			labelStyle.Render(fmt.Sprintf("%-13s", it.Status)),
			labelStyle.Render(fmt.Sprintf("%-6s", it.Priority.String())),
			dueStyle.Render(fmt.Sprintf("%-10s", due)),
			title.Render(it.Title))
	}
}

// renderIDs writes the item ids comma separated.
func renderIDs(w io.Writer, items []*item.Item) {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, strconv.Itoa(it.ID))
	}
	_, _ = fmt.Fprintln(w, strings.Join(ids, ","))
}
