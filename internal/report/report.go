// Package report prints the dashboard to a terminal.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/guttosm/p2pulse/internal/domain/models"
)

type styles struct {
	title    lipgloss.Style
	card     lipgloss.Style
	label    lipgloss.Style
	gain     lipgloss.Style
	loss     lipgloss.Style
	section  lipgloss.Style
	muted    lipgloss.Style
	warning  lipgloss.Style
	cellHead lipgloss.Style
	cell     lipgloss.Style
}

// newStyles binds every style to a renderer for w, so colors are only
// emitted when w is a color-capable terminal.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F0B90B")).
			Padding(0, 1).
			MarginBottom(1),
		card: r.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(0, 1).
			Width(18),
		label:    r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		gain:     r.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true),
		loss:     r.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
		section:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")).MarginTop(1),
		muted:    r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		warning:  r.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true),
		cellHead: r.NewStyle().Bold(true).Width(14),
		cell:     r.NewStyle().Width(14),
	}
}

// Render writes the summary cards, the best days and the per-day buy/sell
// summary to w.
func Render(w io.Writer, summary *models.Summary, volumes []models.DailyVolume) error {
	st := newStyles(w)
	var b strings.Builder

	b.WriteString(st.title.Render("P2P Dashboard"))
	b.WriteString("\n")

	cards := []string{
		card(st, "Today", summary.Today),
		card(st, "Last 7 days", summary.Week),
		card(st, "Last 30 days", summary.Month),
		card(st, "Total", summary.Total),
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n")
	b.WriteString(st.muted.Render(fmt.Sprintf("%d operations", summary.TradeCount)))
	b.WriteString("\n")

	b.WriteString(st.section.Render("Best days"))
	b.WriteString("\n")
	if len(summary.TopDays) == 0 {
		b.WriteString(st.muted.Render("No profitable days yet"))
		b.WriteString("\n")
	}
	for i, dp := range summary.TopDays {
		fmt.Fprintf(&b, "%d. %s  %s\n", i+1, dp.Day, money(st, dp.Profit))
	}

	b.WriteString(st.section.Render("Daily summary"))
	b.WriteString("\n")
	b.WriteString(row(st.cellHead, "Date", "Bought", "Sold", "Operations"))
	b.WriteString("\n")
	for _, v := range volumes {
		b.WriteString(row(st.cell, v.Day.String(), FormatMoney(v.Bought), FormatMoney(v.Sold), fmt.Sprint(v.Trades())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(st.muted.Render(footer(summary)))
	b.WriteString("\n")
	if summary.Stale() {
		b.WriteString(st.warning.Render("⚠ last reload failed: " + summary.LoadError))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func card(st styles, label string, value decimal.Decimal) string {
	return st.card.Render(st.label.Render(label) + "\n" + money(st, value))
}

func money(st styles, d decimal.Decimal) string {
	if d.IsNegative() {
		return st.loss.Render(FormatMoney(d))
	}
	return st.gain.Render(FormatMoney(d))
}

func row(style lipgloss.Style, cells ...string) string {
	rendered := make([]string, 0, len(cells))
	for _, c := range cells {
		rendered = append(rendered, style.Render(c))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func footer(s *models.Summary) string {
	loaded := "never"
	if !s.LoadedAt.IsZero() {
		loaded = s.LoadedAt.Format(time.RFC3339)
	}
	return fmt.Sprintf("source %s · loaded %s · as of %s", s.Source, loaded, s.AsOf.Format(time.RFC3339))
}

// FormatMoney renders d as US dollars with thousands separators and two
// decimals: 1234.5 -> "$1,234.50", -3 -> "-$3.00".
func FormatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	fixed := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(r)
	}
	return sign + "$" + grouped.String() + "." + frac
}
