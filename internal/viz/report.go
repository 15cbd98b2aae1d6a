package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gni/internal/experiment"
)

// MethodRow is one line of the method table.
type MethodRow struct {
	Name        string
	Description string
	Composition string
}

// MethodTable lists methods with their composition labels.
func MethodTable(rows []MethodRow) string {
	nameWidth, descWidth := len("METHOD"), len("DESCRIPTION")
	for _, r := range rows {
		nameWidth = max(nameWidth, lipgloss.Width(r.Name))
		descWidth = max(descWidth, lipgloss.Width(r.Description))
	}

	var b strings.Builder
	b.WriteString(Header.Render(fmt.Sprintf("%-*s  %-*s  %s", nameWidth, "METHOD", descWidth, "DESCRIPTION", "COMPOSITION")))
	b.WriteString("\n")
	for _, r := range rows {
		name := Title.Render(pad(r.Name, nameWidth))
		desc := pad(r.Description, descWidth)
		b.WriteString(fmt.Sprintf("%s  %s  %s\n", name, desc, Muted.Render(r.Composition)))
	}
	return b.String()
}

// Summary renders the outcome of a single run in a bordered panel.
func Summary(res *experiment.Result) string {
	var b strings.Builder
	b.WriteString(Title.Render(fmt.Sprintf("%s / %s", res.Model, res.Method)))
	b.WriteString("\n")
	if res.Composition != res.Method {
		b.WriteString(Muted.Render(res.Composition))
		b.WriteString("\n")
	}

	b.WriteString(line("steps", fmt.Sprintf("%d", res.Steps)))
	b.WriteString(line("elapsed", res.Elapsed.String()))
	if final := res.Final(); final != nil {
		b.WriteString(line("final", formatState(final)))
	}
	for _, name := range res.MetricNames() {
		b.WriteString(line(name, fmt.Sprintf("%.6g", res.Metrics[name])))
	}

	return Panel.Render(strings.TrimRight(b.String(), "\n"))
}

// Comparison ranks results by the given metric, smallest first, with a bar
// on a log scale.
func Comparison(results []*experiment.Result, metric string) string {
	rs := sortedBy(results, metric)
	width := len("METHOD")
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range rs {
		width = max(width, lipgloss.Width(r.Method))
		if v, ok := r.Metrics[metric]; ok && v > 0 {
			lo = math.Min(lo, math.Log10(v))
			hi = math.Max(hi, math.Log10(v))
		}
	}

	var b strings.Builder
	b.WriteString(Header.Render(fmt.Sprintf("%-*s  %-12s", width, "METHOD", strings.ToUpper(metric))))
	b.WriteString("\n")

	for _, r := range rs {
		v, ok := r.Metrics[metric]
		if !ok {
			b.WriteString(fmt.Sprintf("%s  %s\n", pad(r.Method, width), Muted.Render("n/a")))
			continue
		}

		frac := 0.0
		if v > 0 && hi > lo {
			frac = (math.Log10(v) - lo) / (hi - lo)
		}
		b.WriteString(fmt.Sprintf("%s  %-12s %s\n", pad(r.Method, width), fmt.Sprintf("%.3e", v), grade(frac).Render(Bar(frac, 20))))
	}
	return b.String()
}

func sortedBy(results []*experiment.Result, metric string) []*experiment.Result {
	out := make([]*experiment.Result, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j], metric) })
	return out
}

func less(a, b *experiment.Result, metric string) bool {
	va, oka := a.Metrics[metric]
	vb, okb := b.Metrics[metric]
	if oka != okb {
		return oka
	}
	return va < vb
}

func line(label, value string) string {
	return fmt.Sprintf("%s %s\n", Label.Render(pad(label, 14)), Value.Render(value))
}

func pad(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func formatState(x []float64) string {
	parts := make([]string, len(x))
	for i, v := range x {
		parts[i] = fmt.Sprintf("%.6g", v)
	}
	if len(parts) > 6 {
		parts = append(parts[:6], "…")
	}
	return "[" + strings.Join(parts, " ") + "]"
}
