package formatter

import (
	"fmt"
	"strings"

	"github.com/bside-ms/bside-nexus-sub000/internal/domain"
	"github.com/bside-ms/bside-nexus-sub000/internal/worktime"
)

// FormatDayStats renders the full stats block for one workday.
func FormatDayStats(day string, stats domain.DayStats) string {
	var b strings.Builder

	b.WriteString(Header("Workday "+day) + "\n\n")

	if len(stats.WorkPairs) == 0 && len(stats.BreakPairs) == 0 {
		b.WriteString(Dim("No bookings.") + "\n")
	}

	for _, p := range stats.WorkPairs {
		b.WriteString(fmt.Sprintf("  %s  %s – %s\n",
			StyleGreen.Render("work "),
			worktime.ToTimeStr(p.Start),
			worktime.ToTimeStr(p.Stop)))
	}
	for _, p := range stats.BreakPairs {
		b.WriteString(fmt.Sprintf("  %s  %s – %s\n",
			StyleYellow.Render("break"),
			worktime.ToTimeStr(p.Start),
			worktime.ToTimeStr(p.Stop)))
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %s\n", Bold("Gross:"), worktime.FormatMinutes(stats.SessionMinutes)))
	b.WriteString(fmt.Sprintf("  %s %s", Bold("Break:"), worktime.FormatMinutes(stats.AdjustedBreakMinutes)))
	if stats.AdjustedBreakMinutes != stats.ActualBreakMinutes {
		b.WriteString(Dim(fmt.Sprintf(" (taken %s, required %d min)",
			worktime.FormatMinutes(stats.ActualBreakMinutes), stats.RequiredBreakMinutes)))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %s\n", Bold("Net:  "), worktime.FormatMinutes(stats.NetMinutes)))
	b.WriteString("\n  " + WarningIndicator(stats.BreakWarning) + "\n")

	if len(stats.Issues) > 0 {
		b.WriteString("\n" + StyleRed.Render("Issues:") + "\n")
		for _, issue := range stats.Issues {
			b.WriteString(fmt.Sprintf("  • %s\n", issue.Detail))
		}
	}

	return b.String()
}

// FormatRecordRow renders one daily record as table cells.
func FormatRecordRow(r *domain.DailyRecord) []string {
	errCell := StyleGreen.Render("ok")
	if r.HasErrors {
		errCell = StyleRed.Render(r.ErrorDetails)
	}
	return []string{
		r.Day,
		fmt.Sprintf("%.2f", r.TotalWorkHours),
		fmt.Sprintf("%.2f", r.TotalBreakHours),
		errCell,
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}
