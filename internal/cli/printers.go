package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/sadopc/timetrack/internal/history"
	"github.com/sadopc/timetrack/internal/store"
)

var (
	okColor    = color.New(color.FgGreen)
	failColor  = color.New(color.FgRed)
	titleColor = color.New(color.Bold, color.Underline)
	faintColor = color.New(color.Faint)
	noneColor  = color.New(color.Faint, color.Italic)
)

var statusColors = map[store.ActivityStatus]*color.Color{
	store.StatusNotDone:  color.New(),
	store.StatusComplete: color.New(color.FgGreen),
	store.StatusOngoing:  color.New(color.FgCyan, color.Bold),
	store.StatusOverwork: color.New(color.FgRed),
}

func printSuccess(w io.Writer, format string, a ...any) {
	_, _ = okColor.Fprintf(w, format+"\n", a...)
}

func printFailure(w io.Writer, msg string) {
	_, _ = failColor.Fprintln(w, msg)
}

func printTitle(w io.Writer, title string) {
	_, _ = titleColor.Fprintln(w, title)
}

func printNone(w io.Writer, what string) {
	_, _ = noneColor.Fprintf(w, " no %s\n", what)
}

func formatMinutes(m uint) string {
	if m < 60 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %02dm", m/60, m%60)
}

func printActivities(w io.Writer, s *store.Store) {
	all := s.Activities()
	if len(all) == 0 {
		printNone(w, "activities")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("ID", "STATUS", "NAME", "ACHIEVED", "TARGET")
	for _, a := range all {
		st := s.Status(a)
		tbl.AddRow(
			uint(a.ID),
			statusColors[st].Sprint(st.String()),
			a.Name,
			formatMinutes(s.AchievedWithCurrent(a)),
			formatMinutes(a.TargetMinutes),
		)
	}
	_, _ = fmt.Fprintln(w, tbl)

	if cur, ok := s.CurrentActivity(); ok {
		elapsed, _ := s.CurrentMinutes()
		line := fmt.Sprintf("Running: %s for %s", cur.Name, formatMinutes(elapsed))
		if total, pomo := s.PomoMinutes(); pomo {
			line += fmt.Sprintf(" (pomodoro of %s)", formatMinutes(total))
		}
		_, _ = faintColor.Fprintln(w, line)
	}
}

func printBucket(w io.Writer, b store.Bucket) {
	printTitle(w, b.Name)
	if len(b.Todos) == 0 {
		printNone(w, "todos")
		return
	}
	tbl := uitable.New()
	tbl.Separator = " "
	tbl.MaxColWidth = 80
	tbl.Wrap = true
	for i, t := range b.Todos {
		tbl.AddRow(faintColor.Sprintf("%3d.", i+1), t.Text)
	}
	_, _ = fmt.Fprintln(w, tbl)
}

func printBuckets(w io.Writer, buckets []store.Bucket) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("#", "BUCKET", "TODOS")
	for i, b := range buckets {
		tbl.AddRow(i+1, b.Name, len(b.Todos))
	}
	_, _ = fmt.Fprintln(w, tbl)
}

func printSummaries(w io.Writer, summaries []history.DailySummary) {
	if len(summaries) == 0 {
		printNone(w, "sessions")
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("DATE", "ACTIVITY", "TIME", "SESSIONS", "POMODOROS")
	for _, s := range summaries {
		tbl.AddRow(s.Date, s.ActivityName, formatMinutes(uint(s.TotalMinutes)), s.SessionCount, s.PomodoroCount)
	}
	_, _ = fmt.Fprintln(w, tbl)
}
