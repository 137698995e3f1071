package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/timetrack/internal/history"
)

var csvHeader = []string{"ID", "Activity", "Activity ID", "Start", "End", "Minutes", "Duration", "Pomodoro"}

func ToCSV(sessions []history.Session, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, sessions); err != nil {
		return err
	}
	return f.Close()
}

func WriteCSV(out io.Writer, sessions []history.Session) error {
	w := csv.NewWriter(out)

	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, s := range sessions {
		pomo := ""
		if s.PomoMinutes != nil {
			pomo = strconv.FormatUint(uint64(*s.PomoMinutes), 10)
		}
		row := []string{
			s.ID,
			s.ActivityName,
			strconv.FormatUint(uint64(s.ActivityID), 10),
			s.StartTime.Local().Format(time.RFC3339),
			s.EndTime.Local().Format(time.RFC3339),
			strconv.FormatUint(uint64(s.Minutes), 10),
			formatMinutes(s.Minutes),
			pomo,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// formatMinutes renders a minute count as HH:MM.
func formatMinutes(m uint) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
