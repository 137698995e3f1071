package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sadopc/timetrack/internal/history"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Count      int           `json:"count"`
	Sessions   []jsonSession `json:"sessions"`
}

type jsonSession struct {
	ID          string `json:"id"`
	Activity    string `json:"activity"`
	ActivityID  uint   `json:"activity_id"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Minutes     uint   `json:"minutes"`
	Duration    string `json:"duration"`
	PomoMinutes *uint  `json:"pomo_minutes,omitempty"`
}

func ToJSON(sessions []history.Session, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json file: %w", err)
	}
	defer f.Close()

	if err := WriteJSON(f, sessions); err != nil {
		return err
	}
	return f.Close()
}

func WriteJSON(w io.Writer, sessions []history.Session) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(sessions),
	}

	for _, s := range sessions {
		export.Sessions = append(export.Sessions, jsonSession{
			ID:          s.ID,
			Activity:    s.ActivityName,
			ActivityID:  s.ActivityID,
			StartTime:   s.StartTime.Local().Format(time.RFC3339),
			EndTime:     s.EndTime.Local().Format(time.RFC3339),
			Minutes:     s.Minutes,
			Duration:    formatMinutes(s.Minutes),
			PomoMinutes: s.PomoMinutes,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
