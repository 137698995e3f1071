package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/timetrack/internal/history"
)

func uintPtr(v uint) *uint { return &v }

func sampleData() []history.Session {
	now := time.Now().UTC()

	return []history.Session{
		{
			ID:           "a1",
			ActivityID:   1,
			ActivityName: "Read",
			StartTime:    now.Add(-1 * time.Hour),
			EndTime:      now,
			Minutes:      60,
		},
		{
			ID:           "b2",
			ActivityID:   2,
			ActivityName: "Write",
			StartTime:    now.Add(-30 * time.Minute),
			EndTime:      now.Add(-5 * time.Minute),
			Minutes:      25,
			PomoMinutes:  uintPtr(25),
		},
		{
			ID:           "c3",
			ActivityID:   1,
			ActivityName: "Read",
			StartTime:    now.Add(-10 * time.Minute),
			EndTime:      now,
			Minutes:      130,
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	return records
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.csv")

	if err := ToCSV(sampleData(), path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	records := readCSV(t, path)
	if len(records) != 4 {
		t.Fatalf("expected 4 rows (1 header + 3 data), got %d", len(records))
	}

	for i, h := range csvHeader {
		if records[0][i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, records[0][i], h)
		}
	}

	row := records[1]
	if row[0] != "a1" {
		t.Fatalf("ID = %q, want a1", row[0])
	}
	if row[1] != "Read" || row[2] != "1" {
		t.Fatalf("Activity = %q (%s), want Read (1)", row[1], row[2])
	}
	if row[5] != "60" {
		t.Fatalf("Minutes = %q, want 60", row[5])
	}
	if row[6] != "01:00" {
		t.Fatalf("Duration = %q, want 01:00", row[6])
	}
	if row[7] != "" {
		t.Fatalf("freeform session should have empty pomodoro column, got %q", row[7])
	}

	if records[2][7] != "25" {
		t.Fatalf("Pomodoro = %q, want 25", records[2][7])
	}
	if records[3][6] != "02:10" {
		t.Fatalf("Duration = %q, want 02:10", records[3][6])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := ToCSV(nil, path); err != nil {
		t.Fatal(err)
	}

	if records := readCSV(t, path); len(records) != 1 {
		t.Fatalf("expected 1 row (header only), got %d", len(records))
	}
}

func TestToCSVBadPath(t *testing.T) {
	err := ToCSV(nil, "/nonexistent/dir/file.csv")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToCSVSpecialCharacters(t *testing.T) {
	now := time.Now()
	sessions := []history.Session{
		{ID: "x", ActivityID: 1, ActivityName: `Reading "Dune", part 2`, StartTime: now, EndTime: now, Minutes: 1},
	}
	path := filepath.Join(t.TempDir(), "special.csv")

	if err := ToCSV(sessions, path); err != nil {
		t.Fatal(err)
	}

	records := readCSV(t, path)
	if records[1][1] != `Reading "Dune", part 2` {
		t.Fatalf("activity name mangled: %q", records[1][1])
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.json")

	if err := ToJSON(sampleData(), path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if result.Count != 3 || len(result.Sessions) != 3 {
		t.Fatalf("count = %d, sessions = %d, want 3", result.Count, len(result.Sessions))
	}
	if result.ExportedAt == "" {
		t.Fatal("exported_at should not be empty")
	}

	s := result.Sessions[0]
	if s.ID != "a1" || s.Activity != "Read" || s.ActivityID != 1 {
		t.Fatalf("unexpected first session: %+v", s)
	}
	if s.Minutes != 60 || s.Duration != "01:00" {
		t.Fatalf("Minutes = %d, Duration = %q", s.Minutes, s.Duration)
	}
	if s.PomoMinutes != nil {
		t.Fatal("freeform session should omit pomo_minutes")
	}
	if p := result.Sessions[1].PomoMinutes; p == nil || *p != 25 {
		t.Fatalf("expected pomo_minutes 25, got %v", p)
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")

	if err := ToJSON(nil, path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)

	if result.Count != 0 {
		t.Fatalf("count = %d, want 0", result.Count)
	}
	if result.Sessions != nil {
		t.Fatal("sessions should be nil/null for empty export")
	}
}

func TestToJSONBadPath(t *testing.T) {
	err := ToJSON(nil, "/nonexistent/dir/file.json")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToJSONPrettyPrinted(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleData()); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), "\n  ") {
		t.Fatal("JSON should be indented with spaces")
	}
}

func TestToJSONValidTimestamps(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleData()); err != nil {
		t.Fatal(err)
	}

	var result jsonExport
	json.Unmarshal(buf.Bytes(), &result)

	if _, err := time.Parse(time.RFC3339, result.ExportedAt); err != nil {
		t.Fatalf("exported_at is not valid RFC3339: %q", result.ExportedAt)
	}
	for _, s := range result.Sessions {
		if _, err := time.Parse(time.RFC3339, s.StartTime); err != nil {
			t.Fatalf("start_time is not valid RFC3339: %q", s.StartTime)
		}
		if _, err := time.Parse(time.RFC3339, s.EndTime); err != nil {
			t.Fatalf("end_time is not valid RFC3339: %q", s.EndTime)
		}
	}
}

// ============================================================
// Format dispatch
// ============================================================

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"csv", FormatCSV, false},
		{"JSON", FormatJSON, false},
		{" json ", FormatJSON, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteDispatches(t *testing.T) {
	var csvOut, jsonOut bytes.Buffer
	if err := Write(&csvOut, FormatCSV, sampleData()); err != nil {
		t.Fatal(err)
	}
	if err := Write(&jsonOut, FormatJSON, sampleData()); err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(csvOut.String(), "ID,Activity,") {
		t.Fatalf("unexpected csv output: %q", csvOut.String())
	}
	if !strings.HasPrefix(jsonOut.String(), "{") {
		t.Fatalf("unexpected json output: %q", jsonOut.String())
	}
	if err := Write(&csvOut, Format("xml"), nil); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestToFile(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []Format{FormatCSV, FormatJSON} {
		path := filepath.Join(dir, "out."+string(f))
		if err := ToFile(path, f, sampleData()); err != nil {
			t.Fatalf("ToFile(%s): %v", f, err)
		}
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Fatalf("expected non-empty %s file", f)
		}
	}
}

// ============================================================
// formatMinutes (internal helper)
// ============================================================

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		mins uint
		want string
	}{
		{0, "00:00"},
		{1, "00:01"},
		{60, "01:00"},
		{61, "01:01"},
		{1440, "24:00"},
		{1501, "25:01"},
	}

	for _, tt := range tests {
		got := formatMinutes(tt.mins)
		if got != tt.want {
			t.Errorf("formatMinutes(%d) = %q, want %q", tt.mins, got, tt.want)
		}
	}
}
