// Package export writes the session history as CSV or JSON.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/sadopc/timetrack/internal/history"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want csv or json)", s)
	}
}

// Write renders sessions to w in format f.
func Write(w io.Writer, f Format, sessions []history.Session) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, sessions)
	case FormatJSON:
		return WriteJSON(w, sessions)
	default:
		return fmt.Errorf("unknown export format %q", string(f))
	}
}

// ToFile writes sessions to path in format f.
func ToFile(path string, f Format, sessions []history.Session) error {
	switch f {
	case FormatCSV:
		return ToCSV(sessions, path)
	case FormatJSON:
		return ToJSON(sessions, path)
	default:
		return fmt.Errorf("unknown export format %q", string(f))
	}
}
