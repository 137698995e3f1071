// Package notify delivers desktop notifications when a pomodoro ends.
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// ErrUnavailable is returned when no notification command exists on this system.
var ErrUnavailable = errors.New("desktop notifications unavailable")

const timeout = 5 * time.Second

type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// Nop drops every notification.
type Nop struct{}

func (Nop) Notify(context.Context, string, string) error { return nil }

type runFunc func(ctx context.Context, name string, args ...string) (string, error)

// Desktop shells out to notify-send on linux and osascript on darwin.
type Desktop struct {
	goos string
	run  runFunc
}

func NewDesktop() *Desktop {
	return &Desktop{goos: runtime.GOOS, run: runCommand}
}

// New returns a Desktop notifier, or Nop when disabled.
func New(enabled bool) Notifier {
	if !enabled {
		return Nop{}
	}
	return NewDesktop()
}

func (d *Desktop) Notify(ctx context.Context, title, body string) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		name string
		args []string
	)
	switch d.goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		name, args = "notify-send", []string{"--app-name=timetrack", "--", title, body}
	case "darwin":
		script := fmt.Sprintf("display notification %s with title %s", quote(body), quote(title))
		name, args = "osascript", []string{"-e", script}
	default:
		return ErrUnavailable
	}

	stderr, err := d.run(ctx, name, args...)
	if err != nil {
		if stderr != "" {
			return fmt.Errorf("notify via %s: %w: %s", name, err, stderr)
		}
		return fmt.Errorf("notify via %s: %w", name, err)
	}
	return nil
}

// quote renders s as an AppleScript string literal.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

func runCommand(ctx context.Context, name string, args ...string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", ErrUnavailable
		}
		return "", fmt.Errorf("locate %s: %w", name, err)
	}
	cmd := exec.CommandContext(ctx, path, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err = cmd.Run()
	return strings.TrimSpace(stderr.String()), err
}

// PomodoroFinished formats the message sent when a pomodoro ends.
func PomodoroFinished(activity string, minutes uint) (title, body string) {
	return "Pomodoro finished", fmt.Sprintf("%s: %d minutes done", activity, minutes)
}
