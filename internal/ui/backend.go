package ui

import (
	"errors"
	"io"
	"os"
	"strings"
)

const (
	BackendAuto      = "auto"
	BackendBubbleTea = "bubbletea"
	BackendHuh       = "huh"
	BackendTView     = "tview"
	BackendPlain     = "plain"
)

// ErrCancelled is returned when the user leaves the chooser without choosing.
var ErrCancelled = errors.New("chooser cancelled")

// Session is the suggestion state a chooser drives, one call per input event.
type Session interface {
	OnInput(text string) error
	Labels() []string
	Selected() int
	Select(i int) error
	Move(delta int)
	Choose() (string, error)
}

type Options struct {
	Backend string
	// Lines caps the number of visible suggestions.
	Lines int
	// Query is the initial input text.
	Query string
	// In and Out are used by the plain backend; they default to stdin and
	// stderr so stdout stays free for the chosen command.
	In  io.Reader
	Out io.Writer
}

func NormalizeBackend(backend string) string {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendBubbleTea:
		return BackendBubbleTea
	case BackendHuh:
		return BackendHuh
	case BackendTView:
		return BackendTView
	case BackendPlain:
		return BackendPlain
	default:
		return BackendAuto
	}
}

func IsInteractiveBackend(backend string) bool {
	return NormalizeBackend(backend) != BackendPlain
}

func backendCandidates(backend string) []string {
	switch NormalizeBackend(backend) {
	case BackendHuh:
		return []string{BackendHuh, BackendBubbleTea, BackendTView}
	case BackendTView:
		return []string{BackendTView, BackendBubbleTea, BackendHuh}
	case BackendPlain:
		return []string{BackendPlain}
	default:
		return []string{BackendBubbleTea, BackendHuh, BackendTView}
	}
}

// sessionError marks a failure reported by the Session rather than by the
// terminal front-end. It stops the fallback chain.
type sessionError struct{ err error }

func (e sessionError) Error() string { return e.err.Error() }
func (e sessionError) Unwrap() error { return e.err }

// Choose runs the first backend that can start and returns the resolved command
// line. Front-end failures fall through to the next candidate; Session errors
// and cancellation are returned as is.
func Choose(session Session, opts Options) (string, error) {
	if opts.Lines <= 0 {
		opts.Lines = 10
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stderr
	}

	var firstErr error
	for _, candidate := range backendCandidates(opts.Backend) {
		var (
			command string
			err     error
		)
		switch candidate {
		case BackendBubbleTea:
			command, err = chooseWithBubbleTea(session, opts)
		case BackendHuh:
			command, err = chooseWithHuh(session, opts)
		case BackendTView:
			command, err = chooseWithTView(session, opts)
		case BackendPlain:
			command, err = choosePlain(session, opts)
		default:
			continue
		}
		if err == nil {
			return command, nil
		}
		var serr sessionError
		if errors.As(err, &serr) {
			return "", serr.err
		}
		if errors.Is(err, ErrCancelled) || candidate == BackendPlain {
			return "", err
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return "", firstErr
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// visibleWindow returns the [start,end) slice of count items that shows at most
// lines entries and keeps selected in view.
func visibleWindow(selected, count, lines int) (int, int) {
	if count <= lines || lines <= 0 {
		return 0, count
	}
	start := 0
	if selected >= lines {
		start = selected - lines + 1
	}
	return start, start + lines
}
