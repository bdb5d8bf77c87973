package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// choosePlain is a line-oriented chooser. Each line replaces the input text and
// lists the suggestions; ":N" selects the Nth suggestion and an empty line
// chooses the current selection.
func choosePlain(session Session, opts Options) (string, error) {
	out := opts.Out
	reader := bufio.NewReader(opts.In)
	text := opts.Query
	if err := session.OnInput(text); err != nil {
		return "", sessionError{err}
	}
	printSuggestions(out, session, opts.Lines)

	for {
		fmt.Fprint(out, "nmenu> ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				return "", ErrCancelled
			}
			return "", fmt.Errorf("could not read input: %w", err)
		}
		line = strings.TrimRight(line, "\r\n")

		switch {
		case strings.TrimSpace(line) == "":
			command, err := session.Choose()
			if err != nil {
				return "", sessionError{err}
			}
			return command, nil
		case strings.HasPrefix(line, ":"):
			n, err := strconv.Atoi(strings.TrimSpace(line[1:]))
			if err != nil {
				fmt.Fprintf(out, "invalid selection %q\n", line)
				continue
			}
			if err := session.Select(n - 1); err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			command, err := session.Choose()
			if err != nil {
				return "", sessionError{err}
			}
			return command, nil
		default:
			text = line
			if err := session.OnInput(text); err != nil {
				return "", sessionError{err}
			}
			printSuggestions(out, session, opts.Lines)
		}
	}
}

func printSuggestions(out io.Writer, session Session, lines int) {
	labels := session.Labels()
	selected := session.Selected()
	start, end := visibleWindow(selected, len(labels), lines)
	for i := start; i < end; i++ {
		marker := " "
		if i == selected {
			marker = "*"
		}
		fmt.Fprintf(out, "%s%2d) %s\n", marker, i+1, labels[i])
	}
	if hidden := len(labels) - (end - start); hidden > 0 {
		fmt.Fprintf(out, "   +%d more\n", hidden)
	}
}
