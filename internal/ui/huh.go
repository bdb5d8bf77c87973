package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
)

// chooseWithHuh asks for the input text, then offers the resulting suggestions
// as a select list.
func chooseWithHuh(session Session, opts Options) (string, error) {
	text := opts.Query
	input := huh.NewInput().
		Title("nmenu").
		Prompt("> ").
		Value(&text).
		WithTheme(huh.ThemeCharm())
	if err := input.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrCancelled
		}
		return "", err
	}
	if err := session.OnInput(text); err != nil {
		return "", sessionError{err}
	}

	labels := session.Labels()
	if len(labels) > 1 {
		choice := session.Selected()
		options := make([]huh.Option[int], 0, len(labels))
		for i, label := range labels {
			options = append(options, huh.NewOption(label, i))
		}
		prompt := huh.NewSelect[int]().
			Title("nmenu").
			Description(fmt.Sprintf("Suggestions for %q", text)).
			Options(options...).
			Height(huhSelectHeight(len(options), opts.Lines)).
			Value(&choice).
			WithTheme(huh.ThemeCharm())
		if err := prompt.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return "", ErrCancelled
			}
			return "", err
		}
		if err := session.Select(choice); err != nil {
			return "", sessionError{err}
		}
	}

	command, err := session.Choose()
	if err != nil {
		return "", sessionError{err}
	}
	return command, nil
}

func huhSelectHeight(optionCount, lines int) int {
	if optionCount < 1 {
		optionCount = 1
	}
	return clampInt(optionCount+1, 4, max(lines+1, 4))
}
