package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

func chooseWithTView(session Session, opts Options) (string, error) {
	if err := session.OnInput(opts.Query); err != nil {
		return "", sessionError{err}
	}

	app := tview.NewApplication()
	listView := tview.NewList().ShowSecondaryText(false)
	listView.SetBorder(true)
	listView.SetTitle(" nmenu ")
	input := tview.NewInputField().
		SetLabel("nmenu> ").
		SetText(opts.Query)

	var (
		command string
		result  = ErrCancelled
	)
	refresh := func() {
		listView.Clear()
		for _, label := range session.Labels() {
			listView.AddItem(label, "", 0, nil)
		}
		if selected := session.Selected(); selected >= 0 {
			listView.SetCurrentItem(selected)
		}
	}

	input.SetChangedFunc(func(text string) {
		if err := session.OnInput(text); err != nil {
			result = sessionError{err}
			app.Stop()
			return
		}
		refresh()
	})
	input.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp, tcell.KeyBacktab, tcell.KeyCtrlP:
			session.Move(-1)
			refresh()
			return nil
		case tcell.KeyDown, tcell.KeyTab, tcell.KeyCtrlN:
			session.Move(1)
			refresh()
			return nil
		case tcell.KeyEnter:
			line, err := session.Choose()
			if err != nil {
				result = sessionError{err}
			} else {
				command, result = line, nil
			}
			app.Stop()
			return nil
		case tcell.KeyEscape:
			app.Stop()
			return nil
		}
		return event
	})

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(input, 1, 0, true).
		AddItem(listView, opts.Lines+2, 0, false)

	refresh()
	if err := app.SetRoot(layout, true).SetFocus(input).Run(); err != nil {
		return "", err
	}
	if result != nil {
		return "", result
	}
	return command, nil
}
