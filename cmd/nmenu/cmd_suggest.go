package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ashwch/nmenu/internal/command"
)

type suggestion struct {
	Text    string `json:"text"`
	Kind    string `json:"kind"`
	Value   string `json:"value"`
	Command string `json:"command,omitempty"`
}

func newSuggestCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "suggest [TEXT...]",
		Short: "Print the suggestions for one input",
		Long: `Feed TEXT to the matcher as a single input event and print the resulting
suggestions, one per line. Runnable suggestions are followed by their command.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSuggest(strings.Join(args, " "), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	return cmd
}

func (a *app) runSuggest(text string, asJSON bool) error {
	eng, err := a.newEngine()
	if err != nil {
		return err
	}
	if err := eng.OnInput(text); err != nil {
		return err
	}

	out := make([]suggestion, 0, len(eng.Suggestions()))
	for _, s := range eng.Suggestions() {
		entry := suggestion{Text: s.Text, Kind: s.Node.Kind.String(), Value: s.Node.Value()}
		if s.Runnable() {
			line, err := command.Eval(s.Node)
			if err != nil {
				return err
			}
			entry.Command = line
		}
		out = append(out, entry)
	}

	if asJSON {
		encoded, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("could not encode suggestions: %w", err)
		}
		fmt.Fprintln(a.stdout, string(encoded))
		return nil
	}
	for _, entry := range out {
		if entry.Command == "" {
			fmt.Fprintln(a.stdout, entry.Text)
			continue
		}
		fmt.Fprintf(a.stdout, "%s\t%s\n", entry.Text, entry.Command)
	}
	return nil
}
