package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ashwch/nmenu/internal/rules"
	"github.com/ashwch/nmenu/internal/trie"
)

func newDumpCmd(a *app) *cobra.Command {
	var (
		ast    bool
		format string
	)
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the parsed rules or the suggestion tree",
		Long: `Print the optimized suggestion tree as a Graphviz digraph (--format dot)
or as YAML (--format yaml). With --ast, print the parsed rule forms instead.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ast {
				return a.dumpAST()
			}
			return a.dumpTree(format)
		},
	}
	cmd.Flags().BoolVar(&ast, "ast", false, "print the parsed rules")
	cmd.Flags().StringVar(&format, "format", "dot", "tree format: dot|yaml")
	return cmd
}

func (a *app) dumpAST() error {
	rulesPath, err := a.cfg.RulesPath()
	if err != nil {
		return err
	}
	src, err := os.ReadFile(rulesPath)
	if err != nil {
		return fmt.Errorf("could not read rules file: %w", err)
	}
	program, err := rules.Parse(string(src))
	if err != nil {
		return fmt.Errorf("could not parse rules: %w", err)
	}
	return rules.Dump(a.stdout, program.Root)
}

func (a *app) dumpTree(format string) error {
	var write func(w io.Writer, root *trie.Node) error
	switch format {
	case "dot":
		write = trie.WriteDot
	case "yaml":
		write = trie.WriteYAML
	default:
		return usageError{fmt.Errorf("unknown dump format %q (want dot or yaml)", format)}
	}

	eng, err := a.newEngine()
	if err != nil {
		return err
	}
	root, err := eng.Root()
	if err != nil {
		return err
	}
	return write(a.stdout, root)
}
