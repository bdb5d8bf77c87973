package main

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/ashwch/nmenu/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or change settings",
		Args:  noArgs,
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := toml.Marshal(a.cfg)
			if err != nil {
				return fmt.Errorf("could not serialize config: %w", err)
			}
			fmt.Fprint(a.stdout, string(payload))
			fmt.Fprintf(a.stdout, "# config: %s\n", a.cfgPath)
			return nil
		},
	}

	get := &cobra.Command{
		Use:   "get KEY",
		Short: "Print one setting",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := a.cfg.Get(args[0])
			if err != nil {
				return usageError{err}
			}
			fmt.Fprintln(a.stdout, value)
			return nil
		},
	}

	var save bool
	set := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change one setting",
		Long: fmt.Sprintf(`Change one setting for this invocation, or persist it with --save.

Keys: %v`, config.Keys),
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Set(args[0], args[1]); err != nil {
				return usageError{err}
			}
			value, _ := a.cfg.Get(args[0])
			if !save {
				fmt.Fprintf(a.stdout, "%s=%s (not saved, use --save)\n", args[0], value)
				return nil
			}
			// persist only this key, not the env and flag overrides in a.cfg
			stored, err := config.Load(a.cfgPath)
			if err != nil {
				return err
			}
			if err := stored.Set(args[0], args[1]); err != nil {
				return usageError{err}
			}
			if err := config.Save(a.cfgPath, stored); err != nil {
				return fmt.Errorf("could not save config: %w", err)
			}
			fmt.Fprintf(a.stdout, "%s=%s\nsaved: %s\n", args[0], value, a.cfgPath)
			return nil
		},
	}
	set.Flags().BoolVar(&save, "save", false, "persist the change to the config file")

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.stdout, a.cfgPath)
			return nil
		},
	}

	cmd.AddCommand(show, get, set, path)
	return cmd
}
