package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ashwch/nmenu/internal/rules"
)

func newInitCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter rules file",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing rules file")
	return cmd
}

func (a *app) runInit(force bool) error {
	path, err := a.cfg.RulesPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("rules file %s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("could not stat rules file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("could not create rules dir: %w", err)
	}
	if err := os.WriteFile(path, rules.Starter(), 0o600); err != nil {
		return fmt.Errorf("could not write rules file: %w", err)
	}
	a.logger.Info("starter rules written")
	fmt.Fprintf(a.stdout, "wrote %s\n", path)
	return nil
}
