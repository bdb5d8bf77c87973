package runtime

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

const (
	ModeRun   = "run"
	ModePrint = "print"
	ModeCopy  = "copy"
)

var writeClipboard = clipboard.WriteAll

// Modes lists the accepted execution modes.
func Modes() []string {
	return []string{ModeRun, ModePrint, ModeCopy}
}

// Execute hands a resolved command line to the collaborator selected by mode.
// Print mode writes the command to out followed by a newline.
func Execute(mode, command string, out io.Writer) error {
	command, err := NormalizeCommand(command)
	if err != nil {
		return err
	}

	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ModeRun, "":
		return RunCommand(command)
	case ModePrint:
		if _, err := fmt.Fprintln(out, command); err != nil {
			return fmt.Errorf("could not print command: %w", err)
		}
		return nil
	case ModeCopy:
		if err := writeClipboard(command); err != nil {
			return fmt.Errorf("could not copy command to clipboard: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown exec mode: %s", mode)
	}
}

// RunCommand runs command through the user's shell with the terminal attached.
func RunCommand(command string) error {
	shell, args := shellCommandInvocation(command)
	cmd := exec.Command(shell, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	return cmd.Run()
}

func shellCommandInvocation(command string) (string, []string) {
	if runtime.GOOS == "windows" {
		comspec := strings.TrimSpace(os.Getenv("COMSPEC"))
		if comspec == "" {
			comspec = "cmd"
		}
		return comspec, []string{"/C", command}
	}

	shell := strings.TrimSpace(os.Getenv("SHELL"))
	if shell != "" {
		if filepath.IsAbs(shell) {
			if _, err := os.Stat(shell); err == nil {
				return shell, []string{"-lc", command}
			}
		} else if resolved, err := exec.LookPath(shell); err == nil {
			return resolved, []string{"-lc", command}
		}
	}
	return "sh", []string{"-lc", command}
}

// NormalizeCommand trims command and rejects empty or NUL-carrying input.
func NormalizeCommand(command string) (string, error) {
	trimmed := strings.TrimSpace(command)
	if trimmed == "" {
		return "", fmt.Errorf("command cannot be empty")
	}
	if strings.ContainsRune(trimmed, '\x00') {
		return "", fmt.Errorf("command contains invalid null byte")
	}
	return trimmed, nil
}
