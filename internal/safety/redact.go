package safety

import (
	"regexp"

	"go.uber.org/zap"
)

const (
	secretWords = `(?:token|secret|password|passwd|api[_-]?key|access[_-]?key)`
	secretValue = `([^\s"']+|"[^"]*"|'[^']*')`
)

type redactionRule struct {
	pattern     *regexp.Regexp
	replacement string
}

var secretRedactionRules = []redactionRule{
	{
		// NAME=value and NAME: value
		pattern:     regexp.MustCompile(`(?i)\b([a-z0-9_]*` + secretWords + `[a-z0-9_]*)\s*[=:]\s*` + secretValue),
		replacement: `$1=<redacted>`,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\b(authorization\s*:\s*bearer)\s+([^\s"']+)`),
		replacement: `$1 <redacted>`,
	},
	{
		pattern:     regexp.MustCompile(`(?i)(--[a-z0-9_-]*(?:` + secretWords + `|authorization)[a-z0-9_-]*)(\s*=\s*|\s+)` + secretValue),
		replacement: `$1$2<redacted>`,
	},
}

// RedactText scrubs secret-looking assignments and flags from a command line.
// It is applied to log output only.
func RedactText(input string) string {
	redacted := input
	for _, rule := range secretRedactionRules {
		redacted = rule.pattern.ReplaceAllString(redacted, rule.replacement)
	}
	return redacted
}

// Command is a log field carrying a redacted command line.
func Command(command string) zap.Field {
	return zap.String("command", RedactText(command))
}
