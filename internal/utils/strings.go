package utils

import (
	"strings"

	"github.com/PolarWolf314/envvault/internal/ui"
)

// FormatNames formats variable names or setting keys as an indented list.
func FormatNames(names []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, name := range names {
		b.WriteString("    - ")
		b.WriteString(ui.Highlight.Sprint(name))
		b.WriteString("\n")
	}
	return b.String()
}

// IsAffirmative reports whether a prompt response means yes.
func IsAffirmative(response string) bool {
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
