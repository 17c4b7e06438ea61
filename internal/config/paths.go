package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// expandPath expands $VAR references and a leading ~ in p.
// If the home directory is unknown, the ~ is left in place.
func expandPath(p string) string {
	if p == "" {
		return p
	}

	expanded := os.ExpandEnv(p)
	homeRelative := strings.HasPrefix(expanded, "~/") ||
		(runtime.GOOS == "windows" && strings.HasPrefix(expanded, `~\`))
	if expanded != "~" && !homeRelative {
		return expanded
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return expanded
	}
	if expanded == "~" {
		return home
	}
	return filepath.Join(home, expanded[2:])
}
