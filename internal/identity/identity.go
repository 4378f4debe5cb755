package identity

import (
	"path/filepath"
	"strings"
)

const (
	BrandName = "kitproj"
	// AppSlug is the canonical identifier for user-facing and on-disk state.
	AppSlug = "kitproj"
	CLIName = "kitproj"

	// ManifestFile is the per-project session manifest looked up in a pane's cwd.
	ManifestFile = ".kitty-session.json"

	GlobalConfigFile = "config.yml"

	// OSWindowVar is the kitty user var used to tag OS-windows created by one layout build.
	OSWindowVar = "kitproj_osw"
)

var (
	InputAliases = []string{"kp"}
)

// ResolveBinaryName returns the CLI name to present for the given argv.
// Known aliases keep their own name so help output matches what was typed.
func ResolveBinaryName(args []string) string {
	if len(args) == 0 {
		return CLIName
	}
	base := strings.TrimSpace(filepath.Base(args[0]))
	if IsCLICommandToken(base) {
		return strings.ToLower(base)
	}
	return CLIName
}

func IsCLICommandToken(token string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(token))
	if trimmed == "" {
		return false
	}
	if trimmed == CLIName {
		return true
	}
	for _, alias := range InputAliases {
		if trimmed == alias {
			return true
		}
	}
	return false
}
