// Package version holds build information injected with -ldflags.
package version

import (
	"fmt"
	"io"
)

// Build information
var (
	BuildTS   = "None"
	GitHash   = "None"
	GitBranch = "None"
	Version   = "dev"
)

// GetVersion returns the version with a short commit hash
func GetVersion() string {
	if GitHash != "" && GitHash != "None" {
		h := GitHash
		if len(h) > 7 {
			h = h[:7]
		}
		return fmt.Sprintf("%s-%s", Version, h)
	}
	return Version
}

// Print writes all build information to w
func Print(w io.Writer) {
	fmt.Fprintln(w, "Version:          ", GetVersion())
	fmt.Fprintln(w, "Git Branch:       ", GitBranch)
	fmt.Fprintln(w, "Git Commit:       ", GitHash)
	fmt.Fprintln(w, "Build Time (UTC): ", BuildTS)
}
