// Package version carries build information injected at link time.
package version

import "fmt"

// Version information, overridden via -ldflags at build time.
var (
	Version   = "dev"
	GitHash   = "none"
	BuildTime = "unknown"
)

// String returns the formatted version.
func String() string {
	h := GitHash
	if len(h) > 7 {
		h = h[:7]
	}
	return fmt.Sprintf("%s-%s", Version, h)
}
