package app

import (
	"fmt"

	"github.com/heartmarshall/ninolex-gh/pkg/ninolex"
)

// Version, Commit, and BuildTime are set via ldflags at build time.
// Example: go build -ldflags "-X github.com/heartmarshall/ninolex-gh/internal/app.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion reports the binary version together with the version of the
// dictionary data format it embeds. It is logged at startup and served by
// /health.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s, data: %s)", Version, Commit, BuildTime, ninolex.Version)
}
