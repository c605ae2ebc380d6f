package options

import (
	"fmt"
	"runtime"
)

// Build-time variables injected via linker flags (ldflags).
//
//	go build -ldflags "-X github.com/thrush-lang/thrushc/options.Version=$(git describe --tags)"
var (
	Version   = "dev"     // Overwritten with git tag (e.g., "v0.5.0")
	Commit    = "unknown" // Overwritten with git commit hash
	BuildDate = "unknown" // Overwritten with build timestamp
)

// Ident is the producer string recorded in every module's llvm.ident.
func Ident() string {
	s := fmt.Sprintf("thrushc %s (%s/%s)", Version, runtime.GOOS, runtime.GOARCH)
	if Commit != "unknown" {
		s += " " + Commit
	}
	return s
}
