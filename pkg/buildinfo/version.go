// Package buildinfo provides build-time version information.
//
// Release builds set the variables via ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/daygrid/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/daygrid/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/daygrid/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Binaries built with "go install module@version" carry no ldflags; for
// those the module version recorded by the toolchain is used.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Name is the program name used in version output and layout documents.
const Name = "daygrid"

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

func init() {
	if Version != "dev" {
		return
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		Version = moduleVersion(info, Version)
	}
}

// moduleVersion returns the main module version of info, or fallback for
// development builds.
func moduleVersion(info *debug.BuildInfo, fallback string) string {
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	return fallback
}

// Generator identifies this build in generated documents, e.g.
// "daygrid v1.2.0".
func Generator() string {
	return Name + " " + Version
}

// CacheScope is the key prefix that keeps cached results of different
// builds apart.
func CacheScope() string {
	return Version + ":"
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
