// Package buildinfo carries build-time metadata for the peer binary.
//
// Values are injected by the linker, e.g.
//
//	go build -ldflags "-X github.com/AdeptTravel/peerd/internal/buildinfo.version=1.4.0 \
//	  -X github.com/AdeptTravel/peerd/internal/buildinfo.commit=$(git rev-parse HEAD) \
//	  -X github.com/AdeptTravel/peerd/internal/buildinfo.date=$(date -u +%FT%TZ)"
//
// Unset values read as "N/A".
package buildinfo

import (
	"runtime"
	"runtime/debug"
)

var (
	version string
	commit  string
	date    string
)

const notAvailable = "N/A"

// Info is immutable build metadata.
type Info struct {
	Version string
	Commit  string
	Date    string
	// TLS names the TLS implementation linked into the binary.
	TLS string
}

// Current returns the metadata of the running binary.  A missing commit
// falls back to the VCS revision stamped by the Go toolchain.
func Current() Info {
	return Info{
		Version: orNA(version),
		Commit:  orNA(firstNonEmpty(commit, vcsRevision())),
		Date:    orNA(date),
		TLS:     "crypto/tls " + runtime.Version(),
	}
}

func vcsRevision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
