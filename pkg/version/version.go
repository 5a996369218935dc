// Package version exposes the build-time identity of the DataCapturing
// module: a semantic version string and a numeric build identifier,
// both fixed by the packaging pipeline before any consumer code runs.
//
// Values are injected at build time via -ldflags, e.g.
//
//	go build -ldflags "-X github.com/cyface-de/datacapturing/pkg/version.version=v1.2.3"
//
// Defaults mark an untagged development build rather than pretending
// to be a release.
package version

import (
	"fmt"
	"runtime"
	"strconv"
	"sync"

	"github.com/Masterminds/semver/v3"
)

var (
	// version is the semantic version of the binary.
	version = "0.0.0-devel"

	// commit is the VCS commit SHA the binary was built from.
	commit = "unknown"

	// date is the build timestamp in RFC 3339 form.
	date = "unknown"

	// number optionally overrides the derived numeric identifier.
	// When empty, the identifier is the major.minor value of the
	// version string.
	number = ""
)

// Info is an immutable snapshot of the build identity.
type Info struct {
	Version   string  `json:"version"`
	Number    float64 `json:"number"`
	Commit    string  `json:"commit"`
	BuildDate string  `json:"build_date"`
	GoVersion string  `json:"go_version"`
	Platform  string  `json:"platform"`
}

// String returns the version string. It is never empty and is
// identical on every call within one build.
func String() string {
	return version
}

// Commit returns the VCS commit SHA baked into the binary.
func Commit() string {
	return commit
}

// Date returns the build timestamp baked into the binary.
func Date() string {
	return date
}

// buildNumber resolves the numeric identifier exactly once. An
// explicit ldflags override wins; otherwise the value is derived from
// the version string.
var buildNumber = sync.OnceValue(func() float64 {
	if number != "" {
		if n, err := strconv.ParseFloat(number, 64); err == nil {
			return n
		}
	}
	return NumberFor(version)
})

// Number returns the numeric build identifier. It is deterministic
// across calls within one build.
func Number() float64 {
	return buildNumber()
}

// NumberFor derives the numeric identifier for an arbitrary version
// string as its semver major.minor value (e.g. "v1.2.3" yields 1.2).
// A string that is not a semantic version yields 0, which honestly
// marks an untagged build.
func NumberFor(v string) float64 {
	parsed, err := semver.NewVersion(v)
	if err != nil {
		return 0
	}
	n, err := strconv.ParseFloat(fmt.Sprintf("%d.%d", parsed.Major(), parsed.Minor()), 64)
	if err != nil {
		return 0
	}
	return n
}

// Get returns the full build identity snapshot.
func Get() Info {
	return Info{
		Version:   version,
		Number:    Number(),
		Commit:    commit,
		BuildDate: date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}
