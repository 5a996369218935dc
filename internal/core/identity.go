// Package core contains the domain use-cases of the identity service.
// It depends only on pkg/version and small third-party helpers; all
// transport and observability concerns live in outer layers.
package core

import (
	"fmt"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"

	"github.com/cyface-de/datacapturing/pkg/version"
)

// Verdict classifies a client build against the running server build.
type Verdict string

const (
	// VerdictCompatible means the client is on the server's major line.
	VerdictCompatible Verdict = "compatible"
	// VerdictOutdated means the client is at least one major line
	// behind and must upgrade.
	VerdictOutdated Verdict = "outdated"
	// VerdictAhead means the client reports a newer major line than
	// the server itself.
	VerdictAhead Verdict = "ahead"
)

// Identity describes the running process: the build identity plus the
// per-process instance ID and start time.
type Identity struct {
	version.Info

	InstanceID    string    `json:"instance_id"`
	StartedAt     time.Time `json:"started_at"`
	UptimeSeconds float64   `json:"uptime_seconds"`
}

// Compatibility is the result of comparing a client-reported build
// against the server build. ServerVersion is included so clients can
// decide how to react, mirroring a version handshake.
type Compatibility struct {
	ClientVersion string  `json:"client_version"`
	ServerVersion string  `json:"server_version"`
	Verdict       Verdict `json:"verdict"`
}

// IdentityUseCase answers identity and compatibility queries for the
// running binary. The build version is parsed once at construction;
// the instance ID and start time are fixed for the process lifetime.
type IdentityUseCase struct {
	build      *semver.Version
	raw        string
	instanceID string
	startedAt  time.Time
}

// NewIdentityUseCase validates the injected build version and assigns
// the process instance identity. The version must parse as semver;
// partial forms like "1.0" are coerced the same way client versions
// are. Anything unparsable fails fast, so a broken packaging step is
// caught at startup instead of surfacing as nonsense verdicts later.
func NewIdentityUseCase(v Version) (*IdentityUseCase, error) {
	build, err := semver.NewVersion(string(v))
	if err != nil {
		return nil, fmt.Errorf("parse build version %q: %w", string(v), err)
	}

	return &IdentityUseCase{
		build:      build,
		raw:        string(v),
		instanceID: uuid.NewString(),
		startedAt:  time.Now().UTC(),
	}, nil
}

// Identity returns the process identity snapshot. The build fields are
// constant for the process lifetime; only the uptime advances.
func (uc *IdentityUseCase) Identity() Identity {
	info := version.Get()
	if info.Version != uc.raw {
		// The injected version differs from the compiled default
		// (tests, or a caller composing its own use-case). The
		// snapshot follows the injected version.
		info.Version = uc.raw
		info.Number = version.NumberFor(uc.raw)
	}

	return Identity{
		Info:          info,
		InstanceID:    uc.instanceID,
		StartedAt:     uc.startedAt,
		UptimeSeconds: time.Since(uc.startedAt).Seconds(),
	}
}

// CheckCompatibility compares a client-reported version against the
// server build. Clients on the same major line are compatible; older
// major lines must upgrade; newer major lines are flagged as ahead so
// operators notice a stale server.
func (uc *IdentityUseCase) CheckCompatibility(clientVersion string) (Compatibility, error) {
	if clientVersion == "" {
		return Compatibility{}, &ErrInvalidInput{Field: "client_version", Message: "must not be empty"}
	}

	client, err := semver.NewVersion(clientVersion)
	if err != nil {
		return Compatibility{}, &ErrInvalidInput{
			Field:   "client_version",
			Message: fmt.Sprintf("%q is not a semantic version", clientVersion),
		}
	}

	verdict := VerdictCompatible
	switch {
	case client.Major() < uc.build.Major():
		verdict = VerdictOutdated
	case client.Major() > uc.build.Major():
		verdict = VerdictAhead
	}

	return Compatibility{
		ClientVersion: client.Original(),
		ServerVersion: uc.raw,
		Verdict:       verdict,
	}, nil
}
