// Package patch implements the component patch engine: version boundaries,
// installer and upgrade definitions, dependency-ordered execution, and the
// package records that track every execution attempt.
package patch

import (
	"fmt"
	"math"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// Version is a dotted numeric component version such as "1.0" or "2.1.3".
// The text it was parsed from is kept, so "1.0" renders as "1.0".
type Version struct {
	v *goversion.Version
}

var (
	minVersion = MustParseVersion("0.0")
	maxVersion = MustParseVersion(fmt.Sprintf("%d.%d", math.MaxInt32, math.MaxInt32))
)

// MinVersion returns 0.0, the implicit lower limit of a boundary.
func MinVersion() Version { return minVersion }

// MaxVersion returns int.Max.int.Max, the implicit upper limit of a boundary.
func MaxVersion() Version { return maxVersion }

// ParseVersion parses a dotted numeric version.
func ParseVersion(s string) (Version, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return Version{}, &FormatError{Kind: "version", Input: s, Reason: "version is empty"}
	}
	if text[0] < '0' || text[0] > '9' {
		return Version{}, &FormatError{Kind: "version", Input: s, Reason: "version must start with a digit"}
	}

	v, err := goversion.NewVersion(text)
	if err != nil {
		return Version{}, &FormatError{Kind: "version", Input: s, Reason: err.Error()}
	}
	if v.Prerelease() != "" || v.Metadata() != "" {
		return Version{}, &FormatError{Kind: "version", Input: s, Reason: "version must be dotted numbers only"}
	}
	if !withinLimits(v.Segments64()) {
		return Version{}, &FormatError{Kind: "version", Input: s, Reason: fmt.Sprintf("version exceeds %d.%d", math.MaxInt32, math.MaxInt32)}
	}
	return Version{v: v}, nil
}

// withinLimits reports whether segs is at most MaxInt32.MaxInt32 and every
// segment fits in an int32.
func withinLimits(segs []int64) bool {
	for _, seg := range segs {
		if seg > math.MaxInt32 {
			return false
		}
	}
	if len(segs) > 2 && segs[0] == math.MaxInt32 && segs[1] == math.MaxInt32 {
		for _, seg := range segs[2:] {
			if seg > 0 {
				return false
			}
		}
	}
	return true
}

// MustParseVersion is like ParseVersion but panics on malformed input.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// IsZero reports whether v is the zero Version (never parsed).
func (v Version) IsZero() bool {
	return v.v == nil
}

// String returns the version text as it was written.
func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.Original()
}

// Compare returns -1, 0 or 1. Missing trailing segments compare as zero and
// the zero Version sorts before every parsed version.
func (v Version) Compare(other Version) int {
	switch {
	case v.v == nil && other.v == nil:
		return 0
	case v.v == nil:
		return -1
	case other.v == nil:
		return 1
	}
	return v.v.Compare(other.v)
}

// Equal reports whether both versions denote the same release.
func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

// LessThan reports whether v sorts before other.
func (v Version) LessThan(other Version) bool {
	return v.Compare(other) < 0
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*v = Version{}
		return nil
	}
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
