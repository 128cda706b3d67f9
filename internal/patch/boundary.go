package patch

import (
	"fmt"
	"strings"
)

// Boundary is a version range with independently inclusive or exclusive ends.
// A zero MinVersion means 0.0 and a zero MaxVersion means int.Max.int.Max.
type Boundary struct {
	MinVersion            Version
	MinVersionIsExclusive bool
	MaxVersion            Version
	MaxVersionIsExclusive bool
}

// Unbounded returns the boundary that contains every version.
func Unbounded() Boundary {
	return Boundary{MinVersion: MinVersion(), MaxVersion: MaxVersion()}
}

// NewBoundary builds a boundary and checks that the range is not empty.
func NewBoundary(min Version, minExclusive bool, max Version, maxExclusive bool) (Boundary, error) {
	b := Boundary{
		MinVersion:            min,
		MinVersionIsExclusive: minExclusive,
		MaxVersion:            max,
		MaxVersionIsExclusive: maxExclusive,
	}.normalize()

	if err := b.check(); err != nil {
		return Boundary{}, &FormatError{Kind: "boundary", Input: b.String(), Reason: err.Error()}
	}
	return b, nil
}

// ParseBoundary parses the textual boundary grammar:
//
//	<ver> <op> v <op> <ver>
//	v <op> <ver>
//	<ver> <op> v
//
// where <op> is "<" or "<=". Whitespace between tokens is optional.
// The single token "v" denotes the unbounded range.
func ParseBoundary(s string) (Boundary, error) {
	fail := func(reason string) (Boundary, error) {
		return Boundary{}, &FormatError{Kind: "boundary", Input: s, Reason: reason}
	}

	tokens, err := tokenizeBoundary(s)
	if err != nil {
		return fail(err.Error())
	}

	b := Unbounded()
	switch {
	case matchTokens(tokens, tokVar):
		// v
	case matchTokens(tokens, tokVar, tokOp, tokVersion):
		b.MaxVersionIsExclusive = tokens[1].exclusive
		if b.MaxVersion, err = ParseVersion(tokens[2].text); err != nil {
			return fail(err.Error())
		}
	case matchTokens(tokens, tokVersion, tokOp, tokVar):
		b.MinVersionIsExclusive = tokens[1].exclusive
		if b.MinVersion, err = ParseVersion(tokens[0].text); err != nil {
			return fail(err.Error())
		}
	case matchTokens(tokens, tokVersion, tokOp, tokVar, tokOp, tokVersion):
		b.MinVersionIsExclusive = tokens[1].exclusive
		b.MaxVersionIsExclusive = tokens[3].exclusive
		if b.MinVersion, err = ParseVersion(tokens[0].text); err != nil {
			return fail(err.Error())
		}
		if b.MaxVersion, err = ParseVersion(tokens[4].text); err != nil {
			return fail(err.Error())
		}
	default:
		return fail(`expected "<ver> <op> v <op> <ver>", "v <op> <ver>" or "<ver> <op> v" with <op> one of "<", "<="`)
	}

	if err := b.check(); err != nil {
		return fail(err.Error())
	}
	return b, nil
}

// MustParseBoundary is like ParseBoundary but panics on malformed input.
func MustParseBoundary(s string) Boundary {
	b, err := ParseBoundary(s)
	if err != nil {
		panic(err)
	}
	return b
}

// Contains reports whether v lies inside the boundary.
func (b Boundary) Contains(v Version) bool {
	n := b.normalize()

	c := v.Compare(n.MinVersion)
	if c < 0 || (c == 0 && n.MinVersionIsExclusive) {
		return false
	}
	c = v.Compare(n.MaxVersion)
	if c > 0 || (c == 0 && n.MaxVersionIsExclusive) {
		return false
	}
	return true
}

// HasMin reports whether the lower end is limited.
func (b Boundary) HasMin() bool {
	n := b.normalize()
	return n.MinVersionIsExclusive || !n.MinVersion.Equal(MinVersion())
}

// HasMax reports whether the upper end is limited.
func (b Boundary) HasMax() bool {
	n := b.normalize()
	return n.MaxVersionIsExclusive || !n.MaxVersion.Equal(MaxVersion())
}

// Equal reports whether both boundaries describe the same range.
func (b Boundary) Equal(other Boundary) bool {
	x, y := b.normalize(), other.normalize()
	return x.MinVersion.Equal(y.MinVersion) &&
		x.MinVersionIsExclusive == y.MinVersionIsExclusive &&
		x.MaxVersion.Equal(y.MaxVersion) &&
		x.MaxVersionIsExclusive == y.MaxVersionIsExclusive
}

// String renders the canonical form accepted by ParseBoundary.
func (b Boundary) String() string {
	n := b.normalize()
	hasMin, hasMax := n.HasMin(), n.HasMax()

	switch {
	case hasMin && hasMax:
		return fmt.Sprintf("%s %s v %s %s",
			n.MinVersion, operator(n.MinVersionIsExclusive), operator(n.MaxVersionIsExclusive), n.MaxVersion)
	case hasMin:
		return fmt.Sprintf("%s %s v", n.MinVersion, operator(n.MinVersionIsExclusive))
	case hasMax:
		return fmt.Sprintf("v %s %s", operator(n.MaxVersionIsExclusive), n.MaxVersion)
	default:
		return "v"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (b Boundary) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Boundary) UnmarshalText(text []byte) error {
	parsed, err := ParseBoundary(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

func (b Boundary) normalize() Boundary {
	if b.MinVersion.IsZero() {
		b.MinVersion = MinVersion()
	}
	if b.MaxVersion.IsZero() {
		b.MaxVersion = MaxVersion()
	}
	return b
}

func (b Boundary) check() error {
	c := b.MinVersion.Compare(b.MaxVersion)
	if c > 0 || (c == 0 && (b.MinVersionIsExclusive || b.MaxVersionIsExclusive)) {
		return fmt.Errorf("minimum %s is not below maximum %s", b.MinVersion, b.MaxVersion)
	}
	return nil
}

func operator(exclusive bool) string {
	if exclusive {
		return "<"
	}
	return "<="
}

type tokenKind int

const (
	tokVersion tokenKind = iota
	tokVar
	tokOp
)

type boundaryToken struct {
	kind      tokenKind
	text      string
	exclusive bool
}

func tokenizeBoundary(s string) ([]boundaryToken, error) {
	var tokens []boundaryToken
	for i := 0; i < len(s); {
		switch c := s[i]; {
		case c == ' ' || c == '\t':
			i++
		case c == '<':
			if i+1 < len(s) && s[i+1] == '=' {
				tokens = append(tokens, boundaryToken{kind: tokOp, text: "<="})
				i += 2
			} else {
				tokens = append(tokens, boundaryToken{kind: tokOp, text: "<", exclusive: true})
				i++
			}
		case c == '>' || c == '=':
			return nil, fmt.Errorf("unsupported operator at position %d", i)
		default:
			j := i
			for j < len(s) && !strings.ContainsRune(" \t<>=", rune(s[j])) {
				j++
			}
			word := s[i:j]
			if word == "v" {
				tokens = append(tokens, boundaryToken{kind: tokVar, text: word})
			} else {
				tokens = append(tokens, boundaryToken{kind: tokVersion, text: word})
			}
			i = j
		}
	}
	return tokens, nil
}

func matchTokens(tokens []boundaryToken, kinds ...tokenKind) bool {
	if len(tokens) != len(kinds) {
		return false
	}
	for i, k := range kinds {
		if tokens[i].kind != k {
			return false
		}
	}
	return true
}
