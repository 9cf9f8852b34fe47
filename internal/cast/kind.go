// Package cast holds the dating-sim characters and their mutable status.
package cast

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind identifies a character. The set is closed.
type Kind int

const (
	JanitorJoe Kind = iota
	OldLady
	Twin1
	Twin2
	Cat
)

var kindTags = [...]string{
	JanitorJoe: "janitor_joe",
	OldLady:    "old_lady",
	Twin1:      "twin1",
	Twin2:      "twin2",
	Cat:        "cat",
}

// Kinds returns every character kind in declaration order.
func Kinds() []Kind {
	return []Kind{JanitorJoe, OldLady, Twin1, Twin2, Cat}
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= JanitorJoe && k <= Cat
}

// String returns the wire tag, e.g. "janitor_joe".
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindTags[k]
}

// DisplayName returns the name shown to players, e.g. "Janitor Joe".
func (k Kind) DisplayName() string {
	if !k.Valid() {
		return "???"
	}
	// Casers carry state and are not shared between sessions.
	return cases.Title(language.English).String(strings.ReplaceAll(kindTags[k], "_", " "))
}

// ParseKind converts a wire tag to a Kind. Matching ignores case.
func ParseKind(tag string) (Kind, error) {
	norm := strings.ToLower(strings.TrimSpace(tag))
	for k, t := range kindTags {
		if t == norm {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown character %q", tag)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid character kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
