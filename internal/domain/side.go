package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Side identifies one outcome token of a binary market.
type Side string

const (
	SideYes Side = "YES"
	SideNo  Side = "NO"
)

// ErrInvalidSide marks a string that names neither outcome.
var ErrInvalidSide = errors.New("invalid side")

// ParseSide parses a side name case-insensitively, trimming whitespace.
func ParseSide(raw string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "YES":
		return SideYes, nil
	case "NO":
		return SideNo, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSide, raw)
	}
}

// Opposite returns the other outcome.
func (s Side) Opposite() Side {
	if s == SideYes {
		return SideNo
	}
	return SideYes
}

// Valid reports whether s names one of the two outcomes.
func (s Side) Valid() bool {
	return s == SideYes || s == SideNo
}

func (s Side) String() string {
	return string(s)
}
