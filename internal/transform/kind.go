package transform

import (
	"fmt"
	"strings"
)

// Kind names a family of point-driven transforms.
type Kind int

const (
	// Auto picks a kind from the number of point pairs.
	Auto Kind = iota
	Affine
	Projective
	PiecewiseAffine
)

var kindNames = [...]string{"auto", "affine", "projective", "piecewiseaffine"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind is the inverse of Kind.String. It also accepts "piecewise-affine"
// and the empty string (Auto).
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", ""))
	if s == "" {
		return Auto, nil
	}
	for i, n := range kindNames {
		if s == n {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("transform: unknown kind %q", s)
}

// Points returns how many point pairs the kind needs, or 0 for any number.
func (k Kind) Points() int {
	switch k {
	case Affine:
		return 3
	case Projective:
		return 4
	}
	return 0
}

// kindFor resolves Auto by point count.
func kindFor(n int) Kind {
	switch n {
	case 3:
		return Affine
	case 4:
		return Projective
	}
	return PiecewiseAffine
}
