package whale

import (
	"fmt"
	"strings"
)

// Kind is the role of a segment in the chain, fixed at construction
type Kind uint8

const (
	Head Kind = iota
	Body
	Tail
	FinBearing
)

var kindNames = [...]string{
	Head:       "head",
	Body:       "body",
	Tail:       "tail",
	FinBearing: "fin",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// ParseKind accepts the names produced by String, case-insensitive
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	if name == "finbearing" || name == "fin-bearing" || name == "fin_bearing" {
		return FinBearing, nil
	}
	return 0, fmt.Errorf("unknown segment kind %q", s)
}
