package model

import (
	"fmt"
	"strings"
)

// Kind names a calculator variant.
// Keep these values stable; they appear in URLs, CSV exports and config keys.
type Kind string

const (
	KindSIP       Kind = "sip"
	KindStepUp    Kind = "stepup"
	KindInflation Kind = "inflation"
	KindSWP       Kind = "swp"
)

// Kinds returns every calculator in display order.
func Kinds() []Kind {
	return []Kind{KindSIP, KindStepUp, KindInflation, KindSWP}
}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindSIP, KindStepUp, KindInflation, KindSWP:
		return k, nil
	case "step-up", "step_up":
		return KindStepUp, nil
	}
	return "", fmt.Errorf("unknown calculator: %q", s)
}

func (k Kind) Title() string {
	switch k {
	case KindSIP:
		return "SIP Calculator"
	case KindStepUp:
		return "Step-Up SIP Calculator"
	case KindInflation:
		return "Inflation Calculator"
	case KindSWP:
		return "SWP Calculator"
	default:
		return string(k)
	}
}
