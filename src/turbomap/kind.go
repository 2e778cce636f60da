package turbomap

import (
	"fmt"
	"strings"
)

// Kind identifies the turbomachinery component family a map belongs to.
// It only influences labeling and default styling; compressor and turbine
// maps share the same table, scaling and rendering contract.
type Kind int

const (
	Compressor Kind = iota
	Turbine
)

func (k Kind) String() string {
	switch k {
	case Compressor:
		return "compressor"
	case Turbine:
		return "turbine"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind accepts "compressor" or "turbine" (case-insensitive).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "compressor":
		return Compressor, nil
	case "turbine":
		return Turbine, nil
	}
	return Compressor, fmt.Errorf("unknown map kind %q (want compressor or turbine)", s)
}

// TitlePrefix is the default figure title for a map of this kind.
func (k Kind) TitlePrefix() string {
	if k == Turbine {
		return "Turbine map"
	}
	return "Compressor map"
}
