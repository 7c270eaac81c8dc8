// Package palette maps build states to display colors.
package palette

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/waabox/stageview/internal/domain"
)

// Default hex colors per state. error and failure share a color.
var defaultHex = map[domain.State]string{
	domain.StateSuccess: "#6cc644",
	domain.StatePending: "#cea61b",
	domain.StateError:   "#bd2c00",
	domain.StateFailure: "#bd2c00",
	domain.StateUnknown: "#9e9e9e",
}

// Palette is a total mapping from State to color.
type Palette struct {
	colors map[domain.State]colorful.Color
}

// Default returns the stock palette.
func Default() Palette {
	p := Palette{colors: make(map[domain.State]colorful.Color, len(defaultHex))}
	for s, hex := range defaultHex {
		p.colors[s] = mustHex(hex)
	}
	return p
}

// FromHex builds a palette from state -> "#rrggbb" overrides.
// States absent from overrides keep their default color.
func FromHex(overrides map[string]string) (Palette, error) {
	p := Default()
	for name, hex := range overrides {
		if hex == "" {
			continue
		}
		state := domain.State(name)
		if !state.Valid() {
			return Palette{}, errors.Errorf("palette: unknown state %q", name)
		}
		c, err := colorful.Hex(hex)
		if err != nil {
			return Palette{}, errors.Wrapf(err, "palette: color for %s", name)
		}
		p.colors[state] = c
	}
	return p, nil
}

// ColorOf returns the color for s. Values outside the State enumeration,
// including the empty state, resolve to the unknown color.
func (p Palette) ColorOf(s domain.State) colorful.Color {
	if c, ok := p.colors[s]; ok {
		return c
	}
	if c, ok := p.colors[domain.StateUnknown]; ok {
		return c
	}
	return mustHex(defaultHex[domain.StateUnknown])
}

// Hex returns ColorOf(s) as "#rrggbb".
func (p Palette) Hex(s domain.State) string {
	return p.ColorOf(s).Hex()
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
