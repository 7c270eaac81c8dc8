package palette_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waabox/stageview/internal/domain"
	"github.com/waabox/stageview/internal/palette"
)

func TestColorOf_DefinedForEveryState(t *testing.T) {
	p := palette.Default()
	for _, s := range append(domain.States, "", "running", "garbled") {
		hex := p.Hex(s)
		assert.NotEmpty(t, hex, "state %q", s)
		assert.Len(t, hex, 7, "state %q", s)
	}
}

func TestColorOf_OutsideValuesUseUnknown(t *testing.T) {
	p := palette.Default()
	unknown := p.Hex(domain.StateUnknown)
	assert.Equal(t, unknown, p.Hex(""))
	assert.Equal(t, unknown, p.Hex("cancelled"))
}

func TestColorOf_ErrorAndFailureShareColor(t *testing.T) {
	p := palette.Default()
	assert.Equal(t, p.Hex(domain.StateError), p.Hex(domain.StateFailure))
	assert.NotEqual(t, p.Hex(domain.StateSuccess), p.Hex(domain.StatePending))
}

func TestFromHex_OverridesSingleState(t *testing.T) {
	p, err := palette.FromHex(map[string]string{"success": "#00ff00"})
	require.NoError(t, err)
	assert.Equal(t, "#00ff00", p.Hex(domain.StateSuccess))
	assert.Equal(t, palette.Default().Hex(domain.StatePending), p.Hex(domain.StatePending))
}

func TestFromHex_RejectsBadInput(t *testing.T) {
	_, err := palette.FromHex(map[string]string{"success": "green"})
	assert.Error(t, err)

	_, err = palette.FromHex(map[string]string{"running": "#00ff00"})
	assert.Error(t, err)
}

func TestDefault_DashboardColors(t *testing.T) {
	p := palette.Default()
	assert.Equal(t, "#6cc644", p.Hex(domain.StateSuccess))
	assert.Equal(t, "#cea61b", p.Hex(domain.StatePending))
	assert.Equal(t, "#bd2c00", p.Hex(domain.StateError))
	assert.Equal(t, "#bd2c00", p.Hex(domain.StateFailure))
	assert.Equal(t, "#9e9e9e", p.Hex(domain.StateUnknown))
}

func TestColorOf_ZeroPaletteUsesUnknown(t *testing.T) {
	assert.Equal(t, "#9e9e9e", palette.Palette{}.Hex(domain.StateSuccess))
}
