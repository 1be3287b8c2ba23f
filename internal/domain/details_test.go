package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/mparker/character-vault/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModifier_UnmarshalNumericShapes(t *testing.T) {
	tests := []struct {
		blob string
		want domain.Modifier
	}{
		{`{"target":"STR","value":2}`, domain.Modifier{Target: "STR", Value: 2}},
		{`{"target":"STR","value":"2"}`, domain.Modifier{Target: "STR", Value: 2}},
		{`{"target":"STR","value":" -1 ","note":"cursed"}`, domain.Modifier{Target: "STR", Value: -1, Note: "cursed"}},
	}

	for _, tt := range tests {
		var m domain.Modifier
		require.NoError(t, json.Unmarshal([]byte(tt.blob), &m), "blob %s", tt.blob)
		assert.Equal(t, tt.want, m, "blob %s", tt.blob)
	}
}

func TestModifier_UnmarshalUnparseableDegradesToBlank(t *testing.T) {
	// A broken entry blanks instead of erroring so one bad modifier cannot
	// abort the whole Details decode.
	for _, blob := range []string{
		`{"target":"STR","value":"two"}`,
		`{"target":"STR","value":{"nested":true}}`,
		`{"target":"STR"}`,
		`"not an object"`,
	} {
		var m domain.Modifier
		require.NoError(t, json.Unmarshal([]byte(blob), &m), "blob %s", blob)
		assert.Equal(t, domain.Modifier{}, m, "blob %s", blob)
	}
}

func TestCoerceInt(t *testing.T) {
	v, ok := domain.CoerceInt(float64(3))
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	v, ok = domain.CoerceInt("  -2 ")
	assert.True(t, ok)
	assert.Equal(t, -2, v)

	v, ok = domain.CoerceInt(json.Number("7"))
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	_, ok = domain.CoerceInt("seven")
	assert.False(t, ok)
	_, ok = domain.CoerceInt(nil)
	assert.False(t, ok)
	_, ok = domain.CoerceInt(true)
	assert.False(t, ok)
}

func TestDetails_DecodeMixedLegacyRecord(t *testing.T) {
	blob := `{
		"items": [{"name":"Cloak","modifiers":[{"target":"DEX","value":"1"},{"target":"DEX","value":"???"}]}],
		"armors": [{"name":"Chain Mail","ability":"CA","modifier":"6"}],
		"spells": {"level1":"Shield\nMage Armor — at dawn"},
		"inventory": "Torch\nRope"
	}`

	var d domain.Details
	require.NoError(t, json.Unmarshal([]byte(blob), &d))

	require.Len(t, d.Items, 1)
	require.Len(t, d.Items[0].Modifiers, 2)
	assert.Equal(t, 1, d.Items[0].Modifiers[0].Value)
	assert.Equal(t, domain.Modifier{}, d.Items[0].Modifiers[1], "unparseable value blanks the modifier")

	require.Len(t, d.Armors, 1)
	assert.Equal(t, "CA", d.Armors[0].Ability)

	require.Len(t, d.Spells["level1"], 2)
	assert.Equal(t, "Shield", d.Spells["level1"][0].Name)
}
