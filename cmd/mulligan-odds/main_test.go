package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/decklab/mulligan"
)

func TestParseTypeSpec(t *testing.T) {
	t.Parallel()

	cases := []struct {
		spec string
		want mulligan.CardType
	}{
		{"Lands:36", mulligan.CardType{Name: "Lands", Count: 36, ByTurn: 1}},
		{"Lands:36:2", mulligan.CardType{Name: "Lands", Count: 36, Required: 2, ByTurn: 1}},
		{"Lands:36:2:3", mulligan.CardType{Name: "Lands", Count: 36, Required: 2, ByTurn: 3}},
		{"Ramp Spells:12:1:2", mulligan.CardType{Name: "Ramp Spells", Count: 12, Required: 1, ByTurn: 2}},
	}
	for _, tc := range cases {
		t.Run(tc.spec, func(t *testing.T) {
			t.Parallel()
			got, err := parseTypeSpec(tc.spec)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseTypeSpecErrors(t *testing.T) {
	t.Parallel()

	for _, spec := range []string{
		"",
		"Lands",
		":36",
		"Lands:x",
		"Lands:36:y",
		"Lands:36:2:z",
		"Lands:36:2:3:4",
	} {
		t.Run(spec, func(t *testing.T) {
			t.Parallel()
			_, err := parseTypeSpec(spec)
			assert.Error(t, err, "spec %q should fail", spec)
		})
	}
}

func TestResolveInputsFromFlags(t *testing.T) {
	t.Parallel()

	cli := &CLI{
		DeckSize:     60,
		Type:         []string{"Lands:24:2:3", "Threats:8:1:4"},
		Penalty:      0.15,
		FreeMulligan: true,
	}
	deck, params, err := resolveInputs(cli)
	require.NoError(t, err)

	assert.Equal(t, 60, deck.Size)
	require.Len(t, deck.Types, 2)
	assert.Equal(t, "Threats", deck.Types[1].Name)
	require.NoError(t, deck.Validate())

	assert.Equal(t, 0.15, params.Penalty)
	assert.True(t, params.FreeMulligan)
	assert.False(t, params.OnThePlay)
}
