package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAmountUnmarshal(t *testing.T) {
	tests := map[string]float64{
		`1500`:     1500,
		`"1500.5"`: 1500.5,
		`" 42 "`:   42,
		`""`:       0,
		`null`:     0,
		`"-3"`:     -3,
		`1e3`:      1000,
	}
	for in, want := range tests {
		var a Amount
		require.NoError(t, json.Unmarshal([]byte(in), &a), in)
		require.Equal(t, want, a.Float64(), in)
	}
}

func TestAmountRejectsNonFinite(t *testing.T) {
	for _, in := range []string{`"NaN"`, `"Inf"`, `"+Inf"`, `"-Infinity"`, `"abc"`} {
		var a Amount
		require.Error(t, json.Unmarshal([]byte(in), &a), in)
	}
}
