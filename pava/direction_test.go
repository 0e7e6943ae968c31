package pava

import (
	"encoding/json"
	"testing"

	"github.com/arloliu/isotonic/errs"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDirection_Complement(t *testing.T) {
	require.Equal(t, Decreasing, Increasing.Complement())
	require.Equal(t, Increasing, Decreasing.Complement())
	require.Equal(t, Increasing, Increasing.Complement().Complement())
	require.Equal(t, Direction(0), Direction(0).Complement())
}

func TestDirection_Violates(t *testing.T) {
	tests := []struct {
		name    string
		dir     Direction
		earlier float64
		later   float64
		want    bool
	}{
		{"increasing ordered", Increasing, 1, 2, false},
		{"increasing equal", Increasing, 2, 2, false},
		{"increasing violated", Increasing, 3, 2, true},
		{"decreasing ordered", Decreasing, 2, 1, false},
		{"decreasing equal", Decreasing, 2, 2, false},
		{"decreasing violated", Decreasing, 1, 2, true},
		{"invalid never violates", Direction(0), 3, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.dir.Violates(tt.earlier, tt.later))
		})
	}
}

func TestDirection_Holds(t *testing.T) {
	require.True(t, Increasing.Holds(1, 1))
	require.True(t, Increasing.Holds(1, 2))
	require.False(t, Increasing.Holds(2, 1))
	require.True(t, Decreasing.Holds(1, 1))
	require.True(t, Decreasing.Holds(2, 1))
	require.False(t, Decreasing.Holds(1, 2))
	require.False(t, Direction(9).Holds(1, 1))
}

func TestDirection_Valid(t *testing.T) {
	require.True(t, Increasing.Valid())
	require.True(t, Decreasing.Valid())
	require.False(t, Direction(0).Valid())
	require.False(t, Direction(3).Valid())

	var unset Direction
	require.False(t, unset.Valid(), "zero value must not select a direction")
}

func TestParseDirection(t *testing.T) {
	for _, name := range []string{"increasing", "INC", "asc", "Ascending", " up "} {
		d, err := ParseDirection(name)
		require.NoError(t, err, name)
		require.Equal(t, Increasing, d, name)
	}
	for _, name := range []string{"decreasing", "dec", "DESC", "descending", "down"} {
		d, err := ParseDirection(name)
		require.NoError(t, err, name)
		require.Equal(t, Decreasing, d, name)
	}

	_, err := ParseDirection("equal")
	require.ErrorIs(t, err, errs.ErrInvalidDirection)
	_, err = ParseDirection("")
	require.ErrorIs(t, err, errs.ErrInvalidDirection)
}

func TestDirection_Text(t *testing.T) {
	type doc struct {
		Direction Direction `json:"direction" yaml:"direction"`
	}

	out, err := json.Marshal(doc{Direction: Decreasing})
	require.NoError(t, err)
	require.JSONEq(t, `{"direction":"decreasing"}`, string(out))

	var fromJSON doc
	require.NoError(t, json.Unmarshal([]byte(`{"direction":"asc"}`), &fromJSON))
	require.Equal(t, Increasing, fromJSON.Direction)

	var fromYAML doc
	require.NoError(t, yaml.Unmarshal([]byte("direction: desc\n"), &fromYAML))
	require.Equal(t, Decreasing, fromYAML.Direction)

	require.Error(t, yaml.Unmarshal([]byte("direction: sideways\n"), &fromYAML))

	_, err = Direction(0).MarshalText()
	require.ErrorIs(t, err, errs.ErrInvalidDirection)
	require.Equal(t, "invalid", Direction(0).String())
}
