package demo

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/valuetrack/internal/errors"
	"github.com/vango-dev/valuetrack/pkg/stream"
	"github.com/vango-dev/valuetrack/pkg/track"
)

func lastLine(t *testing.T, out string) string {
	t.Helper()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.NotEmpty(t, lines)
	return lines[len(lines)-1]
}

func runScenario(t *testing.T, name string) string {
	t.Helper()
	s, err := Lookup(name)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, s.Run(&buf))
	return buf.String()
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name  string
		lines int
		final string
	}{
		{"vector", 4, "[[0 1 2] [0 5 2] [0 7 9]]"},
		{"chain", 9, "[0 22 0 42 999 999]"},
		{"optional", 9, "[<nil> 0 22 0 42 999 <nil> 999]"},
		{"events", 9, "[22 42]"},
		{"length", 5, "[2.23606797749979 2 0 9 15 25]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := runScenario(t, tt.name)
			assert.Len(t, strings.Split(strings.TrimRight(out, "\n"), "\n"), tt.lines)
			assert.True(t, strings.HasSuffix(lastLine(t, out), tt.final), lastLine(t, out))
		})
	}
}

func TestLookupUnknownScenario(t *testing.T) {
	_, err := Lookup("nope")
	var te *errors.TrackError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, errors.CodeUnknownScenario, te.Code)
	assert.Equal(t, []string{"chain", "events", "length", "optional", "vector"}, Names())
}

func TestWorldStep(t *testing.T) {
	w := NewWorld()
	defer w.Dispose()

	ring, err := w.Person.E("phone.ring")
	require.NoError(t, err)
	var rings []any
	ring.Subscribe(stream.Observer{Next: func(v any) { rings = append(rings, v) }})

	for i := 0; i < 6; i++ {
		require.NoError(t, w.Step())
	}

	assert.Equal(t, []any{1, 2, 3, 4, 5, 6}, rings)
	assert.Equal(t, 6, track.Get[int](w.Carriages[0], "x"))
	assert.Equal(t, 7, track.Get[int](w.Carriages[1], "x"))
	// step 3 moved the passenger to the second carriage, step 6 back
	assert.Equal(t, 6, track.Get[int](w.Passenger, "position"))
	assert.Same(t, w.Phones[1], track.Get[*Phone](w.Person, "phone"))
	assert.Len(t, w.Trackers(), 6)
}
