package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{name: "created to confirmed", from: StatusCreated, to: StatusConfirmed, want: true},
		{name: "confirmed to preparing", from: StatusConfirmed, to: StatusPreparing, want: true},
		{name: "preparing to finished", from: StatusPreparing, to: StatusFinished, want: true},
		{name: "created to preparing skips a step", from: StatusCreated, to: StatusPreparing, want: false},
		{name: "created to finished skips two steps", from: StatusCreated, to: StatusFinished, want: false},
		{name: "confirmed back to created", from: StatusConfirmed, to: StatusCreated, want: false},
		{name: "preparing back to confirmed", from: StatusPreparing, to: StatusConfirmed, want: false},
		{name: "created to canceled", from: StatusCreated, to: StatusCanceled, want: true},
		{name: "confirmed to canceled", from: StatusConfirmed, to: StatusCanceled, want: true},
		{name: "preparing to canceled", from: StatusPreparing, to: StatusCanceled, want: true},
		{name: "finished to canceled", from: StatusFinished, to: StatusCanceled, want: false},
		{name: "finished to confirmed", from: StatusFinished, to: StatusConfirmed, want: false},
		{name: "canceled to confirmed", from: StatusCanceled, to: StatusConfirmed, want: false},
		{name: "canceled to canceled", from: StatusCanceled, to: StatusCanceled, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, StatusCreated.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, StatusPreparing.IsTerminal())
	assert.True(t, StatusFinished.IsTerminal())
	assert.True(t, StatusCanceled.IsTerminal())
}

func TestParseStatus(t *testing.T) {
	for _, st := range All() {
		parsed, err := ParseStatus(st.String())
		require.NoError(t, err)
		assert.Equal(t, st, parsed)
	}

	_, err := ParseStatus("DELIVERING")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = ParseStatus("created")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
