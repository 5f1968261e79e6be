package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWrapf(t *testing.T) {
	original := New("original")
	wrapped := Wrapf(original, "render %s", "PlayerGen0")

	assert.Equal(t, "render PlayerGen0: original", wrapped.Error())
}

func TestWithHint(t *testing.T) {
	err := WithHint(ErrOutOfDate, "run 'observegen' to regenerate")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "run 'observegen' to regenerate", hints[0])
	assert.True(t, IsOutOfDate(err))
}

func TestSentinels(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"wrapped nested scope", Wrap(ErrNestedScope, "Outer.Inner"), IsNestedScope, true},
		{"wrapped out of date", Wrapf(ErrOutOfDate, "%d files", 2), IsOutOfDate, true},
		{"other error is not nested scope", New("boom"), IsNestedScope, false},
		{"nil is not out of date", nil, IsOutOfDate, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.check(tt.err))
		})
	}
}
