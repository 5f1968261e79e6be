package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/observegen/errors"
)

func TestForFormat(t *testing.T) {
	tests := []struct {
		format string
		want   string
		ext    string
	}{
		{FormatGo, "go", "go"},
		{"golang", "go", "go"},
		{FormatYAML, "yaml", "yaml"},
		{"yml", "yaml", "yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			r, err := ForFormat(tt.format, Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Format())
			assert.Equal(t, tt.ext, r.FileExtension())
		})
	}
}

func TestForFormatUnknown(t *testing.T) {
	_, err := ForFormat("csharp", Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownFormat))
	assert.Contains(t, err.Error(), `"csharp"`)
}
