package wecom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMediaType(t *testing.T) {
	tests := []struct {
		input    string
		expected MediaType
		wantErr  bool
	}{
		{"file", MediaTypeFile, false},
		{"image", MediaTypeImage, false},
		{"voice", MediaTypeVoice, false},
		{"video", MediaTypeVideo, false},
		{"FILE", MediaTypeFile, false},
		{"Image", MediaTypeImage, false},
		{"gif", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMediaType(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMediaType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, string(tt.expected), got.String())
		})
	}
}
