package display

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbernstein/nearbystops/internal/models"
)

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestPresenter_Present(t *testing.T) {
	tests := []struct {
		name  string
		stops []models.StopPoint
		want  string
	}{
		{
			name: "names in order",
			stops: []models.StopPoint{
				{ID: "490000077E", Name: "Buckingham Palace Road"},
				{ID: "490003544W", Name: "Victoria Station"},
			},
			want: "Buckingham Palace Road\nVictoria Station\n",
		},
		{
			name:  "empty list prints nothing",
			stops: []models.StopPoint{},
			want:  "",
		},
		{
			name:  "nil list prints nothing",
			stops: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := NewPresenter(&out).Present(tt.stops)

			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestPresenter_WriteError(t *testing.T) {
	err := NewPresenter(brokenWriter{}).Present([]models.StopPoint{{ID: "A", Name: "Stop A"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
}
