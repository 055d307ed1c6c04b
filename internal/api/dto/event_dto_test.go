package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRequestDates(t *testing.T) {
	tests := []struct {
		raw     string
		want    time.Time
		wantErr bool
	}{
		{raw: "2024-05-01T18:00:00Z", want: time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)},
		{raw: "2024-05-01T18:00", want: time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)},
		{raw: "2024-05-01", want: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{raw: ""},
		{raw: "next friday", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			input, err := EventRequest{Title: "x", Date: tc.raw}.ToInput()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(input.Date), "got %v", input.Date)
		})
	}
}
