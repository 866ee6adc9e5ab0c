package release

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchConfidenceString(t *testing.T) {
	tests := []struct {
		conf     MatchConfidence
		expected string
	}{
		{ConfidenceHigh, "high"},
		{ConfidenceMedium, "medium"},
		{ConfidenceLow, "low"},
		{ConfidenceNone, "none"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.conf.String())
		})
	}
}

func TestMatchShow(t *testing.T) {
	t.Run("year suffix and punctuation", func(t *testing.T) {
		r := MatchShow("The Office (US)", []string{"Office US", "Parks and Recreation"})
		assert.Equal(t, "Office US", r.Name)
		assert.Equal(t, ConfidenceHigh, r.Confidence)
		assert.True(t, r.Similar())
	})

	t.Run("renamed with year", func(t *testing.T) {
		r := MatchShow("Battlestar Galactica (2004)", []string{"Battlestar Galactica", "Galactica 1980"})
		assert.Equal(t, "Battlestar Galactica", r.Name)
		assert.True(t, r.Similar())
	})

	t.Run("unrelated", func(t *testing.T) {
		r := MatchShow("Firefly", []string{"The Wire", "Deadwood"})
		assert.False(t, r.Similar())
	})

	t.Run("skips itself", func(t *testing.T) {
		r := MatchShow("Firefly", []string{"Firefly"})
		assert.Equal(t, ConfidenceNone, r.Confidence)
		assert.Empty(t, r.Name)
	})

	t.Run("no candidates", func(t *testing.T) {
		r := MatchShow("Firefly", nil)
		assert.Equal(t, ConfidenceNone, r.Confidence)
	})
}
