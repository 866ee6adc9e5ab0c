package release

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeasonDir(t *testing.T) {
	tests := []struct {
		dir     string
		season  int
		showDir string
		ok      bool
	}{
		{"/media/tv/Firefly/Season 1", 1, "/media/tv/Firefly", true},
		{"/media/tv/Firefly/season 02/", 2, "/media/tv/Firefly", true},
		{"/media/tv/Firefly/Season 0", 0, "/media/tv/Firefly", true},
		{"/media/tv/Firefly/Specials", 0, "", false},
		{"/media/tv/Firefly/Season 1 Extras", 0, "", false},
		{"/media/tv/Firefly", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			season, showDir, ok := SeasonDir(tt.dir)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.season, season)
			assert.Equal(t, tt.showDir, showDir)
		})
	}
}

func TestShowTitle(t *testing.T) {
	name, ok := ShowTitle("/media/tv/The Wire/Season 3")
	assert.True(t, ok)
	assert.Equal(t, "The Wire", name)

	_, ok = ShowTitle("/media/movies/Heat (1995)")
	assert.False(t, ok)

	_, ok = ShowTitle("/Season 1")
	assert.False(t, ok)
}
