package release

import (
	"path/filepath"
	"regexp"
	"strconv"
)

var seasonDirRegex = regexp.MustCompile(`(?i)^Season (\d+)$`)

// SeasonDir parses a "<show>/Season N" directory. It returns the season
// number and the show directory (the season directory's parent). ok is false
// when the base name is not "Season N".
func SeasonDir(dir string) (season int, showDir string, ok bool) {
	dir = filepath.Clean(dir)
	m := seasonDirRegex.FindStringSubmatch(filepath.Base(dir))
	if m == nil {
		return 0, "", false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "", false
	}
	return n, filepath.Dir(dir), true
}

// ShowTitle returns the show name for a season directory, the base name of
// its parent. ok is false when dir is not a season directory or has no
// parent name.
func ShowTitle(dir string) (string, bool) {
	_, showDir, ok := SeasonDir(dir)
	if !ok {
		return "", false
	}
	name := filepath.Base(showDir)
	if name == "." || name == string(filepath.Separator) {
		return "", false
	}
	return name, true
}
