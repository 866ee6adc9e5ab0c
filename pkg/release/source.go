package release

import "strings"

// UnknownSource is reported when a filename names none of Sources.
const UnknownSource = "???"

// Sources lists the recognized source markers in match priority order.
var Sources = []string{"bluray", "dvd", "webdl", "webrip", "sdtv", "hdtv"}

// DetectSource returns the first entry of Sources found in the lowercased
// filename, or UnknownSource.
func DetectSource(filename string) string {
	lower := strings.ToLower(filename)
	for _, src := range Sources {
		if strings.Contains(lower, src) {
			return src
		}
	}
	return UnknownSource
}

// IsPhysicalSource reports whether src comes from disc media.
func IsPhysicalSource(src string) bool {
	return src == "bluray" || src == "dvd"
}
