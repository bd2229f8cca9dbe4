package youtube

import "regexp"

// videoIDPattern matches the four recognized URL shapes: watch?v=, /embed/,
// /v/ and youtu.be short links. Real YouTube ids are exactly 11 characters of
// [A-Za-z0-9_-]; anything else is rejected.
var videoIDPattern = regexp.MustCompile(`(?:v=|/embed/|/v/|youtu\.be/)([A-Za-z0-9_-]{11})`)

// ExtractVideoID pulls the video identifier out of a user-supplied URL.
// The boolean is false when no recognized shape is present; callers treat
// that as a validation failure at the boundary, not an internal fault.
func ExtractVideoID(url string) (string, bool) {
	m := videoIDPattern.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}
