package tabs

import "regexp"

// Tab is one open browser target as reported by the DevTools endpoint.
type Tab struct {
	// ID is the DevTools target identifier.
	ID string `json:"id"`

	// Type distinguishes pages from service workers, extensions etc.
	Type string `json:"type"`

	// Title is the current document title.
	Title string `json:"title"`

	// URL is the current document URL.
	URL string `json:"url"`
}

// meetCallPattern matches a Meet call URL like
// https://meet.google.com/abc-defg-hij. The landing page and other Meet
// surfaces (e.g. /landing, /new) do not match, so only tabs that are
// actually inside a call count.
var meetCallPattern = regexp.MustCompile(`^https://meet\.google\.com/[a-z0-9]+-[a-z0-9]+-[a-z0-9]+([?#].*)?$`)

// IsMeetCall reports whether a URL points at an active Meet call.
func IsMeetCall(url string) bool {
	return meetCallPattern.MatchString(url)
}
