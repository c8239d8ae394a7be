package domain

// Credentials carries the bearer token and the browser-facing headers the
// endpoint checks before it accepts a request.
type Credentials struct {
	AccessToken    string
	UserAgent      string
	Origin         string
	Referer        string
	AssistantAppID string
}
