package domain

// ResponseEnvelope holds whatever the endpoint returned. The status code is not interpreted.
type ResponseEnvelope struct {
	StatusCode int
	Body       []byte
}
