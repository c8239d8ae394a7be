package domain

const (
	DefaultModel       = "text-davinci-002-render-sha"
	DefaultEndpointURL = "https://chat.openai.com/backend-api/conversation"
	DefaultOrigin      = "https://chat.openai.com"
	DefaultReferer     = "https://chat.openai.com/chat"
	DefaultUserAgent   = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/109.0.0.0 Safari/537.36"
)
