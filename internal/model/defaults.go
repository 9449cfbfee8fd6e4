package model

import "time"

// Shared defaults used by the CLI, the view models and the mock API.
const (
	DefaultBaseURL        = "https://api.chucknorris.io"
	DefaultJokeCount      = 5
	DefaultRequestTimeout = 30 * time.Second
	DefaultMockAddr       = "127.0.0.1:3000"
	DefaultLogLevel       = "info"
)
