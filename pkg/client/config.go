package client

import "time"

// Config holds settings for the worklog API client.
type Config struct {
	// BaseURL is the server root, e.g. http://localhost:5000
	BaseURL string `yaml:"base_url" json:"base_url"`
	// Timeout bounds each HTTP request
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
	// Retries is the number of extra attempts for read requests that fail at the transport level
	Retries int `yaml:"retries" json:"retries"`
	// Backoff is the base delay between retries
	Backoff time.Duration `yaml:"backoff" json:"backoff"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:5000",
		Timeout: 10 * time.Second,
		Retries: 2,
		Backoff: 200 * time.Millisecond,
	}
}
