package gcs

type Config struct {
	url string

	anonymous bool
}

type Option func(*Config)

// WithURL points the client to a custom endpoint such as a storage emulator.
func WithURL(url string) Option {
	return func(c *Config) {
		c.url = url
	}
}

func WithoutAuthentication() Option {
	return func(c *Config) {
		c.anonymous = true
	}
}
