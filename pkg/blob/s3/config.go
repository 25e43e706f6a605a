package s3

type Config struct {
	url    string
	region string

	accessKey string
	secretKey string
}

type Option func(*Config)

// WithURL sets a custom endpoint (MinIO, LocalStack), addressed path-style.
func WithURL(url string) Option {
	return func(c *Config) {
		c.url = url
	}
}

func WithRegion(region string) Option {
	return func(c *Config) {
		c.region = region
	}
}

func WithCredentials(accessKey, secretKey string) Option {
	return func(c *Config) {
		c.accessKey = accessKey
		c.secretKey = secretKey
	}
}
