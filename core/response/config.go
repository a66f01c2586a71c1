package response

import "github.com/klauspost/compress/gzip"

// Config holds the process-wide defaults applied to every new Response.
// A zero CompressionLevel keeps the gzip default.
type Config struct {
	CompressOutput   bool   `env:"RESPONSE_COMPRESS_OUTPUT" envDefault:"false"`
	Cache            bool   `env:"RESPONSE_CACHE" envDefault:"false"`
	Charset          string `env:"RESPONSE_CHARSET" envDefault:"utf-8"`
	CompressionLevel int    `env:"RESPONSE_COMPRESSION_LEVEL" envDefault:"-1"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		CompressOutput:   false,
		Cache:            false,
		Charset:          DefaultCharset,
		CompressionLevel: gzip.DefaultCompression,
	}
}
