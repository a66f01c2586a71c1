package signer

import "strings"

// Config provides environment-based configuration for the signer.
// Secrets is a comma-separated list; the first entry signs, all entries verify.
type Config struct {
	Secrets string `env:"SIGNER_SECRETS" envDefault:""`
}

func (c Config) parseSecrets() []string {
	if c.Secrets == "" {
		return nil
	}

	parts := strings.Split(c.Secrets, ",")
	secrets := make([]string, 0, len(parts))
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			secrets = append(secrets, s)
		}
	}
	return secrets
}
