// Package envconfig loads process configuration from environment variables.
package envconfig

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Parse fills target, a pointer to a struct with `env` tags, from the
// environment.
func Parse(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
