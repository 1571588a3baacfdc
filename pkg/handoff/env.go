package handoff

import (
	"context"
	"os"
)

// EnvSource reads values from the launcher's own environment.
type EnvSource struct {
	lookupEnv func(string) (string, bool)
}

// NewEnvSource creates a source backed by os.LookupEnv.
func NewEnvSource() *EnvSource {
	return &EnvSource{lookupEnv: os.LookupEnv}
}

// Lookup returns the environment value for name. A variable set to the
// empty string is reported as present.
func (s *EnvSource) Lookup(ctx context.Context, name string) (string, bool, error) {
	value, ok := s.lookupEnv(name)
	return value, ok, nil
}

// Name returns the source name.
func (s *EnvSource) Name() string {
	return "env"
}
