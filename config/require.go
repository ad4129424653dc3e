package config

import (
	"context"
	"fmt"
)

// Require returns an error when any of the given keys has no value. Used
// by commands to abort before any per-repository work starts.
func Require(ctx context.Context, keys ...string) error {
	v := Viper(ctx)

	for _, key := range keys {
		if v.GetString(key) == "" {
			return fmt.Errorf("required configuration %q is not set", key)
		}
	}

	return nil
}
