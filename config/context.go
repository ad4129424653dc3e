package config

import (
	"context"

	"github.com/spf13/viper"
)

type viperKey struct{}

// SetViper returns a context carrying the given Viper instance. A nil
// instance falls back to the global Viper.
func SetViper(ctx context.Context, v *viper.Viper) context.Context {
	if v == nil {
		v = viper.GetViper()
	}

	return context.WithValue(ctx, viperKey{}, v)
}

// Viper returns the Viper instance carried by the context, or the global
// instance when the context carries none.
func Viper(ctx context.Context) *viper.Viper {
	if v, ok := ctx.Value(viperKey{}).(*viper.Viper); ok {
		return v
	}

	return viper.GetViper()
}
