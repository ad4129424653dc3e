package workflow

import (
	"context"
	"fmt"
	"sort"

	"github.com/tiamat-cli/tiamat/config"
)

// Preset is a named deployment environment bound to a workflow file, a ref,
// and default inputs. Presets come from configuration and ship with
// staging/prod/demo defaults.
type Preset struct {
	Workflow    string            `mapstructure:"workflow"`
	Ref         string            `mapstructure:"ref"`
	Inputs      map[string]string `mapstructure:"inputs"`
	Description string            `mapstructure:"description"`
}

// Presets returns the configured deployment presets keyed by environment.
func Presets(ctx context.Context) (map[string]Preset, error) {
	presets := make(map[string]Preset)

	if err := config.Viper(ctx).UnmarshalKey(config.WorkflowPresets, &presets); err != nil {
		return nil, fmt.Errorf("invalid workflow presets: %w", err)
	}

	return presets, nil
}

// Lookup resolves an environment name to its preset, or lists the
// available environments in the error.
func Lookup(ctx context.Context, environment string) (Preset, error) {
	presets, err := Presets(ctx)
	if err != nil {
		return Preset{}, err
	}

	if preset, ok := presets[environment]; ok {
		return preset, nil
	}

	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}

	sort.Strings(names)

	return Preset{}, fmt.Errorf("unknown environment %q (available: %v)", environment, names)
}

// Request builds a dispatch request from the preset, applying the optional
// ref override and merging extra inputs over the preset defaults.
func (p Preset) Request(ref string, extra map[string]string) Request {
	req := Request{
		Workflow: p.Workflow,
		Ref:      p.Ref,
		Inputs:   make(map[string]string, len(p.Inputs)+len(extra)),
	}

	if ref != "" {
		req.Ref = ref
	}

	for key, value := range p.Inputs {
		req.Inputs[key] = value
	}

	for key, value := range extra {
		req.Inputs[key] = value
	}

	return req
}
