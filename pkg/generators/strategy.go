package generators

import (
	"fmt"
	"sort"
	"sync"

	"github.com/simonhull/firebird-suite/kestrel/pkg/metadata"
	"github.com/simonhull/firebird-suite/kestrel/pkg/table"
)

// FitInput is what a Strategy sees during FitTransform.
type FitInput struct {
	Table             *table.Table // restricted to FeaturesIn, in that order
	Labels            table.Series // may be nil
	FeaturesIn        []string
	FeatureMetadataIn *metadata.FeatureMetadata // restricted to FeaturesIn
	Params            map[string]any            // from WithFitParam
}

// Strategy is the behavior a concrete generator plugs into a Generator.
//
// FitTransform learns from the input and returns the transformed table plus the
// special type groups of its output columns (nil when there are none). Feature
// names in the groups refer to the returned columns, before any prefix/suffix.
//
// Transform replays the learned transformation. It receives the input already
// restricted to featuresIn and must return columns in the same order and count
// as FitTransform did.
type Strategy interface {
	Name() string
	FitTransform(in FitInput) (*table.Table, map[string][]string, error)
	Transform(x *table.Table, featuresIn []string) (*table.Table, error)
}

// InferFunc picks the input features when none were configured. md is the
// resolved input metadata covering every column of x.
type InferFunc func(x *table.Table, y table.Series, md *metadata.FeatureMetadata) ([]string, error)

// InferAllColumns is the default InferFunc: every column of the input.
func InferAllColumns(x *table.Table, _ table.Series, _ *metadata.FeatureMetadata) ([]string, error) {
	return x.Columns(), nil
}

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Strategy{}
)

// Register makes a strategy available to Load and FromSnapshot under name.
func Register(name string, factory func() Strategy) error {
	registryMu.Lock()
	defer registryMu.Unlock()

	if name == "" || factory == nil {
		return fmt.Errorf("register strategy: name and factory are required")
	}
	if _, exists := registry[name]; exists {
		return fmt.Errorf("register strategy: %q already registered", name)
	}
	registry[name] = factory
	return nil
}

// LookupStrategy returns a fresh strategy registered under name.
func LookupStrategy(name string) (Strategy, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return factory(), nil
}

// Strategies lists registered strategy names in sorted order.
func Strategies() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
