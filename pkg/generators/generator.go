package generators

import (
	"fmt"
	"slices"

	"github.com/simonhull/firebird-suite/kestrel/pkg/logger"
	"github.com/simonhull/firebird-suite/kestrel/pkg/metadata"
	"github.com/simonhull/firebird-suite/kestrel/pkg/table"
	"github.com/simonhull/firebird-suite/kestrel/pkg/types"
)

// State is the lifecycle state of a Generator.
type State int

const (
	StateUnfit State = iota
	StateFit
)

func (s State) String() string {
	switch s {
	case StateUnfit:
		return "unfit"
	case StateFit:
		return "fit"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// parseState is the inverse of State.String.
func parseState(s string) (State, error) {
	switch s {
	case "", "unfit":
		return StateUnfit, nil
	case "fit":
		return StateFit, nil
	default:
		return StateUnfit, fmt.Errorf("unknown generator state %q", s)
	}
}

// Generator runs a Strategy through the fit-once, transform-many lifecycle and
// keeps the input/output feature bookkeeping.
type Generator struct {
	strategy Strategy
	state    State

	featuresIn        []string
	featuresOut       []string
	featureMetadataIn *metadata.FeatureMetadata
	featureMetadata   *metadata.FeatureMetadata

	namePrefix  string
	nameSuffix  string
	updatedName bool

	inferFeaturesIn InferFunc
	log             logger.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithFeaturesIn fixes the input features instead of inferring them at fit time.
func WithFeaturesIn(features ...string) Option {
	return func(g *Generator) {
		g.featuresIn = slices.Clone(features)
	}
}

// WithFeatureMetadataIn fixes the input metadata. A value passed to
// FitTransform later is ignored with a warning.
func WithFeatureMetadataIn(md *metadata.FeatureMetadata) Option {
	return func(g *Generator) {
		g.featureMetadataIn = md
	}
}

// WithNamePrefix prepends prefix to every output feature name.
func WithNamePrefix(prefix string) Option {
	return func(g *Generator) {
		g.namePrefix = prefix
	}
}

// WithNameSuffix appends suffix to every output feature name.
func WithNameSuffix(suffix string) Option {
	return func(g *Generator) {
		g.nameSuffix = suffix
	}
}

// WithFeaturesInference replaces InferAllColumns.
func WithFeaturesInference(fn InferFunc) Option {
	return func(g *Generator) {
		if fn != nil {
			g.inferFeaturesIn = fn
		}
	}
}

// WithLogger sets the logger. Defaults to logger.Default().
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// New creates an unfit generator around strategy.
func New(strategy Strategy, opts ...Option) *Generator {
	g := &Generator{
		strategy:        strategy,
		inferFeaturesIn: InferAllColumns,
		log:             logger.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.log = g.log.Named("generator").WithFields(logger.F("strategy", strategy.Name()))
	return g
}

// FitOption configures a single FitTransform call.
type FitOption func(*fitConfig)

type fitConfig struct {
	featureMetadataIn *metadata.FeatureMetadata
	params            map[string]any
}

// WithFitFeatureMetadataIn supplies input metadata for this call. It is used
// only when the generator was built without WithFeatureMetadataIn.
func WithFitFeatureMetadataIn(md *metadata.FeatureMetadata) FitOption {
	return func(c *fitConfig) {
		c.featureMetadataIn = md
	}
}

// WithFitParam forwards a strategy-specific parameter to the FitTransform hook.
func WithFitParam(key string, value any) FitOption {
	return func(c *fitConfig) {
		c.params[key] = value
	}
}

// Name returns the strategy name.
func (g *Generator) Name() string {
	return g.strategy.Name()
}

// State returns the lifecycle state.
func (g *Generator) State() State {
	return g.state
}

// IsFit reports whether FitTransform has succeeded.
func (g *Generator) IsFit() bool {
	return g.state == StateFit
}

// IsUpdatedName reports whether the prefix/suffix changed any output name.
func (g *Generator) IsUpdatedName() bool {
	return g.updatedName
}

// FeaturesIn returns the input features, or nil if not yet known.
func (g *Generator) FeaturesIn() []string {
	return slices.Clone(g.featuresIn)
}

// FeaturesOut returns the output features, or nil before fit.
func (g *Generator) FeaturesOut() []string {
	return slices.Clone(g.featuresOut)
}

// FeatureMetadataIn returns the input metadata, or nil if not yet known.
func (g *Generator) FeatureMetadataIn() *metadata.FeatureMetadata {
	return g.featureMetadataIn
}

// FeatureMetadata returns the output metadata, or nil before fit.
func (g *Generator) FeatureMetadata() *metadata.FeatureMetadata {
	return g.featureMetadata
}

// NamePrefix returns the configured output name prefix.
func (g *Generator) NamePrefix() string {
	return g.namePrefix
}

// NameSuffix returns the configured output name suffix.
func (g *Generator) NameSuffix() string {
	return g.nameSuffix
}

// Fit is FitTransform without the transformed output.
func (g *Generator) Fit(x *table.Table, y table.Series, opts ...FitOption) error {
	_, err := g.FitTransform(x, y, opts...)
	return err
}

// FitTransform fits the generator on x and returns the transformed table.
// It can succeed at most once per generator. On failure the generator stays
// unfit and keeps its configuration.
func (g *Generator) FitTransform(x *table.Table, y table.Series, opts ...FitOption) (*table.Table, error) {
	if g.state == StateFit {
		return nil, &AlreadyFitError{Generator: g.Name()}
	}

	cfg := fitConfig{params: make(map[string]any)}
	for _, opt := range opts {
		opt(&cfg)
	}

	mdIn := g.featureMetadataIn
	switch {
	case mdIn == nil:
		mdIn = cfg.featureMetadataIn
	case cfg.featureMetadataIn != nil:
		g.log.Warn("feature metadata passed to FitTransform but the generator already has one; ignoring it")
	}
	if mdIn == nil {
		inferred, err := InferFeatureMetadataIn(x, y)
		if err != nil {
			return nil, fmt.Errorf("infer input feature metadata: %w", err)
		}
		mdIn = inferred
	}

	featuresIn := g.featuresIn
	if featuresIn == nil {
		inferred, err := g.inferFeaturesIn(x, y, mdIn)
		if err != nil {
			return nil, fmt.Errorf("infer input features: %w", err)
		}
		featuresIn = inferred
	}

	mdIn, err := mdIn.KeepFeatures(featuresIn)
	if err != nil {
		return nil, fmt.Errorf("restrict input feature metadata: %w", err)
	}

	xIn, err := x.Select(featuresIn...)
	if err != nil {
		return nil, fmt.Errorf("select input features: %w", err)
	}

	g.log.Debug("fitting", logger.F("features_in", len(featuresIn)), logger.F("rows", x.Len()))

	out, groups, err := g.strategy.FitTransform(FitInput{
		Table:             xIn,
		Labels:            y,
		FeaturesIn:        slices.Clone(featuresIn),
		FeatureMetadataIn: mdIn,
		Params:            cfg.params,
	})
	if err != nil {
		return nil, fmt.Errorf("%s fit: %w", g.Name(), err)
	}
	if err := checkSpecialGroups(out.Columns(), groups); err != nil {
		return nil, fmt.Errorf("%s fit: %w", g.Name(), err)
	}

	columns, groups, updated := renameFeatures(out.Columns(), groups, g.namePrefix, g.nameSuffix)
	if updated {
		if out, err = out.WithColumns(columns); err != nil {
			return nil, fmt.Errorf("apply feature names: %w", err)
		}
	}

	mdOut, err := metadata.New(types.TypeMapRaw(out), groups)
	if err != nil {
		return nil, fmt.Errorf("build output feature metadata: %w", err)
	}

	g.featureMetadataIn = mdIn
	g.featuresIn = slices.Clone(featuresIn)
	g.featuresOut = columns
	g.updatedName = updated
	g.featureMetadata = mdOut
	g.state = StateFit

	g.log.Debug("fit complete", logger.F("features_out", len(columns)), logger.F("renamed", updated))
	return out, nil
}

// Transform applies the fitted generator to x. x must contain every input
// feature; other columns are ignored.
func (g *Generator) Transform(x *table.Table) (*table.Table, error) {
	if g.state != StateFit {
		return nil, &NotFitError{Generator: g.Name(), Op: "transform"}
	}

	xIn, err := x.Select(g.featuresIn...)
	if err != nil {
		return nil, fmt.Errorf("select input features: %w", err)
	}

	out, err := g.strategy.Transform(xIn, slices.Clone(g.featuresIn))
	if err != nil {
		return nil, fmt.Errorf("%s transform: %w", g.Name(), err)
	}

	if g.updatedName {
		if out, err = out.WithColumns(g.featuresOut); err != nil {
			return nil, fmt.Errorf("apply feature names: %w", err)
		}
	}
	return out, nil
}

// InferFeatureMetadataIn builds metadata for every column of x from the
// inferred raw types and special type groups. y is not used.
func InferFeatureMetadataIn(x *table.Table, _ table.Series) (*metadata.FeatureMetadata, error) {
	return types.FeatureMetadata(x)
}

func checkSpecialGroups(columns []string, groups map[string][]string) error {
	present := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		present[c] = struct{}{}
	}
	for _, tag := range metadata.SortedTags(groups) {
		for _, f := range groups[tag] {
			if _, ok := present[f]; !ok {
				return fmt.Errorf("%w: %s lists %q", ErrSpecialGroupMismatch, tag, f)
			}
		}
	}
	return nil
}
