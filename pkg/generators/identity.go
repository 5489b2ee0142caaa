package generators

import (
	"github.com/simonhull/firebird-suite/kestrel/pkg/metadata"
	"github.com/simonhull/firebird-suite/kestrel/pkg/table"
	"github.com/simonhull/firebird-suite/kestrel/pkg/types"
)

// IdentityName is the registry name of the identity strategy.
const IdentityName = "identity"

func init() {
	if err := Register(IdentityName, func() Strategy { return Identity{} }); err != nil {
		panic(err)
	}
}

// Identity passes the input features through unchanged.
type Identity struct{}

func (Identity) Name() string { return IdentityName }

func (i Identity) FitTransform(in FitInput) (*table.Table, map[string][]string, error) {
	out, err := i.Transform(in.Table, in.FeaturesIn)
	return out, nil, err
}

func (Identity) Transform(x *table.Table, featuresIn []string) (*table.Table, error) {
	return x.Select(featuresIn...)
}

// NewIdentity returns an unfit identity generator.
func NewIdentity(opts ...Option) *Generator {
	return New(Identity{}, opts...)
}

// identityExcluded are the raw types an identity generator cannot pass through.
var identityExcluded = map[string]struct{}{
	types.RawObject:   {},
	types.RawDatetime: {},
}

// IdentityFeaturesFromMetadata is an InferFunc that keeps every feature whose
// raw type is neither object nor datetime, in metadata order.
func IdentityFeaturesFromMetadata(_ *table.Table, _ table.Series, md *metadata.FeatureMetadata) ([]string, error) {
	features := []string{}
	for _, f := range md.Features() {
		rawType, err := md.FeatureTypeRaw(f)
		if err != nil {
			return nil, err
		}
		if _, excluded := identityExcluded[rawType]; !excluded {
			features = append(features, f)
		}
	}
	return features, nil
}
