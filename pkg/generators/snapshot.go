package generators

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/simonhull/firebird-suite/kestrel/internal/persist"
	"github.com/simonhull/firebird-suite/kestrel/pkg/metadata"
)

const (
	// SnapshotAPIVersion is the only snapshot format this package reads.
	SnapshotAPIVersion = "kestrel/v1"
	// SnapshotKind identifies a generator snapshot document.
	SnapshotKind = "FeatureGenerator"
)

// Snapshot is the complete serialized state of a Generator.
type Snapshot struct {
	APIVersion        string             `yaml:"apiVersion"`
	Kind              string             `yaml:"kind"`
	Generator         string             `yaml:"generator"`
	State             string             `yaml:"state"`
	NamePrefix        string             `yaml:"name_prefix,omitempty"`
	NameSuffix        string             `yaml:"name_suffix,omitempty"`
	UpdatedName       bool               `yaml:"updated_name"`
	FeaturesIn        []string           `yaml:"features_in,omitempty"`
	FeaturesOut       []string           `yaml:"features_out,omitempty"`
	FeatureMetadataIn *metadata.Document `yaml:"feature_metadata_in,omitempty"`
	FeatureMetadata   *metadata.Document `yaml:"feature_metadata,omitempty"`
}

// Snapshot captures the generator state.
func (g *Generator) Snapshot() *Snapshot {
	return &Snapshot{
		APIVersion:        SnapshotAPIVersion,
		Kind:              SnapshotKind,
		Generator:         g.Name(),
		State:             g.state.String(),
		NamePrefix:        g.namePrefix,
		NameSuffix:        g.nameSuffix,
		UpdatedName:       g.updatedName,
		FeaturesIn:        slices.Clone(g.featuresIn),
		FeaturesOut:       slices.Clone(g.featuresOut),
		FeatureMetadataIn: g.featureMetadataIn.Document(),
		FeatureMetadata:   g.featureMetadata.Document(),
	}
}

// MarshalSnapshot encodes the generator state as YAML.
func (g *Generator) MarshalSnapshot() ([]byte, error) {
	data, err := yaml.Marshal(g.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("marshal %s snapshot: %w", g.Name(), err)
	}
	return data, nil
}

// SaveOperation returns the file operation that writes the snapshot to path.
func (g *Generator) SaveOperation(path string) (*persist.WriteFileOp, error) {
	data, err := g.MarshalSnapshot()
	if err != nil {
		return nil, err
	}
	return &persist.WriteFileOp{Path: path, Content: data, Mode: 0644}, nil
}

// Save writes the snapshot to path, replacing any existing file.
func (g *Generator) Save(path string) error {
	op, err := g.SaveOperation(path)
	if err != nil {
		return err
	}
	return persist.Execute(context.Background(), []persist.Operation{op}, persist.ExecuteOptions{
		Force:  true,
		Writer: io.Discard,
	})
}

// ParseSnapshot decodes and checks a snapshot document.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	if s.APIVersion != SnapshotAPIVersion {
		return nil, fmt.Errorf("unsupported snapshot apiVersion %q (expected %q)", s.APIVersion, SnapshotAPIVersion)
	}
	if s.Kind != SnapshotKind {
		return nil, fmt.Errorf("unexpected snapshot kind %q (expected %q)", s.Kind, SnapshotKind)
	}
	return &s, nil
}

// FromSnapshot rebuilds a generator. The strategy is looked up by name in the
// registry; opts can set a logger or inference function.
func FromSnapshot(s *Snapshot, opts ...Option) (*Generator, error) {
	strategy, err := LookupStrategy(s.Generator)
	if err != nil {
		return nil, err
	}

	state, err := parseState(s.State)
	if err != nil {
		return nil, err
	}

	mdIn, err := metadata.FromDocument(s.FeatureMetadataIn)
	if err != nil {
		return nil, fmt.Errorf("snapshot feature_metadata_in: %w", err)
	}
	mdOut, err := metadata.FromDocument(s.FeatureMetadata)
	if err != nil {
		return nil, fmt.Errorf("snapshot feature_metadata: %w", err)
	}

	if state == StateFit {
		if mdOut == nil || mdIn == nil {
			return nil, fmt.Errorf("fit snapshot is missing feature metadata")
		}
		if !slices.Equal(s.FeaturesOut, mdOut.Features()) {
			return nil, fmt.Errorf("fit snapshot features_out does not match its feature metadata")
		}
	}

	g := New(strategy, opts...)
	g.state = state
	g.namePrefix = s.NamePrefix
	g.nameSuffix = s.NameSuffix
	g.updatedName = s.UpdatedName
	if state == StateFit {
		g.featuresIn = append([]string{}, s.FeaturesIn...)
		g.featuresOut = append([]string{}, s.FeaturesOut...)
	} else if len(s.FeaturesIn) > 0 {
		g.featuresIn = slices.Clone(s.FeaturesIn)
	}
	g.featureMetadataIn = mdIn
	g.featureMetadata = mdOut
	return g, nil
}

// Load reads a snapshot file and rebuilds the generator.
func Load(path string, opts ...Option) (*Generator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	s, err := ParseSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return FromSnapshot(s, opts...)
}
