package generators

import (
	"github.com/simonhull/firebird-suite/kestrel/pkg/logger"
	"github.com/simonhull/firebird-suite/kestrel/pkg/metadata"
)

// TagCount is the number of output features carrying a type tag.
type TagCount struct {
	Tag   string
	Count int
}

// MetadataSummary counts output features per special type, per raw type and
// per tag of the full merged view. Empty groups are left out.
type MetadataSummary struct {
	Special []TagCount
	Raw     []TagCount
	Full    []TagCount
}

// FeatureMetadataFull merges the output special type groups with the raw type
// groups of the features no special group claims. It is recomputed on every call.
func (g *Generator) FeatureMetadataFull() (map[string][]string, error) {
	if g.state != StateFit {
		return nil, &NotFitError{Generator: g.Name(), Op: "feature metadata"}
	}
	return metadata.Full(g.featureMetadata.TypeGroupMapRaw(), g.featureMetadata.TypeGroupMapSpecial()), nil
}

// MetadataSummary returns the feature counts of the fitted output.
func (g *Generator) MetadataSummary() (*MetadataSummary, error) {
	full, err := g.FeatureMetadataFull()
	if err != nil {
		return nil, err
	}
	return &MetadataSummary{
		Special: countTags(g.featureMetadata.TypeGroupMapSpecial()),
		Raw:     countTags(g.featureMetadata.TypeGroupMapRaw()),
		Full:    countTags(full),
	}, nil
}

// LogFeatureMetadataInfo logs the metadata summary at info level.
func (g *Generator) LogFeatureMetadataInfo() error {
	summary, err := g.MetadataSummary()
	if err != nil {
		return err
	}

	sections := []struct {
		title  string
		counts []TagCount
	}{
		{"processed features (special types)", summary.Special},
		{"processed features (raw types)", summary.Raw},
		{"processed features", summary.Full},
	}
	for _, s := range sections {
		g.log.Info(s.title)
		for _, c := range s.counts {
			g.log.Info("features", logger.F("type", c.Tag), logger.F("count", c.Count))
		}
	}
	return nil
}

func countTags(groups map[string][]string) []TagCount {
	var counts []TagCount
	for _, tag := range metadata.SortedTags(groups) {
		if n := len(groups[tag]); n > 0 {
			counts = append(counts, TagCount{Tag: tag, Count: n})
		}
	}
	return counts
}
