// Package loader holds the I/O collaborators around the aggregation core:
// dataset readers, YAML configuration, and result writing. The core only
// ever sees the tables and mappings produced here, never a file path.
package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"supergrid/business"
)

// Reader tags accepted in a dataset config.
const (
	ReaderCSV   = "csv"
	ReaderExcel = "excel"
	// ReaderSet is Excel input reduced by row count instead of a value
	// column; its default op is count.
	ReaderSet = "set"
)

// Strategy tags accepted in a dataset config.
const (
	StrategyVertical   = "vertical"
	StrategyHorizontal = "horizontal"
)

// DatasetConfig describes one entry of the datasets file: where to read a
// dataset from and how to aggregate it.
type DatasetConfig struct {
	Reader       string   `yaml:"reader"`
	Path         string   `yaml:"path"`
	Sheet        string   `yaml:"sheet"`
	SkipRows     int      `yaml:"skip_rows"`
	Strategy     string   `yaml:"strategy"`
	Op           string   `yaml:"op"`
	GroupBy      []string `yaml:"group_by"`
	ValueColumn  string   `yaml:"value_column"`
	Transmission bool     `yaml:"transmission"`
	Output       string   `yaml:"output"`
}

// BuildStrategy constructs the configured aggregation strategy. Horizontal
// aggregation receives the alias table; vertical aggregation ignores it.
func (c DatasetConfig) BuildStrategy(aliases business.AliasTable) (business.Strategy, error) {
	switch c.Strategy {
	case StrategyVertical:
		return business.VerticalAggregation{
			GroupBy:      c.GroupBy,
			ValueColumn:  c.ValueColumn,
			Transmission: c.Transmission,
		}, nil
	case StrategyHorizontal:
		return business.HorizontalAggregation{Aliases: aliases}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", c.Strategy)
	}
}

// ReduceOp returns the configured reduction. Set-mode datasets default to
// count when no op is given.
func (c DatasetConfig) ReduceOp() (business.Op, error) {
	if c.Op == "" && c.Reader == ReaderSet {
		return business.Count, nil
	}
	return business.ParseOp(c.Op)
}

// Dataset pairs a config with its key, preserving file order.
type Dataset struct {
	Key string
	DatasetConfig
}

// LoadDatasets reads the datasets file. Entries keep the order they have in
// the file.
func LoadDatasets(path string) ([]Dataset, error) {
	doc, err := loadMapping(path)
	if err != nil {
		return nil, err
	}

	out := make([]Dataset, 0, len(doc.Content)/2)
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key := doc.Content[i].Value
		var cfg DatasetConfig
		if err := doc.Content[i+1].Decode(&cfg); err != nil {
			return nil, fmt.Errorf("dataset %q: %w", key, err)
		}
		out = append(out, Dataset{Key: key, DatasetConfig: cfg})
	}
	return out, nil
}

// LoadSupernodes reads the supernode map. Mapping order in the file becomes
// resolution order, so it is preserved.
func LoadSupernodes(path string) (business.SupernodeMap, error) {
	doc, err := loadMapping(path)
	if err != nil {
		return nil, err
	}

	m := make(business.SupernodeMap, 0, len(doc.Content)/2)
	for i := 0; i+1 < len(doc.Content); i += 2 {
		name := doc.Content[i].Value
		var nodes []string
		if err := doc.Content[i+1].Decode(&nodes); err != nil {
			return nil, fmt.Errorf("supernode %q: %w", name, err)
		}
		m = append(m, business.Supernode{Name: name, Nodes: nodes})
	}
	return m, nil
}

// LoadAliases reads the node alias table. Alias order is irrelevant, so a
// plain map decode suffices.
func LoadAliases(path string) (business.AliasTable, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read aliases: %w", err)
	}

	aliases := business.AliasTable{}
	if err := yaml.Unmarshal(b, &aliases); err != nil {
		return nil, fmt.Errorf("parse aliases %s: %w", path, err)
	}
	return aliases, nil
}

// loadMapping parses a YAML file whose document root is a mapping and
// returns the mapping node. Unlike a map decode, the node keeps key order.
func loadMapping(path string) (*yaml.Node, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(b, &root); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(root.Content) == 0 {
		// Empty document decodes to an empty mapping.
		return &yaml.Node{Kind: yaml.MappingNode}, nil
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s: top level must be a mapping", path)
	}
	return doc, nil
}
