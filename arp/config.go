package arp

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// Config is the file form of parser options.
//
//	preset: strict
//	embedding: false
//	pipe: push-pull
//	queue_capacity: 256
//	base: http://example.org/doc
//	system_id: doc.rdf
//	conditions:
//	  WARN_QNAME_AS_ID: error
type Config struct {
	Preset        string            `yaml:"preset"`
	Embedding     bool              `yaml:"embedding"`
	Pipe          string            `yaml:"pipe"`
	QueueCapacity int               `yaml:"queue_capacity"`
	Base          *string           `yaml:"base"`
	SystemID      string            `yaml:"system_id"`
	Conditions    map[string]string `yaml:"conditions"`
}

// LoadConfig reads a YAML configuration. Unknown keys are rejected.
func LoadConfig(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("arp: config: %w", err)
	}
	return &cfg, nil
}

// Options converts the configuration into parser options. Conditions
// are applied after the preset, in name order.
func (c *Config) Options() ([]Option, error) {
	var opts []Option
	if c.Preset != "" {
		p, err := ParsePreset(c.Preset)
		if err != nil {
			return nil, err
		}
		opts = append(opts, OptPreset(p))
	}
	names := make([]string, 0, len(c.Conditions))
	for name := range c.Conditions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cond, err := ParseCondition(name)
		if err != nil {
			return nil, err
		}
		sev, err := ParseSeverity(c.Conditions[name])
		if err != nil {
			return nil, fmt.Errorf("arp: condition %s: %w", name, err)
		}
		opts = append(opts, OptConditionMode(cond, sev))
	}
	if c.Embedding {
		opts = append(opts, OptEmbedding(true))
	}
	if c.Pipe != "" {
		mode, err := ParsePipeMode(c.Pipe)
		if err != nil {
			return nil, err
		}
		opts = append(opts, OptPipe(mode))
	}
	if c.QueueCapacity < 0 {
		return nil, fmt.Errorf("arp: negative queue_capacity %d", c.QueueCapacity)
	}
	if c.QueueCapacity > 0 {
		opts = append(opts, OptQueueCapacity(c.QueueCapacity))
	}
	if c.Base != nil {
		opts = append(opts, OptBase(*c.Base))
	}
	if c.SystemID != "" {
		opts = append(opts, OptSystemID(c.SystemID))
	}
	return opts, nil
}
