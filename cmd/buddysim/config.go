package main

import (
	"fmt"
	"os"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v2"
)

// workload describes a simulated memory layout: one or more named zones,
// each backed by its own pagealloc.Allocator, plus a sequence of
// allocate/free requests to drive against them.
type workload struct {
	Zones []zoneConfig `yaml:"zones"`
	Steps []stepConfig `yaml:"steps"`
}

type zoneConfig struct {
	Name      string `yaml:"name"`
	SizeBytes uint64 `yaml:"size_bytes"`
	StartAddr uint64 `yaml:"start_addr"`
}

type stepConfig struct {
	Zone   string `yaml:"zone"`
	Op     string `yaml:"op"` // "allocate" or "free"
	Blocks uint64 `yaml:"blocks,omitempty"`
	Handle string `yaml:"handle,omitempty"` // names a prior allocate step, for "free"
}

// loadWorkload reads and parses a YAML workload file, normalizing every
// zone name to NFC so visually identical zone names (spelled with
// different Unicode normal forms) key to the same zone.
func loadWorkload(path string) (*workload, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("buddysim: reading workload file: %w", err)
	}

	var w workload
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("buddysim: parsing workload file: %w", err)
	}

	for i := range w.Zones {
		w.Zones[i].Name = norm.NFC.String(w.Zones[i].Name)
	}
	for i := range w.Steps {
		w.Steps[i].Zone = norm.NFC.String(w.Steps[i].Zone)
	}

	return &w, nil
}
