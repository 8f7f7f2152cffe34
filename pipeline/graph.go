// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package pipeline wires the fixed-at-build-time dataflow graph a CLI
// run actually executes: a linear chain of kernel stages, configured
// from YAML, run once per input plane, with structured per-stage
// logging keyed by a per-run correlation ID.
package pipeline

import (
	"fmt"
	"io"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

var validKinds = []Kind{KindBitDepth, KindScaleNearest, KindScaleBilinear}

// Kind names one of the plane-to-plane kernel stages a Graph can wire.
// The set is intentionally the single-channel, single-plane-in/
// single-plane-out kernels (kernel/bitdepth, kernel/scale) that a PGM
// front end and back end naturally compose around; multi-plane kernels
// (kernel/channel, kernel/color) take and return several planes and are
// wired directly by callers that need them rather than through this
// linear graph.
type Kind string

const (
	KindBitDepth      Kind = "bitdepth"
	KindScaleNearest  Kind = "scale_nearest"
	KindScaleBilinear Kind = "scale_bilinear"
)

// StageConfig is one graph node's static build-time parameter block,
// as loaded from YAML.
type StageConfig struct {
	Name     string `yaml:"name"`
	Kind     Kind   `yaml:"kind"`
	Shift    int    `yaml:"shift,omitempty"`
	Saturate bool   `yaml:"saturate,omitempty"`
	Width    int    `yaml:"width,omitempty"`
	Height   int    `yaml:"height,omitempty"`
}

// Graph is the ordered list of stages a Pipeline runs a plane through,
// in the order declared.
type Graph struct {
	Stages []StageConfig `yaml:"stages"`
}

// LoadGraph decodes a pipeline graph from YAML.
func LoadGraph(r io.Reader) (*Graph, error) {
	var g Graph
	if err := yaml.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("pipeline: decoding graph: %w", err)
	}
	for i, st := range g.Stages {
		if !lo.Contains(validKinds, st.Kind) {
			return nil, fmt.Errorf("pipeline: stage %d (%q): unknown kind %q", i, st.Name, st.Kind)
		}
	}
	return &g, nil
}
