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

package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vxstream/vxstream/kernel/bitdepth"
	"github.com/vxstream/vxstream/kernel/plane"
	"github.com/vxstream/vxstream/kernel/scale"
)

// Pipeline runs a Graph's stages over a plane in order, logging one
// structured entry per stage under a single per-run correlation ID —
// the run-scoped logrus.Entry every stage's timing line is tagged with.
type Pipeline struct {
	graph *Graph
	log   *logrus.Entry
}

// New builds a Pipeline for graph, stamping a fresh run ID onto every
// log line this run emits.
func New(graph *Graph, log *logrus.Logger) *Pipeline {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Pipeline{
		graph: graph,
		log:   log.WithField("run_id", uuid.New().String()),
	}
}

// Run executes every stage in order over in, returning the final
// plane. Stage construction errors (unsupported shift, bad scale
// target) surface as a panic, since a malformed graph is a caller
// programming error rather than a runtime condition; Run itself
// cannot fail.
func (p *Pipeline) Run(in *plane.Plane[uint8]) *plane.Plane[uint8] {
	cur := in
	for _, st := range p.graph.Stages {
		start := time.Now()
		cur = p.runStage(st, cur)
		p.log.WithFields(logrus.Fields{
			"stage":    st.Name,
			"kind":     st.Kind,
			"elapsed":  time.Since(start),
			"width":    cur.Width(),
			"height":   cur.Height(),
		}).Info("stage complete")
	}
	return cur
}

// RunAll runs the same graph over each of ins concurrently, one goroutine
// per input plane, and returns the results in the same order. A Pipeline's
// stages carry no cross-run state (buffered-weight kernels aside, which
// this graph's stage set excludes), so fanning runs out this way is safe.
func (p *Pipeline) RunAll(ctx context.Context, ins []*plane.Plane[uint8]) ([]*plane.Plane[uint8], error) {
	out := make([]*plane.Plane[uint8], len(ins))
	g, _ := errgroup.WithContext(ctx)
	for i, in := range ins {
		g.Go(func() error {
			out[i] = p.Run(in)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("pipeline: running batch: %w", err)
	}
	return out, nil
}

func (p *Pipeline) runStage(st StageConfig, in *plane.Plane[uint8]) *plane.Plane[uint8] {
	switch st.Kind {
	case KindBitDepth:
		out := bitdepth.Convert[uint8, uint8](in.Data(), st.Shift, st.Saturate)
		return rewrap(in, out)
	case KindScaleNearest:
		return scale.Nearest(in, st.Width, st.Height)
	case KindScaleBilinear:
		return scale.Bilinear(in, st.Width, st.Height)
	default:
		panic(fmt.Sprintf("pipeline: unhandled stage kind %q", st.Kind))
	}
}

// rewrap copies a flat converted sample slice back into a plane with
// the same dimensions as src.
func rewrap(src *plane.Plane[uint8], data []uint8) *plane.Plane[uint8] {
	out := plane.New[uint8](src.Width(), src.Height())
	copy(out.Data(), data)
	return out
}
