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

// Package batchnorm implements two batch-normalisation flavours over
// per-feature fixed-point vectors: a pre-parameterised affine transform
// (Flavour A) and an on-line mean/variance estimator pipelined across
// three stages (Flavour B).
package batchnorm

import (
	"math"

	"github.com/vxstream/vxstream/stream"
	"github.com/vxstream/vxstream/vx"
	"github.com/vxstream/vxstream/vx/fixedpoint"
)

const epsilon = 1e-6

func roundShift(wide int64, fp uint, nearest bool) int64 {
	if nearest && fp > 0 {
		wide += int64(1) << (fp - 1)
	}
	return wide >> fp
}

// FlavourA applies the pre-parameterised affine form
// fill*((x-mean)*invSqrtVar)+bias, one (fill, mean, invSqrtVar, bias)
// quadruple per feature, with a rounding step after each of the two
// fixed-point multiplies.
func FlavourA[T vx.Integers](x, fill, mean, invSqrtVar, bias []T, fp uint, roundNearest, saturate bool) []T {
	n := len(x)
	out := make([]T, n)
	lo := int64(fixedpoint.MinOf[T]())
	hi := int64(fixedpoint.MaxOf[T]())
	for i := 0; i < n; i++ {
		diff := int64(x[i]) - int64(mean[i])
		normed := roundShift(diff*int64(invSqrtVar[i]), fp, roundNearest)
		scaled := roundShift(normed*int64(fill[i]), fp, roundNearest)
		val := scaled + int64(bias[i])
		if saturate {
			val = fixedpoint.Saturate(val, lo, hi)
		}
		out[i] = T(val)
	}
	return out
}

// batch is one IFM-wide feature vector flowing through Flavour B's
// three pipeline stages.
type batch[T vx.Integers] struct {
	x    []T
	sof  bool
	eof  bool
	mean int64
}

type varBatch[T vx.Integers] struct {
	x        []T
	sof, eof bool
	mean     int64
	invStd   int64 // Q(fp)
}

// FlavourB runs the on-line three-pass estimator as three goroutines
// chained by channels, so batch N can be in the normalize stage while
// batch N+1 computes variance and batch N+2 accumulates its sum —
// the three concurrent stages spec's steady-state throughput describes.
func FlavourB[T vx.Integers](in stream.Source[T], gamma, beta []T, fp uint, roundNearest bool) stream.Source[T] {
	sumOut := make(chan batch[T])
	varOut := make(chan varBatch[T])
	sink, out := stream.NewChannel[T](0)

	go func() {
		defer close(sumOut)
		for e := range in {
			x := e.Data()
			var sum int64
			for _, v := range x {
				sum += int64(v)
			}
			mean := sum / int64(len(x))
			sumOut <- batch[T]{x: x, sof: e.SOF, eof: e.EOF, mean: mean}
		}
	}()

	go func() {
		defer close(varOut)
		for b := range sumOut {
			var sq int64
			for _, v := range b.x {
				d := int64(v) - b.mean
				sq += d * d
			}
			varFixed := sq / int64(len(b.x)) // Q(2*fp)
			varFloat := float64(varFixed)/math.Pow(2, float64(2*fp)) + epsilon
			invStd := 1.0 / math.Sqrt(varFloat)
			invStdFixed := int64(math.Round(invStd * math.Pow(2, float64(fp))))
			varOut <- varBatch[T]{x: b.x, sof: b.sof, eof: b.eof, mean: b.mean, invStd: invStdFixed}
		}
	}()

	go func() {
		defer close(sink)
		for v := range varOut {
			y := make([]T, len(v.x))
			for i, xv := range v.x {
				diff := int64(xv) - v.mean
				normed := roundShift(diff*v.invStd, fp, roundNearest)
				g := int64(1) << fp
				if i < len(gamma) {
					g = int64(gamma[i])
				}
				b := int64(0)
				if i < len(beta) {
					b = int64(beta[i])
				}
				y[i] = T(roundShift(normed*g, fp, roundNearest) + b)
			}
			sink <- stream.NewElem(y, v.sof, v.eof)
		}
	}()

	return out
}
