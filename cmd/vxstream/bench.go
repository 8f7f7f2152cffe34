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

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vxstream/vxstream/pgm"
	"github.com/vxstream/vxstream/pipeline"
)

var (
	benchGraphPath string
	benchInPath    string
	benchIters     int
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run a pipeline graph repeatedly and report throughput",
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().StringVar(&benchGraphPath, "graph", "", "pipeline graph YAML path (required)")
	benchCmd.Flags().StringVar(&benchInPath, "in", "", "input PGM path (required)")
	benchCmd.Flags().IntVar(&benchIters, "iters", 100, "number of repeated runs")
	benchCmd.MarkFlagRequired("graph")
	benchCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	graph, err := loadGraphFile(benchGraphPath)
	if err != nil {
		return err
	}

	inFile, err := os.Open(benchInPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer inFile.Close()

	img, err := pgm.Read(inFile)
	if err != nil {
		return fmt.Errorf("reading input PGM: %w", err)
	}
	in := img.Plane()

	if benchIters <= 0 {
		return fmt.Errorf("bench: iters must be positive, got %d", benchIters)
	}

	// Suppress per-stage info logging during the timed loop; only the
	// aggregate throughput line at the end matters for a benchmark run.
	silent := logrus.New()
	silent.SetLevel(logrus.WarnLevel)

	start := time.Now()
	for i := 0; i < benchIters; i++ {
		p := pipeline.New(graph, silent)
		p.Run(in)
	}
	elapsed := time.Since(start)

	perRun := elapsed / time.Duration(benchIters)
	fps := float64(benchIters) / elapsed.Seconds()

	logrus.WithFields(logrus.Fields{
		"iters":        benchIters,
		"total":        elapsed,
		"per_run":      perRun,
		"runs_per_sec": fps,
	}).Info("bench complete")

	return nil
}
