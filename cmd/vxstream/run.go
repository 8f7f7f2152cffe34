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

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vxstream/vxstream/pgm"
	"github.com/vxstream/vxstream/pipeline"
)

var (
	runGraphPath string
	runInPath    string
	runOutPath   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a pipeline graph once over a PGM image",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&runGraphPath, "graph", "", "pipeline graph YAML path (required)")
	runCmd.Flags().StringVar(&runInPath, "in", "", "input PGM path (required)")
	runCmd.Flags().StringVar(&runOutPath, "out", "out.pgm", "output PGM path")
	runCmd.MarkFlagRequired("graph")
	runCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	graph, err := loadGraphFile(runGraphPath)
	if err != nil {
		return err
	}

	inFile, err := os.Open(runInPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer inFile.Close()

	img, err := pgm.Read(inFile)
	if err != nil {
		return fmt.Errorf("reading input PGM: %w", err)
	}

	p := pipeline.New(graph, logrus.StandardLogger())
	out := p.Run(img.Plane())

	outFile, err := os.Create(runOutPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer outFile.Close()

	if err := pgm.Write(outFile, out, 255); err != nil {
		return fmt.Errorf("writing output PGM: %w", err)
	}

	logrus.WithField("out", runOutPath).Info("pipeline run complete")
	return nil
}

func loadGraphFile(path string) (*pipeline.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening graph: %w", err)
	}
	defer f.Close()
	return pipeline.LoadGraph(f)
}
