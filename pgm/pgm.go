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

// Package pgm reads and writes binary P5 (grayscale) PGM files, the
// external collaborator a pipeline's front and back end convert
// to/from kernel/plane.Plane buffers. It is the one place in this
// module that returns error values instead of panicking: the dataflow
// core is error-free by construction, but file I/O is not.
package pgm

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/vxstream/vxstream/kernel/plane"
)

// Image is a decoded P5 image: row-major samples plus the header's
// declared maximum gray value, which determines whether each sample was
// one byte or two on the wire.
type Image struct {
	Width, Height int
	MaxGray       int
	Samples       []uint16
}

// Plane materializes the image as a uint8 plane, truncating any
// 16-bit sample to its low byte. Use this when MaxGray <= 255, which
// covers every plane this pipeline's kernels consume.
func (img *Image) Plane() *plane.Plane[uint8] {
	p := plane.New[uint8](img.Width, img.Height)
	for y := 0; y < img.Height; y++ {
		row := p.Row(y)
		for x := 0; x < img.Width; x++ {
			row[x] = uint8(img.Samples[y*img.Width+x])
		}
	}
	return p
}

// Read decodes a binary P5 PGM stream. It returns an error on magic
// mismatch, header parse failure, or a short sample read.
func Read(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)

	magic, err := readToken(br)
	if err != nil {
		return nil, fmt.Errorf("pgm: reading magic: %w", err)
	}
	if magic != "P5" {
		return nil, fmt.Errorf("pgm: bad magic %q, want P5", magic)
	}

	cols, err := readInt(br)
	if err != nil {
		return nil, fmt.Errorf("pgm: reading width: %w", err)
	}
	rows, err := readInt(br)
	if err != nil {
		return nil, fmt.Errorf("pgm: reading height: %w", err)
	}
	maxGray, err := readInt(br)
	if err != nil {
		return nil, fmt.Errorf("pgm: reading maxgray: %w", err)
	}
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("pgm: non-positive dimensions %dx%d", cols, rows)
	}
	if maxGray <= 0 || maxGray > 65535 {
		return nil, fmt.Errorf("pgm: maxgray %d out of range", maxGray)
	}

	// A single whitespace byte terminates the header after maxgray.
	if _, err := br.ReadByte(); err != nil {
		return nil, fmt.Errorf("pgm: reading header terminator: %w", err)
	}

	n := rows * cols
	samples := make([]uint16, n)
	if maxGray <= 255 {
		buf := make([]byte, n)
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, fmt.Errorf("pgm: short sample read: %w", err)
		}
		for i, b := range buf {
			samples[i] = uint16(b)
		}
	} else {
		buf := make([]byte, n*2)
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, fmt.Errorf("pgm: short sample read: %w", err)
		}
		for i := 0; i < n; i++ {
			samples[i] = uint16(buf[2*i])<<8 | uint16(buf[2*i+1])
		}
	}

	return &Image{Width: cols, Height: rows, MaxGray: maxGray, Samples: samples}, nil
}

// Write encodes p as a binary P5 PGM with the given maxGray, writing
// one byte per sample if maxGray <= 255 and two (big-endian) otherwise.
// It returns an error on a short write.
func Write(w io.Writer, p *plane.Plane[uint8], maxGray int) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P5\n%d %d\n%d\n", p.Width(), p.Height(), maxGray); err != nil {
		return fmt.Errorf("pgm: writing header: %w", err)
	}

	for y := 0; y < p.Height(); y++ {
		row := p.Row(y)
		if maxGray <= 255 {
			if _, err := bw.Write(row); err != nil {
				return fmt.Errorf("pgm: short write at row %d: %w", y, err)
			}
		} else {
			buf := make([]byte, 2*len(row))
			for x, v := range row {
				buf[2*x] = byte(v >> 8)
				buf[2*x+1] = byte(v)
			}
			if _, err := bw.Write(buf); err != nil {
				return fmt.Errorf("pgm: short write at row %d: %w", y, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("pgm: flushing output: %w", err)
	}
	return nil
}

// readToken reads whitespace-delimited header tokens, skipping '#'
// comments that run to end-of-line, which may appear anywhere in the
// header per the format's comment rule.
func readToken(br *bufio.Reader) (string, error) {
	var buf bytes.Buffer
	for {
		b, err := br.ReadByte()
		if err != nil {
			return "", err
		}
		if b == '#' {
			if err := skipComment(br); err != nil {
				return "", err
			}
			continue
		}
		if isSpace(b) {
			if buf.Len() == 0 {
				continue
			}
			return buf.String(), nil
		}
		buf.WriteByte(b)
	}
}

func readInt(br *bufio.Reader) (int, error) {
	tok, err := readToken(br)
	if err != nil {
		return 0, err
	}
	var v int
	for _, c := range []byte(tok) {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("pgm: %q is not a decimal integer", tok)
		}
		v = v*10 + int(c-'0')
	}
	return v, nil
}

func skipComment(br *bufio.Reader) error {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return err
		}
		if b == '\n' {
			return nil
		}
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
