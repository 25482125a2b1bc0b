// Copyright 2024 Fantom Foundation
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

// Package trajectoryio reads and writes trajectories as text files of
// labels separated by commas or white space. Files ending in .gz are gzip
// streams and files ending in .bz2 are bzip2 streams. Lines starting with
// # are comments.
package trajectoryio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Fantom-foundation/Aida-Markov/stochastic"
	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
)

// symbolsPerLine is the number of labels written per line.
const symbolsPerLine = 32

// ReadLabels reads all labels of a trajectory file.
func ReadLabels(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open trajectory file; %v", err)
	}
	defer file.Close()

	var in io.Reader = file
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zfile, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("cannot open gzip stream of trajectory; %v", err)
		}
		defer zfile.Close()
		in = zfile
	case ".bz2":
		zfile, err := bzip2.NewReader(file, &bzip2.ReaderConfig{})
		if err != nil {
			return nil, fmt.Errorf("cannot open bzip2 stream of trajectory; %v", err)
		}
		defer zfile.Close()
		in = zfile
	}
	return Parse(in)
}

// Parse reads labels from a stream.
func Parse(in io.Reader) ([]string, error) {
	labels := []string{}
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		labels = append(labels, strings.FieldsFunc(line, stochastic.IsLabelSeparator)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read trajectory; %v", err)
	}
	return labels, nil
}

// Read reads a trajectory over an alphabet. If the alphabet is nil, it is
// inferred from the labels in the file.
func Read(path string, a *stochastic.Alphabet) (*stochastic.Trajectory, error) {
	labels, err := ReadLabels(path)
	if err != nil {
		return nil, err
	}
	if a == nil {
		a, err = stochastic.InferAlphabet(labels)
		if err != nil {
			return nil, fmt.Errorf("cannot infer alphabet of %v; %w", path, err)
		}
	}
	traj, err := stochastic.NewTrajectory(a, labels)
	if err != nil {
		return nil, fmt.Errorf("trajectory %v: %w", path, err)
	}
	return traj, nil
}

// Write writes a trajectory as comma-separated labels.
func Write(path string, traj *stochastic.Trajectory) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("cannot open trajectory file; %v", err)
	}

	var (
		out    io.Writer = file
		closer io.Closer
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zfile := gzip.NewWriter(file)
		out, closer = zfile, zfile
	case ".bz2":
		zfile, err := bzip2.NewWriter(file, &bzip2.WriterConfig{Level: 9})
		if err != nil {
			_ = file.Close()
			return fmt.Errorf("cannot open bzip2 stream of trajectory; %v", err)
		}
		out, closer = zfile, zfile
	}

	if err := Format(out, traj); err != nil {
		_ = file.Close()
		return err
	}
	if closer != nil {
		if err := closer.Close(); err != nil {
			_ = file.Close()
			return fmt.Errorf("cannot close compressed stream of trajectory; %v", err)
		}
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("cannot close trajectory file; %v", err)
	}
	return nil
}

// Format writes the labels of a trajectory to a stream.
func Format(out io.Writer, traj *stochastic.Trajectory) error {
	w := bufio.NewWriter(out)
	for i, label := range traj.Labels() {
		sep := ","
		if i%symbolsPerLine == symbolsPerLine-1 || i == traj.Len()-1 {
			sep = "\n"
		}
		if _, err := w.WriteString(label + sep); err != nil {
			return fmt.Errorf("cannot write trajectory; %v", err)
		}
	}
	return w.Flush()
}
