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

package utils

import (
	"fmt"
	"io"
	"os"
)

type Printer interface {
	Print() error
	Close()
}

type Printers struct {
	printers []Printer
}

// Print runs all printers and returns the first error.
func (ps *Printers) Print() error {
	var first error
	for _, p := range ps.printers {
		if err := p.Print(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (ps *Printers) Close() {
	for _, p := range ps.printers {
		p.Close()
	}
}

func NewPrinters() *Printers {
	return &Printers{[]Printer{}}
}

func (ps *Printers) AddPrinter(p Printer) *Printers {
	ps.printers = append(ps.printers, p)
	return ps
}

type PrintToWriter struct {
	w io.Writer
	f func() string
}

func (p *PrintToWriter) Print() error {
	_, err := fmt.Fprintln(p.w, p.f())
	return err
}

func (p *PrintToWriter) Close() {}

func NewPrintToWriter(w io.Writer, f func() string) *PrintToWriter {
	return &PrintToWriter{w, f}
}

func (ps *Printers) AddPrintToWriter(w io.Writer, f func() string) *Printers {
	return ps.AddPrinter(NewPrintToWriter(w, f))
}

// AddPrintToConsole prints to the console writer of the app unless
// disabled, e.g. by --quiet.
func (ps *Printers) AddPrintToConsole(isDisabled bool, console io.Writer, f func() string) *Printers {
	if isDisabled {
		return ps
	}
	return ps.AddPrintToWriter(console, f)
}

// PrintToFile truncates its file on the first print and appends afterwards.
type PrintToFile struct {
	filepath string
	f        func() string
	written  bool
}

func (p *PrintToFile) Print() error {
	flags := os.O_APPEND | os.O_CREATE | os.O_WRONLY
	if !p.written {
		flags |= os.O_TRUNC
	}
	file, err := os.OpenFile(p.filepath, flags, 0644)
	if err != nil {
		return fmt.Errorf("unable to print to file %s - %v", p.filepath, err)
	}
	defer file.Close()
	if _, err = file.WriteString(p.f()); err != nil {
		return fmt.Errorf("unable to print to file %s - %v", p.filepath, err)
	}
	p.written = true
	return nil
}

func (p *PrintToFile) Close() {}

func NewPrintToFile(filepath string, f func() string) *PrintToFile {
	return &PrintToFile{filepath: filepath, f: f}
}

func (ps *Printers) AddPrintToFile(filepath string, f func() string) *Printers {
	if filepath != "" {
		ps.AddPrinter(NewPrintToFile(filepath, f))
	}
	return ps
}
