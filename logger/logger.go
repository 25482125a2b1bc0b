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

package logger

//go:generate mockgen -source logger.go -destination logger_mocks.go -package logger

import (
	"io"
	"os"
	"time"

	"github.com/op/go-logging"
	"github.com/urfave/cli/v2"
)

var LogLevelFlag = cli.StringFlag{
	Name:    "log",
	Aliases: []string{"l"},
	Usage:   "level of logging (\"critical\", \"error\", \"warning\", \"notice\", \"info\", \"debug\")",
	Value:   "info",
}

// defaultLogFormat defines the format used for log output.
const defaultLogFormat = "%{time:2006/01/02 15:04:05} %{color}%{level:-8s} %{shortpkg}/%{shortfunc}%{color:reset}: %{message}"

// Logger reports progress of the markov tools to the user.
// Notice marks milestones (model loaded, fit done), Info repeated
// progress (order 3 of 6 compared), Warning suspicious but valid input
// (sparse tree used for simulation, negative likelihood ratio).
// Fatal and Panic end the program and are reserved for the cli.
type Logger interface {
	// Fatal logs with CRITICAL level and exits with code 1.
	Fatal(args ...interface{})
	// Fatalf logs with CRITICAL level and exits with code 1.
	Fatalf(format string, args ...interface{})

	// Panic logs with CRITICAL level and panics.
	Panic(args ...interface{})
	// Panicf logs with CRITICAL level and panics.
	Panicf(format string, args ...interface{})

	Critical(args ...interface{})
	Criticalf(format string, args ...interface{})

	Error(args ...interface{})
	Errorf(format string, args ...interface{})

	Warning(args ...interface{})
	Warningf(format string, args ...interface{})

	Notice(args ...interface{})
	Noticef(format string, args ...interface{})

	Info(args ...interface{})
	Infof(format string, args ...interface{})

	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
}

// NewLogger creates a logger writing to stdout. Unknown levels fall back
// to INFO.
func NewLogger(level string, module string) *logging.Logger {
	return NewLoggerTo(os.Stdout, level, module)
}

// NewLoggerTo creates a logger writing to w.
func NewLoggerTo(w io.Writer, level string, module string) *logging.Logger {
	backend := logging.NewLogBackend(w, "", 0)
	fmtBackend := logging.NewBackendFormatter(backend, logging.MustStringFormatter(defaultLogFormat))

	lvl, err := logging.LogLevel(level)
	if err != nil {
		lvl = logging.INFO
	}
	lvlBackend := logging.AddModuleLevel(fmtBackend)
	lvlBackend.SetLevel(lvl, "")

	logging.SetBackend(lvlBackend)
	return logging.MustGetLogger(module)
}

// ParseTime splits a duration into hours, minutes and seconds.
func ParseTime(elapsed time.Duration) (uint32, uint32, uint32) {
	seconds := uint32(elapsed.Round(time.Second).Seconds())
	minutes := seconds / 60
	seconds %= 60
	hours := minutes / 60
	minutes %= 60
	return hours, minutes, seconds
}
