/*
 * Copyright 2025 Oberon01.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package logger

import (
	"io"

	"github.com/rs/zerolog"
)

// Logger is the logging interface threaded through the tonertrack services so
// tests can inject a silent logger.
type Logger interface {
	Trace() *zerolog.Event
	Debug() *zerolog.Event
	Info() *zerolog.Event
	Warn() *zerolog.Event
	Error() *zerolog.Event
	Fatal() *zerolog.Event
	With() zerolog.Context
	WithComponent(component string) Logger
	SetDebug(debug bool)
}

type zerologAdapter struct {
	logger zerolog.Logger
}

// NewLogger wraps a zerolog.Logger in the Logger interface.
func NewLogger(logger zerolog.Logger) Logger {
	return &zerologAdapter{logger: logger}
}

// Default returns a Logger backed by the package global.
func Default() Logger {
	return &zerologAdapter{logger: globalLogger}
}

func (z *zerologAdapter) Trace() *zerolog.Event { return z.logger.Trace() }
func (z *zerologAdapter) Debug() *zerolog.Event { return z.logger.Debug() }
func (z *zerologAdapter) Info() *zerolog.Event  { return z.logger.Info() }
func (z *zerologAdapter) Warn() *zerolog.Event  { return z.logger.Warn() }
func (z *zerologAdapter) Error() *zerolog.Event { return z.logger.Error() }
func (z *zerologAdapter) Fatal() *zerolog.Event { return z.logger.Fatal() }
func (z *zerologAdapter) With() zerolog.Context { return z.logger.With() }

func (z *zerologAdapter) WithComponent(component string) Logger {
	return &zerologAdapter{logger: z.logger.With().Str("component", component).Logger()}
}

func (z *zerologAdapter) SetDebug(debug bool) {
	if debug {
		z.logger = z.logger.Level(zerolog.DebugLevel)
	} else {
		z.logger = z.logger.Level(zerolog.InfoLevel)
	}
}

// NewTestLogger creates a no-op logger for testing that discards all output.
func NewTestLogger() Logger {
	return &zerologAdapter{logger: zerolog.New(io.Discard).Level(zerolog.Disabled)}
}
