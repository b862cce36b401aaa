// Copyright 2026 The Parsekit Authors.
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
	"log/slog"
	"os"

	"github.com/spf13/pflag"
)

// logLevelFlag is a pflag.Value so `trace --log-level=debug` can mirror the
// event stream to a slog.Logger (see action.Trace's optional log parameter)
// in addition to building the in-memory trace buffer the command prints.
type logLevelFlag struct {
	set    bool
	logger *slog.Logger
}

var _ pflag.Value = (*logLevelFlag)(nil)

func (f *logLevelFlag) String() string {
	if !f.set {
		return "off"
	}
	return "debug"
}

func (f *logLevelFlag) Set(s string) error {
	switch s {
	case "off", "":
		f.set = false
		f.logger = nil
	case "debug":
		f.set = true
		f.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return fmt.Errorf("unknown log level %q (want off|debug)", s)
	}
	return nil
}

func (f *logLevelFlag) Type() string { return "off|debug" }
