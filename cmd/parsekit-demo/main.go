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

// Command parsekit-demo drives the config grammar (package grammar) over a
// file through each of package action's four standard actions, the way
// original_source/examples/tutorial.cpp's main drives grammar::config
// through lexy::parse.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var noColor bool
var logLevel logLevelFlag

var rootCmd = &cobra.Command{
	Use:   "parsekit-demo",
	Short: "Parse a package config block with parsekit",
	Long: `parsekit-demo parses a small package-manifest grammar (name, version,
author list) built on parsekit, the way original_source/examples/tutorial.cpp
demonstrates lexy's grammar::config.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	traceCmd.Flags().Var(&logLevel, "log-level", "mirror the trace to stderr via slog (off|debug)")
	rootCmd.AddCommand(validateCmd, parseCmd, treeCmd, traceCmd)
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("usage: parsekit-demo <command> <file>")
	}
	return os.ReadFile(args[0])
}
