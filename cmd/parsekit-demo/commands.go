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
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/parsekit/parsekit/action"
	"github.com/parsekit/parsekit/cmd/parsekit-demo/grammar"
)

func colorize(c *color.Color, s string) string {
	if noColor {
		return s
	}
	return c.Sprint(s)
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a config block for errors without building a value",
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readInput(args)
		if err != nil {
			return err
		}
		result := action.Validate[byte]("config", grammar.ConfigGrammar{}, input)
		if result.IsSuccess() && len(result.Errors) == 0 {
			fmt.Println(colorize(color.New(color.FgGreen), "ok"))
			return nil
		}
		for _, e := range result.Errors {
			fmt.Println(colorize(color.New(color.FgRed), e.Error()))
		}
		if !result.IsSuccess() {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a config block and print the resulting value",
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readInput(args)
		if err != nil {
			return err
		}
		result := action.Parse[byte, grammar.Config]("config", grammar.ConfigGrammar{}, input)
		if !result.IsSuccess() {
			for _, e := range result.Errors {
				fmt.Println(colorize(color.New(color.FgRed), e.Error()))
			}
			return fmt.Errorf("parse failed")
		}
		cfg := result.Value
		fmt.Printf("%s %s\n", colorize(color.New(color.FgCyan, color.Bold), "name:"), cfg.Name)
		fmt.Printf("%s %d.%d.%d\n", colorize(color.New(color.FgCyan, color.Bold), "version:"),
			cfg.Version.Major, cfg.Version.Minor, cfg.Version.Patch)
		fmt.Printf("%s %s\n", colorize(color.New(color.FgCyan, color.Bold), "authors:"), strings.Join(cfg.Authors, ", "))
		return nil
	},
}

var treeCmd = &cobra.Command{
	Use:   "tree <file>",
	Short: "Parse a config block and print its production/token tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readInput(args)
		if err != nil {
			return err
		}
		result, tree := action.ParseAsTree[byte, grammar.Config]("config", grammar.ConfigGrammar{}, input)
		if tree != nil {
			printTree(tree, 0)
			fmt.Println(colorize(color.New(color.FgMagenta), "token counts:"))
			for kind, count := range tree.KindCounts() {
				fmt.Printf("  %s: %d\n", kind, count)
			}
		}
		if !result.IsSuccess() {
			return fmt.Errorf("parse failed")
		}
		return nil
	},
}

func printTree(n *action.TreeNode[byte], depth int) {
	indent := strings.Repeat("  ", depth)
	if n.IsLeaf() {
		fmt.Printf("%s%s [%d,%d)\n", indent, colorize(color.New(color.FgYellow), n.Token.Kind.String()), n.Begin, n.End)
		return
	}
	fmt.Printf("%s%s [%d,%d)\n", indent, colorize(color.New(color.FgCyan, color.Bold), n.Production), n.Begin, n.End)
	for _, c := range n.Children {
		printTree(c, depth+1)
	}
}

var traceCmd = &cobra.Command{
	Use:   "trace <file>",
	Short: "Parse a config block and print a full event trace",
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readInput(args)
		if err != nil {
			return err
		}
		result, entries := action.Trace[byte, grammar.Config]("config", grammar.ConfigGrammar{}, input, logLevel.logger)
		fmt.Print(action.Render(entries))
		if !result.IsSuccess() {
			return fmt.Errorf("parse failed")
		}
		return nil
	},
}
