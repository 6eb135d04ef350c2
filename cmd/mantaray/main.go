// Copyright 2026 The Mantaray Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command mantaray runs the symbolic execution engine over a single C
// source file, per §6: one positional filename argument, one
// --deepness flag, exit code 0 on success and non-zero on any fatal
// engine error.
package main

import (
	goflag "flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/PositiveTechnologies/mantaray/internal/cparse"
	"github.com/PositiveTechnologies/mantaray/internal/driver"
	"github.com/PositiveTechnologies/mantaray/internal/errs"
)

func main() {
	os.Exit(run())
}

func run() int {
	var deepness int

	rootCmd := &cobra.Command{
		Use:   "mantaray <file.c>",
		Short: "Symbolically execute a small C subset and report every reachable return option",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(args[0], deepness)
		},
		SilenceUsage: true,
	}
	rootCmd.Flags().IntVar(&deepness, "deepness", 1, "recursion and loop-unrolling bound")

	// glog registers its flags on the standard library's flag.CommandLine;
	// folding that set into cobra's pflag-based parser lets a single
	// invocation configure both (-logtostderr, -v, ...) the way the
	// cel-go's own CLI tooling does. The standard set is only marked as
	// parsed (with no arguments, so it never sees --deepness); cobra parses
	// the real command line.
	goflag.CommandLine.Parse([]string{})
	rootCmd.PersistentFlags().AddGoFlagSet(goflag.CommandLine)
	defer glog.Flush()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runFile(path string, deepness int) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	unit, err := cparse.Parse(string(source))
	if err != nil {
		return err
	}

	functions, err := driver.AnalyzeUnit(unit)
	if err != nil {
		return err
	}

	order := make([]string, len(unit.Functions))
	for i, f := range unit.Functions {
		order[i] = f.Name
	}
	entries := driver.CollectEntryPoints(order, functions)
	if len(entries) == 0 {
		glog.Warning("translation unit has no entry points: every function is called by another")
	}

	d := driver.New(deepness, functions)
	for _, name := range entries {
		if err := d.RunEntryPoint(name); err != nil {
			if errs.Is(err, errs.Invariant) {
				return err
			}
			glog.Warningf("entry point %s: %v", name, err)
		}
	}

	if warnings := d.Warnings(); warnings != nil {
		glog.Warningf("unsupported constructs encountered: %v", warnings)
	}
	return nil
}
