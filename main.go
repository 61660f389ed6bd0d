// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// kernelsbom reconstructs a Linux kernel build's artifact dependency
// graph from the .cmd sidecar files kbuild leaves behind, as the input
// to an (external) SPDX SBOM generator.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	log "github.com/golang/glog"
	"github.com/google/subcommands"

	"github.com/tngtech/kernelsbom/internal/diag"
	"github.com/tngtech/kernelsbom/signals"
	"github.com/tngtech/kernelsbom/subcmd/graph"
	"github.com/tngtech/kernelsbom/subcmd/version"
)

const versionID = "v0.1.0"

func main() {
	os.Exit(kernelsbomMain())
}

func kernelsbomMain() int {
	flag.CommandLine.Usage = func() {
		w := flag.CommandLine.Output()
		fmt.Fprintf(w, `kernelsbom %s

Usage: kernelsbom [flags] [command] [arguments]

e.g.
 $ kernelsbom graph build -src-tree ../linux -obj-tree ../linux/kernel_build -root arch/x86/boot/bzImage

Use "kernelsbom help" to display commands.
Use "kernelsbom help [command]" for more information about a command.
`, versionID)
	}
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	stopHandler := signals.HandleInterrupt(cancel)
	defer stopHandler()
	defer log.Flush()

	defer func() {
		if r := recover(); r != nil {
			log.Fatalf("panic: %v", r)
		}
	}()

	subcommands.Register(graph.Cmd(), "")
	subcommands.Register(version.Cmd(versionID), "command-help")
	subcommands.Register(subcommands.FlagsCommand(), "command-help")
	subcommands.Register(subcommands.HelpCommand(), "command-help")

	status := subcommands.Execute(ctx)
	if status == subcommands.ExitSuccess {
		diag.Default.Summarize(0)
	}
	return int(status)
}
