package graph

import (
	"context"
	"flag"
	"fmt"

	"github.com/tngtech/kernelsbom/internal/cache"
	"github.com/tngtech/kernelsbom/internal/cmdgraph"
	"github.com/tngtech/kernelsbom/internal/config"
	"github.com/tngtech/kernelsbom/internal/diag"
	"github.com/tngtech/kernelsbom/internal/env"
)

// commonFlags is embedded by every subcommand that needs to build or
// load a Graph, mirroring the -C/-f pattern subcmd/query/digraph.go uses
// for ninja build files.
type commonFlags struct {
	srcTree                   string
	objTree                   string
	rootsFile                 string
	roots                     stringSliceFlag
	failOnUnknownBuildCommand bool
	cachePath                 string
}

func (f *commonFlags) SetFlags(flagSet *flag.FlagSet) {
	flagSet.StringVar(&f.srcTree, "src-tree", "", "path to the Linux kernel source tree")
	flagSet.StringVar(&f.objTree, "obj-tree", "", "path to the build object tree")
	flagSet.StringVar(&f.rootsFile, "roots-file", "", "file with one root artifact path per line (relative to -obj-tree)")
	flagSet.Var(&f.roots, "root", "root artifact path (relative to -obj-tree); repeatable")
	flagSet.BoolVar(&f.failOnUnknownBuildCommand, "fail-on-unknown-build-command", true, "fail (instead of warn) when a .cmd file's command is not recognized")
	flagSet.StringVar(&f.cachePath, "cache", "", "path to a graph cache file; read if present, otherwise written after the graph is built")
}

// buildOrLoadGraph resolves the commonFlags into a Config, loads the
// graph from -cache if it exists, otherwise builds it from scratch and
// writes it back to -cache when set.
func (f *commonFlags) buildOrLoadGraph(ctx context.Context) (*cmdgraph.Graph, error) {
	cfg, err := config.Load(f.srcTree, f.objTree, []string(f.roots), f.rootsFile, f.failOnUnknownBuildCommand, false, f.cachePath)
	if err != nil {
		return nil, err
	}

	if cfg.CachePath != "" {
		if g, err := cache.Load(cfg.CachePath); err == nil {
			return g, nil
		}
	}

	environment := env.FromOS("ARCH", "SRCARCH")
	g := cmdgraph.Build(ctx, cfg.RootPaths, cmdgraph.BuildConfig{
		SrcTree:                   cfg.SrcTree,
		ObjTree:                   cfg.ObjTree,
		FailOnUnknownBuildCommand: cfg.FailOnUnknownBuildCommand,
		Environment:               environment,
	})

	if cfg.CachePath != "" {
		if err := cache.Save(cfg.CachePath, g); err != nil {
			diag.Default.Warning("failed to write graph cache %q: %s", cfg.CachePath, err.Error())
		}
	}
	return g, nil
}

// stringSliceFlag implements flag.Value to collect repeated -root flags.
type stringSliceFlag []string

func (s *stringSliceFlag) String() string {
	if s == nil {
		return ""
	}
	return fmt.Sprint([]string(*s))
}

func (s *stringSliceFlag) Set(value string) error {
	*s = append(*s, value)
	return nil
}
