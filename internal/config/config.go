// Package config resolves and validates the inputs the Command-Graph
// Engine's core consumes, the Go analogue of
// original_source/sbom/sbom/config.py's KernelSbomConfig, trimmed to the
// fields the core actually reads (spec §6).
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config is the subset of inputs the Graph Builder needs: the source and
// object trees, the root artifacts to build a graph from, and the
// strictness/recovery flags spec §4.9/§7 describe.
type Config struct {
	SrcTree                   string
	ObjTree                   string
	RootPaths                 []string
	FailOnUnknownBuildCommand bool
	WriteOutputOnError        bool
	CachePath                 string
}

// Load resolves srcTree and objTree to absolute, symlink-free paths,
// reads the root paths (when rootsFile is non-empty, its lines replace the
// literal rootPaths), and validates that every referenced path exists and
// that each root is a regular file or has a .cmd sidecar, per
// original_source/sbom/sbom/config.py's _validate_path_arguments.
func Load(srcTree, objTree string, rootPaths []string, rootsFile string, failOnUnknownBuildCommand, writeOutputOnError bool, cachePath string) (*Config, error) {
	srcTree, err := resolveRealPath(srcTree)
	if err != nil {
		return nil, fmt.Errorf("config: resolving src tree: %w", err)
	}
	objTree, err = resolveRealPath(objTree)
	if err != nil {
		return nil, fmt.Errorf("config: resolving obj tree: %w", err)
	}

	roots := rootPaths
	if rootsFile != "" {
		roots, err = readRootsFile(rootsFile)
		if err != nil {
			return nil, err
		}
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("config: no root paths given (use -root or -roots-file)")
	}

	cfg := &Config{
		SrcTree:                   srcTree,
		ObjTree:                   objTree,
		RootPaths:                 roots,
		FailOnUnknownBuildCommand: failOnUnknownBuildCommand,
		WriteOutputOnError:        writeOutputOnError,
		CachePath:                 cachePath,
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveRealPath resolves path to an absolute, symlink-free form,
// mirroring config.py's use of os.path.realpath for -src-tree/-obj-tree.
// Node paths are computed relative to the resolved tree roots (see
// cmdgraph's normalizeAbs), so leaving a tree root symlink unresolved
// here would make every node path fail isRelativeTo against it.
func resolveRealPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real, nil
	}
	return abs, nil
}

func readRootsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading roots file: %w", err)
	}
	defer f.Close()

	var roots []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			roots = append(roots, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: reading roots file: %w", err)
	}
	return roots, nil
}

func (c *Config) validate() error {
	if _, err := os.Stat(c.SrcTree); err != nil {
		return fmt.Errorf("config: -src-tree %q does not exist", c.SrcTree)
	}
	if _, err := os.Stat(c.ObjTree); err != nil {
		return fmt.Errorf("config: -obj-tree %q does not exist", c.ObjTree)
	}
	for _, root := range c.RootPaths {
		rootPath := filepath.Join(c.ObjTree, root)
		info, err := os.Stat(rootPath)
		if err != nil {
			return fmt.Errorf("config: root artifact %q does not exist in obj tree", root)
		}
		if !info.Mode().IsRegular() {
			cmdPath := filepath.Join(filepath.Dir(rootPath), "."+filepath.Base(rootPath)+".cmd")
			if _, err := os.Stat(cmdPath); err != nil {
				return fmt.Errorf("config: root artifact %q is neither a file nor has a .cmd file", root)
			}
		}
	}
	return nil
}
