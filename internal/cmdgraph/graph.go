package cmdgraph

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/tngtech/kernelsbom/internal/diag"
	"github.com/tngtech/kernelsbom/internal/env"
)

// BuildConfig carries the inputs the Graph Builder consumes from its
// surrounding CLI collaborator (spec §6).
type BuildConfig struct {
	SrcTree                   string
	ObjTree                   string
	FailOnUnknownBuildCommand bool
	Environment               *env.Environment
}

// Graph is an ordered list of root nodes reachable via the children
// relation (spec §3 CmdGraph).
type Graph struct {
	roots []*Node
}

// Roots returns the graph's root nodes, in the order given to Build.
func (g *Graph) Roots() []*Node {
	return g.roots
}

// NewGraph builds a Graph directly from a set of root nodes, for
// collaborators (such as internal/cache) that reconstruct a Graph
// outside of Build.
func NewGraph(roots []*Node) *Graph {
	return &Graph{roots: roots}
}

// All iterates the whole graph breadth-first from Roots, yielding each
// reachable node exactly once (spec §4.8).
func (g *Graph) All() func(yield func(*Node) bool) {
	return func(yield func(*Node) bool) {
		visited := make(map[PathStr]bool)
		queue := append([]*Node(nil), g.roots...)
		for len(queue) > 0 {
			node := queue[0]
			queue = queue[1:]
			if visited[node.AbsolutePath] {
				continue
			}
			visited[node.AbsolutePath] = true
			if !yield(node) {
				return
			}
			for child := range node.Children() {
				queue = append(queue, child)
			}
		}
	}
}

// BFS materializes All into a slice, for callers that don't want an
// iterator (e.g. test assertions, the digraph/usedfiles subcommands).
func (g *Graph) BFS() []*Node {
	var out []*Node
	for n := range g.All() {
		out = append(out, n)
	}
	return out
}

// builder holds the mutable state threaded through one Build call: the
// node cache and the parser registry, both scoped to a single graph
// construction (spec §4.7, §5 "the per-build node cache").
type builder struct {
	ctx      context.Context
	cfg      BuildConfig
	registry *Registry
	cache    map[PathStr]*Node
}

// Build constructs a CmdGraph from rootPaths (each relative to
// cfg.ObjTree), per spec §4.7. ctx is observed between roots only — no
// operation within a single node's processing is itself cancellable
// (spec §5) — so the caller's interrupt handling can stop a long build
// between artifacts, matching SPEC_FULL.md §5.
func Build(ctx context.Context, rootPaths []string, cfg BuildConfig) *Graph {
	b := &builder{ctx: ctx, cfg: cfg, registry: NewRegistry(), cache: make(map[PathStr]*Node)}
	roots := make([]*Node, 0, len(rootPaths))
	for _, root := range rootPaths {
		if ctx.Err() != nil {
			break
		}
		roots = append(roots, b.buildNode(root))
	}
	return &Graph{roots: roots}
}

func toCmdPath(absolutePath string) string {
	dir := filepath.Dir(absolutePath)
	base := filepath.Base(absolutePath)
	return filepath.Join(dir, "."+base+".cmd")
}

// buildNode recursively builds the node for targetPath (relative to
// b.cfg.ObjTree), memoizing on absolute path to keep the graph a DAG
// (spec §4.7 steps 1-2).
func (b *builder) buildNode(targetPath string) *Node {
	absolutePath := normalizeAbs(b.cfg.ObjTree, targetPath)

	if cached, ok := b.cache[absolutePath]; ok {
		return cached
	}

	cmdPath := toCmdPath(absolutePath)
	var cmdFile *CmdFile
	if fileExists(cmdPath) {
		parsed, err := ParseCmdFile(cmdPath)
		if err != nil {
			diag.Default.Error("skip parsing %q: %s", cmdPath, err.Error())
		} else {
			cmdFile = parsed
		}
	}

	node := &Node{AbsolutePath: absolutePath, CmdFile: cmdFile}
	b.cache[absolutePath] = node // inserted before descending so in-progress nodes short-circuit re-entry

	if !fileExists(absolutePath) {
		if isRelativeTo(absolutePath, b.cfg.ObjTree) || isRelativeTo(absolutePath, b.cfg.SrcTree) {
			diag.Default.Error("skip parsing %q because the file does not exist", absolutePath)
		} else {
			diag.Default.Warning("skip parsing %q because the file does not exist", absolutePath)
		}
		return node
	}

	targetRelPath := targetPath

	for _, depPath := range HardcodedDependencies(absolutePath, b.cfg.ObjTree, b.cfg.SrcTree, b.cfg.Environment) {
		node.HardcodedDependencies = append(node.HardcodedDependencies, b.buildNode(depPath))
	}

	if cmdFile != nil {
		for _, depPath := range b.cmdFileDependencyPaths(cmdFile, targetRelPath) {
			node.CmdFileDependencies = append(node.CmdFileDependencies, b.buildNode(depPath))
		}
	}

	if strings.HasSuffix(absolutePath, ".S") {
		for _, dep := range b.incbinDependencies(absolutePath, targetRelPath) {
			node.IncbinDependencies = append(node.IncbinDependencies, IncbinDependency{
				Node:          b.buildNode(dep.Path),
				FullStatement: dep.FullStatement,
			})
		}
	}

	return node
}

// cmdFileDependencyPaths implements §4.7 step 7: tokenize savedcmd via
// the Tool Parser Registry, parse the deps_ list, expand @ response
// files, then resolve each relative input against the working-directory
// heuristic. The target's own path is dropped to prevent self-cycles.
func (b *builder) cmdFileDependencyPaths(cmdFile *CmdFile, targetPath string) []PathStr {
	inputs := parseInputsFromCommands(cmdFile.Savedcmd, b.registry, b.cfg.FailOnUnknownBuildCommand)
	if len(cmdFile.Deps) > 0 {
		inputs = append(inputs, ParseCmdFileDeps(cmdFile.Deps)...)
	}

	expanded, err := ExpandResponseFiles(inputs, b.cfg.ObjTree)
	if err != nil {
		diag.Default.Error("skip children of %q because a response file could not be expanded: %s", targetPath, err.Error())
		return nil
	}

	var workingDir string
	haveWorkingDir := false
	var deps []PathStr
	for _, input := range expanded {
		if filepath.IsAbs(input) {
			rel, err := filepath.Rel(b.cfg.ObjTree, input)
			if err == nil {
				deps = append(deps, rel)
			}
			continue
		}

		if !haveWorkingDir {
			dir, ok := ResolveWorkingDirectory(input, targetPath, b.cfg.ObjTree, b.cfg.SrcTree)
			if !ok {
				diag.Default.Error("skip children of %q because no working directory for relative input %q could be found", targetPath, input)
				return nil
			}
			workingDir, haveWorkingDir = dir, true
		}

		deps = append(deps, filepath.Clean(filepath.Join(workingDir, input)))
	}

	out := deps[:0]
	for _, dep := range deps {
		if dep != targetPath {
			out = append(out, dep)
		}
	}
	return out
}

// incbinDependencies implements §4.7 step 8.
func (b *builder) incbinDependencies(absolutePath, targetPath string) []IncbinStatement {
	statements, err := ParseIncbin(absolutePath)
	if err != nil {
		diag.Default.Error("skip incbin scan of %q: %s", absolutePath, err.Error())
		return nil
	}
	if len(statements) == 0 {
		return nil
	}

	workingDir, ok := ResolveWorkingDirectory(statements[0].Path, targetPath, b.cfg.ObjTree, b.cfg.SrcTree)
	if !ok {
		diag.Default.Error("skip children of %q because no working directory for %q could be found", targetPath, statements[0].FullStatement)
		return nil
	}

	resolved := make([]IncbinStatement, len(statements))
	for i, stmt := range statements {
		resolved[i] = IncbinStatement{
			Path:          filepath.Clean(filepath.Join(workingDir, stmt.Path)),
			FullStatement: stmt.FullStatement,
		}
	}
	return resolved
}

func parseInputsFromCommands(commands string, registry *Registry, failOnUnknown bool) []PathStr {
	var inputs []PathStr
	for _, entry := range SplitCommands(commands) {
		switch e := entry.(type) {
		case IfBlock:
			nested := parseInputsFromCommands(e.ThenStatement, registry, failOnUnknown)
			if len(nested) > 0 {
				reportBySeverity(failOnUnknown, "skipped parsing then-statement %q because input files in an IfBlock 'then' statement are not supported", e.ThenStatement)
			}
		case PlainCommand:
			cmd := string(e)
			paths, matched, err := registry.Parse(cmd)
			switch {
			case !matched:
				reportBySeverity(failOnUnknown, "skipped parsing command %q because no matching parser was found", cmd)
			case err != nil:
				reportBySeverity(failOnUnknown, "skipped parsing command %q because of a command parsing error: %s", cmd, err.Error())
			default:
				inputs = append(inputs, paths...)
			}
		}
	}
	for i, p := range inputs {
		inputs[i] = strings.TrimRight(strings.TrimSpace(p), "/")
	}
	return inputs
}

func reportBySeverity(failOnUnknown bool, template string, args ...any) {
	if failOnUnknown {
		diag.Default.Error(template, args...)
	} else {
		diag.Default.Warning(template, args...)
	}
}
