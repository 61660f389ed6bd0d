// Package cache implements the optional on-disk graph cache spec §4.10
// describes as an "opaque, versioned serialize/deserialize pair" — this
// module's only persistence concern, the rest of the core being
// stateless and in-memory (spec §0/§11 Out of scope).
package cache

import (
	"bufio"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/tngtech/kernelsbom/internal/cmdgraph"
)

// magic identifies a kernelsbom graph cache file; formatVersion gates
// readers against a future, incompatible payload shape.
var magic = [4]byte{'K', 'S', 'B', 'C'}

const formatVersion uint32 = 1

// header is written, uncompressed, before the zstd-compressed payload.
// RunID is a random google/uuid identifier generated anew by each Save
// call; Load skips over it without checking or returning it.
type header struct {
	Magic   [4]byte
	Version uint32
	RunID   uuid.UUID
}

// payload is the flattened, gob-encoded form of a cmdgraph.Graph.
// Node pointers are replaced with slice indices: gob does not preserve
// shared-pointer identity across an encode/decode round trip, so a
// graph with diamond dependencies encoded directly would silently
// duplicate nodes on load and break the "one Node per AbsolutePath"
// invariant spec §3 requires. Flattening first keeps that invariant
// intact across the cache boundary.
type payload struct {
	Roots []int
	Nodes []cachedNode
}

type cachedNode struct {
	AbsolutePath string
	CmdFile      *cmdgraph.CmdFile

	CmdFileDependencies   []int
	IncbinDependencies    []cachedIncbinDependency
	HardcodedDependencies []int
}

type cachedIncbinDependency struct {
	NodeIndex     int
	FullStatement string
}

// Save writes graph to path as a versioned, zstd-compressed cache file.
func Save(path string, graph *cmdgraph.Graph) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cache: creating %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	hdr := header{Magic: magic, Version: formatVersion, RunID: uuid.New()}
	if err := binary.Write(f, binary.BigEndian, hdr.Magic); err != nil {
		return fmt.Errorf("cache: writing header: %w", err)
	}
	if err := binary.Write(f, binary.BigEndian, hdr.Version); err != nil {
		return fmt.Errorf("cache: writing header: %w", err)
	}
	runIDBytes, err := hdr.RunID.MarshalBinary()
	if err != nil {
		return fmt.Errorf("cache: marshaling run id: %w", err)
	}
	if _, err := f.Write(runIDBytes); err != nil {
		return fmt.Errorf("cache: writing header: %w", err)
	}

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("cache: creating zstd writer: %w", err)
	}
	defer func() {
		if cerr := zw.Close(); err == nil {
			err = cerr
		}
	}()

	return gob.NewEncoder(zw).Encode(flatten(graph))
}

// Load reads a graph previously written by Save. It rejects (does not
// attempt to mis-parse) a file with the wrong magic or an unrecognized
// format version, per spec §4.10/§6.
func Load(path string) (*cmdgraph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cache: opening %q: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)

	var gotMagic [4]byte
	if err := binary.Read(r, binary.BigEndian, &gotMagic); err != nil {
		return nil, fmt.Errorf("cache: reading magic: %w", err)
	}
	if gotMagic != magic {
		return nil, errors.New("cache: not a kernelsbom graph cache file")
	}

	var version uint32
	if err := binary.Read(r, binary.BigEndian, &version); err != nil {
		return nil, fmt.Errorf("cache: reading version: %w", err)
	}
	if version != formatVersion {
		return nil, fmt.Errorf("cache: unsupported cache format version %d (want %d)", version, formatVersion)
	}

	runIDBytes := make([]byte, 16)
	if _, err := io.ReadFull(r, runIDBytes); err != nil {
		return nil, fmt.Errorf("cache: reading run id: %w", err)
	}

	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("cache: creating zstd reader: %w", err)
	}
	defer zr.Close()

	var p payload
	if err := gob.NewDecoder(zr).Decode(&p); err != nil {
		return nil, fmt.Errorf("cache: decoding payload: %w", err)
	}
	return unflatten(p), nil
}

// nodeIndex assigns each visited *cmdgraph.Node the next free integer
// index in first-seen order, so flatten can turn its pointer graph into
// gob-safe indices without a standalone interning type.
type nodeIndex struct {
	indexByNode map[*cmdgraph.Node]int
	nodes       []*cmdgraph.Node
}

func newNodeIndex() *nodeIndex {
	return &nodeIndex{indexByNode: make(map[*cmdgraph.Node]int)}
}

func (ni *nodeIndex) indexOf(n *cmdgraph.Node) int {
	if idx, ok := ni.indexByNode[n]; ok {
		return idx
	}
	idx := len(ni.nodes)
	ni.indexByNode[n] = idx
	ni.nodes = append(ni.nodes, n)
	return idx
}

func flatten(graph *cmdgraph.Graph) payload {
	ni := newNodeIndex()
	for n := range graph.All() {
		ni.indexOf(n)
	}

	p := payload{Nodes: make([]cachedNode, len(ni.nodes))}
	for i, n := range ni.nodes {
		cn := cachedNode{AbsolutePath: n.AbsolutePath, CmdFile: n.CmdFile}
		for _, dep := range n.CmdFileDependencies {
			cn.CmdFileDependencies = append(cn.CmdFileDependencies, ni.indexOf(dep))
		}
		for _, dep := range n.IncbinDependencies {
			cn.IncbinDependencies = append(cn.IncbinDependencies, cachedIncbinDependency{
				NodeIndex:     ni.indexOf(dep.Node),
				FullStatement: dep.FullStatement,
			})
		}
		for _, dep := range n.HardcodedDependencies {
			cn.HardcodedDependencies = append(cn.HardcodedDependencies, ni.indexOf(dep))
		}
		p.Nodes[i] = cn
	}
	for _, root := range graph.Roots() {
		p.Roots = append(p.Roots, ni.indexOf(root))
	}
	return p
}

func unflatten(p payload) *cmdgraph.Graph {
	nodes := make([]*cmdgraph.Node, len(p.Nodes))
	for i, cn := range p.Nodes {
		nodes[i] = &cmdgraph.Node{AbsolutePath: cn.AbsolutePath, CmdFile: cn.CmdFile}
	}
	for i, cn := range p.Nodes {
		for _, idx := range cn.CmdFileDependencies {
			nodes[i].CmdFileDependencies = append(nodes[i].CmdFileDependencies, nodes[idx])
		}
		for _, dep := range cn.IncbinDependencies {
			nodes[i].IncbinDependencies = append(nodes[i].IncbinDependencies, cmdgraph.IncbinDependency{
				Node:          nodes[dep.NodeIndex],
				FullStatement: dep.FullStatement,
			})
		}
		for _, idx := range cn.HardcodedDependencies {
			nodes[i].HardcodedDependencies = append(nodes[i].HardcodedDependencies, nodes[idx])
		}
	}

	roots := make([]*cmdgraph.Node, len(p.Roots))
	for i, idx := range p.Roots {
		roots[i] = nodes[idx]
	}
	return cmdgraph.NewGraph(roots)
}
