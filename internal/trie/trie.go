// Package trie stores slash separated paths by segment so that a path can be
// tested against every stored directory prefix in one walk.
package trie

import (
	"sort"
	"strings"
)

// nodeIndex is the position of a node in the arena.
type nodeIndex int

// node is a trie node. Children are referenced by arena index.
type node struct {
	children map[string]nodeIndex
	isEnd    bool
}

// Trie is an arena backed path trie. Node 0 is the root.
type Trie struct {
	nodes []node
}

// New returns an initialized Trie.
func New() *Trie {
	t := &Trie{nodes: make([]node, 0, 64)}
	t.newNode()
	return t
}

func (t *Trie) newNode() nodeIndex {
	t.nodes = append(t.nodes, node{children: make(map[string]nodeIndex)})
	return nodeIndex(len(t.nodes) - 1)
}

// Split breaks a slash separated path into its non empty segments.
func Split(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" && s != "." {
			segments = append(segments, s)
		}
	}
	return segments
}

// Insert adds a path given as segments.
func (t *Trie) Insert(segments []string) {
	current := nodeIndex(0)
	for _, part := range segments {
		child, exists := t.nodes[current].children[part]
		if !exists {
			child = t.newNode()
			t.nodes[current].children[part] = child
		}
		current = child
	}
	t.nodes[current].isEnd = true
}

// Contains reports whether exactly segments was inserted.
func (t *Trie) Contains(segments []string) bool {
	current := nodeIndex(0)
	for _, part := range segments {
		child, exists := t.nodes[current].children[part]
		if !exists {
			return false
		}
		current = child
	}
	return t.nodes[current].isEnd
}

// HasPrefixOf reports whether an inserted path equals segments or is one of
// its ancestors.
func (t *Trie) HasPrefixOf(segments []string) bool {
	current := nodeIndex(0)
	if t.nodes[current].isEnd {
		return true
	}
	for _, part := range segments {
		child, exists := t.nodes[current].children[part]
		if !exists {
			return false
		}
		current = child
		if t.nodes[current].isEnd {
			return true
		}
	}
	return false
}

// Len returns the number of inserted paths.
func (t *Trie) Len() int {
	n := 0
	for _, nd := range t.nodes {
		if nd.isEnd {
			n++
		}
	}
	return n
}

// DebugString renders the trie with sorted children, marking path ends with *.
func (t *Trie) DebugString() string {
	return t.debugString(0)
}

func (t *Trie) debugString(idx nodeIndex) string {
	nd := t.nodes[idx]
	var sb strings.Builder
	if nd.isEnd {
		sb.WriteString("*")
	}

	keys := make([]string, 0, len(nd.children))
	for key := range nd.children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		sb.WriteString(key)
		sb.WriteString("(")
		sb.WriteString(t.debugString(nd.children[key]))
		sb.WriteString(")")
	}
	return sb.String()
}
