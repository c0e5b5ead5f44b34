package xrpc

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/skykit/internal/syntax"
)

// Reserved child names. They hold bookkeeping values and are skipped by
// Intercept and by method lookup.
const (
	ServiceNode = "_service"
	ClientNode  = "_client"
)

var reservedNames = map[string]struct{}{
	ServiceNode: {},
	ClientNode:  {},
}

// IsReserved reports whether name is a bookkeeping node name.
func IsReserved(name string) bool {
	_, ok := reservedNames[name]
	return ok
}

// Node is a *Group, a Method or a Handle.
type Node interface {
	node()
}

// Method performs one remote call. input is the method's parameters or
// body; output, when non-nil, is a pointer the response is decoded into.
type Method func(ctx context.Context, input, output any) error

func (Method) node() {}

// Handle is an opaque bookkeeping value stored in the tree.
type Handle struct {
	Value any
}

func (Handle) node() {}

// Group is a named set of child nodes. A Group is built once and then only
// read; it is not safe for concurrent mutation.
type Group struct {
	children map[string]Node
}

func (*Group) node() {}

// NewGroup returns an empty group.
func NewGroup() *Group {
	return &Group{children: make(map[string]Node)}
}

// Set stores n as the direct child name, replacing any previous child.
func (g *Group) Set(name string, n Node) {
	g.children[name] = n
}

// Get returns the direct child name.
func (g *Group) Get(name string) (Node, bool) {
	n, ok := g.children[name]
	return n, ok
}

// Names returns the direct child names in sorted order.
func (g *Group) Names() []string {
	names := make([]string, 0, len(g.children))
	for name := range g.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Add registers m under nsid, creating intermediate groups as needed.
func (g *Group) Add(nsid string, m Method) error {
	segments, err := syntax.SplitNSID(nsid)
	if err != nil {
		return err
	}

	current := g
	for _, seg := range segments[:len(segments)-1] {
		if IsReserved(seg) {
			return fmt.Errorf("%w: %q uses reserved segment %q", syntax.ErrInvalidNSID, nsid, seg)
		}
		child, ok := current.children[seg]
		if !ok {
			next := NewGroup()
			current.children[seg] = next
			current = next
			continue
		}
		next, ok := child.(*Group)
		if !ok {
			return fmt.Errorf("xrpc: %s: segment %q is not a group", nsid, seg)
		}
		current = next
	}

	last := segments[len(segments)-1]
	if IsReserved(last) {
		return fmt.Errorf("%w: %q uses reserved segment %q", syntax.ErrInvalidNSID, nsid, last)
	}
	if existing, ok := current.children[last]; ok {
		if _, isGroup := existing.(*Group); isGroup {
			return fmt.Errorf("xrpc: %s: name already used by a group", nsid)
		}
	}
	current.children[last] = m
	return nil
}

// Lookup resolves nsid to a Method.
func (g *Group) Lookup(nsid string) (Method, error) {
	segments := strings.Split(nsid, ".")

	var n Node = g
	for _, seg := range segments {
		group, ok := n.(*Group)
		if !ok || IsReserved(seg) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, nsid)
		}
		if n, ok = group.children[seg]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, nsid)
		}
	}

	m, ok := n.(Method)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, nsid)
	}
	return m, nil
}

// Invoke looks up nsid and calls it.
func (g *Group) Invoke(ctx context.Context, nsid string, input, output any) error {
	m, err := g.Lookup(nsid)
	if err != nil {
		return err
	}
	return m(ctx, input, output)
}

// Methods returns the NSIDs of every method in the tree, sorted.
func (g *Group) Methods() []string {
	var out []string
	g.walk("", func(nsid string, _ Method) {
		out = append(out, nsid)
	})
	sort.Strings(out)
	return out
}

func (g *Group) walk(prefix string, fn func(nsid string, m Method)) {
	for name, n := range g.children {
		if IsReserved(name) {
			continue
		}
		path := joinPath(prefix, name)
		switch v := n.(type) {
		case *Group:
			v.walk(path, fn)
		case Method:
			fn(path, v)
		}
	}
}

func (g *Group) eachGroup(fn func(*Group)) {
	fn(g)
	for name, n := range g.children {
		if IsReserved(name) {
			continue
		}
		if sub, ok := n.(*Group); ok {
			sub.eachGroup(fn)
		}
	}
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
