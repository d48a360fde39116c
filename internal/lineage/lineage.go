// Package lineage checks the pedigree formed by imported families: every
// parent -> child link is an edge of a directed graph that must stay
// acyclic.
package lineage

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dominikbraun/graph"

	"github.com/mvp-joe/kinship/internal/model"
	"github.com/mvp-joe/kinship/internal/storage"
)

// Cycle is a parent -> child link that would make a person their own
// ancestor.
type Cycle struct {
	Family   model.Handle
	Parent   model.Handle
	Child    model.Handle
	ParentID string
	ChildID  string
}

func (c Cycle) String() string {
	return fmt.Sprintf("%s is listed as a child of %s but is also their ancestor", c.ChildID, c.ParentID)
}

// Result summarises the pedigree.
type Result struct {
	People      int
	Links       int     // parent -> child edges
	Generations int     // people on the longest ancestor chain
	Trees       int     // connected groups of related people
	Cycles      []Cycle // links left out of the graph
}

// Pedigree is the parent -> child graph of a store.
type Pedigree struct {
	g   graph.Graph[string, string]
	ids map[string]string // handle -> local id
}

type link struct {
	parent, child string
}

// Build loads every person and family visible to tx into a pedigree
// graph. Links that close a cycle are removed from the graph and
// reported.
func Build(tx storage.Tx) (*Pedigree, []Cycle, error) {
	p := &Pedigree{
		g:   graph.New(graph.StringHash, graph.Directed()),
		ids: make(map[string]string),
	}

	people, err := tx.Handles(model.KindPerson)
	if err != nil {
		return nil, nil, err
	}
	for _, h := range people {
		obj, err := tx.Get(model.KindPerson, h)
		if err != nil {
			return nil, nil, err
		}
		if err := p.g.AddVertex(string(h)); err != nil {
			return nil, nil, fmt.Errorf("failed to add person %s: %w", obj.GetID(), err)
		}
		p.ids[string(h)] = obj.GetID()
	}

	families, err := tx.Handles(model.KindFamily)
	if err != nil {
		return nil, nil, err
	}
	owner := make(map[link]model.Handle)
	for _, h := range families {
		obj, err := tx.Get(model.KindFamily, h)
		if err != nil {
			return nil, nil, err
		}
		fam := obj.(*model.Family)
		for _, parent := range []model.Handle{fam.Father, fam.Mother} {
			if parent.IsZero() {
				continue
			}
			for _, child := range fam.Children {
				err := p.g.AddEdge(string(parent), string(child.Ref))
				switch {
				case err == nil:
					owner[link{string(parent), string(child.Ref)}] = h
				case errors.Is(err, graph.ErrEdgeAlreadyExists),
					errors.Is(err, graph.ErrVertexNotFound):
				default:
					return nil, nil, fmt.Errorf("failed to link %s to %s: %w", parent, child.Ref, err)
				}
			}
		}
	}

	cycles, err := p.breakCycles(owner)
	if err != nil {
		return nil, nil, err
	}
	return p, cycles, nil
}

// breakCycles removes the back edges of a depth-first walk inside every
// strongly connected component that contains a cycle. What remains is
// acyclic.
func (p *Pedigree) breakCycles(owner map[link]model.Handle) ([]Cycle, error) {
	components, err := graph.StronglyConnectedComponents(p.g)
	if err != nil {
		return nil, fmt.Errorf("failed to find cycles: %w", err)
	}
	adj, err := p.g.AdjacencyMap()
	if err != nil {
		return nil, err
	}

	var back []link
	for _, comp := range components {
		if len(comp) == 1 {
			if _, self := adj[comp[0]][comp[0]]; self {
				back = append(back, link{comp[0], comp[0]})
			}
			continue
		}
		back = append(back, backEdges(comp, adj)...)
	}

	sort.Slice(back, func(i, j int) bool {
		if back[i].parent != back[j].parent {
			return back[i].parent < back[j].parent
		}
		return back[i].child < back[j].child
	})
	cycles := make([]Cycle, 0, len(back))
	for _, l := range back {
		if err := p.g.RemoveEdge(l.parent, l.child); err != nil {
			return nil, fmt.Errorf("failed to unlink %s from %s: %w", l.child, l.parent, err)
		}
		cycles = append(cycles, Cycle{
			Family:   owner[l],
			Parent:   model.Handle(l.parent),
			Child:    model.Handle(l.child),
			ParentID: p.ids[l.parent],
			ChildID:  p.ids[l.child],
		})
	}
	if len(cycles) == 0 {
		return nil, nil
	}
	return cycles, nil
}

// backEdges walks one component iteratively and returns the edges that
// point back to a vertex still on the walk's path.
func backEdges(comp []string, adj map[string]map[string]graph.Edge[string]) []link {
	inComp := make(map[string]bool, len(comp))
	for _, v := range comp {
		inComp[v] = true
	}
	sort.Strings(comp)

	const (
		unseen = iota
		onPath
		done
	)
	state := make(map[string]int, len(comp))
	type frame struct {
		v    string
		next []string
	}
	var out []link
	for _, root := range comp {
		if state[root] != unseen {
			continue
		}
		state[root] = onPath
		stack := []frame{{root, sortedKeys(adj[root])}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if len(top.next) == 0 {
				state[top.v] = done
				stack = stack[:len(stack)-1]
				continue
			}
			w := top.next[0]
			top.next = top.next[1:]
			if !inComp[w] {
				continue
			}
			switch state[w] {
			case onPath:
				out = append(out, link{top.v, w})
			case unseen:
				state[w] = onPath
				stack = append(stack, frame{w, sortedKeys(adj[w])})
			}
		}
	}
	return out
}

// Check builds the pedigree and summarises it.
func Check(tx storage.Tx) (*Result, error) {
	p, cycles, err := Build(tx)
	if err != nil {
		return nil, err
	}
	res := &Result{Cycles: cycles}
	if res.People, err = p.g.Order(); err != nil {
		return nil, err
	}
	if res.Links, err = p.g.Size(); err != nil {
		return nil, err
	}
	if res.Generations, err = p.Generations(); err != nil {
		return nil, err
	}
	if res.Trees, err = p.Trees(); err != nil {
		return nil, err
	}
	return res, nil
}

// Generations returns the number of people on the longest chain of
// parent -> child links.
func (p *Pedigree) Generations() (int, error) {
	adj, err := p.g.AdjacencyMap()
	if err != nil {
		return 0, err
	}

	indegree := make(map[string]int, len(adj))
	for _, children := range adj {
		for child := range children {
			indegree[child]++
		}
	}
	depth := make(map[string]int, len(adj))
	var queue []string
	for v := range adj {
		if indegree[v] == 0 {
			queue = append(queue, v)
			depth[v] = 1
		}
	}

	longest, visited := 0, 0
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		visited++
		if depth[v] > longest {
			longest = depth[v]
		}
		for child := range adj[v] {
			if depth[v]+1 > depth[child] {
				depth[child] = depth[v] + 1
			}
			indegree[child]--
			if indegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}
	if visited != len(adj) {
		return 0, errors.New("failed to sort pedigree: graph has cycles")
	}
	return longest, nil
}

// Trees returns the number of groups of people connected through any
// parent or child link. Unlinked people count as a tree each.
func (p *Pedigree) Trees() (int, error) {
	adj, err := p.g.AdjacencyMap()
	if err != nil {
		return 0, err
	}
	pred, err := p.g.PredecessorMap()
	if err != nil {
		return 0, err
	}

	seen := make(map[string]bool, len(adj))
	trees := 0
	for _, start := range sortedKeys(adj) {
		if seen[start] {
			continue
		}
		trees++
		stack := []string{start}
		seen[start] = true
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for next := range adj[v] {
				if !seen[next] {
					seen[next] = true
					stack = append(stack, next)
				}
			}
			for next := range pred[v] {
				if !seen[next] {
					seen[next] = true
					stack = append(stack, next)
				}
			}
		}
	}
	return trees, nil
}

// Ancestors returns the local ids of every ancestor of the person with
// handle h, nearest first.
func (p *Pedigree) Ancestors(h model.Handle) ([]string, error) {
	pred, err := p.g.PredecessorMap()
	if err != nil {
		return nil, err
	}
	if _, ok := pred[string(h)]; !ok {
		return nil, fmt.Errorf("person %s: %w", h, storage.ErrNotFound)
	}

	var out []string
	seen := map[string]bool{string(h): true}
	queue := []string{string(h)}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, parent := range sortedKeys(pred[v]) {
			if seen[parent] {
				continue
			}
			seen[parent] = true
			out = append(out, p.ids[parent])
			queue = append(queue, parent)
		}
	}
	return out, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
