package lineage

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/kinship/internal/model"
	"github.com/mvp-joe/kinship/internal/storage"
)

// Test Plan for lineage:
// - An empty store has no people, links or trees
// - Three generations give Generations == 3 and one tree
// - Unrelated people each count as a tree
// - A child listed as the parent of its own ancestor is reported as a cycle
// - Ancestors walks upward nearest first
// - A chain of thousands of people with one closing link finishes with a
//   single reported cycle and a full-length generation count

type pedigreeBuilder struct {
	t  testing.TB
	tx storage.Tx
	n  int
}

func newBuilder(t testing.TB) *pedigreeBuilder {
	t.Helper()
	tx, err := storage.NewMemStore().Begin(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback() })
	return &pedigreeBuilder{t: t, tx: tx}
}

func (b *pedigreeBuilder) person(id string) model.Handle {
	b.t.Helper()
	p := model.NewPerson()
	p.Handle = model.NewHandle()
	p.ID = id
	require.NoError(b.t, b.tx.Put(p))
	return p.Handle
}

func (b *pedigreeBuilder) family(father, mother model.Handle, children ...model.Handle) model.Handle {
	b.t.Helper()
	b.n++
	f := &model.Family{Father: father, Mother: mother}
	f.Handle = model.NewHandle()
	f.ID = model.KindFamily.FormatID(b.n)
	for _, c := range children {
		f.AddChild(model.NewChildRef(c))
	}
	require.NoError(b.t, b.tx.Put(f))
	return f.Handle
}

func TestCheck_Empty(t *testing.T) {
	t.Parallel()

	b := newBuilder(t)
	res, err := Check(b.tx)
	require.NoError(t, err)
	assert.Equal(t, &Result{}, res)
}

func TestCheck_Generations(t *testing.T) {
	t.Parallel()

	b := newBuilder(t)
	grandfather := b.person("I0001")
	father := b.person("I0002")
	mother := b.person("I0003")
	child := b.person("I0004")
	b.family(grandfather, "", father)
	b.family(father, mother, child)

	res, err := Check(b.tx)
	require.NoError(t, err)
	assert.Equal(t, 4, res.People)
	assert.Equal(t, 3, res.Links)
	assert.Equal(t, 3, res.Generations)
	assert.Equal(t, 1, res.Trees)
	assert.Empty(t, res.Cycles)
}

func TestCheck_UnrelatedPeople(t *testing.T) {
	t.Parallel()

	b := newBuilder(t)
	b.person("I0001")
	b.person("I0002")
	parent := b.person("I0003")
	b.family(parent, "", b.person("I0004"))

	res, err := Check(b.tx)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Trees)
	assert.Equal(t, 2, res.Generations)
}

func TestCheck_Cycle(t *testing.T) {
	t.Parallel()

	b := newBuilder(t)
	a := b.person("I0001")
	c := b.person("I0002")
	first := b.family(a, "", c)
	second := b.family(c, "", a)

	res, err := Check(b.tx)
	require.NoError(t, err)
	require.Len(t, res.Cycles, 1)
	assert.Equal(t, 1, res.Links)

	cycle := res.Cycles[0]
	assert.Contains(t, []model.Handle{first, second}, cycle.Family)
	assert.NotEqual(t, cycle.ParentID, cycle.ChildID)
	assert.Equal(t, cycle.ChildID+" is listed as a child of "+cycle.ParentID+" but is also their ancestor", cycle.String())
}

func TestPedigree_Ancestors(t *testing.T) {
	t.Parallel()

	b := newBuilder(t)
	grandmother := b.person("I0001")
	father := b.person("I0002")
	mother := b.person("I0003")
	child := b.person("I0004")
	b.family("", grandmother, father)
	b.family(father, mother, child)

	p, cycles, err := Build(b.tx)
	require.NoError(t, err)
	require.Empty(t, cycles)

	ancestors, err := p.Ancestors(child)
	require.NoError(t, err)
	require.Len(t, ancestors, 3)
	assert.ElementsMatch(t, []string{"I0002", "I0003"}, ancestors[:2])
	assert.Equal(t, "I0001", ancestors[2])

	_, err = p.Ancestors(model.NewHandle())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func chain(b *pedigreeBuilder, n int) []model.Handle {
	people := make([]model.Handle, n)
	for i := range people {
		people[i] = b.person(model.KindPerson.FormatID(i + 1))
	}
	for i := 1; i < n; i++ {
		b.family(people[i-1], "", people[i])
	}
	return people
}

func TestCheck_LongChainWithCycle(t *testing.T) {
	t.Parallel()

	const n = 5000
	b := newBuilder(t)
	people := chain(b, n)
	b.family(people[n-1], "", people[0])

	res, err := Check(b.tx)
	require.NoError(t, err)
	assert.Equal(t, n, res.People)
	assert.Equal(t, n-1, res.Links)
	assert.Equal(t, n, res.Generations)
	assert.Equal(t, 1, res.Trees)
	require.Len(t, res.Cycles, 1)
	assert.False(t, res.Cycles[0].Family.IsZero())
	assert.NotEqual(t, res.Cycles[0].ParentID, res.Cycles[0].ChildID)
}

func TestCheck_SelfParent(t *testing.T) {
	t.Parallel()

	b := newBuilder(t)
	a := b.person("I0001")
	fam := b.family(a, "", a)

	res, err := Check(b.tx)
	require.NoError(t, err)
	require.Len(t, res.Cycles, 1)
	assert.Equal(t, fam, res.Cycles[0].Family)
	assert.Equal(t, 0, res.Links)
	assert.Equal(t, 1, res.Generations)
}

func BenchmarkCheck_Chain(b *testing.B) {
	for _, n := range []int{1000, 4000, 16000} {
		b.Run(fmt.Sprintf("people=%d", n), func(b *testing.B) {
			pb := newBuilder(b)
			chain(pb, n)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := Check(pb.tx); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
