package neo4j

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"keepsake-backend/domain/core/valueobjects"
)

type issuedQuery struct {
	op     string
	query  string
	params map[string]any
}

// fakeRunner records every issued query and scripts edge-existence answers by
// directed "from->to" key
type fakeRunner struct {
	existing map[string]bool
	reads    []issuedQuery
	writes   []issuedQuery
}

func (f *fakeRunner) Read(ctx context.Context, op, query string, params map[string]any) ([]*neo4j.Record, error) {
	f.reads = append(f.reads, issuedQuery{op: op, query: query, params: params})

	if strings.HasPrefix(op, "edge exists") {
		count := int64(0)
		if f.existing[fmt.Sprintf("%v->%v", params["from"], params["to"])] {
			count = 1
		}
		return []*neo4j.Record{{Keys: []string{"c"}, Values: []any{count}}}, nil
	}
	return nil, nil
}

func (f *fakeRunner) Write(ctx context.Context, op, query string, params map[string]any) ([]*neo4j.Record, error) {
	f.writes = append(f.writes, issuedQuery{op: op, query: query, params: params})
	return []*neo4j.Record{{Keys: []string{"a.id"}, Values: []any{params["from"]}}}, nil
}

func newFakeStore() (*Store, *fakeRunner) {
	runner := &fakeRunner{existing: make(map[string]bool)}
	return &Store{client: runner, logger: zap.NewNop()}, runner
}

func TestStore_CreateEdgeIfAbsent(t *testing.T) {
	t.Run("creates when the edge is absent", func(t *testing.T) {
		store, runner := newFakeStore()

		err := store.CreateEdgeIfAbsent(context.Background(), "has_media", "collection", "c1", "media", "m1")
		require.NoError(t, err)

		require.Len(t, runner.reads, 1)
		assert.Equal(t, "edge exists has_media", runner.reads[0].op)

		require.Len(t, runner.writes, 1)
		assert.Contains(t, runner.writes[0].query, "CREATE (a)-[:has_media]->(b)")
		assert.Equal(t, "c1", runner.writes[0].params["from"])
		assert.Equal(t, "m1", runner.writes[0].params["to"])
	})

	t.Run("skips the create when the edge exists", func(t *testing.T) {
		store, runner := newFakeStore()
		runner.existing["c1->m1"] = true

		err := store.CreateEdgeIfAbsent(context.Background(), "has_media", "collection", "c1", "media", "m1")
		require.NoError(t, err)

		require.Len(t, runner.reads, 1)
		assert.Empty(t, runner.writes)
	})
}

func TestMediaRepository_Link_CreatesBothDirections(t *testing.T) {
	source := valueobjects.NewVertexID()
	target := valueobjects.NewVertexID()

	t.Run("both directions for a fresh pair", func(t *testing.T) {
		store, runner := newFakeStore()
		repo := NewMediaRepository(store, zap.NewNop())

		require.NoError(t, repo.Link(context.Background(), source, target))

		require.Len(t, runner.writes, 2)
		for _, write := range runner.writes {
			assert.Equal(t, "create edge related_to", write.op)
			assert.Contains(t, write.query, "CREATE (a)-[:related_to]->(b)")
		}
		assert.Equal(t, source.String(), runner.writes[0].params["from"])
		assert.Equal(t, target.String(), runner.writes[0].params["to"])
		assert.Equal(t, target.String(), runner.writes[1].params["from"])
		assert.Equal(t, source.String(), runner.writes[1].params["to"])
	})

	t.Run("only the missing direction is created", func(t *testing.T) {
		store, runner := newFakeStore()
		runner.existing[fmt.Sprintf("%s->%s", source, target)] = true
		repo := NewMediaRepository(store, zap.NewNop())

		require.NoError(t, repo.Link(context.Background(), source, target))

		require.Len(t, runner.writes, 1)
		assert.Equal(t, target.String(), runner.writes[0].params["from"])
		assert.Equal(t, source.String(), runner.writes[0].params["to"])
	})
}
