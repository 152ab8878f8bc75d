package neo4j

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraversal_Compile_StartOnly(t *testing.T) {
	query, params, err := NewTraversal("media", "m1").Compile()
	require.NoError(t, err)

	assert.Equal(t, "MATCH (v0:media {id: $start}) RETURN DISTINCT v0", query)
	assert.Equal(t, map[string]any{"start": "m1"}, params)
}

func TestTraversal_Compile_Chain(t *testing.T) {
	query, params, err := NewTraversalByProp("account", "uuid", "u1").
		Follow("owns", DirectionOut, "collection").
		Follow("has_media", DirectionOut, "media").
		Where("id", "m1").
		Page(1, 0).
		Compile()
	require.NoError(t, err)

	assert.Equal(t,
		"MATCH (v0:account {uuid: $start})-[:owns]->(v1:collection)-[:has_media]->(v2:media)"+
			" WHERE v2.id = $p_id RETURN DISTINCT v2 LIMIT 1",
		query)
	assert.Equal(t, map[string]any{"start": "u1", "p_id": "m1"}, params)
}

func TestTraversal_Compile_InboundEdge(t *testing.T) {
	query, _, err := NewTraversal("media", "m1").
		Follow("has_media", DirectionIn, "collection").
		Compile()
	require.NoError(t, err)

	assert.Equal(t,
		"MATCH (v0:media {id: $start})<-[:has_media]-(v1:collection) RETURN DISTINCT v1",
		query)
}

func TestTraversal_Compile_OrderAndPaging(t *testing.T) {
	query, _, err := NewTraversal("collection", "c1").
		Follow("has_media", DirectionOut, "media").
		Order("created_at", true).
		Page(5, 10).
		Compile()
	require.NoError(t, err)

	assert.Equal(t,
		"MATCH (v0:collection {id: $start})-[:has_media]->(v1:media)"+
			" RETURN DISTINCT v1 ORDER BY v1.created_at DESC SKIP 10 LIMIT 5",
		query)
}

func TestTraversal_Compile_PredicatesAreSorted(t *testing.T) {
	query, params, err := NewTraversal("media", "m1").
		Where("name", "x").
		Where("id", "y").
		Compile()
	require.NoError(t, err)

	assert.Equal(t,
		"MATCH (v0:media {id: $start}) WHERE v0.id = $p_id AND v0.name = $p_name RETURN DISTINCT v0",
		query)
	assert.Equal(t, map[string]any{"start": "m1", "p_id": "y", "p_name": "x"}, params)
}

func TestTraversal_Compile_RejectsUnsafeIdentifiers(t *testing.T) {
	tests := []struct {
		name      string
		traversal *Traversal
	}{
		{
			name:      "start class",
			traversal: NewTraversal("media) MATCH (x", "m1"),
		},
		{
			name:      "edge label",
			traversal: NewTraversal("media", "m1").Follow("has_media]->() DELETE", DirectionOut, "collection"),
		},
		{
			name:      "predicate property",
			traversal: NewTraversal("media", "m1").Where("id = $start OR 1=1 //", "x"),
		},
		{
			name:      "order property",
			traversal: NewTraversal("media", "m1").Order("created_at; DROP", false),
		},
		{
			name:      "uppercase identifier",
			traversal: NewTraversal("Media", "m1"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.traversal.Compile()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid identifier")
		})
	}
}

func TestTraversal_Compile_ValuesNeverReachQueryText(t *testing.T) {
	// Hostile values are fine because they ride as parameters
	query, params, err := NewTraversal("media", "') DETACH DELETE (n").
		Where("id", "x' OR '1'='1").
		Compile()
	require.NoError(t, err)

	assert.NotContains(t, query, "DETACH")
	assert.Equal(t, "') DETACH DELETE (n", params["start"])
	assert.Equal(t, "x' OR '1'='1", params["p_id"])
}
