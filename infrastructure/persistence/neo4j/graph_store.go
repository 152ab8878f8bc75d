package neo4j

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	pkgerrors "keepsake-backend/pkg/errors"
)

// VertexRecord is the adapter's raw-row type. Repositories map it into typed
// domain records; it never travels above the persistence layer.
type VertexRecord struct {
	ID    string
	Class string
	Props map[string]any
}

// runner is the query surface the store needs from the client
type runner interface {
	Read(ctx context.Context, op, query string, params map[string]any) ([]*neo4j.Record, error)
	Write(ctx context.Context, op, query string, params map[string]any) ([]*neo4j.Record, error)
}

// Store exposes the graph primitives: the one composable traversal plus
// vertex/edge mutation
type Store struct {
	client runner
	logger *zap.Logger
}

// NewStore creates a graph store over an established client
func NewStore(client *Client, logger *zap.Logger) *Store {
	return &Store{client: client, logger: logger}
}

// Traverse runs a compiled traversal and returns the matched vertices
func (s *Store) Traverse(ctx context.Context, t *Traversal) ([]VertexRecord, error) {
	query, params, err := t.Compile()
	if err != nil {
		return nil, pkgerrors.NewInternalError(err.Error())
	}

	records, err := s.client.Read(ctx, "traverse", query, params)
	if err != nil {
		return nil, err
	}

	vertices := make([]VertexRecord, 0, len(records))
	for _, record := range records {
		vertex, ok := vertexFromRecord(record)
		if !ok {
			continue
		}
		vertices = append(vertices, vertex)
	}
	return vertices, nil
}

// TraverseOne runs a traversal expecting at most one vertex
func (s *Store) TraverseOne(ctx context.Context, t *Traversal) (*VertexRecord, error) {
	vertices, err := s.Traverse(ctx, t.Page(1, 0))
	if err != nil {
		return nil, err
	}
	if len(vertices) == 0 {
		return nil, pkgerrors.NewNotFoundError("vertex")
	}
	return &vertices[0], nil
}

// CreateVertex creates a vertex of the given class. Props must include the
// application-assigned id.
func (s *Store) CreateVertex(ctx context.Context, class string, props map[string]any) (string, error) {
	if !identPattern.MatchString(class) {
		return "", pkgerrors.NewInternalError(fmt.Sprintf("invalid vertex class %q", class))
	}

	id, _ := props["id"].(string)
	if id == "" {
		return "", pkgerrors.NewInternalError("vertex props must carry an id")
	}

	query := fmt.Sprintf("CREATE (v:%s $props) RETURN v.id", class)
	if _, err := s.client.Write(ctx, "create "+class, query, map[string]any{"props": props}); err != nil {
		return "", err
	}
	return id, nil
}

// CreateEdge creates a directed edge between two existing vertices selected
// by id. Missing endpoints surface as not found, not as a silent no-op.
func (s *Store) CreateEdge(ctx context.Context, label, fromClass, fromID, toClass, toID string) error {
	if err := validIdents(label, fromClass, toClass); err != nil {
		return err
	}

	query := fmt.Sprintf(
		"MATCH (a:%s {id: $from}), (b:%s {id: $to}) CREATE (a)-[:%s]->(b) RETURN a.id",
		fromClass, toClass, label,
	)
	records, err := s.client.Write(ctx, "create edge "+label, query, map[string]any{"from": fromID, "to": toID})
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return pkgerrors.NewNotFoundError("edge endpoint")
	}
	return nil
}

// EdgeExists reports whether the directed edge is already present
func (s *Store) EdgeExists(ctx context.Context, label, fromClass, fromID, toClass, toID string) (bool, error) {
	if err := validIdents(label, fromClass, toClass); err != nil {
		return false, err
	}

	query := fmt.Sprintf(
		"MATCH (a:%s {id: $from})-[:%s]->(b:%s {id: $to}) RETURN count(*) AS c",
		fromClass, label, toClass,
	)
	records, err := s.client.Read(ctx, "edge exists "+label, query, map[string]any{"from": fromID, "to": toID})
	if err != nil {
		return false, err
	}
	return countResult(records) > 0, nil
}

// CreateEdgeIfAbsent applies the create-if-absent edge discipline
func (s *Store) CreateEdgeIfAbsent(ctx context.Context, label, fromClass, fromID, toClass, toID string) error {
	exists, err := s.EdgeExists(ctx, label, fromClass, fromID, toClass, toID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.CreateEdge(ctx, label, fromClass, fromID, toClass, toID)
}

// DeleteVertexCascade removes a vertex and every edge attached to it
func (s *Store) DeleteVertexCascade(ctx context.Context, class, id string) error {
	if !identPattern.MatchString(class) {
		return pkgerrors.NewInternalError(fmt.Sprintf("invalid vertex class %q", class))
	}

	query := fmt.Sprintf("MATCH (v:%s {id: $id}) DETACH DELETE v", class)
	_, err := s.client.Write(ctx, "delete "+class, query, map[string]any{"id": id})
	return err
}

// AppendToListProp appends a value to a list property, initializing the list
// when absent
func (s *Store) AppendToListProp(ctx context.Context, class, id, prop string, value any) error {
	if err := validIdents(class, prop); err != nil {
		return err
	}

	query := fmt.Sprintf(
		"MATCH (v:%s {id: $id}) SET v.%s = coalesce(v.%s, []) + $value RETURN v.id",
		class, prop, prop,
	)
	records, err := s.client.Write(ctx, "append "+prop, query, map[string]any{"id": id, "value": value})
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return pkgerrors.NewNotFoundError(class)
	}
	return nil
}

// CountSharedNeighbors counts the distinct vertices of one class reachable
// over the same edge label from both vertices
func (s *Store) CountSharedNeighbors(ctx context.Context, edge, class, aID, bID string) (int, error) {
	if err := validIdents(edge, class); err != nil {
		return 0, err
	}

	query := fmt.Sprintf(
		"MATCH (a:media {id: $a})-[:%s]->(n:%s)<-[:%s]-(b:media {id: $b}) RETURN count(DISTINCT n) AS c",
		edge, class, edge,
	)
	records, err := s.client.Read(ctx, "count shared "+class, query, map[string]any{"a": aID, "b": bID})
	if err != nil {
		return 0, err
	}
	return countResult(records), nil
}

// NeighborsSharingAny lists the distinct media ids one hop out and one hop
// back over any of the given edge labels, excluding the start vertex
func (s *Store) NeighborsSharingAny(ctx context.Context, edges []string, id string) ([]string, error) {
	for _, edge := range edges {
		if !identPattern.MatchString(edge) {
			return nil, pkgerrors.NewInternalError(fmt.Sprintf("invalid edge label %q", edge))
		}
	}
	union := strings.Join(edges, "|")

	query := fmt.Sprintf(
		"MATCH (m:media {id: $id})-[:%s]->()<-[:%s]-(other:media) WHERE other.id <> $id RETURN DISTINCT other.id AS id",
		union, union,
	)
	records, err := s.client.Read(ctx, "candidates", query, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(records))
	for _, record := range records {
		if value, ok := record.Get("id"); ok {
			if str, ok := value.(string); ok {
				ids = append(ids, str)
			}
		}
	}
	return ids, nil
}

// EnsureSchema creates the uniqueness constraints the vertex classes rely on
func (s *Store) EnsureSchema(ctx context.Context) error {
	statements := []string{
		"CREATE CONSTRAINT account_id IF NOT EXISTS FOR (a:account) REQUIRE a.id IS UNIQUE",
		"CREATE CONSTRAINT account_uuid IF NOT EXISTS FOR (a:account) REQUIRE a.uuid IS UNIQUE",
		"CREATE CONSTRAINT collection_id IF NOT EXISTS FOR (c:collection) REQUIRE c.id IS UNIQUE",
		"CREATE CONSTRAINT media_id IF NOT EXISTS FOR (m:media) REQUIRE m.id IS UNIQUE",
		"CREATE CONSTRAINT tag_id IF NOT EXISTS FOR (t:tag) REQUIRE t.id IS UNIQUE",
		"CREATE CONSTRAINT person_id IF NOT EXISTS FOR (p:person) REQUIRE p.id IS UNIQUE",
		"CREATE CONSTRAINT place_id IF NOT EXISTS FOR (p:place) REQUIRE p.id IS UNIQUE",
		"CREATE CONSTRAINT time_id IF NOT EXISTS FOR (t:time) REQUIRE t.id IS UNIQUE",
	}
	for _, statement := range statements {
		if _, err := s.client.Write(ctx, "ensure schema", statement, nil); err != nil {
			return err
		}
	}
	return nil
}

// vertexFromRecord maps a returned node to the raw-row type
func vertexFromRecord(record *neo4j.Record) (VertexRecord, bool) {
	if len(record.Values) == 0 {
		return VertexRecord{}, false
	}
	node, ok := record.Values[0].(neo4j.Node)
	if !ok {
		return VertexRecord{}, false
	}

	class := ""
	if len(node.Labels) > 0 {
		class = node.Labels[0]
	}
	id, _ := node.Props["id"].(string)

	return VertexRecord{ID: id, Class: class, Props: node.Props}, true
}

// countResult extracts the single integer a count query returns
func countResult(records []*neo4j.Record) int {
	if len(records) == 0 {
		return 0
	}
	value, ok := records[0].Get("c")
	if !ok {
		return 0
	}
	count, _ := value.(int64)
	return int(count)
}

func validIdents(idents ...string) error {
	for _, ident := range idents {
		if !identPattern.MatchString(ident) {
			return pkgerrors.NewInternalError(fmt.Sprintf("invalid identifier %q", ident))
		}
	}
	return nil
}
