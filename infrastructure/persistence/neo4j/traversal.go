package neo4j

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Direction says which way a traversal step follows its edge
type Direction int

const (
	DirectionOut Direction = iota
	DirectionIn
	DirectionBoth
)

// identPattern constrains every label, edge type and property name that gets
// spliced into query text. Values never reach the text; they ride as
// parameters.
var identPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Step follows one labeled edge to vertices of one class
type Step struct {
	Edge        string
	Direction   Direction
	TargetClass string
}

// Traversal is the one composable query shape the engine needs: start from a
// vertex selected by a property, follow labeled edges, filter the final
// vertex class by property equality. It compiles to a parameterized MATCH
// chain.
type Traversal struct {
	startClass string
	startProp  string
	startValue string
	steps      []Step
	predicates map[string]any
	orderBy    string
	descending bool
	limit      int
	offset     int
}

// NewTraversal starts from the vertex of the given class whose id property
// matches the value
func NewTraversal(startClass, startID string) *Traversal {
	return NewTraversalByProp(startClass, "id", startID)
}

// NewTraversalByProp starts from the vertex selected by an arbitrary property
func NewTraversalByProp(startClass, startProp, value string) *Traversal {
	return &Traversal{
		startClass: startClass,
		startProp:  startProp,
		startValue: value,
		predicates: make(map[string]any),
		limit:      -1,
	}
}

// Follow appends one edge-hop to the traversal
func (t *Traversal) Follow(edge string, direction Direction, targetClass string) *Traversal {
	t.steps = append(t.steps, Step{Edge: edge, Direction: direction, TargetClass: targetClass})
	return t
}

// Where adds a property-equality predicate on the final vertex. Predicates
// are ANDed; none means no filter.
func (t *Traversal) Where(prop string, value any) *Traversal {
	t.predicates[prop] = value
	return t
}

// Order sorts the result by a property of the final vertex
func (t *Traversal) Order(prop string, descending bool) *Traversal {
	t.orderBy = prop
	t.descending = descending
	return t
}

// Page limits the result window. A limit of -1 means unbounded.
func (t *Traversal) Page(limit, offset int) *Traversal {
	t.limit = limit
	t.offset = offset
	return t
}

// Compile renders the traversal to Cypher plus its parameter map
func (t *Traversal) Compile() (string, map[string]any, error) {
	idents := []string{t.startClass, t.startProp}
	for _, step := range t.steps {
		idents = append(idents, step.Edge, step.TargetClass)
	}
	for prop := range t.predicates {
		idents = append(idents, prop)
	}
	if t.orderBy != "" {
		idents = append(idents, t.orderBy)
	}
	for _, ident := range idents {
		if !identPattern.MatchString(ident) {
			return "", nil, fmt.Errorf("invalid identifier %q", ident)
		}
	}

	params := map[string]any{"start": t.startValue}

	var b strings.Builder
	fmt.Fprintf(&b, "MATCH (v0:%s {%s: $start})", t.startClass, t.startProp)
	for i, step := range t.steps {
		switch step.Direction {
		case DirectionOut:
			fmt.Fprintf(&b, "-[:%s]->", step.Edge)
		case DirectionIn:
			fmt.Fprintf(&b, "<-[:%s]-", step.Edge)
		default:
			fmt.Fprintf(&b, "-[:%s]-", step.Edge)
		}
		fmt.Fprintf(&b, "(v%d:%s)", i+1, step.TargetClass)
	}

	final := fmt.Sprintf("v%d", len(t.steps))

	// Sorted predicate order keeps the compiled text deterministic
	props := make([]string, 0, len(t.predicates))
	for prop := range t.predicates {
		props = append(props, prop)
	}
	sort.Strings(props)

	for i, prop := range props {
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		param := "p_" + prop
		fmt.Fprintf(&b, "%s.%s = $%s", final, prop, param)
		params[param] = t.predicates[prop]
	}

	fmt.Fprintf(&b, " RETURN DISTINCT %s", final)

	if t.orderBy != "" {
		fmt.Fprintf(&b, " ORDER BY %s.%s", final, t.orderBy)
		if t.descending {
			b.WriteString(" DESC")
		}
	}
	if t.offset > 0 {
		fmt.Fprintf(&b, " SKIP %d", t.offset)
	}
	if t.limit >= 0 {
		fmt.Fprintf(&b, " LIMIT %d", t.limit)
	}

	return b.String(), params, nil
}
