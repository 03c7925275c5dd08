package docstore

type Order int

const (
	// Ascending orders by server-assigned timestamp, oldest first.
	Ascending Order = iota
	// Descending orders newest first. Ties break by insertion order in
	// both directions (the key encodes it).
	Descending
)

type operator int

const (
	opEqual operator = iota
	opArrayContains
)

// Predicate narrows a query server-side. Only equality and array-contains
// are supported; anything finer stays a client-side concern.
type Predicate struct {
	field string
	op    operator
	value string
}

func Eq(field, value string) Predicate {
	return Predicate{field: field, op: opEqual, value: value}
}

func ArrayContains(field, value string) Predicate {
	return Predicate{field: field, op: opArrayContains, value: value}
}

type Query struct {
	Collection string
	Predicates []Predicate
	Order      Order
}

func (q Query) matches(doc Document) bool {
	for _, p := range q.Predicates {
		switch p.op {
		case opEqual:
			if doc.String(p.field) != p.value {
				return false
			}
		case opArrayContains:
			found := false
			for _, s := range doc.Strings(p.field) {
				if s == p.value {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}
