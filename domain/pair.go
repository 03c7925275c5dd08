package domain

// Pair is the unordered two-element identifier set defining a conversation.
// The zero value is not meaningful; build it with NewPair.
type Pair struct {
	a, b string
}

// NewPair canonicalizes the two identifiers so that NewPair(x, y) == NewPair(y, x).
func NewPair(x, y string) Pair {
	if y < x {
		x, y = y, x
	}
	return Pair{a: x, b: y}
}

func (p Pair) Contains(id string) bool {
	return p.a == id || p.b == id
}

// Members returns both identifiers in canonical order.
func (p Pair) Members() [2]string {
	return [2]string{p.a, p.b}
}

// Other returns the identifier facing id, or "" when id is not a member.
func (p Pair) Other(id string) string {
	switch id {
	case p.a:
		return p.b
	case p.b:
		return p.a
	}
	return ""
}
