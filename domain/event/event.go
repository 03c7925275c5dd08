// Package event defines change notifications flowing out of the document
// store. Events carry identity only; subscribers re-read their snapshot.
package event

import "time"

type ChangeEvent interface {
	Collection() string
}

// DocumentCommitted signals that one write reached the store. The commit
// timestamp is the server-assigned time of the document.
type DocumentCommitted struct {
	Coll  string
	DocID string
	At    time.Time
}

func (d DocumentCommitted) Collection() string {
	return d.Coll
}
