// Package dispatch distributes a divide-and-conquer run across workers:
// the coordinator partitions the problem and stripes subgraphs round-robin,
// workers solve their shares sequentially, and the coordinator gathers the
// keyed results and performs the final merge.
package dispatch

import (
	"context"
)

// Role is one participant of a distributed run. Binaries compose a
// transport with a role and call Run.
type Role interface {
	Run(ctx context.Context) error
}
