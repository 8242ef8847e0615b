package cowq

import "context"

// Group collects completion tokens from a burst of sends so they can
// be awaited together. The zero value is ready to use. A Group must
// not be copied after first use and is not safe for concurrent use.
type Group[M any] struct {
	noCopy noCopy
	tokens []*Oneshot[M]
}

// Add registers a completion token with the group.
func (g *Group[M]) Add(o *Oneshot[M]) {
	g.tokens = append(g.tokens, o)
}

// Len returns the number of tokens registered with the group.
func (g *Group[M]) Len() int {
	return len(g.tokens)
}

// Wait blocks until every registered token has resolved or the
// context is done. On success it returns the written messages in
// registration order. Like Oneshot.Await, it never returns on its
// own if the queue fails; bound the wait with the context.
func (g *Group[M]) Wait(ctx context.Context) ([]M, error) {
	out := make([]M, 0, len(g.tokens))
	for _, o := range g.tokens {
		m, err := o.Await(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
