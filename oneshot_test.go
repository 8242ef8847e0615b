package cowq

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOneshotResolve(t *testing.T) {
	r := require.New(t)

	o := newOneshot[string]()

	_, ok := o.Message()
	r.False(ok)

	select {
	case <-o.Done():
		r.Fail("done before resolve")
	default:
	}

	o.resolve("m")

	<-o.Done()
	m, ok := o.Message()
	r.True(ok)
	r.Equal("m", m)

	m, err := o.Await(context.Background())
	r.NoError(err)
	r.Equal("m", m)
}

func TestOneshotAwaitContext(t *testing.T) {
	r := require.New(t)

	o := newOneshot[string]()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := o.Await(ctx)
	r.ErrorIs(err, context.DeadlineExceeded)
}

func TestOneshotAwaitBlocksUntilResolved(t *testing.T) {
	r := require.New(t)

	o := newOneshot[int]()

	go func() {
		time.Sleep(10 * time.Millisecond)
		o.resolve(42)
	}()

	m, err := o.Await(context.Background())
	r.NoError(err)
	r.Equal(42, m)
}
