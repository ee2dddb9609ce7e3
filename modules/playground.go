package modules

import (
	"context"

	"github.com/petal-labs/jutge/core"
)

// TwoInts is the input and output of testing.playground.inc.
type TwoInts struct {
	A int `json:"a"`
	B int `json:"b"`
}

// Playground wraps testing.playground, whose functions exercise the
// protocol itself: objects in and out, inlined arguments, files in and out.
type Playground struct {
	client *core.Client
}

// Inc returns v with both fields incremented.
func (p *Playground) Inc(ctx context.Context, v TwoInts) (*TwoInts, error) {
	return call[TwoInts](ctx, p.client, "testing.playground.inc", v)
}

// Add3i returns a+b+c.
func (p *Playground) Add3i(ctx context.Context, a, b, c int) (int, error) {
	input := map[string]int{"a": a, "b": b, "c": c}
	n, err := call[int](ctx, p.client, "testing.playground.add3i", input)
	if err != nil {
		return 0, err
	}
	return *n, nil
}

// Negate uploads an image and returns its negative.
func (p *Playground) Negate(ctx context.Context, image []byte) (*core.Download, error) {
	return callDownload(ctx, p.client, "testing.playground.negate", nil, image)
}
