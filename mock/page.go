package mock

import "github.com/fwojciec/castgraph"

var _ castgraph.PageDecoder = (*PageDecoder)(nil)

// PageDecoder is a mock implementation of castgraph.PageDecoder.
type PageDecoder struct {
	DecodeFn func(raw string) (*castgraph.Page, error)
}

func (d *PageDecoder) Decode(raw string) (*castgraph.Page, error) {
	return d.DecodeFn(raw)
}
