package supadata

import "context"

type routed struct {
	base     Transport
	path     string
	override Transport
}

// Route returns a Transport that serves path from override and everything
// else from base.
func Route(base Transport, path string, override Transport) Transport {
	return &routed{base: base, path: path, override: override}
}

func (r *routed) Get(ctx context.Context, path string, q Query) (any, error) {
	if path == r.path {
		return r.override.Get(ctx, path, q)
	}
	return r.base.Get(ctx, path, q)
}
