// Package dispatcher maps node items onto Supadata API calls and reshapes the
// responses into output records.
package dispatcher

import (
	"context"

	"github.com/cnosuke/mcp-supadata/supadata"
	"github.com/cnosuke/mcp-supadata/types"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

type Config struct {
	NodeName       string
	ContinueOnFail bool
}

// Dispatcher runs items one at a time against a Transport.
type Dispatcher struct {
	transport      supadata.Transport
	node           string
	continueOnFail bool
}

// New creates a new Dispatcher.
func New(t supadata.Transport, cfg *Config) *Dispatcher {
	return &Dispatcher{
		transport:      t,
		node:           cfg.NodeName,
		continueOnFail: cfg.ContinueOnFail,
	}
}

// Execute processes items in order and returns their output records.
// A failing item becomes an error record when ContinueOnFail is set;
// otherwise the run stops and the item's error is returned as-is.
func (d *Dispatcher) Execute(ctx context.Context, items []types.Item) ([]types.OutputRecord, error) {
	zap.S().Debugw("executing items", "node", d.node, "count", len(items), "continue_on_fail", d.continueOnFail)

	out := make([]types.OutputRecord, 0, len(items))
	failed := 0
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "execution cancelled before item %d", i)
		}

		payload, err := d.ExecuteItem(ctx, item)
		if err != nil {
			if !d.continueOnFail {
				zap.S().Errorw("item failed", "node", d.node, "item", i, "error", err)
				return nil, err
			}
			zap.S().Warnw("item failed, continuing", "node", d.node, "item", i, "error", err)
			out = append(out, types.ErrorRecord(i, err.Error()))
			failed++
			continue
		}
		out = append(out, types.Records(payload, i)...)
	}

	zap.S().Infow("completed executing items",
		"node", d.node,
		"items", len(items),
		"records", len(out),
		"failed", failed)
	return out, nil
}

// ExecuteItem resolves one item to its API call and returns the (unwrapped) payload.
func (d *Dispatcher) ExecuteItem(ctx context.Context, item types.Item) (any, error) {
	p, err := ParseParams(item, d.node)
	if err != nil {
		return nil, err
	}
	h, err := lookup(p)
	if err != nil {
		return nil, err
	}
	path, q, err := h.resolve(p, d.node)
	if err != nil {
		return nil, err
	}

	zap.S().Debugw("dispatching item",
		"resource", p.Resource,
		"operation", p.Operation,
		"path", path)

	payload, err := d.transport.Get(ctx, path, q)
	if err != nil {
		return nil, err
	}
	if h.unwrap != nil {
		return h.unwrap(payload)
	}
	return payload, nil
}
