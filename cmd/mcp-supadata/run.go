package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/cnosuke/mcp-supadata/dispatcher"
	"github.com/cnosuke/mcp-supadata/server"
	"github.com/cnosuke/mcp-supadata/types"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "run input items (a JSON array of parameter objects) and print output records",
		ArgsUsage: "[items.json]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "resource", Usage: "resource for items that do not set one"},
			&cli.StringFlag{Name: "operation", Usage: "operation for items that do not set one"},
			&cli.BoolFlag{Name: "continue-on-fail", Usage: "emit failed items as error records instead of aborting"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			in := io.Reader(os.Stdin)
			if path := c.Args().First(); path != "" && path != "-" {
				f, err := os.Open(path)
				if err != nil {
					return errors.Wrapf(err, "failed to open %s", path)
				}
				defer f.Close()
				in = f
			}

			items, err := decodeItems(in, c.String("resource"), c.String("operation"))
			if err != nil {
				return err
			}

			transport, err := server.NewTransport(cfg)
			if err != nil {
				return err
			}
			d := dispatcher.New(transport, &dispatcher.Config{
				NodeName:       cfg.Node.Name,
				ContinueOnFail: cfg.Node.ContinueOnFail || c.Bool("continue-on-fail"),
			})

			records, err := d.Execute(c.Context, items)
			if err != nil {
				return err
			}
			return writeRecords(c.App.Writer, records)
		},
	}
}

// decodeItems reads a JSON array of items (or a single object) and fills in
// resource and operation where an item leaves them out.
func decodeItems(r io.Reader, resource, operation string) ([]types.Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read items")
	}
	data = bytes.TrimSpace(data)

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var items []types.Item
	if len(data) > 0 && data[0] == '{' {
		var item types.Item
		if err := dec.Decode(&item); err != nil {
			return nil, errors.Wrap(err, "failed to decode item")
		}
		items = []types.Item{item}
	} else if err := dec.Decode(&items); err != nil {
		return nil, errors.Wrap(err, "failed to decode items")
	}

	for i, item := range items {
		if item == nil {
			item = types.Item{}
			items[i] = item
		}
		if _, ok := item["resource"]; !ok && resource != "" {
			item["resource"] = resource
		}
		if _, ok := item["operation"]; !ok && operation != "" {
			item["operation"] = operation
		}
	}

	zap.S().Debugw("decoded items", "count", len(items))
	return items, nil
}

func writeRecords(w io.Writer, records []types.OutputRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return errors.Wrap(enc.Encode(records), "failed to write records")
}
