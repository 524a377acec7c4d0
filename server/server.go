package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/cnosuke/mcp-supadata/config"
	"github.com/cnosuke/mcp-supadata/dispatcher"
	"github.com/cnosuke/mcp-supadata/scraper"
	"github.com/cnosuke/mcp-supadata/supadata"
	"github.com/cockroachdb/errors"
)

// NewTransport builds the API transport described by cfg: the Supadata
// client, with web scraping served locally when scrape.local is set.
func NewTransport(cfg *config.Config) (supadata.Transport, error) {
	client, err := supadata.NewClient(&supadata.Config{
		APIKey:    cfg.Supadata.APIKey,
		BaseURL:   cfg.Supadata.BaseURL,
		Timeout:   cfg.Supadata.Timeout,
		UserAgent: cfg.Supadata.UserAgent,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Supadata client")
	}
	if !cfg.Scrape.Local {
		return client, nil
	}

	zap.S().Infow("web scrape served locally")
	local := scraper.New(&scraper.Config{
		Timeout:   cfg.Scrape.Timeout,
		UserAgent: cfg.Supadata.UserAgent,
		MaxLength: cfg.Scrape.MaxLength,
	})
	return supadata.Route(client, dispatcher.PathWebScrape, local), nil
}

// Run - Execute the MCP server
func Run(cfg *config.Config, name string, version string, revision string) error {
	zap.S().Infow("starting MCP Supadata Server")

	versionString := version
	if revision != "" && revision != "xxx" {
		versionString = versionString + " (" + revision + ")"
	}

	transport, err := NewTransport(cfg)
	if err != nil {
		zap.S().Errorw("failed to create transport", "error", err)
		return err
	}
	d := dispatcher.New(transport, &dispatcher.Config{NodeName: cfg.Node.Name})

	hooks := &server.Hooks{}
	hooks.AddOnError(func(ctx context.Context, id any, method mcp.MCPMethod, message any, err error) {
		zap.S().Errorw("MCP error occurred",
			"id", id,
			"method", method,
			"error", err,
		)
	})

	zap.S().Debugw("creating MCP server",
		"name", name,
		"version", versionString,
	)
	mcpServer := server.NewMCPServer(
		name,
		versionString,
		server.WithHooks(hooks),
	)

	zap.S().Debugw("registering tools")
	if err := RegisterAllTools(mcpServer, d); err != nil {
		zap.S().Errorw("failed to register tools", "error", err)
		return err
	}

	zap.S().Infow("starting MCP server")
	if err := server.ServeStdio(mcpServer); err != nil {
		zap.S().Errorw("failed to start server", "error", err)
		return errors.Wrap(err, "failed to start server")
	}

	zap.S().Infow("server shutting down")
	return nil
}
