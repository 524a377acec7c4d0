package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cnosuke/mcp-supadata/types"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// Executor runs node items. *dispatcher.Dispatcher satisfies it.
type Executor interface {
	Execute(ctx context.Context, items []types.Item) ([]types.OutputRecord, error)
}

// RegisterAllTools - Register all tools with the server
func RegisterAllTools(mcpServer *server.MCPServer, e Executor) error {
	for _, t := range youtubeTools() {
		mcpServer.AddTool(t.tool, itemHandler(e, t.tool.Name, t.item))
	}
	mcpServer.AddTool(webScrapeTool(), itemHandler(e, "web_scrape", webScrapeItem))
	return nil
}

// itemHandler runs the single item built from the tool arguments and returns
// the output records as JSON text.
func itemHandler(e Executor, name string, build func(args map[string]interface{}) types.Item) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		item := build(request.Params.Arguments)

		zap.S().Infow("executing tool", "tool", name, "resource", item["resource"])

		records, err := e.Execute(ctx, []types.Item{item})
		if err != nil {
			zap.S().Errorw("tool failed", "tool", name, "error", err)
			return mcp.NewToolResultError(fmt.Sprintf("%s failed: %s", name, err.Error())), nil
		}

		jsonResponse, err := json.Marshal(records)
		if err != nil {
			zap.S().Errorw("failed to marshal response to JSON", "error", err)
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response to JSON: %s", err.Error())), nil
		}
		return mcp.NewToolResultText(string(jsonResponse)), nil
	}
}

// identifierArgs copies either the URL or the ID argument into item along
// with the matching inputType. The URL wins when both are set.
func identifierArgs(item types.Item, args map[string]interface{}, idType, urlType types.InputType, idArg, urlArg string) {
	if u, _ := args[urlArg].(string); u != "" {
		item["inputType"] = string(urlType)
		item[string(urlType)] = u
		return
	}
	id, _ := args[idArg].(string)
	item["inputType"] = string(idType)
	item[string(idType)] = id
}
