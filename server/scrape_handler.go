package server

import (
	"github.com/cnosuke/mcp-supadata/types"
	"github.com/mark3labs/mcp-go/mcp"
)

func webScrapeTool() mcp.Tool {
	return mcp.NewTool("web_scrape",
		mcp.WithDescription("Scrape a web page and return its content as Markdown"),
		mcp.WithString("url",
			mcp.Description("The URL to scrape"),
			mcp.Required(),
		),
	)
}

func webScrapeItem(args map[string]interface{}) types.Item {
	url, _ := args["url"].(string)
	return types.Item{
		"resource":  string(types.ResourceWebScrape),
		"operation": string(types.OperationScrapeURL),
		"url":       url,
	}
}
