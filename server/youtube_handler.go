package server

import (
	"github.com/cnosuke/mcp-supadata/types"
	"github.com/mark3labs/mcp-go/mcp"
)

type youtubeTool struct {
	tool mcp.Tool
	item func(args map[string]interface{}) types.Item
}

func youtubeTools() []youtubeTool {
	return []youtubeTool{
		{
			tool: mcp.NewTool("youtube_video",
				mcp.WithDescription("Get details of a YouTube video"),
				mcp.WithString("video_id", mcp.Description("The ID of the YouTube video, e.g. dQw4w9WgXcQ")),
				mcp.WithString("video_url", mcp.Description("The URL of the YouTube video (used instead of video_id)")),
			),
			item: func(args map[string]interface{}) types.Item {
				item := types.Item{
					"resource":  string(types.ResourceYoutubeVideo),
					"operation": string(types.OperationGetVideo),
				}
				identifierArgs(item, args, types.InputTypeVideoID, types.InputTypeVideoURL, "video_id", "video_url")
				return item
			},
		},
		{
			tool: mcp.NewTool("youtube_transcript",
				mcp.WithDescription("Get the transcript of a YouTube video"),
				mcp.WithString("video_id", mcp.Description("The ID of the YouTube video")),
				mcp.WithString("video_url", mcp.Description("The URL of the YouTube video (used instead of video_id)")),
				mcp.WithBoolean("text", mcp.Description("Whether to return the transcript as plain text")),
			),
			item: func(args map[string]interface{}) types.Item {
				item := types.Item{
					"resource":  string(types.ResourceYoutubeTranscript),
					"operation": string(types.OperationGetTranscript),
				}
				identifierArgs(item, args, types.InputTypeVideoID, types.InputTypeVideoURL, "video_id", "video_url")
				if text, ok := args["text"].(bool); ok {
					item["text"] = text
				}
				return item
			},
		},
		{
			tool: mcp.NewTool("youtube_channel",
				mcp.WithDescription("Get details of a YouTube channel"),
				mcp.WithString("channel_id", mcp.Description("The ID of the YouTube channel, e.g. UC_x5XG1OV2P6uZZ5FSM9Ttw")),
				mcp.WithString("channel_url", mcp.Description("The URL of the YouTube channel (used instead of channel_id)")),
			),
			item: func(args map[string]interface{}) types.Item {
				item := types.Item{
					"resource":  string(types.ResourceYoutubeChannel),
					"operation": string(types.OperationGetChannel),
				}
				identifierArgs(item, args, types.InputTypeChannelID, types.InputTypeChannelURL, "channel_id", "channel_url")
				return item
			},
		},
		{
			tool: mcp.NewTool("youtube_channel_videos",
				mcp.WithDescription("Get the video IDs of a YouTube channel"),
				mcp.WithString("channel_id", mcp.Description("The ID of the YouTube channel")),
				mcp.WithString("channel_url", mcp.Description("The URL of the YouTube channel (used instead of channel_id)")),
				mcp.WithBoolean("return_all", mcp.Description("Whether to return all results or only up to limit")),
				mcp.WithNumber("limit", mcp.Description("Max number of results to return (default 50)")),
			),
			item: func(args map[string]interface{}) types.Item {
				item := types.Item{
					"resource":  string(types.ResourceYoutubeChannelVideo),
					"operation": string(types.OperationGetChannelVideos),
				}
				identifierArgs(item, args, types.InputTypeChannelID, types.InputTypeChannelURL, "channel_id", "channel_url")
				if all, ok := args["return_all"].(bool); ok {
					item["returnAll"] = all
				}
				if limit, ok := args["limit"].(float64); ok {
					item["limit"] = limit
				}
				return item
			},
		},
	}
}
