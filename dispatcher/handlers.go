package dispatcher

import (
	"net/http"
	"strconv"

	ierrors "github.com/cnosuke/mcp-supadata/internal/errors"
	"github.com/cnosuke/mcp-supadata/supadata"
	"github.com/cnosuke/mcp-supadata/types"
)

const (
	PathVideo         = "/youtube/video"
	PathTranscript    = "/youtube/transcript"
	PathChannel       = "/youtube/channel"
	PathChannelVideos = "/youtube/channel/videos"
	PathWebScrape     = "/web/scrape"
)

type route struct {
	resource  types.Resource
	operation types.Operation
}

// handler turns per-item Params into one API call and, optionally, reshapes
// the decoded response.
type handler struct {
	path   string
	query  func(p Params, node string) (supadata.Query, error)
	unwrap func(payload any) (any, error)
}

func (h handler) resolve(p Params, node string) (string, supadata.Query, error) {
	q, err := h.query(p, node)
	if err != nil {
		return "", nil, err
	}
	return h.path, q, nil
}

var handlers = map[route]handler{
	{types.ResourceYoutubeVideo, types.OperationGetVideo}: {
		path:  PathVideo,
		query: videoQuery,
	},
	{types.ResourceYoutubeTranscript, types.OperationGetTranscript}: {
		path: PathTranscript,
		query: func(p Params, node string) (supadata.Query, error) {
			q, err := videoQuery(p, node)
			if err != nil {
				return nil, err
			}
			q["text"] = p.Text
			return q, nil
		},
	},
	{types.ResourceYoutubeChannel, types.OperationGetChannel}: {
		path:  PathChannel,
		query: channelQuery,
	},
	{types.ResourceYoutubeChannelVideo, types.OperationGetChannelVideos}: {
		path: PathChannelVideos,
		query: func(p Params, node string) (supadata.Query, error) {
			q, err := channelQuery(p, node)
			if err != nil {
				return nil, err
			}
			if !p.ReturnAll {
				if p.Limit < 1 {
					return nil, &ierrors.ValidationError{
						Node:  node,
						Input: strconv.Itoa(p.Limit),
						Cause: "limit must be at least 1",
					}
				}
				q["limit"] = p.Limit
			}
			return q, nil
		},
		unwrap: videoIDs,
	},
	{types.ResourceWebScrape, types.OperationScrapeURL}: {
		path: PathWebScrape,
		query: func(p Params, node string) (supadata.Query, error) {
			if p.URL == "" {
				return nil, &ierrors.ValidationError{Node: node, Input: p.URL, Cause: "URL is required"}
			}
			return supadata.Query{"url": p.URL}, nil
		},
	},
}

func lookup(p Params) (handler, error) {
	h, ok := handlers[route{p.Resource, p.Operation}]
	if !ok {
		return handler{}, &ierrors.UnsupportedOperationError{
			Resource:  string(p.Resource),
			Operation: string(p.Operation),
		}
	}
	return h, nil
}

func videoQuery(p Params, node string) (supadata.Query, error) {
	id, err := p.Input.resolve(videoID, node)
	if err != nil {
		return nil, err
	}
	return supadata.Query{"id": id}, nil
}

func channelQuery(p Params, node string) (supadata.Query, error) {
	id, err := p.Input.resolve(channelID, node)
	if err != nil {
		return nil, err
	}
	return supadata.Query{"id": id}, nil
}

// videoIDs unwraps the channel video listing to its ordered list of video IDs.
func videoIDs(payload any) (any, error) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, &ierrors.RemoteError{Status: http.StatusOK, Message: "malformed response: expected an object with videoIds"}
	}
	ids, ok := obj["videoIds"].([]any)
	if !ok {
		return nil, &ierrors.RemoteError{Status: http.StatusOK, Message: "malformed response: videoIds is missing or not a list"}
	}
	return ids, nil
}
