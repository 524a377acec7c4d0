package dispatcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	ierrors "github.com/cnosuke/mcp-supadata/internal/errors"
	"github.com/cnosuke/mcp-supadata/supadata"
	"github.com/cnosuke/mcp-supadata/types"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	path  string
	query supadata.Query
}

// recorder is a Transport that records calls and answers from a per-path table.
type recorder struct {
	calls     []call
	responses map[string]any
	errs      map[string]error
}

func (r *recorder) Get(ctx context.Context, path string, q supadata.Query) (any, error) {
	r.calls = append(r.calls, call{path: path, query: q})
	if err, ok := r.errs[path]; ok {
		return nil, err
	}
	return r.responses[path], nil
}

func newRecorder() *recorder {
	return &recorder{
		responses: map[string]any{
			PathVideo:         map[string]any{"id": "dQw4w9WgXcQ", "title": "Never Gonna Give You Up"},
			PathTranscript:    map[string]any{"content": "never gonna give you up", "lang": "en"},
			PathChannel:       map[string]any{"id": "UC_x5XG1OV2P6uZZ5FSM9Ttw", "name": "Google for Developers"},
			PathChannelVideos: map[string]any{"videoIds": []any{"v1", "v2", "v3"}},
			PathWebScrape:     map[string]any{"url": "https://example.com", "content": "# Example"},
		},
		errs: map[string]error{},
	}
}

func TestDispatcher_Resolve(t *testing.T) {
	tests := []struct {
		name  string
		item  types.Item
		path  string
		query supadata.Query
	}{
		{
			name:  "video by url",
			item:  types.Item{"resource": "youtubeVideo", "operation": "getVideo", "inputType": "videoUrl", "videoUrl": "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
			path:  PathVideo,
			query: supadata.Query{"id": "dQw4w9WgXcQ"},
		},
		{
			name:  "video by id passes through unchanged",
			item:  types.Item{"resource": "youtubeVideo", "operation": "getVideo", "inputType": "videoId", "videoId": "any-opaque-id"},
			path:  PathVideo,
			query: supadata.Query{"id": "any-opaque-id"},
		},
		{
			name:  "transcript plain text",
			item:  types.Item{"resource": "youtubeTranscript", "operation": "getTranscript", "inputType": "videoUrl", "videoUrl": "https://youtu.be/dQw4w9WgXcQ", "text": true},
			path:  PathTranscript,
			query: supadata.Query{"id": "dQw4w9WgXcQ", "text": true},
		},
		{
			name:  "transcript text defaults to false",
			item:  types.Item{"resource": "youtubeTranscript", "videoId": "dQw4w9WgXcQ"},
			path:  PathTranscript,
			query: supadata.Query{"id": "dQw4w9WgXcQ", "text": false},
		},
		{
			name:  "channel by url",
			item:  types.Item{"resource": "youtubeChannel", "operation": "getChannel", "inputType": "channelUrl", "channelUrl": "https://www.youtube.com/channel/UC_x5XG1OV2P6uZZ5FSM9Ttw"},
			path:  PathChannel,
			query: supadata.Query{"id": "UC_x5XG1OV2P6uZZ5FSM9Ttw"},
		},
		{
			name:  "channel videos default limit",
			item:  types.Item{"resource": "youtubeChannelVideo", "operation": "getChannelVideos", "channelId": "UC_x5XG1OV2P6uZZ5FSM9Ttw"},
			path:  PathChannelVideos,
			query: supadata.Query{"id": "UC_x5XG1OV2P6uZZ5FSM9Ttw", "limit": 50},
		},
		{
			name:  "channel videos explicit limit",
			item:  types.Item{"resource": "youtubeChannelVideo", "channelId": "UC_x5XG1OV2P6uZZ5FSM9Ttw", "returnAll": false, "limit": float64(10)},
			path:  PathChannelVideos,
			query: supadata.Query{"id": "UC_x5XG1OV2P6uZZ5FSM9Ttw", "limit": 10},
		},
		{
			name:  "channel videos return all omits limit",
			item:  types.Item{"resource": "youtubeChannelVideo", "channelId": "UC_x5XG1OV2P6uZZ5FSM9Ttw", "returnAll": true, "limit": 10},
			path:  PathChannelVideos,
			query: supadata.Query{"id": "UC_x5XG1OV2P6uZZ5FSM9Ttw"},
		},
		{
			name:  "web scrape uses url verbatim",
			item:  types.Item{"resource": "webScrape", "operation": "scrapeUrl", "url": "https://example.com"},
			path:  PathWebScrape,
			query: supadata.Query{"url": "https://example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newRecorder()
			d := New(rec, &Config{NodeName: "Supadata"})

			_, err := d.Execute(context.Background(), []types.Item{tt.item})
			require.NoError(t, err)
			require.Len(t, rec.calls, 1)
			assert.Equal(t, tt.path, rec.calls[0].path)
			assert.Equal(t, tt.query, rec.calls[0].query)
		})
	}
}

func TestDispatcher_OrderAndIndexTagging(t *testing.T) {
	rec := newRecorder()
	d := New(rec, &Config{})

	items := []types.Item{
		{"resource": "youtubeVideo", "videoId": "a"},
		{"resource": "youtubeChannel", "channelId": "b"},
		{"resource": "webScrape", "url": "https://example.com"},
	}
	out, err := d.Execute(context.Background(), items)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, []string{PathVideo, PathChannel, PathWebScrape},
		[]string{rec.calls[0].path, rec.calls[1].path, rec.calls[2].path})
	for i, r := range out {
		assert.Equal(t, i, r.PairedItem.Item)
	}
	assert.Equal(t, rec.responses[PathChannel], out[1].JSON)
}

func TestDispatcher_ChannelVideosExpand(t *testing.T) {
	rec := newRecorder()
	d := New(rec, &Config{})

	out, err := d.Execute(context.Background(), []types.Item{
		{"resource": "youtubeVideo", "videoId": "a"},
		{"resource": "youtubeChannelVideo", "channelId": "UC_x5XG1OV2P6uZZ5FSM9Ttw"},
	})
	require.NoError(t, err)
	require.Len(t, out, 4)

	assert.Equal(t, 0, out[0].PairedItem.Item)
	for i, id := range []string{"v1", "v2", "v3"} {
		assert.Equal(t, id, out[i+1].JSON)
		assert.Equal(t, 1, out[i+1].PairedItem.Item)
	}
}

func TestDispatcher_ChannelVideosMalformed(t *testing.T) {
	rec := newRecorder()
	rec.responses[PathChannelVideos] = map[string]any{"ids": []any{"v1"}}
	d := New(rec, &Config{})

	_, err := d.Execute(context.Background(), []types.Item{{"resource": "youtubeChannelVideo", "channelId": "c"}})
	require.Error(t, err)
	assert.True(t, ierrors.IsRemote(err))
}

func TestDispatcher_ContinueOnFail(t *testing.T) {
	rec := newRecorder()
	d := New(rec, &Config{NodeName: "Supadata", ContinueOnFail: true})

	out, err := d.Execute(context.Background(), []types.Item{
		{"resource": "youtubeVideo", "inputType": "videoUrl", "videoUrl": "https://example.com/not-youtube"},
		{"resource": "youtubeVideo", "videoId": "dQw4w9WgXcQ"},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)

	errJSON, ok := out[0].JSON.(map[string]any)
	require.True(t, ok)
	assert.Len(t, errJSON, 1)
	assert.Contains(t, errJSON["error"], "not a valid YouTube video URL")
	assert.Equal(t, 0, out[0].PairedItem.Item)

	assert.Equal(t, rec.responses[PathVideo], out[1].JSON)
	assert.Equal(t, 1, out[1].PairedItem.Item)

	// the invalid URL never reached the transport
	require.Len(t, rec.calls, 1)
}

func TestDispatcher_AbortOnFail(t *testing.T) {
	rec := newRecorder()
	d := New(rec, &Config{NodeName: "Supadata"})

	out, err := d.Execute(context.Background(), []types.Item{
		{"resource": "youtubeVideo", "videoId": "dQw4w9WgXcQ"},
		{"resource": "youtubeVideo", "inputType": "videoUrl", "videoUrl": "not a url"},
		{"resource": "youtubeVideo", "videoId": "dQw4w9WgXcQ"},
	})
	require.Error(t, err)
	assert.Nil(t, out)

	var verr *ierrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "not a url", verr.Input)
	assert.Equal(t, "Supadata", verr.Node)

	// the third item is never processed
	assert.Len(t, rec.calls, 1)
}

func TestDispatcher_RemoteErrorPropagates(t *testing.T) {
	remote := &ierrors.RemoteError{Status: 404, Message: "Video not found"}
	rec := newRecorder()
	rec.errs[PathVideo] = remote

	_, err := New(rec, &Config{}).Execute(context.Background(), []types.Item{{"resource": "youtubeVideo", "videoId": "x"}})
	assert.Same(t, remote, err)

	out, err := New(rec, &Config{ContinueOnFail: true}).Execute(context.Background(), []types.Item{{"resource": "youtubeVideo", "videoId": "x"}})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, map[string]any{"error": remote.Error()}, out[0].JSON)
}

func TestDispatcher_UnsupportedOperation(t *testing.T) {
	rec := newRecorder()
	d := New(rec, &Config{})

	tests := []types.Item{
		{"resource": "youtubeVideo", "operation": "getTranscript", "videoId": "x"},
		{"resource": "youtubePlaylist"},
		{},
	}
	for _, item := range tests {
		_, err := d.Execute(context.Background(), []types.Item{item})
		require.Error(t, err)
		assert.True(t, ierrors.IsUnsupportedOperation(err), "item %v", item)
	}
	assert.Empty(t, rec.calls)
}

func TestDispatcher_Validation(t *testing.T) {
	tests := []struct {
		name string
		item types.Item
	}{
		{"limit below one", types.Item{"resource": "youtubeChannelVideo", "channelId": "c", "limit": 0}},
		{"fractional limit", types.Item{"resource": "youtubeChannelVideo", "channelId": "c", "limit": 2.5}},
		{"empty video id", types.Item{"resource": "youtubeVideo", "videoId": ""}},
		{"missing url", types.Item{"resource": "webScrape"}},
		{"unknown input type", types.Item{"resource": "youtubeVideo", "inputType": "playlistId"}},
		{"channel handle url", types.Item{"resource": "youtubeChannel", "inputType": "channelUrl", "channelUrl": "https://www.youtube.com/@GoogleDevelopers"}},
		{"text not a boolean", types.Item{"resource": "youtubeTranscript", "videoId": "x", "text": "maybe"}},
		{"url not a string", types.Item{"resource": "webScrape", "url": 42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newRecorder()
			_, err := New(rec, &Config{}).Execute(context.Background(), []types.Item{tt.item})
			require.Error(t, err)
			assert.True(t, ierrors.IsValidation(err), "got %v", err)
			assert.Empty(t, rec.calls)
		})
	}
}

func TestDispatcher_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := newRecorder()
	_, err := New(rec, &Config{ContinueOnFail: true}).Execute(ctx, []types.Item{{"resource": "youtubeVideo", "videoId": "x"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, rec.calls)
}

func TestDispatcher_OverHTTP(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"dQw4w9WgXcQ","title":"Never Gonna Give You Up"}`))
	}))
	t.Cleanup(server.Close)

	client, err := supadata.NewClient(&supadata.Config{APIKey: "k", BaseURL: server.URL, Timeout: 5})
	require.NoError(t, err)

	out, err := New(client, &Config{}).Execute(context.Background(), []types.Item{{
		"resource":  "youtubeVideo",
		"operation": "getVideo",
		"inputType": "videoUrl",
		"videoUrl":  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	}})
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, "/youtube/video", gotPath)
	assert.Equal(t, "id=dQw4w9WgXcQ&x-api-key=k", gotQuery)
	assert.Equal(t, "Never Gonna Give You Up", out[0].JSON.(map[string]any)["title"])
}
