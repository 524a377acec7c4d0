package types

// Resource - Top-level category of data the node fetches
type Resource string

const (
	ResourceWebScrape           Resource = "webScrape"
	ResourceYoutubeChannel      Resource = "youtubeChannel"
	ResourceYoutubeChannelVideo Resource = "youtubeChannelVideo"
	ResourceYoutubeTranscript   Resource = "youtubeTranscript"
	ResourceYoutubeVideo        Resource = "youtubeVideo"
)

// Operation - Action performed against a Resource
type Operation string

const (
	OperationScrapeURL        Operation = "scrapeUrl"
	OperationGetChannel       Operation = "getChannel"
	OperationGetChannelVideos Operation = "getChannelVideos"
	OperationGetTranscript    Operation = "getTranscript"
	OperationGetVideo         Operation = "getVideo"
)

// DefaultOperation returns the operation selected for a resource when an item
// does not name one. It returns "" for unknown resources.
func DefaultOperation(r Resource) Operation {
	switch r {
	case ResourceWebScrape:
		return OperationScrapeURL
	case ResourceYoutubeChannel:
		return OperationGetChannel
	case ResourceYoutubeChannelVideo:
		return OperationGetChannelVideos
	case ResourceYoutubeTranscript:
		return OperationGetTranscript
	case ResourceYoutubeVideo:
		return OperationGetVideo
	}
	return ""
}

// InputType - Selects how an identifier is supplied
type InputType string

const (
	InputTypeVideoID    InputType = "videoId"
	InputTypeVideoURL   InputType = "videoUrl"
	InputTypeChannelID  InputType = "channelId"
	InputTypeChannelURL InputType = "channelUrl"
)

// Item - One input item: parameter name to value
type Item = map[string]any

// PairedItem - Links an output record back to the input item that produced it
type PairedItem struct {
	Item int `json:"item"`
}

// OutputRecord - One entry of the node's execution result
type OutputRecord struct {
	JSON       any        `json:"json"`
	PairedItem PairedItem `json:"pairedItem"`
}

// ErrorRecord builds the record emitted for a failed item in error-tolerant mode.
func ErrorRecord(index int, message string) OutputRecord {
	return OutputRecord{
		JSON:       map[string]any{"error": message},
		PairedItem: PairedItem{Item: index},
	}
}

// Records wraps a payload into output records tagged with index. A sequence
// expands to one record per element; nil becomes a single empty object.
func Records(payload any, index int) []OutputRecord {
	switch p := payload.(type) {
	case nil:
		return []OutputRecord{{JSON: map[string]any{}, PairedItem: PairedItem{Item: index}}}
	case []any:
		out := make([]OutputRecord, 0, len(p))
		for _, el := range p {
			out = append(out, OutputRecord{JSON: el, PairedItem: PairedItem{Item: index}})
		}
		return out
	default:
		return []OutputRecord{{JSON: p, PairedItem: PairedItem{Item: index}}}
	}
}
