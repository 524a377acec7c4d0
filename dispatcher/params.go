package dispatcher

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cnosuke/mcp-supadata/extractor"
	ierrors "github.com/cnosuke/mcp-supadata/internal/errors"
	"github.com/cnosuke/mcp-supadata/types"
)

// DefaultLimit is the channel video limit used when an item does not set one.
const DefaultLimit = 50

type idKind int

const (
	videoID idKind = iota
	channelID
)

// InputSpec is an identifier supplied either directly or as a URL to extract it from.
type InputSpec struct {
	value   string
	fromURL bool
}

// Direct returns an InputSpec holding a raw identifier.
func Direct(id string) InputSpec { return InputSpec{value: id} }

// FromURL returns an InputSpec that resolves by extracting the identifier from u.
func FromURL(u string) InputSpec { return InputSpec{value: u, fromURL: true} }

func (s InputSpec) IsURL() bool   { return s.fromURL }
func (s InputSpec) Value() string { return s.value }

func (s InputSpec) resolve(kind idKind, node string) (string, error) {
	if !s.fromURL {
		if strings.TrimSpace(s.value) == "" {
			return "", &ierrors.ValidationError{Node: node, Input: s.value, Cause: "identifier is required"}
		}
		return s.value, nil
	}
	if kind == channelID {
		return extractor.ExtractChannelID(s.value, node)
	}
	return extractor.ExtractVideoID(s.value, node)
}

// Params is the per-item configuration, read once from the item's parameters.
type Params struct {
	Resource  types.Resource
	Operation types.Operation
	Input     InputSpec
	Text      bool
	ReturnAll bool
	Limit     int
	URL       string
}

// ParseParams reads the parameters used by every operation out of item.
// node is carried into validation errors.
func ParseParams(item types.Item, node string) (Params, error) {
	p := Params{Limit: DefaultLimit}

	resource, err := stringParam(item, "resource", node)
	if err != nil {
		return p, err
	}
	p.Resource = types.Resource(resource)

	operation, err := stringParam(item, "operation", node)
	if err != nil {
		return p, err
	}
	p.Operation = types.Operation(operation)
	if p.Operation == "" {
		p.Operation = types.DefaultOperation(p.Resource)
	}

	switch p.Resource {
	case types.ResourceYoutubeVideo, types.ResourceYoutubeTranscript:
		p.Input, err = parseInput(item, types.InputTypeVideoID, types.InputTypeVideoURL, node)
	case types.ResourceYoutubeChannel, types.ResourceYoutubeChannelVideo:
		p.Input, err = parseInput(item, types.InputTypeChannelID, types.InputTypeChannelURL, node)
	}
	if err != nil {
		return p, err
	}

	if p.Text, err = boolParam(item, "text", node); err != nil {
		return p, err
	}
	if p.ReturnAll, err = boolParam(item, "returnAll", node); err != nil {
		return p, err
	}
	if v, ok := item["limit"]; ok && v != nil {
		if p.Limit, err = intParam(item, "limit", node); err != nil {
			return p, err
		}
	}
	if p.URL, err = stringParam(item, "url", node); err != nil {
		return p, err
	}
	return p, nil
}

func parseInput(item types.Item, idType, urlType types.InputType, node string) (InputSpec, error) {
	inputType, err := stringParam(item, "inputType", node)
	if err != nil {
		return InputSpec{}, err
	}
	switch types.InputType(inputType) {
	case "", idType:
		id, err := stringParam(item, string(idType), node)
		return Direct(id), err
	case urlType:
		u, err := stringParam(item, string(urlType), node)
		return FromURL(u), err
	}
	return InputSpec{}, &ierrors.ValidationError{
		Node:  node,
		Input: inputType,
		Cause: fmt.Sprintf("input type must be %q or %q", idType, urlType),
	}
}

func stringParam(item types.Item, name, node string) (string, error) {
	switch v := item[name].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return "", paramTypeError(name, v, "a string", node)
	}
}

func boolParam(item types.Item, name, node string) (bool, error) {
	switch v := item[name].(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, paramTypeError(name, v, "a boolean", node)
		}
		return b, nil
	default:
		return false, paramTypeError(name, v, "a boolean", node)
	}
}

func intParam(item types.Item, name, node string) (int, error) {
	switch v := item[name].(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, paramTypeError(name, v, "a whole number", node)
		}
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, paramTypeError(name, v, "a whole number", node)
		}
		return int(n), nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, paramTypeError(name, v, "a whole number", node)
		}
		return n, nil
	default:
		return 0, paramTypeError(name, v, "a whole number", node)
	}
}

func paramTypeError(name string, v any, want, node string) error {
	return &ierrors.ValidationError{
		Node:  node,
		Input: fmt.Sprint(v),
		Cause: fmt.Sprintf("parameter %q must be %s", name, want),
	}
}
