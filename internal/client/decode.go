package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/batfish/internal/constants"
	"github.com/fivetwenty-io/batfish/internal/http"
	"github.com/fivetwenty-io/batfish/pkg/batfish"
	"github.com/samber/lo"
)

type pageLinks struct {
	Links struct {
		Pages struct {
			Next string `json:"next"`
		} `json:"pages"`
	} `json:"links"`
}

// decodeKey unmarshals the value stored under key into out. It reports false
// when the key is absent or null.
func decodeKey(body []byte, key string, out interface{}) (bool, error) {
	var document map[string]json.RawMessage

	err := json.Unmarshal(body, &document)
	if err != nil {
		return false, fmt.Errorf("%w: %w", batfish.ErrMalformedResponse, err)
	}

	raw, ok := document[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return false, nil
	}

	err = json.Unmarshal(raw, out)
	if err != nil {
		return false, fmt.Errorf("%w: decoding %q: %w", batfish.ErrMalformedResponse, key, err)
	}

	return true, nil
}

// getOne fetches a single resource. A 404 or a missing key yields nil.
func getOne[T any](ctx context.Context, httpClient *http.Client, path, key string) (*T, error) {
	resp, err := httpClient.Get(ctx, path, nil)
	if err != nil {
		if batfish.IsNotFound(err) {
			return nil, nil
		}

		return nil, err
	}

	var item T

	found, err := decodeKey(resp.Body, key, &item)
	if err != nil || !found {
		return nil, err
	}

	return &item, nil
}

// getList fetches every page of a collection. A missing key on the first page
// yields nil.
func getList[T any](ctx context.Context, httpClient *http.Client, path, key string) ([]T, error) {
	var items []T

	for page := 1; page <= constants.MaxPages; page++ {
		query := url.Values{
			"page":     []string{strconv.Itoa(page)},
			"per_page": []string{strconv.Itoa(constants.DefaultPerPage)},
		}

		resp, err := httpClient.Get(ctx, path, query)
		if err != nil {
			return nil, err
		}

		var pageItems []T

		found, err := decodeKey(resp.Body, key, &pageItems)
		if err != nil {
			return nil, err
		}

		if !found {
			return items, nil
		}

		if items == nil {
			items = make([]T, 0, len(pageItems))
		}

		items = append(items, pageItems...)

		var links pageLinks

		_ = json.Unmarshal(resp.Body, &links)
		if links.Links.Pages.Next == "" {
			break
		}
	}

	return items, nil
}

// postAction sends an action request and decodes the returned action.
func postAction(ctx context.Context, httpClient *http.Client, path string, payload interface{}) (*batfish.Action, error) {
	resp, err := httpClient.Post(ctx, path, payload)
	if err != nil {
		return nil, err
	}

	var action batfish.Action

	found, err := decodeKey(resp.Body, constants.KeyAction, &action)
	if err != nil || !found {
		return nil, err
	}

	return &action, nil
}

// firstByPrefix returns the first item, in list order, whose key starts with
// prefix, ignoring case. An empty prefix matches the first item.
func firstByPrefix[T any](items []T, prefix string, key func(T) string) *T {
	lowered := strings.ToLower(prefix)

	item, ok := lo.Find(items, func(candidate T) bool {
		return strings.HasPrefix(strings.ToLower(key(candidate)), lowered)
	})
	if !ok {
		return nil
	}

	return &item
}

// firstByKey returns the first item whose key equals value, ignoring case.
func firstByKey[T any](items []T, value string, key func(T) string) *T {
	item, ok := lo.Find(items, func(candidate T) bool {
		return strings.EqualFold(key(candidate), value)
	})
	if !ok {
		return nil
	}

	return &item
}

func dropletID(ref batfish.DropletRef) (int, error) {
	if droplet, ok := ref.(*batfish.Droplet); ref == nil || (ok && droplet == nil) {
		return 0, &batfish.ValidationError{Field: "droplet", Err: batfish.ErrNilReference}
	}

	return ref.DropletID(), nil
}

func imageID(ref batfish.ImageRef) (int, error) {
	if image, ok := ref.(*batfish.Image); ref == nil || (ok && image == nil) {
		return 0, &batfish.ValidationError{Field: "image", Err: batfish.ErrNilReference}
	}

	return ref.ImageID(), nil
}
