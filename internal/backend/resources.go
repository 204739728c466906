// Backoffice - Admin Console for the Games API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/backoffice

package backend

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/goccy/go-json"
)

// Backend resource paths.
const (
	messagesPath    = "/api/messages"
	candidatesPath  = "/api/admin/recruitment/candidates"
	gamesPathPrefix = "/api/games/"
	GamesInProgress = "in-progress"
	GamesHistorical = "historical"
)

// Record is an opaque backend entity. The console never interprets fields
// beyond id and the game fields used by the map view.
type Record map[string]any

// ID returns the record's id as a string, or "" when absent.
func (r Record) ID() string {
	return FieldString(r, "id")
}

// FieldString renders a scalar field for display. Numbers keep their JSON
// spelling; missing and null fields render as "".
func FieldString(r Record, key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// GamesPage is one page of a games listing.
type GamesPage struct {
	Games   []Record `json:"games"`
	Total   int      `json:"total"`
	HasMore bool     `json:"has_more"`
}

// decodeInto decodes raw keeping numbers as json.Number so ids and P&L
// values are shown exactly as the backend sent them.
func decodeInto(raw json.RawMessage, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

// DecodeRecord decodes a single JSON object.
func DecodeRecord(raw json.RawMessage) (Record, error) {
	var rec Record
	if err := decodeInto(raw, &rec); err != nil {
		return nil, err
	}
	if rec == nil {
		rec = Record{}
	}
	return rec, nil
}

// decodeFound decodes a single-record response. A null or empty object
// means the record does not exist.
func decodeFound(raw json.RawMessage) (Record, error) {
	rec, err := DecodeRecord(raw)
	if err != nil {
		return nil, err
	}
	if len(rec) == 0 {
		return nil, ErrNotFound
	}
	return rec, nil
}

// DecodeList decodes a JSON array of objects. A non-array body (the backend
// answering {} for an empty collection) is an empty list.
func DecodeList(raw json.RawMessage) ([]Record, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return []Record{}, nil
	}
	var list []Record
	if err := decodeInto(trimmed, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []Record{}
	}
	return list, nil
}

func messagePath(id string) string {
	return messagesPath + "/" + url.PathEscape(id)
}

func candidatePath(id string) string {
	return candidatesPath + "/" + url.PathEscape(id)
}

// ListMessages fetches all messages.
func (c *Client) ListMessages(ctx context.Context) ([]Record, error) {
	raw, err := c.Request(ctx, http.MethodGet, messagesPath, nil, nil)
	if err != nil {
		return nil, err
	}
	return DecodeList(raw)
}

// GetMessage fetches one message.
func (c *Client) GetMessage(ctx context.Context, id string) (Record, error) {
	raw, err := c.Request(ctx, http.MethodGet, messagePath(id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeFound(raw)
}

// CreateMessage forwards a new message and returns the backend's answer.
func (c *Client) CreateMessage(ctx context.Context, body json.RawMessage) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodPost, messagesPath, body, nil)
}

// UpdateMessage replaces a message.
func (c *Client) UpdateMessage(ctx context.Context, id string, body json.RawMessage) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodPut, messagePath(id), body, nil)
}

// DeleteMessage removes a message.
func (c *Client) DeleteMessage(ctx context.Context, id string) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodDelete, messagePath(id), nil, nil)
}

// ListCandidates fetches all recruitment candidates.
func (c *Client) ListCandidates(ctx context.Context) ([]Record, error) {
	raw, err := c.Request(ctx, http.MethodGet, candidatesPath, nil, nil)
	if err != nil {
		return nil, err
	}
	return DecodeList(raw)
}

// GetCandidate fetches one candidate by id.
func (c *Client) GetCandidate(ctx context.Context, id string) (Record, error) {
	raw, err := c.Request(ctx, http.MethodGet, candidatePath(id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeFound(raw)
}

// CreateCandidate forwards a new candidate.
func (c *Client) CreateCandidate(ctx context.Context, body json.RawMessage) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodPost, candidatesPath, body, nil)
}

// UpdateCandidate replaces a candidate.
func (c *Client) UpdateCandidate(ctx context.Context, id string, body json.RawMessage) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodPut, candidatePath(id), body, nil)
}

// DeleteCandidate removes a candidate.
func (c *Client) DeleteCandidate(ctx context.Context, id string) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodDelete, candidatePath(id), nil, nil)
}

// ListGames fetches one page of the in-progress or historical listing.
func (c *Client) ListGames(ctx context.Context, kind string, limit, offset int) (*GamesPage, error) {
	switch kind {
	case GamesInProgress, GamesHistorical:
	default:
		return nil, fmt.Errorf("unknown games listing %q", kind)
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	raw, err := c.Request(ctx, http.MethodGet, gamesPathPrefix+kind, nil, query)
	if err != nil {
		return nil, err
	}

	page := &GamesPage{}
	if err := decodeInto(raw, page); err != nil {
		return nil, err
	}
	if page.Games == nil {
		page.Games = []Record{}
	}
	return page, nil
}
