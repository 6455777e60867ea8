package practicum

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Freeman-83/homework-bot/internal/domain/homework"
)

// StatusResponse is the parsed body of one homework-statuses poll. It lives
// for a single poll cycle. CurrentDate is nil when the API omitted it.
type StatusResponse struct {
	Homeworks   []homework.Homework
	CurrentDate *int64
}

// ErrEmptyResponse indicates an empty API response body.
var ErrEmptyResponse = errors.New("empty API response body")

// SchemaError indicates a response body that does not match the expected
// shape of the homework-statuses API.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("unexpected API response schema: %s", e.Reason)
}

// ParseStatusResponse validates and decodes a homework-statuses response body.
// The document must be a JSON object carrying a "homeworks" array; keys other
// than "homeworks" and "current_date" are tolerated.
func ParseStatusResponse(body []byte) (*StatusResponse, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyResponse
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil || doc == nil {
		return nil, &SchemaError{Reason: "document is not a JSON object"}
	}

	rawHomeworks, ok := doc["homeworks"]
	if !ok {
		return nil, &SchemaError{Reason: `missing "homeworks" key`}
	}

	resp := &StatusResponse{}
	if err := json.Unmarshal(rawHomeworks, &resp.Homeworks); err != nil {
		return nil, &SchemaError{Reason: `"homeworks" is not a list of homework records`}
	}

	if rawDate, ok := doc["current_date"]; ok {
		var ts int64
		if err := json.Unmarshal(rawDate, &ts); err != nil {
			return nil, &SchemaError{Reason: `"current_date" is not an integer timestamp`}
		}
		resp.CurrentDate = &ts
	}

	return resp, nil
}

// First returns the most recent homework record, or nil when nothing changed
// this cycle. The API returns records newest-relevant-first; only the first
// one is ever inspected.
func (r *StatusResponse) First() *homework.Homework {
	if len(r.Homeworks) == 0 {
		return nil
	}
	return &r.Homeworks[0]
}
