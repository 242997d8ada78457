package handler

import (
	"bytes"
	"encoding/json"
)

// assistRequest is the union of every route's fields. Absent fields stay
// empty; nothing is validated.
type assistRequest struct {
	Code    looseString `json:"code"`
	Command looseString `json:"command"`
	Topic   looseString `json:"topic"`
}

// looseString accepts any JSON value. Strings decode as-is, null as empty
// and anything else as its raw JSON text, so a numeric field still reaches
// the prompt instead of rejecting the request.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
	case len(data) > 0 && data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
	default:
		*s = looseString(data)
	}
	return nil
}

type explainResponse struct {
	Explanation string `json:"explanation"`
}

type refactorResponse struct {
	RefactoredCode string `json:"refactoredCode"`
}

type generateResponse struct {
	GeneratedCode string `json:"generatedCode"`
}

type themeResponse struct {
	Theme json.RawMessage `json:"theme"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status string `json:"status"`
}
