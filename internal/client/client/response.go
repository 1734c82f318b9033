package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/vsrclient/internal/common"
)

// Response is a successful (status < 400) reply.
//
// When the declared content type is JSON, Data holds the decoded value
// (numbers as json.Number) and Raw the original bytes; otherwise Text holds
// the body.
type Response struct {
	Status      int
	ContentType string
	Header      http.Header
	IsJSON      bool
	Data        any
	Raw         []byte
	Text        string
}

// Payload is what a renderer should display: the JSON value or the text.
func (r *Response) Payload() any {
	if r.IsJSON {
		return r.Data
	}
	return r.Text
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if !r.IsJSON {
		return fmt.Errorf("response is %q, not JSON", r.ContentType)
	}
	if len(bytes.TrimSpace(r.Raw)) == 0 {
		return errors.New("empty JSON body")
	}
	return json.Unmarshal(r.Raw, v)
}

// isJSON reports whether a Content-Type header declares structured data.
func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(contentType, common.JSONContentType)
	}
	return mt == common.JSONContentType || strings.HasSuffix(mt, "+json")
}

func decodeJSON(raw []byte) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// readResponse classifies resp into a *Response or an error.
//
//   - status >= 400, JSON: APIError{message ?? "API Error"}
//   - status >= 400, other: APIError{text body, or "HTTP Error <status>"}
//   - status < 400, JSON: decoded value
//   - status < 400, other: raw text
func readResponse(resp *http.Response) (*Response, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("read body: %w", err)}
	}

	contentType := resp.Header.Get(common.ContentTypeHeaderName)
	structured := isJSON(contentType)

	if resp.StatusCode >= 400 {
		return nil, errorFromBody(resp.StatusCode, structured, body)
	}

	out := &Response{
		Status:      resp.StatusCode,
		ContentType: contentType,
		Header:      resp.Header,
		IsJSON:      structured,
	}
	if !structured {
		out.Text = string(body)
		return out, nil
	}

	data, err := decodeJSON(body)
	if err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	out.Data = data
	out.Raw = body
	return out, nil
}

func errorFromBody(status int, structured bool, body []byte) *APIError {
	if structured {
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
			return &APIError{Status: status, Message: payload.Message}
		}
		return &APIError{Status: status, Message: defaultAPIErrorMessage}
	}

	if text := string(body); text != "" {
		return &APIError{Status: status, Message: text}
	}
	return &APIError{Status: status, Message: fmt.Sprintf(httpErrorFormat, status)}
}
