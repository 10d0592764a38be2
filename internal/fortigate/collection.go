package fortigate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Collection is the CRUD contract every resource kind exposes. The mkey
// is the device's primary key for the kind: numeric id for policies,
// name for interfaces/addresses/services, sequence number for static
// routes — callers format it as a string.
//
// List and Get return decoded values (the raw body mapping, or the bare
// results slice when the device wraps one). Create, Set and Delete
// return the status-coded *Response so callers can classify FortiOS
// error payloads that arrive with 2xx and 5xx statuses alike. All
// methods type their result as any because a fake collection in tests
// may legitimately return a plain mapping where the HTTP one returns a
// *Response; the outcome normalizer accepts both.
type Collection interface {
	List(ctx context.Context) (any, error)
	Get(ctx context.Context, mkey string) (any, error)
	Create(ctx context.Context, data map[string]any) (any, error)
	Set(ctx context.Context, mkey string, data map[string]any) (any, error)
	Delete(ctx context.Context, mkey string) (any, error)
}

// restTransport performs the HTTP requests against the device. Auth is
// either a bearer API token or basic auth for the username/password
// variant; the two are mutually exclusive at the config layer.
type restTransport struct {
	base     string
	vdom     string
	token    string
	username string
	password string
	http     *http.Client
}

func (t *restTransport) do(ctx context.Context, method, path, mkey string, data map[string]any) (*Response, error) {
	u := t.base + "/" + path
	if mkey != "" {
		u += "/" + url.PathEscape(mkey)
	}
	if t.vdom != "" {
		u += "?vdom=" + url.QueryEscape(t.vdom)
	}

	var body io.Reader
	if data != nil {
		payload, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	} else {
		req.SetBasicAuth(t.username, t.password)
	}

	resp, err := t.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &Response{status: resp.StatusCode, body: raw}, nil
}

// collection is the HTTP-backed Collection implementation for one CMDB
// path.
type collection struct {
	rest *restTransport
	path string
}

// List fetches the whole collection. A 2xx body decodes to the raw
// mapping (typically carrying a "results" slice); non-2xx reads become
// errors carrying the device's message text so callers can apply
// not-found heuristics.
func (e *collection) List(ctx context.Context) (any, error) {
	resp, err := e.rest.do(ctx, http.MethodGet, e.path, "", nil)
	if err != nil {
		return nil, err
	}
	return e.decodeRead(resp)
}

// Get fetches a single object by primary key.
func (e *collection) Get(ctx context.Context, mkey string) (any, error) {
	resp, err := e.rest.do(ctx, http.MethodGet, e.path, mkey, nil)
	if err != nil {
		return nil, err
	}
	return e.decodeRead(resp)
}

// Create posts a new object. The status-coded response is returned as-is
// for normalization.
func (e *collection) Create(ctx context.Context, data map[string]any) (any, error) {
	return e.rest.do(ctx, http.MethodPost, e.path, "", data)
}

// Set replaces fields of an existing object by primary key (HTTP PUT).
// Move directives for policy reordering travel through Set as well.
func (e *collection) Set(ctx context.Context, mkey string, data map[string]any) (any, error) {
	return e.rest.do(ctx, http.MethodPut, e.path, mkey, data)
}

// Delete removes an object by primary key.
func (e *collection) Delete(ctx context.Context, mkey string) (any, error) {
	return e.rest.do(ctx, http.MethodDelete, e.path, mkey, nil)
}

func (e *collection) decodeRead(resp *Response) (any, error) {
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		if body, ok := resp.JSON(); ok {
			if msg, ok := body["message"].(string); ok && msg != "" {
				return nil, fmt.Errorf("GET %s: HTTP %d: %s", e.path, resp.StatusCode(), msg)
			}
		}
		if resp.StatusCode() == http.StatusNotFound {
			return nil, fmt.Errorf("GET %s: HTTP 404: entry not found", e.path)
		}
		return nil, fmt.Errorf("GET %s: HTTP %d: %s", e.path, resp.StatusCode(), resp.Text())
	}

	body, ok := resp.JSON()
	if !ok {
		return nil, fmt.Errorf("GET %s: response is not JSON", e.path)
	}
	return body, nil
}
