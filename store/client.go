// Package store is the generic CRUD client for the platform's REST data
// store (json-server style named collections). Every call is one network
// round trip; there is no caching and no automatic retry, callers decide
// whether to re-issue a failed request.
package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Collections exposed by the data store.
const (
	Courses     = "courses"
	Lessons     = "lessons"
	Enrollments = "enrolledCourses"
	Progress    = "progress"
	Reviews     = "reviews"
)

var (
	// ErrNotFound marks a lookup for an id the store does not hold. For
	// existence pre-checks it is a normal outcome, not a failure.
	ErrNotFound = errors.New("record not found")
	// ErrConflict marks a progress write rejected because the stored
	// version advanced since the record was read.
	ErrConflict = errors.New("record version conflict")
)

// RequestError wraps any failed store call with the operation that was
// attempted. It unwraps to ErrNotFound / ErrConflict where those apply.
type RequestError struct {
	Op         string
	Collection string
	Status     int
	Err        error
}

func (e *RequestError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("store: %s %s: status %d: %v", e.Op, e.Collection, e.Status, e.Err)
	}
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

type Client struct {
	rest *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	rest := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{rest: rest}
}

// List fetches every record of a collection matching the equality filter
// (nil for all) into out, which must be a pointer to a slice.
func (c *Client) List(ctx context.Context, collection string, filter map[string]string, out interface{}) error {
	req := c.rest.R().SetContext(ctx).SetResult(out)
	if len(filter) > 0 {
		req.SetQueryParams(filter)
	}
	resp, err := req.Get("/" + collection)
	return wrap("list", collection, resp, err)
}

func (c *Client) Get(ctx context.Context, collection string, id int, out interface{}) error {
	resp, err := c.rest.R().SetContext(ctx).SetResult(out).
		Get(fmt.Sprintf("/%s/%d", collection, id))
	return wrap("get", collection, resp, err)
}

// Create posts a new record; the store assigns the id. The server's copy is
// decoded into out when out is non-nil.
func (c *Client) Create(ctx context.Context, collection string, payload, out interface{}) error {
	req := c.rest.R().SetContext(ctx).SetBody(payload)
	if out != nil {
		req.SetResult(out)
	}
	resp, err := req.Post("/" + collection)
	return wrap("create", collection, resp, err)
}

// Update replaces a record in full (PUT).
func (c *Client) Update(ctx context.Context, collection string, id int, payload, out interface{}) error {
	req := c.rest.R().SetContext(ctx).SetBody(payload)
	if out != nil {
		req.SetResult(out)
	}
	resp, err := req.Put(fmt.Sprintf("/%s/%d", collection, id))
	return wrap("update", collection, resp, err)
}

// Patch merges fields into a record (PATCH).
func (c *Client) Patch(ctx context.Context, collection string, id int, payload, out interface{}) error {
	req := c.rest.R().SetContext(ctx).SetBody(payload)
	if out != nil {
		req.SetResult(out)
	}
	resp, err := req.Patch(fmt.Sprintf("/%s/%d", collection, id))
	return wrap("patch", collection, resp, err)
}

func (c *Client) Delete(ctx context.Context, collection string, id int) error {
	resp, err := c.rest.R().SetContext(ctx).
		Delete(fmt.Sprintf("/%s/%d", collection, id))
	return wrap("delete", collection, resp, err)
}

func wrap(op, collection string, resp *resty.Response, err error) error {
	if err != nil {
		return &RequestError{Op: op, Collection: collection, Err: err}
	}
	switch {
	case resp.IsSuccess():
		return nil
	case resp.StatusCode() == http.StatusNotFound:
		return &RequestError{Op: op, Collection: collection, Status: resp.StatusCode(), Err: ErrNotFound}
	case resp.StatusCode() == http.StatusConflict:
		return &RequestError{Op: op, Collection: collection, Status: resp.StatusCode(), Err: ErrConflict}
	default:
		return &RequestError{Op: op, Collection: collection, Status: resp.StatusCode(),
			Err: fmt.Errorf("unexpected status %s", resp.Status())}
	}
}
