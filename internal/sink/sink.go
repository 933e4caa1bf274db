// internal/sink/sink.go
package sink

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net"
	"net/url"
	"strings"

	"application-intake/internal/common/errors"
	"application-intake/internal/intake"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

// Table is a destination table and the header row it must carry.
type Table struct {
	Name   string
	Header []interface{}
}

// TableSink is an append-only store of named tables.
type TableSink interface {
	// Name identifies the driver in logs and errors.
	Name() string
	// EnsureTablesExist creates missing tables and writes the header row
	// into any table whose first cell is empty. It is idempotent.
	EnsureTablesExist(ctx context.Context, tables []Table) error
	// AppendRow appends one row to table.
	AppendRow(ctx context.Context, table string, row []interface{}) error
}

// Prober is implemented by sinks that can run a connection test.
type Prober interface {
	Probe(ctx context.Context) (*ProbeResult, error)
}

// ProbeResult describes the reachable store.
type ProbeResult struct {
	Title  string   `json:"title"`
	Tables []string `json:"tables"`
}

// TablesFor returns the distinct tables behind a destination list, each
// with the header of its layout.
func TablesFor(destinations []string) []Table {
	seen := make(map[string]bool, len(destinations))
	tables := make([]Table, 0, len(destinations))
	for _, name := range destinations {
		if seen[name] {
			continue
		}
		seen[name] = true
		tables = append(tables, Table{Name: name, Header: intake.LayoutFor(name).Header()})
	}
	return tables
}

// APIError is the transport-level detail of a sink failure.
type APIError struct {
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
	Status  string `json:"status,omitempty"`
}

// Describe extracts the API detail from err's chain.
func Describe(err error) APIError {
	info := APIError{Message: err.Error()}

	var gerr *googleapi.Error
	if stderrors.As(err, &gerr) {
		info.Code = gerr.Code
		if gerr.Message != "" {
			info.Message = gerr.Message
		}
		info.Status = apiStatus(gerr)
		return info
	}

	var rerr *oauth2.RetrieveError
	if stderrors.As(err, &rerr) {
		info.Status = rerr.ErrorCode
		if rerr.Response != nil {
			info.Code = rerr.Response.StatusCode
		}
	}
	return info
}

// apiStatus reads the canonical status, e.g. PERMISSION_DENIED, from the
// error body.
func apiStatus(gerr *googleapi.Error) string {
	var body struct {
		Error struct {
			Status string `json:"status"`
		} `json:"error"`
	}
	if gerr.Body != "" && json.Unmarshal([]byte(gerr.Body), &body) == nil && body.Error.Status != "" {
		return body.Error.Status
	}
	if len(gerr.Errors) > 0 {
		return gerr.Errors[0].Reason
	}
	return ""
}

// IsAuthFailure reports whether err came from a rejected credential.
func IsAuthFailure(err error) bool {
	var rerr *oauth2.RetrieveError
	if stderrors.As(err, &rerr) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "invalid_grant") || strings.Contains(msg, "private key")
}

// classify maps a driver error to the sink error taxonomy. fallback builds
// the error used when nothing more specific applies.
func classify(driver string, err error, fallback func(error) *errors.StandardError) *errors.StandardError {
	var stdErr *errors.StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}

	var out *errors.StandardError
	var gerr *googleapi.Error
	switch {
	case stderrors.As(err, &gerr) && gerr.Code == 403:
		out = errors.NewSinkPermissionDeniedError(driver, err)
	case stderrors.As(err, &gerr) && gerr.Code == 404:
		out = errors.NewSinkNotFoundError(driver, err)
	case stderrors.As(err, &gerr) && gerr.Code == 401:
		out = errors.NewSinkAuthFailedError(driver, err)
	case IsAuthFailure(err):
		out = errors.NewSinkAuthFailedError(driver, err)
	case isUnreachable(err):
		out = errors.NewSinkUnreachableError(driver, err)
	default:
		out = fallback(err)
	}

	info := Describe(err)
	if info.Code != 0 {
		out.WithMetadata("httpStatus", info.Code)
	}
	if info.Status != "" {
		out.WithMetadata("status", info.Status)
	}
	return out
}

func isUnreachable(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	return stderrors.As(err, &urlErr)
}
