package ocpi

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/url"
	"reflect"
	"strconv"
	"time"
)

// ErrNullPayload is returned by DecodeJSON when the payload is a literal JSON null
// or decodes to a nil map, pointer, or slice.
var ErrNullPayload = errors.New("null payload")

// Patch is a partial object sent with PATCH requests. Only the members present
// are modified by the receiver.
type Patch map[string]interface{}

// IsEmpty reports whether the patch carries no members.
func (p Patch) IsEmpty() bool { return len(p) == 0 }

// EncodeJSON serializes v as a request body.
func EncodeJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// DecodeJSON parses raw as T. A null or empty payload is an error so that callers
// never observe a success carrying a nil entity.
func DecodeJSON[T any](raw []byte) (T, error) {
	var out T
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return out, ErrNullPayload
	}
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return out, err
	}
	switch rv := reflect.ValueOf(out); rv.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Slice:
		if rv.IsNil() {
			return out, ErrNullPayload
		}
	}
	return out, nil
}

// Page selects a window of a paginated list endpoint.
type Page struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Offset   int
	Limit    int
}

// Query renders the page as URL query parameters.
func (p Page) Query() url.Values {
	q := url.Values{}
	if p.DateFrom != nil {
		q.Set("date_from", p.DateFrom.UTC().Format(time.RFC3339))
	}
	if p.DateTo != nil {
		q.Set("date_to", p.DateTo.UTC().Format(time.RFC3339))
	}
	if p.Offset > 0 {
		q.Set("offset", strconv.Itoa(p.Offset))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

// DateTime is an OCPI timestamp. Partners on 2.1.1 often omit the zone
// designator; such values are read as UTC.
type DateTime struct {
	time.Time
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *DateTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	var lastErr error
	for _, layout := range dateTimeLayouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			d.Time = t
			return nil
		}
		lastErr = err
	}
	return lastErr
}

// MarshalJSON implements json.Marshaler.
func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.UTC().Format(time.RFC3339))
}
