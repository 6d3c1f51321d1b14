package ocpi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalidEnvelope is returned when a body looks like an OCPI envelope but does
// not satisfy its schema.
var ErrInvalidEnvelope = errors.New("invalid OCPI envelope")

// Envelope is the wire wrapper of every OCPI response.
type Envelope struct {
	Data          json.RawMessage `json:"data,omitempty"`
	StatusCode    StatusCode      `json:"status_code"`
	StatusMessage string          `json:"status_message,omitempty"`
	Timestamp     DateTime        `json:"timestamp"`
}

// envelopeSchema is the JSON schema shared by all OCPI versions. Older partners
// omit the timestamp, so only status_code is required.
const envelopeSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["status_code"],
  "properties": {
    "status_code": {"type": "integer", "minimum": 1000, "maximum": 4999},
    "status_message": {"type": "string"},
    "timestamp": {"type": "string"}
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func envelopeValidator() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("envelope.json", strings.NewReader(envelopeSchema)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile("envelope.json")
	})
	return compiledSchema, schemaErr
}

// LooksLikeEnvelope reports whether body is a JSON object with a status_code
// member. Partners that answer with a bare entity return false.
func LooksLikeEnvelope(body []byte) bool {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return false
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return false
	}
	_, ok := probe["status_code"]
	return ok
}

// ParseEnvelope validates body against the envelope schema and decodes it.
func ParseEnvelope(body []byte) (*Envelope, error) {
	schema, err := envelopeValidator()
	if err != nil {
		return nil, fmt.Errorf("compile envelope schema: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	if err := schema.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidEnvelope, verr.Error())
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	return &env, nil
}

// NewEnvelope wraps data in a success envelope. It is used by test partners and
// by tooling that replays captured traffic.
func NewEnvelope(data interface{}, code StatusCode, message string) ([]byte, error) {
	env := Envelope{
		StatusCode:    code,
		StatusMessage: message,
		Timestamp:     DateTime{time.Now().UTC().Truncate(time.Second)},
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		env.Data = raw
	}
	return json.Marshal(env)
}
