package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/getmockd/ocpi/pkg/cli/internal/output"
	"github.com/getmockd/ocpi/pkg/envelope"
	"github.com/getmockd/ocpi/pkg/ocpi"
	"github.com/ohler55/ojg/jp"
)

// printResult outputs a single command result.
//
// Contract: when --json or --query is active, ONLY the JSON encoding of data (or
// of the query matches) is written to stdout. Human-readable prose must go to
// stderr or be omitted entirely. textFn is called only in text mode.
func printResult(data any, textFn func()) error {
	if query != "" {
		return printQuery(data, query)
	}
	if jsonOutput {
		return output.JSON(data)
	}
	textFn()
	return nil
}

// printResponse prints the payload of a successful response, or returns the
// response error.
func printResponse[T any](resp envelope.Response[T], textFn func(T)) error {
	payload, err := resp.Unpack()
	if err != nil {
		return err
	}
	return printResult(payload, func() { textFn(payload) })
}

// printQuery evaluates a JSONPath expression against the JSON form of data and
// prints one match per line. String matches are printed bare so they can be piped.
func printQuery(data any, expr string) error {
	x, err := jp.ParseString(expr)
	if err != nil {
		return fmt.Errorf("invalid --query %q: %w", expr, err)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}

	for _, v := range x.Get(doc) {
		if s, ok := v.(string); ok {
			_, _ = fmt.Fprintln(output.Stdout, s)
			continue
		}
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(output.Stdout, string(b))
	}
	return nil
}

// printField prints an aligned "name: value" line, skipping empty values.
func printField(name, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Printf("  %-14s %s\n", name+":", value)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatPrice(p *ocpi.Price, currency string) string {
	if p == nil {
		return ""
	}
	if p.InclVAT != nil {
		return fmt.Sprintf("%.2f %s (excl. VAT %.2f)", *p.InclVAT, currency, p.ExclVAT)
	}
	return fmt.Sprintf("%.2f %s excl. VAT", p.ExclVAT, currency)
}
