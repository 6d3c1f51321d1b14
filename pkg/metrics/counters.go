package metrics

import (
	"encoding/json"
	"sort"
	"sync"
	"sync/atomic"
)

// Exported metric names.
const (
	OperationsTotalName = "ocpi_client_operations_total"
	InFlightName        = "ocpi_client_operations_in_flight"
)

// Label values of the stage and outcome labels.
const (
	StageRequest  = "request"
	StageResponse = "response"
	OutcomeOK     = "ok"
	OutcomeError  = "error"
)

// Tally is a point-in-time copy of one operation's counters.
type Tally struct {
	RequestsOK     uint64 `json:"requestsOk"`
	RequestsError  uint64 `json:"requestsError"`
	ResponsesOK    uint64 `json:"responsesOk"`
	ResponsesError uint64 `json:"responsesError"`
}

// OperationCounter holds the tallies of one named operation. All methods are safe
// for concurrent use and never fail.
type OperationCounter struct {
	name string

	requestsOK     atomic.Uint64
	requestsError  atomic.Uint64
	responsesOK    atomic.Uint64
	responsesError atomic.Uint64

	// exported mirrors, nil without a registry
	exported [4]*CounterVec
	inFlight *GaugeVec
}

// Name returns the operation name.
func (o *OperationCounter) Name() string { return o.name }

// RequestOK counts an attempt.
func (o *OperationCounter) RequestOK() { o.bump(&o.requestsOK, 0) }

// RequestError counts an attempt that could not be sent.
func (o *OperationCounter) RequestError() { o.bump(&o.requestsError, 1) }

// ResponseOK counts a response that produced a payload.
func (o *OperationCounter) ResponseOK() { o.bump(&o.responsesOK, 2) }

// ResponseError counts a failed exchange or an error response.
func (o *OperationCounter) ResponseError() { o.bump(&o.responsesError, 3) }

func (o *OperationCounter) bump(v *atomic.Uint64, idx int) {
	v.Add(1)
	if vec := o.exported[idx]; vec != nil {
		_ = vec.Inc()
	}
}

// Begin marks an invocation as in flight; the returned func ends it.
func (o *OperationCounter) Begin() (end func()) {
	if o.inFlight == nil {
		return func() {}
	}
	o.inFlight.Inc()
	var once sync.Once
	return func() { once.Do(o.inFlight.Dec) }
}

// Snapshot returns the current tallies.
func (o *OperationCounter) Snapshot() Tally {
	return Tally{
		RequestsOK:     o.requestsOK.Load(),
		RequestsError:  o.requestsError.Load(),
		ResponsesOK:    o.responsesOK.Load(),
		ResponsesError: o.responsesError.Load(),
	}
}

// OperationCounters is the counter bank of one client.
type OperationCounters struct {
	mu   sync.RWMutex
	ops  map[string]*OperationCounter
	tot  *Counter
	infl *Gauge
}

// NewOperationCounters creates a counter bank. When r is non-nil the counters are
// also exported through it.
func NewOperationCounters(r *Registry) *OperationCounters {
	c := &OperationCounters{ops: make(map[string]*OperationCounter)}
	if r != nil {
		c.tot = r.NewCounter(OperationsTotalName, "OCPI client operations by stage and outcome.", "operation", "stage", "outcome")
		c.infl = r.NewGauge(InFlightName, "OCPI client operations currently executing.", "operation")
	}
	return c
}

// For returns the counters of operation name, creating them on first use.
func (c *OperationCounters) For(name string) *OperationCounter {
	c.mu.RLock()
	o, ok := c.ops[name]
	c.mu.RUnlock()
	if ok {
		return o
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if o, ok = c.ops[name]; ok {
		return o
	}
	o = &OperationCounter{name: name}
	if c.tot != nil {
		// label counts are fixed above, WithLabels cannot fail here
		o.exported[0], _ = c.tot.WithLabels(name, StageRequest, OutcomeOK)
		o.exported[1], _ = c.tot.WithLabels(name, StageRequest, OutcomeError)
		o.exported[2], _ = c.tot.WithLabels(name, StageResponse, OutcomeOK)
		o.exported[3], _ = c.tot.WithLabels(name, StageResponse, OutcomeError)
		o.inFlight, _ = c.infl.WithLabels(name)
	}
	c.ops[name] = o
	return o
}

// Snapshot returns the tallies of operation name; unknown names yield zeros.
func (c *OperationCounters) Snapshot(name string) Tally {
	c.mu.RLock()
	o, ok := c.ops[name]
	c.mu.RUnlock()
	if !ok {
		return Tally{}
	}
	return o.Snapshot()
}

// Report is the structured export of all counters.
type Report struct {
	Operations []OperationReport `json:"operations"`
}

// OperationReport is one entry of a Report.
type OperationReport struct {
	Operation string `json:"operation"`
	Tally
}

// Report returns all counters sorted by operation name.
func (c *OperationCounters) Report() Report {
	c.mu.RLock()
	ops := make([]*OperationCounter, 0, len(c.ops))
	for _, o := range c.ops {
		ops = append(ops, o)
	}
	c.mu.RUnlock()

	sort.Slice(ops, func(i, j int) bool { return ops[i].name < ops[j].name })
	r := Report{Operations: make([]OperationReport, 0, len(ops))}
	for _, o := range ops {
		r.Operations = append(r.Operations, OperationReport{Operation: o.name, Tally: o.Snapshot()})
	}
	return r
}

// MarshalJSON renders the report of c.
func (c *OperationCounters) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Report())
}
