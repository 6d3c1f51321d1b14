package metrics

import (
	"context"

	"github.com/getmockd/ocpi/pkg/envelope"
	"github.com/getmockd/ocpi/pkg/observer"
)

// DurationName is the exported name of the operation latency histogram.
const DurationName = "ocpi_client_operation_duration_seconds"

// DurationObserver records the elapsed time of every finished operation.
type DurationObserver struct {
	hist *Histogram
}

// NewDurationObserver registers the latency histogram in r.
func NewDurationObserver(r *Registry) *DurationObserver {
	return &DurationObserver{
		hist: r.NewHistogram(DurationName, "OCPI client operation duration in seconds.", DefaultBuckets, "operation", "outcome"),
	}
}

// Attach registers d as an after-observer of b under name.
func (d *DurationObserver) Attach(b *observer.Bus, name string) error {
	return b.OnAfter(name, "**", d.observe)
}

func (d *DurationObserver) observe(_ context.Context, ev observer.AfterEvent) error {
	outcome := envelope.Kind(0).String()
	if ev.Result != nil {
		outcome = ev.Result.Kind().String()
	}
	v, err := d.hist.WithLabels(ev.Operation, outcome)
	if err != nil {
		return err
	}
	v.Observe(ev.Elapsed.Seconds())
	return nil
}
