package transport

import (
	"context"
	"fmt"
	"net/http"
	"sync"
)

// Reply is a scripted outcome of the Recorder.
type Reply struct {
	Status int
	Body   string
	Header http.Header
	Err    error
}

// Recorder is an in-memory Transport that replays scripted replies and logs calls.
// Replies are consumed in order; the last one repeats.
type Recorder struct {
	mu      sync.Mutex
	replies []Reply
	calls   []Request
	// Hook, if set, runs before a reply is chosen and may block on ctx.
	Hook func(ctx context.Context, req *Request) error
}

// NewRecorder creates a Recorder with the given replies.
func NewRecorder(replies ...Reply) *Recorder {
	return &Recorder{replies: replies}
}

// Enqueue appends replies.
func (r *Recorder) Enqueue(replies ...Reply) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replies = append(r.replies, replies...)
}

// Do records req and returns the next reply.
func (r *Recorder) Do(ctx context.Context, req *Request) (*Response, error) {
	r.mu.Lock()
	cp := *req
	cp.Header = req.Header.Clone()
	cp.Body = append([]byte(nil), req.Body...)
	r.calls = append(r.calls, cp)
	r.mu.Unlock()

	if r.Hook != nil {
		if err := r.Hook(ctx, req); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.replies) == 0 {
		return nil, fmt.Errorf("recorder: no reply scripted for %s %s", req.Method, req.URL)
	}
	reply := r.replies[0]
	if len(r.replies) > 1 {
		r.replies = r.replies[1:]
	}
	if reply.Err != nil {
		return nil, reply.Err
	}
	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}
	return &Response{StatusCode: status, Header: reply.Header, Body: []byte(reply.Body)}, nil
}

// Calls returns a copy of the recorded requests.
func (r *Recorder) Calls() []Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Request(nil), r.calls...)
}

// CallCount returns how many requests were made.
func (r *Recorder) CallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// Last returns the most recent request.
func (r *Recorder) Last() (Request, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return Request{}, false
	}
	return r.calls[len(r.calls)-1], true
}
