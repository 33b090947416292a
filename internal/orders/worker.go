package orders

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/printcal/internal/calendar"
	"github.com/zjrosen/printcal/internal/log"
	"github.com/zjrosen/printcal/internal/tracing"
)

// DefaultPollInterval is how often the UI drains the result queue.
const DefaultPollInterval = 100 * time.Millisecond

// Status texts.
const (
	MsgMissingCredentials = "Please enter both a username and password."
	MsgLoggingIn          = "Attempting login..."
	MsgRefreshing         = "Refreshing orders..."
	MsgLoginOK            = "Login successful."
	MsgLoginNoOrders      = "Login successful, but no orders were found."
	MsgRefreshOK          = "Orders refreshed."
)

// Op names the operation a result belongs to.
type Op string

const (
	OpLogin   Op = "login"
	OpRefresh Op = "refresh"
)

// Result is what a background operation hands back to the UI loop.
type Result struct {
	Op      Op
	Orders  []Record
	Err     error
	Message string
	At      time.Time
}

// OK reports whether the operation succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Queue is the only hand-off between background goroutines and the UI
// loop. Results come out in the order they were pushed.
type Queue struct {
	mu    sync.Mutex
	items []Result
}

// Push appends r.
func (q *Queue) Push(r Result) {
	q.mu.Lock()
	q.items = append(q.items, r)
	q.mu.Unlock()
}

// Drain removes and returns everything queued.
func (q *Queue) Drain() []Result {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of queued results.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// PollMsg carries drained results into Update.
type PollMsg struct {
	Results []Result
}

// PollCmd drains q after interval. The UI re-arms it on every PollMsg.
func PollCmd(q *Queue, interval time.Duration) tea.Cmd {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return PollMsg{Results: q.Drain()}
	})
}

// Worker runs login and refresh off the UI loop, one at a time.
type Worker struct {
	service *Service
	queue   *Queue
	clock   calendar.Clock

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	busy   atomic.Bool
}

// NewWorker creates a worker posting results to queue.
func NewWorker(ctx context.Context, service *Service, queue *Queue, clock calendar.Clock) *Worker {
	if clock == nil {
		clock = calendar.RealClock{}
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Worker{service: service, queue: queue, clock: clock, ctx: ctx, cancel: cancel}
}

// Busy reports whether an operation is in flight.
func (w *Worker) Busy() bool { return w.busy.Load() }

// Login starts a login. It returns false when another operation is running.
func (w *Worker) Login(username, password string) bool {
	return w.start(OpLogin, func(ctx context.Context) ([]Record, error) {
		return w.service.Login(ctx, username, password)
	})
}

// Refresh starts a refresh. It returns false when another operation is
// running.
func (w *Worker) Refresh() bool {
	return w.start(OpRefresh, w.service.Refresh)
}

// Stop cancels the in-flight operation and waits for it to finish.
func (w *Worker) Stop() {
	w.cancel()
	w.wg.Wait()
}

// Wait blocks until the in-flight operation has posted its result.
func (w *Worker) Wait() { w.wg.Wait() }

func (w *Worker) start(op Op, fn func(context.Context) ([]Record, error)) bool {
	if !w.busy.CompareAndSwap(false, true) {
		log.Debug(log.CatOrders, "operation already running", "op", op)
		return false
	}
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.busy.Store(false)

		ctx, span := w.service.tracer.Start(w.ctx, tracing.SpanPrefixWorker+string(op),
			trace.WithAttributes(attribute.String(tracing.AttrOp, string(op))))
		records, err := fn(ctx)
		span.SetAttributes(attribute.Int(tracing.AttrOrderCount, len(records)))
		tracing.End(span, err)

		w.queue.Push(newResult(op, records, err, w.clock.Now()))
	}()
	return true
}

func newResult(op Op, records []Record, err error, at time.Time) Result {
	r := Result{Op: op, Orders: records, Err: err, At: at}
	switch {
	case err != nil:
		r.Message = UserMessage(err)
		log.Warn(log.CatOrders, "operation failed", "op", op, "error", err)
	case op == OpLogin && len(records) == 0:
		r.Message = MsgLoginNoOrders
	case op == OpLogin:
		r.Message = MsgLoginOK
	default:
		r.Message = MsgRefreshOK
	}
	return r
}
