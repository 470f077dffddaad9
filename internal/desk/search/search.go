// Package search is the client list and search view.
//
// The view moves Idle -> Loading -> Success | Failed. Every submit takes a
// new sequence number and only the newest request may write results, so a
// slow early response can never overwrite a later one. Keystrokes go
// through Type, which waits for a quiet period before submitting.
package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/healthdesk/pkg/healthsdk"
	"github.com/aussiebroadwan/healthdesk/pkg/slogx"
)

// DefaultDebounce is how long Type waits after the last keystroke.
const DefaultDebounce = 500 * time.Millisecond

const (
	msgLogIn       = "Please log in to search clients."
	msgEnterTerm   = "Please enter a name or email to search."
	msgFetchFailed = "Failed to fetch clients. Please try again."
)

type State int

const (
	Idle State = iota
	Loading
	Success
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Searcher is the slice of the registry client the view needs.
type Searcher interface {
	HasToken(ctx context.Context) bool
	SearchClients(ctx context.Context, q string) ([]healthsdk.Client, error)
}

// Snapshot is the view state at one moment.
type Snapshot struct {
	State   State
	Query   string
	Results []healthsdk.Client
	Err     string
	Seq     uint64
}

// Row is one rendered result line. ID is what the detail view is opened with.
type Row struct {
	ID    string
	Name  string
	Email string
	Phone string
}

// Rows projects the results one row per client.
func (s Snapshot) Rows() []Row {
	rows := make([]Row, 0, len(s.Results))
	for _, c := range s.Results {
		rows = append(rows, Row{ID: c.ID, Name: c.FullName(), Email: c.Email, Phone: c.Phone})
	}
	return rows
}

type Option func(*View)

// WithDebounce sets the quiet period for Type.
func WithDebounce(d time.Duration) Option {
	return func(v *View) { v.debounce = d }
}

// AllowEmptyQuery lets a blank query through as "list everyone" instead of
// failing with a prompt to enter a term.
func AllowEmptyQuery() Option {
	return func(v *View) { v.allowEmpty = true }
}

// OnChange registers fn to receive every state change. fn runs on the
// goroutine that caused the change, outside the view's lock.
func OnChange(fn func(Snapshot)) Option {
	return func(v *View) { v.onChange = fn }
}

// View holds the search state for one screen.
type View struct {
	api        Searcher
	debounce   time.Duration
	allowEmpty bool
	onChange   func(Snapshot)

	mu       sync.Mutex
	seq      uint64
	snap     Snapshot
	timer    *time.Timer
	timerGen uint64
}

func New(api Searcher, opts ...Option) *View {
	v := &View{api: api, debounce: DefaultDebounce}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Snapshot returns the current state. Results are shared with the view and
// must not be modified.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snap
}

// Submit runs a search now, cancelling any pending debounced one, and
// returns the state it left behind.
func (v *View) Submit(ctx context.Context, query string) Snapshot {
	v.mu.Lock()
	v.stopTimerLocked()
	return v.runLocked(ctx, query)
}

// runLocked is entered with mu held and returns with it released.
func (v *View) runLocked(ctx context.Context, query string) Snapshot {
	v.seq++
	seq := v.seq

	term := strings.TrimSpace(query)
	switch {
	case !v.api.HasToken(ctx):
		return v.finishLocked(Snapshot{State: Failed, Query: query, Err: msgLogIn, Seq: seq})
	case term == "" && !v.allowEmpty:
		return v.finishLocked(Snapshot{State: Failed, Query: query, Err: msgEnterTerm, Seq: seq})
	}

	loading := Snapshot{State: Loading, Query: query, Seq: seq}
	v.snap = loading
	v.mu.Unlock()
	v.notify(loading)

	results, err := v.api.SearchClients(ctx, term)

	v.mu.Lock()
	if seq != v.seq {
		slogx.FromContext(ctx).Debug("search: dropping stale response", "seq", seq, "latest", v.seq)
		snap := v.snap
		v.mu.Unlock()
		return snap
	}

	if err != nil {
		return v.finishLocked(Snapshot{
			State: Failed,
			Query: query,
			Err:   healthsdk.Message(err, msgFetchFailed),
			Seq:   seq,
		})
	}
	if results == nil {
		results = []healthsdk.Client{}
	}
	return v.finishLocked(Snapshot{State: Success, Query: query, Results: results, Seq: seq})
}

// Type records a keystroke burst. The search runs once query has been left
// alone for the debounce interval.
func (v *View) Type(ctx context.Context, query string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.stopTimerLocked()
	v.timerGen++
	gen := v.timerGen
	v.timer = time.AfterFunc(v.debounce, func() {
		v.mu.Lock()
		if gen != v.timerGen {
			v.mu.Unlock()
			return
		}
		v.timer = nil
		v.runLocked(ctx, query)
	})
}

// Close drops any pending debounced search.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stopTimerLocked()
}

func (v *View) stopTimerLocked() {
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
	// Invalidates a callback that already fired but hasn't submitted yet.
	v.timerGen++
}

// finishLocked stores snap, unlocks and notifies.
func (v *View) finishLocked(snap Snapshot) Snapshot {
	v.snap = snap
	v.mu.Unlock()
	v.notify(snap)
	return snap
}

func (v *View) notify(snap Snapshot) {
	if v.onChange != nil {
		v.onChange(snap)
	}
}
