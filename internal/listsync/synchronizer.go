// Package listsync keeps one paginated server list in step with its query
// axes (page, sort, search, filter) and applies row-level flag and delete
// actions locally once the server has accepted them.
package listsync

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"landdeals-console/internal/domain/listview"
	xerrors "landdeals-console/internal/pkg/errors"
	"landdeals-console/internal/pkg/format"

	"go.uber.org/zap"
)

// Record is a list row the synchronizer can flag.
type Record[T any] interface {
	RecordID() int64
	Flagged() bool
	WithFlag(flag bool) T
}

// Source is the server side of one list.
type Source[T any] interface {
	Fetch(ctx context.Context, q listview.Query) (*listview.Page[T], error)
	SetFlag(ctx context.Context, id int64, flag bool) error
	Delete(ctx context.Context, id int64) error
}

// Notice is a user-facing message raised by the synchronizer.
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

// State is a copy of the synchronizer's view state. Version grows with
// every copy taken, so a consumer that sees a lower version than the last
// one it applied can drop it.
type State[T any] struct {
	Version       uint64
	Query         listview.Query
	DisplayedTerm string
	Records       []T
	Pagination    listview.Pagination
	Loading       listview.LoadingState
	InFlight      []int64
	Error         string
}

type Options[T any] struct {
	// Name prefixes in-flight keys and log lines, e.g. "owners".
	Name        string
	PageSize    int
	Debounce    time.Duration
	SortFields  []string
	DefaultSort string
	DefaultDesc bool
	Flagged     bool

	InFlight InFlightSet
	Logger   *zap.Logger

	// OnChange receives a fresh state after every change. Calls never
	// overlap and arrive in Version order. It must not call back into the
	// synchronizer.
	OnChange func(State[T])
	// OnNotice receives success and failure messages.
	OnNotice func(Notice)
}

const (
	DefaultPageSize = 5
	DefaultDebounce = 500 * time.Millisecond
)

// Synchronizer owns the view state of one list. It is safe for concurrent
// use; network calls happen outside its lock.
type Synchronizer[T Record[T]] struct {
	src  Source[T]
	opts Options[T]

	mu         sync.Mutex
	query      listview.Query
	displayed  string
	records    []T
	pagination listview.Pagination
	loading    listview.LoadingState
	loadedOnce bool
	toggling   map[int64]struct{}
	lastErr    string
	gen        uint64
	version    uint64
	closed     bool

	// pubMu keeps OnChange calls in the order their states were taken.
	pubMu sync.Mutex

	timer     *time.Timer
	searchSeq uint64
	wg        sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc
}

func New[T Record[T]](src Source[T], opts Options[T]) *Synchronizer[T] {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.InFlight == nil {
		opts.InFlight = NewMemoryInFlight()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	order := listview.SortAsc
	if opts.DefaultDesc {
		order = listview.SortDesc
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Synchronizer[T]{
		src:  src,
		opts: opts,
		query: listview.Query{
			Page:      1,
			Limit:     opts.PageSize,
			SortBy:    opts.DefaultSort,
			SortOrder: order,
			Flagged:   opts.Flagged,
		},
		records:    []T{},
		pagination: listview.EmptyPagination(opts.PageSize),
		loading:    listview.LoadingIdle,
		toggling:   make(map[int64]struct{}),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// State returns a copy of the current view state.
func (s *Synchronizer[T]) State() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Synchronizer[T]) stateLocked() State[T] {
	inFlight := make([]int64, 0, len(s.toggling))
	for id := range s.toggling {
		inFlight = append(inFlight, id)
	}
	slices.Sort(inFlight)

	s.version++
	return State[T]{
		Version:       s.version,
		Query:         s.query,
		DisplayedTerm: s.displayed,
		Records:       slices.Clone(s.records),
		Pagination:    s.pagination,
		Loading:       s.loading,
		InFlight:      inFlight,
		Error:         s.lastErr,
	}
}

func (s *Synchronizer[T]) changed() {
	if s.opts.OnChange == nil {
		return
	}
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	st := s.stateLocked()
	s.mu.Unlock()
	s.opts.OnChange(st)
}

func (s *Synchronizer[T]) notify(level, msg string) {
	if s.opts.OnNotice != nil {
		s.opts.OnNotice(Notice{Level: level, Message: msg})
	}
}

// Fetch loads the page described by the current query. A response that
// arrives after a newer fetch started, or after Close, is dropped. On
// failure the list is cleared to one empty page. A fetch abandoned by its
// caller leaves the list untouched. A page past the server's last page is
// pulled back to the last page and fetched again.
func (s *Synchronizer[T]) Fetch(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return xerrors.ErrViewClosed
	}
	s.gen++
	gen := s.gen
	q := s.query
	if s.loadedOnce {
		s.loading = listview.LoadingOverlay
	} else {
		s.loading = listview.LoadingInitial
	}
	s.mu.Unlock()
	s.changed()

	page, err := s.src.Fetch(ctx, q)

	s.mu.Lock()
	if s.closed || gen != s.gen {
		s.mu.Unlock()
		return nil
	}
	if errors.Is(err, context.Canceled) {
		s.loading = listview.LoadingIdle
		s.mu.Unlock()
		s.changed()
		return err
	}
	if err == nil && page.Pagination.Pages > 0 && q.Page > page.Pagination.Pages && s.query.Page == q.Page {
		// Each retry asks for a strictly lower page, so this ends.
		s.query.Page = page.Pagination.Pages
		s.mu.Unlock()
		return s.Fetch(ctx)
	}
	s.loadedOnce = true
	s.loading = listview.LoadingIdle

	if err != nil {
		s.records = []T{}
		s.pagination = listview.EmptyPagination(s.opts.PageSize)
		msg := fmt.Sprintf("Failed to load %s", s.name())
		s.lastErr = msg
		s.mu.Unlock()

		s.opts.Logger.Warn("list fetch failed",
			zap.String("list", s.opts.Name),
			zap.Int("page", q.Page),
			zap.Error(err))
		s.notify(NoticeError, msg)
		s.changed()
		return err
	}

	s.records = page.Data
	if s.records == nil {
		s.records = []T{}
	}
	s.pagination = page.Pagination
	if s.pagination.Limit == 0 {
		s.pagination.Limit = q.Limit
	}
	if s.pagination.Page == 0 {
		s.pagination.Page = q.Page
	}
	s.lastErr = ""
	s.mu.Unlock()

	s.changed()
	return nil
}

// Refresh refetches with the current query.
func (s *Synchronizer[T]) Refresh(ctx context.Context) error {
	return s.Fetch(ctx)
}

// Search shows term immediately and schedules the fetch after the debounce
// window. A later call cancels a pending one. An empty term fetches at once.
func (s *Synchronizer[T]) Search(term string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return xerrors.ErrViewClosed
	}
	s.displayed = term
	s.query.Page = 1
	s.stopTimerLocked()

	if strings.TrimSpace(term) == "" {
		s.query.Search = ""
		s.goFetchLocked()
		s.mu.Unlock()
		s.changed()
		return nil
	}

	s.searchSeq++
	seq := s.searchSeq
	s.wg.Add(1)
	s.timer = time.AfterFunc(s.opts.Debounce, func() {
		defer s.wg.Done()
		s.runSearch(seq, term)
	})
	s.mu.Unlock()

	s.changed()
	return nil
}

func (s *Synchronizer[T]) runSearch(seq uint64, term string) {
	s.mu.Lock()
	// A newer keystroke may have replaced this timer after it fired.
	if s.closed || seq != s.searchSeq {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.query.Search = strings.TrimSpace(term)
	s.query.Page = 1
	s.mu.Unlock()

	_ = s.Fetch(s.ctx)
}

// goFetchLocked runs a fetch on the synchronizer's own context so it is
// tracked by Close. s.mu must be held and the synchronizer open, so the
// WaitGroup slot is taken before Close can start waiting.
func (s *Synchronizer[T]) goFetchLocked() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		_ = s.Fetch(s.ctx)
	}()
}

// stopTimerLocked cancels a pending debounced search. A timer that was
// stopped before firing never runs its callback, so its WaitGroup slot is
// released here.
func (s *Synchronizer[T]) stopTimerLocked() {
	if s.timer != nil && s.timer.Stop() {
		s.wg.Done()
	}
	s.timer = nil
	s.searchSeq++
}

// SetSort changes the sort column and goes back to page 1.
func (s *Synchronizer[T]) SetSort(ctx context.Context, field string) error {
	if len(s.opts.SortFields) > 0 && !slices.Contains(s.opts.SortFields, field) {
		return fmt.Errorf("%w: cannot sort by %q", xerrors.ErrInvalidInput, field)
	}
	return s.mutate(ctx, func(q *listview.Query) {
		q.SortBy = field
		q.Page = 1
	})
}

// SetSortOrder changes the direction and goes back to page 1.
func (s *Synchronizer[T]) SetSortOrder(ctx context.Context, order listview.SortOrder) error {
	if !order.Valid() {
		return fmt.Errorf("%w: sort order must be asc or desc", xerrors.ErrInvalidInput)
	}
	return s.mutate(ctx, func(q *listview.Query) {
		q.SortOrder = order
		q.Page = 1
	})
}

// SetSorting changes column and direction together with one fetch. An
// empty field or order keeps the current one.
func (s *Synchronizer[T]) SetSorting(ctx context.Context, field string, order listview.SortOrder) error {
	if field != "" && len(s.opts.SortFields) > 0 && !slices.Contains(s.opts.SortFields, field) {
		return fmt.Errorf("%w: cannot sort by %q", xerrors.ErrInvalidInput, field)
	}
	if order != "" && !order.Valid() {
		return fmt.Errorf("%w: sort order must be asc or desc", xerrors.ErrInvalidInput)
	}
	return s.mutate(ctx, func(q *listview.Query) {
		if field != "" {
			q.SortBy = field
		}
		if order != "" {
			q.SortOrder = order
		}
		q.Page = 1
	})
}

// SetFilter toggles the flagged-only filter and goes back to page 1.
func (s *Synchronizer[T]) SetFilter(ctx context.Context, flagged bool) error {
	return s.mutate(ctx, func(q *listview.Query) {
		q.Flagged = flagged
		q.Page = 1
	})
}

// SetPage moves to page, leaving the other axes alone. Pages past the last
// known page are pulled back to it.
func (s *Synchronizer[T]) SetPage(ctx context.Context, page int) error {
	return s.mutate(ctx, func(q *listview.Query) {
		if page < 1 {
			page = 1
		}
		if s.pagination.Pages > 0 && page > s.pagination.Pages {
			page = s.pagination.Pages
		}
		q.Page = page
	})
}

func (s *Synchronizer[T]) mutate(ctx context.Context, apply func(q *listview.Query)) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return xerrors.ErrViewClosed
	}
	apply(&s.query)
	s.mu.Unlock()

	return s.Fetch(ctx)
}

func (s *Synchronizer[T]) indexLocked(id int64) int {
	for i, r := range s.records {
		if r.RecordID() == id {
			return i
		}
	}
	return -1
}

func (s *Synchronizer[T]) inFlightKey(id int64) string {
	return fmt.Sprintf("%s:%d", s.opts.Name, id)
}

// ToggleFlag flips the flag of record id. The server is asked first and
// the list changes only once it answers. In a flagged-only view an
// unflagged record leaves the list and a newly flagged one triggers a
// refetch. A toggle for a record already in flight is a no-op.
func (s *Synchronizer[T]) ToggleFlag(ctx context.Context, id int64) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return xerrors.ErrViewClosed
	}
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: record %d is not on this page", xerrors.ErrNotFound, id)
	}
	if _, busy := s.toggling[id]; busy {
		s.mu.Unlock()
		return nil
	}
	next := !s.records[idx].Flagged()
	s.mu.Unlock()

	key := s.inFlightKey(id)
	token, ok, err := s.opts.InFlight.Acquire(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to mark toggle in flight: %w", err)
	}
	if !ok {
		return nil
	}
	defer func() {
		if err := s.opts.InFlight.Release(context.WithoutCancel(ctx), key, token); err != nil {
			s.opts.Logger.Warn("failed to release in-flight toggle", zap.String("key", key), zap.Error(err))
		}
	}()

	s.mu.Lock()
	s.toggling[id] = struct{}{}
	s.mu.Unlock()
	s.changed()

	err = s.src.SetFlag(ctx, id, next)

	s.mu.Lock()
	delete(s.toggling, id)
	if s.closed {
		s.mu.Unlock()
		return nil
	}

	if err != nil {
		s.mu.Unlock()
		s.opts.Logger.Warn("flag toggle failed",
			zap.String("list", s.opts.Name),
			zap.Int64("id", id),
			zap.Error(err))
		s.notify(NoticeError, "Failed to update star")
		// Resync so the row shows what the server holds. The caller's
		// context may be the reason the toggle failed.
		_ = s.Fetch(s.ctx)
		return err
	}

	refetch := false
	switch {
	case s.query.Flagged && !next:
		if i := s.indexLocked(id); i >= 0 {
			s.records = slices.Delete(s.records, i, i+1)
			if s.pagination.Total > 0 {
				s.pagination.Total--
			}
		}
	case s.query.Flagged && next:
		refetch = true
	default:
		if i := s.indexLocked(id); i >= 0 {
			s.records[i] = s.records[i].WithFlag(next)
		}
	}
	s.mu.Unlock()

	if refetch {
		return s.Fetch(s.ctx)
	}
	s.changed()
	return nil
}

// Delete removes record id once confirmed. An unconfirmed delete sends
// nothing. On success the row is dropped locally without a refetch; on
// failure the list is left as it was.
func (s *Synchronizer[T]) Delete(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return xerrors.ErrNotConfirmed
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return xerrors.ErrViewClosed
	}
	s.mu.Unlock()

	if err := s.src.Delete(ctx, id); err != nil {
		s.opts.Logger.Warn("delete failed",
			zap.String("list", s.opts.Name),
			zap.Int64("id", id),
			zap.Error(err))
		s.notify(NoticeError, fmt.Sprintf("Failed to delete %s: %s", s.singular(), xerrors.MessageOrDefault(err, "Unknown error")))
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	if i := s.indexLocked(id); i >= 0 {
		s.records = slices.Delete(s.records, i, i+1)
		if s.pagination.Total > 0 {
			s.pagination.Total--
		}
	}
	s.mu.Unlock()

	s.notify(NoticeSuccess, fmt.Sprintf("%s deleted successfully!", format.Title(s.singular())))
	s.changed()
	return nil
}

// Close tears the view down: a pending search is cancelled, in-progress
// fetches are abandoned and every later update is a no-op. Close waits
// for background work to finish.
func (s *Synchronizer[T]) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.stopTimerLocked()
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

func (s *Synchronizer[T]) name() string {
	if s.opts.Name == "" {
		return "records"
	}
	return s.opts.Name
}

func (s *Synchronizer[T]) singular() string {
	return strings.TrimSuffix(s.name(), "s")
}
