// internal/service/listview/listview_service.go
package listview

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"landdeals-console/internal/domain/auth"
	"landdeals-console/internal/domain/listview"
	"landdeals-console/internal/domain/owner"
	wstypes "landdeals-console/internal/domain/websocket"
	"landdeals-console/internal/listsync"
	xerrors "landdeals-console/internal/pkg/errors"
	"landdeals-console/internal/pkg/permission"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// MaxViewsPerSession bounds how many views one browser session may hold.
const MaxViewsPerSession = 16

// Publisher delivers view updates to the session that owns the view.
type Publisher interface {
	PublishView(userID int64, sessionID string, snap *listview.Snapshot)
	PublishNotice(userID int64, sessionID string, notice wstypes.ViewNoticeData)
	PublishViewClosed(userID int64, sessionID, viewID string)
}

type Config struct {
	PageSize int
	Debounce time.Duration
}

// controller is the type-independent surface of a listsync.Synchronizer.
type controller interface {
	Fetch(ctx context.Context) error
	Refresh(ctx context.Context) error
	Search(term string) error
	SetSorting(ctx context.Context, field string, order listview.SortOrder) error
	SetFilter(ctx context.Context, flagged bool) error
	SetPage(ctx context.Context, page int) error
	ToggleFlag(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64, confirmed bool) error
	Close()
}

type view struct {
	id        string
	resource  listview.Resource
	sessionID string
	userID    int64
	ctl       controller
	snapshot  func() *listview.Snapshot
}

type ListViewService struct {
	backend   Backend
	publisher Publisher
	inFlight  listsync.InFlightSet
	cfg       Config
	logger    *zap.Logger

	mu    sync.Mutex
	views map[string]*view
}

func NewListViewService(backend Backend, publisher Publisher, inFlight listsync.InFlightSet, cfg Config, logger *zap.Logger) *ListViewService {
	if inFlight == nil {
		inFlight = listsync.NewMemoryInFlight()
	}
	return &ListViewService{
		backend:   backend,
		publisher: publisher,
		inFlight:  inFlight,
		cfg:       cfg,
		logger:    logger,
		views:     make(map[string]*view),
	}
}

func toSnapshot[T any](v *view, st listsync.State[T]) *listview.Snapshot {
	return &listview.Snapshot{
		ViewID:        v.id,
		Resource:      v.resource,
		Query:         st.Query,
		DisplayedTerm: st.DisplayedTerm,
		Records:       st.Records,
		Pagination:    st.Pagination,
		Loading:       st.Loading,
		InFlight:      st.InFlight,
		Error:         st.Error,
		Version:       st.Version,
	}
}

func bind[T listsync.Record[T]](s *ListViewService, v *view, src listsync.Source[T], opts listsync.Options[T]) {
	opts.PageSize = s.cfg.PageSize
	opts.Debounce = s.cfg.Debounce
	opts.InFlight = s.inFlight
	opts.Logger = s.logger.With(zap.String("view_id", v.id))
	opts.OnChange = func(st listsync.State[T]) {
		if s.publisher != nil {
			s.publisher.PublishView(v.userID, v.sessionID, toSnapshot(v, st))
		}
	}
	opts.OnNotice = func(n listsync.Notice) {
		if s.publisher != nil {
			s.publisher.PublishNotice(v.userID, v.sessionID, wstypes.ViewNoticeData{
				ViewID:  v.id,
				Level:   n.Level,
				Message: n.Message,
			})
		}
	}

	syncer := listsync.New[T](src, opts)
	v.ctl = syncer
	v.snapshot = func() *listview.Snapshot { return toSnapshot(v, syncer.State()) }
}

// viewCapability is what a user needs to read a resource's list.
func viewCapability(r listview.Resource) permission.Capability {
	if r == listview.ResourceInvestors {
		return permission.InvestorsView
	}
	return permission.OwnersView
}

// Open creates a view for the session and loads its first page. A failed
// first load still returns the view, showing the empty error state. A
// rejected sort or session closes it again.
func (s *ListViewService) Open(ctx context.Context, sess *auth.Session, req *listview.OpenViewRequest) (*listview.Snapshot, error) {
	if !permission.HasCapability(&sess.User, viewCapability(req.Resource)) {
		return nil, fmt.Errorf("%w: you cannot view %s", xerrors.ErrForbidden, req.Resource)
	}

	v := &view{
		id:        ulid.Make().String(),
		resource:  req.Resource,
		sessionID: sess.ID,
		userID:    sess.User.ID,
	}

	switch req.Resource {
	case listview.ResourceOwners:
		bind[owner.Owner](s, v, ownerSource{backend: s.backend, token: sess.BackendToken}, listsync.Options[owner.Owner]{
			Name:        string(listview.ResourceOwners),
			SortFields:  owner.OwnerSortFields,
			DefaultSort: "name",
			Flagged:     req.Flagged,
		})
	case listview.ResourceInvestors:
		bind[owner.Investor](s, v, investorSource{backend: s.backend, token: sess.BackendToken}, listsync.Options[owner.Investor]{
			Name:        string(listview.ResourceInvestors),
			SortFields:  owner.InvestorSortFields,
			DefaultSort: "investor_name",
			Flagged:     req.Flagged,
		})
	default:
		return nil, fmt.Errorf("%w: unknown resource %q", xerrors.ErrInvalidInput, req.Resource)
	}

	// Counting and inserting share one critical section so concurrent
	// opens cannot overshoot the limit.
	s.mu.Lock()
	open := 0
	for _, other := range s.views {
		if other.sessionID == sess.ID {
			open++
		}
	}
	if open >= MaxViewsPerSession {
		s.mu.Unlock()
		v.ctl.Close()
		return nil, fmt.Errorf("%w: too many open views, close one first", xerrors.ErrConflict)
	}
	s.views[v.id] = v
	s.mu.Unlock()

	var err error
	if req.SortBy != "" || req.SortOrder != "" {
		err = v.ctl.SetSorting(ctx, req.SortBy, req.SortOrder)
	} else {
		err = v.ctl.Fetch(ctx)
	}
	if err != nil && !absorbed(err) {
		s.closeView(v)
		return nil, err
	}

	s.logger.Info("list view opened",
		zap.String("view_id", v.id),
		zap.String("resource", string(v.resource)),
		zap.Int64("user_id", v.userID))

	return v.snapshot(), nil
}

// lookup returns the session's view. Views of other sessions are reported
// as missing.
func (s *ListViewService) lookup(sessionID, viewID string) (*view, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.views[viewID]
	if !ok || v.sessionID != sessionID {
		return nil, fmt.Errorf("%w: view %s", xerrors.ErrNotFound, viewID)
	}
	return v, nil
}

// apply runs op against the view and returns the resulting snapshot. A
// backend failure is already reflected in the snapshot and its notice, so
// only errors the caller must act on are returned.
func (s *ListViewService) apply(sessionID, viewID string, op func(controller) error) (*listview.Snapshot, error) {
	v, err := s.lookup(sessionID, viewID)
	if err != nil {
		return nil, err
	}

	if err := op(v.ctl); err != nil && !absorbed(err) {
		return nil, err
	}
	return v.snapshot(), nil
}

// absorbed reports errors the view already shows to the user.
func absorbed(err error) bool {
	switch {
	case errors.Is(err, xerrors.ErrInvalidInput),
		errors.Is(err, xerrors.ErrNotConfirmed),
		errors.Is(err, xerrors.ErrViewClosed),
		errors.Is(err, xerrors.ErrNotFound),
		errors.Is(err, xerrors.ErrUnauthorized),
		errors.Is(err, xerrors.ErrForbidden):
		return false
	}
	return true
}

func (s *ListViewService) Get(sessionID, viewID string) (*listview.Snapshot, error) {
	return s.apply(sessionID, viewID, func(controller) error { return nil })
}

func (s *ListViewService) Search(sessionID, viewID, term string) (*listview.Snapshot, error) {
	return s.apply(sessionID, viewID, func(c controller) error { return c.Search(term) })
}

func (s *ListViewService) Sort(ctx context.Context, sessionID, viewID string, req *listview.SortRequest) (*listview.Snapshot, error) {
	return s.apply(sessionID, viewID, func(c controller) error {
		return c.SetSorting(ctx, req.SortBy, req.SortOrder)
	})
}

func (s *ListViewService) Filter(ctx context.Context, sessionID, viewID string, flagged bool) (*listview.Snapshot, error) {
	return s.apply(sessionID, viewID, func(c controller) error { return c.SetFilter(ctx, flagged) })
}

func (s *ListViewService) Page(ctx context.Context, sessionID, viewID string, page int) (*listview.Snapshot, error) {
	return s.apply(sessionID, viewID, func(c controller) error { return c.SetPage(ctx, page) })
}

func (s *ListViewService) Refresh(ctx context.Context, sessionID, viewID string) (*listview.Snapshot, error) {
	return s.apply(sessionID, viewID, func(c controller) error { return c.Refresh(ctx) })
}

// Toggle flips the star of a record. The user needs edit rights on the
// view's resource.
func (s *ListViewService) Toggle(ctx context.Context, sess *auth.Session, viewID string, recordID int64) (*listview.Snapshot, error) {
	v, err := s.lookup(sess.ID, viewID)
	if err != nil {
		return nil, err
	}
	if !permission.CanPerform(&sess.User, "edit", string(v.resource)) {
		return nil, fmt.Errorf("%w: you cannot change %s", xerrors.ErrForbidden, v.resource)
	}
	return s.apply(sess.ID, viewID, func(c controller) error { return c.ToggleFlag(ctx, recordID) })
}

// Delete removes a record after the user confirmed it.
func (s *ListViewService) Delete(ctx context.Context, sess *auth.Session, viewID string, recordID int64, confirmed bool) (*listview.Snapshot, error) {
	v, err := s.lookup(sess.ID, viewID)
	if err != nil {
		return nil, err
	}
	if !permission.CanPerform(&sess.User, "delete", string(v.resource)) {
		return nil, fmt.Errorf("%w: you cannot delete %s", xerrors.ErrForbidden, v.resource)
	}
	return s.apply(sess.ID, viewID, func(c controller) error { return c.Delete(ctx, recordID, confirmed) })
}

func (s *ListViewService) closeView(v *view) {
	s.mu.Lock()
	delete(s.views, v.id)
	s.mu.Unlock()

	v.ctl.Close()
	if s.publisher != nil {
		s.publisher.PublishViewClosed(v.userID, v.sessionID, v.id)
	}
}

// Close tears a view down.
func (s *ListViewService) Close(sessionID, viewID string) error {
	v, err := s.lookup(sessionID, viewID)
	if err != nil {
		return err
	}
	s.closeView(v)
	s.logger.Info("list view closed", zap.String("view_id", viewID))
	return nil
}

// CloseSession tears down every view of a session.
func (s *ListViewService) CloseSession(sessionID string) int {
	return s.closeWhere(func(v *view) bool { return v.sessionID == sessionID })
}

// CloseUser tears down every view of every session of a user.
func (s *ListViewService) CloseUser(userID int64) int {
	return s.closeWhere(func(v *view) bool { return v.userID == userID })
}

// CloseAll tears down every view; used on shutdown.
func (s *ListViewService) CloseAll() int {
	return s.closeWhere(func(*view) bool { return true })
}

func (s *ListViewService) closeWhere(match func(*view) bool) int {
	s.mu.Lock()
	var doomed []*view
	for id, v := range s.views {
		if match(v) {
			doomed = append(doomed, v)
			delete(s.views, id)
		}
	}
	s.mu.Unlock()

	for _, v := range doomed {
		v.ctl.Close()
	}
	return len(doomed)
}

// Count is the number of open views.
func (s *ListViewService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.views)
}
