package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mwork/studiofinder/internal/domain/booking"
	"github.com/mwork/studiofinder/internal/domain/studio"
	"github.com/mwork/studiofinder/internal/pkg/storage"
)

// Publisher delivers session events to connected clients.
type Publisher interface {
	Publish(sessionID string, event Event)
}

// Options configures a Registry.
type Options struct {
	PageSize        int
	DefaultRadiusKm int
	AutoCloseDelay  time.Duration
	TTL             time.Duration
	AutoLoad        bool
}

// Session is the server-side state of one client: its catalog view, its
// booking modal and its bookings.
type Session struct {
	ID        string
	Directory *studio.Directory
	Modal     *booking.Modal
	Review    *booking.Review

	lastSeen time.Time
}

// Registry owns all live sessions.
type Registry struct {
	source    studio.Source
	store     storage.BlobStore
	publisher Publisher
	opts      Options
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry creates an empty registry. publisher may be nil.
func NewRegistry(source studio.Source, store storage.BlobStore, publisher Publisher, opts Options) *Registry {
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	return &Registry{
		source:    source,
		store:     store,
		publisher: publisher,
		opts:      opts,
		now:       time.Now,
		sessions:  make(map[string]*Session),
	}
}

// Resolve returns the id of a live session for presented. A known id is
// refreshed; a well-formed unknown id is adopted so stored bookings survive
// restarts; anything else gets a fresh id. New sessions load the catalog
// before Resolve returns; a failed load is logged and leaves the session
// empty.
func (r *Registry) Resolve(ctx context.Context, presented string) (string, error) {
	if presented != "" {
		if _, err := r.Get(presented); err == nil {
			return presented, nil
		}
	}

	id := presented
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	s, created := r.getOrCreate(id)
	if created && r.opts.AutoLoad {
		if err := s.Directory.LoadCatalog(ctx); err != nil {
			log.Warn().Err(err).Str("session_id", id).Msg("Initial catalog load failed")
		}
	}
	return id, nil
}

func (r *Registry) getOrCreate(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[id]; ok {
		s.lastSeen = r.now()
		return s, false
	}

	s := r.newSession(id)
	r.sessions[id] = s
	log.Debug().Str("session_id", id).Msg("Session created")
	return s, true
}

func (r *Registry) newSession(id string) *Session {
	repo := booking.NewRepository(r.store, id)

	var notifier booking.Notifier
	if r.publisher != nil {
		publisher := r.publisher
		notifier = booking.NotifierFunc(func(path string) {
			publisher.Publish(id, Event{Type: EventModalClosed})
			publisher.Publish(id, Event{Type: EventNavigate, Path: path})
		})
	}

	return &Session{
		ID: id,
		Directory: studio.NewDirectory(r.source, studio.Options{
			PageSize:        r.opts.PageSize,
			DefaultRadiusKm: r.opts.DefaultRadiusKm,
		}),
		Modal: booking.NewModal(repo, booking.ModalOptions{
			AutoCloseDelay: r.opts.AutoCloseDelay,
			Notifier:       notifier,
		}),
		Review:   booking.NewReview(repo, r.source),
		lastSeen: r.now(),
	}
}

// Get returns a live session and refreshes its idle timer.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.lastSeen = r.now()
	return s, nil
}

// Directory implements studio.Sessions.
func (r *Registry) Directory(ctx context.Context, id string) (*studio.Directory, error) {
	s, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return s.Directory, nil
}

// Modal implements booking.Sessions.
func (r *Registry) Modal(ctx context.Context, id string) (*booking.Modal, error) {
	s, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return s.Modal, nil
}

// Review implements booking.Sessions.
func (r *Registry) Review(ctx context.Context, id string) (*booking.Review, error) {
	s, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return s.Review, nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops sessions idle for longer than the TTL and closes their
// modals. Stored bookings are kept.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	cutoff := r.now().Add(-r.opts.TTL)
	expired := make([]*Session, 0)
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			expired = append(expired, s)
		}
	}
	r.mu.Unlock()

	for _, s := range expired {
		s.Modal.Close()
	}
	return len(expired)
}

// Start runs Sweep every interval until ctx is done.
func (r *Registry) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Session sweeper stopped")
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				log.Info().Int("expired", n).Int("live", r.Len()).Msg("Expired idle sessions")
			}
		}
	}
}
