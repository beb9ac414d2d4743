package booking

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mwork/studiofinder/internal/domain/studio"
)

const (
	// DefaultAutoCloseDelay is how long a confirmation stays visible.
	DefaultAutoCloseDelay = 3 * time.Second

	// BookingsPath is where the client goes after an auto-close.
	BookingsPath = "/bookings"

	dateLayout = "2006-01-02"
)

// Notifier is told when the modal closes itself after a confirmation.
type Notifier interface {
	AutoClosed(navigateTo string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(navigateTo string)

func (f NotifierFunc) AutoClosed(navigateTo string) { f(navigateTo) }

// ModalOptions configures a Modal.
type ModalOptions struct {
	AutoCloseDelay time.Duration
	Notifier       Notifier
}

// Modal is the booking dialog of one client: Closed -> Open -> Closed, with
// a confirmation scheduling its own close. All methods are safe for
// concurrent use.
type Modal struct {
	repo     *Repository
	delay    time.Duration
	notifier Notifier
	now      func() time.Time

	mu sync.Mutex

	open    bool
	studio  *studio.Studio
	draft   Draft
	slots   []string
	errMsg  *string
	success *string
	minDate string

	pendingNav string

	timer      *time.Timer
	generation uint64
}

// NewModal creates a closed modal persisting into repo.
func NewModal(repo *Repository, opts ModalOptions) *Modal {
	if opts.AutoCloseDelay <= 0 {
		opts.AutoCloseDelay = DefaultAutoCloseDelay
	}
	return &Modal{
		repo:     repo,
		delay:    opts.AutoCloseDelay,
		notifier: opts.Notifier,
		now:      time.Now,
		slots:    []string{},
	}
}

// Open shows the modal for s with an empty form and fresh time slots.
// A pending auto-close from an earlier confirmation is cancelled.
func (m *Modal) Open(s studio.Studio) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cancelAutoClose()

	m.studio = &s
	m.draft = Draft{}
	m.errMsg = nil
	m.success = nil
	m.open = true
	m.pendingNav = ""
	m.minDate = m.now().Format(dateLayout)
	m.slots = GenerateTimeSlots(s.Availability.Open, s.Availability.Close)
}

// SetDraft replaces the form fields.
func (m *Modal) SetDraft(d Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.open {
		return ErrModalClosed
	}
	m.draft = d
	return nil
}

// Confirm validates the form, checks the slot against stored bookings and
// persists the booking. Validation and conflict outcomes are also left as
// the modal's error message; storage failures are only returned.
func (m *Modal) Confirm(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.open || m.studio == nil {
		return ErrModalClosed
	}

	m.errMsg = nil
	m.success = nil

	if !m.draft.complete() {
		m.setError(msgFillAllFields)
		return ErrMissingFields
	}

	available, err := m.repo.IsSlotAvailable(ctx, m.studio.ID, m.draft.Date, m.draft.Time)
	if err != nil {
		log.Error().Err(err).Int("studio_id", m.studio.ID).Msg("Failed to read bookings")
		return err
	}
	if !available {
		m.setError(msgSlotUnavailable)
		return ErrSlotUnavailable
	}

	b := Booking{
		StudioID:   m.studio.ID,
		StudioName: m.studio.Name,
		Date:       m.draft.Date,
		Time:       m.draft.Time,
		UserName:   m.draft.UserName,
		UserEmail:  m.draft.UserEmail,
	}
	if err := m.repo.Append(ctx, b); err != nil {
		log.Error().Err(err).Int("studio_id", b.StudioID).Msg("Failed to save booking")
		return err
	}

	msg := confirmedMessage(b)
	m.success = &msg

	log.Info().
		Int("studio_id", b.StudioID).
		Str("date", b.Date).
		Str("time", b.Time).
		Msg("Booking confirmed")

	m.scheduleAutoClose()
	return nil
}

// Close hides the modal and discards the form. Any pending auto-close is
// cancelled.
func (m *Modal) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.close()
}

func (m *Modal) close() {
	m.cancelAutoClose()
	m.open = false
	m.studio = nil
	m.draft = Draft{}
	m.slots = []string{}
	m.errMsg = nil
	m.success = nil
}

func (m *Modal) setError(msg string) {
	m.errMsg = &msg
}

// scheduleAutoClose must be called with m.mu held.
func (m *Modal) scheduleAutoClose() {
	m.cancelAutoClose()
	gen := m.generation
	m.timer = time.AfterFunc(m.delay, func() {
		m.autoClose(gen)
	})
}

// cancelAutoClose must be called with m.mu held. Bumping the generation
// also disarms a timer that already fired and is waiting for the lock.
func (m *Modal) cancelAutoClose() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.generation++
}

func (m *Modal) autoClose(gen uint64) {
	m.mu.Lock()
	if gen != m.generation || !m.open {
		m.mu.Unlock()
		return
	}
	m.close()
	m.pendingNav = BookingsPath
	notifier := m.notifier
	m.mu.Unlock()

	if notifier != nil {
		notifier.AutoClosed(BookingsPath)
	}
}

// ModalView is a read-only snapshot of a Modal.
type ModalView struct {
	Open              bool           `json:"open"`
	Studio            *studio.Studio `json:"studio"`
	Draft             Draft          `json:"draft"`
	TimeSlots         []string       `json:"time_slots"`
	Error             *string        `json:"error"`
	Success           *string        `json:"success"`
	MinDate           string         `json:"min_date"`
	PendingNavigation string         `json:"pending_navigation,omitempty"`
}

// View returns a snapshot of the modal.
func (m *Modal) View() ModalView {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := ModalView{
		Open:              m.open,
		Draft:             m.draft,
		TimeSlots:         slices.Clone(m.slots),
		MinDate:           m.minDate,
		PendingNavigation: m.pendingNav,
	}
	if m.studio != nil {
		s := *m.studio
		v.Studio = &s
	}
	if m.errMsg != nil {
		msg := *m.errMsg
		v.Error = &msg
	}
	if m.success != nil {
		msg := *m.success
		v.Success = &msg
	}
	return v
}
