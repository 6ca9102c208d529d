package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/internal/logging"
	"github.com/goliatone/go-formbuilder/pkg/designer"
	"github.com/goliatone/go-formbuilder/pkg/elements"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// DesignerView is the state of a designer session returned after every
// operation.
type DesignerView struct {
	FormID   uint                      `json:"formId"`
	Layout   model.Layout              `json:"layout"`
	Selected *model.ElementInstance    `json:"selected"`
	Dirty    bool                      `json:"dirty"`
	Palette  []elements.PaletteSection `json:"palette,omitempty"`
}

type sessionKey struct {
	userID string
	formID uint
}

type sessionEntry struct {
	mu       sync.Mutex
	session  *designer.Session
	lastUsed time.Time
}

// DesignerOption configures the session manager.
type DesignerOption func(*Designer)

// WithSessionTTL sets how long an untouched session is kept.
func WithSessionTTL(ttl time.Duration) DesignerOption {
	return func(d *Designer) {
		if ttl > 0 {
			d.ttl = ttl
		}
	}
}

// WithSweepInterval sets how often Run looks for idle sessions.
func WithSweepInterval(interval time.Duration) DesignerOption {
	return func(d *Designer) {
		if interval > 0 {
			d.interval = interval
		}
	}
}

func WithClock(now func() time.Time) DesignerOption {
	return func(d *Designer) {
		if now != nil {
			d.now = now
		}
	}
}

// WithElementIDs sets the id generator used for dropped palette elements.
func WithElementIDs(ids designer.IDGenerator) DesignerOption {
	return func(d *Designer) {
		if ids != nil {
			d.ids = ids
		}
	}
}

func WithDesignerLogger(logger *zap.Logger) DesignerOption {
	return func(d *Designer) {
		d.logger = logging.OrNop(logger)
	}
}

// Designer keeps one editing session per user and form. Each session is
// guarded by its own mutex; the manager lock only protects the session map.
type Designer struct {
	forms    *Forms
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time
	ids      designer.IDGenerator
	logger   *zap.Logger

	mu       sync.Mutex
	sessions map[sessionKey]*sessionEntry
}

func NewDesigner(forms *Forms, opts ...DesignerOption) *Designer {
	d := &Designer{
		forms:    forms,
		ttl:      30 * time.Minute,
		interval: time.Minute,
		now:      time.Now,
		ids:      designer.UUIDGenerator(),
		logger:   zap.NewNop(),
		sessions: make(map[sessionKey]*sessionEntry),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

func (d *Designer) key(ctx context.Context, formID uint) (sessionKey, error) {
	user, err := currentUser(ctx)
	if err != nil {
		return sessionKey{}, err
	}
	return sessionKey{userID: user.ID, formID: formID}, nil
}

// Open returns the session of a form, hydrating it from the persisted layout
// when none is open.
func (d *Designer) Open(ctx context.Context, formID uint) (DesignerView, error) {
	key, err := d.key(ctx, formID)
	if err != nil {
		return DesignerView{}, err
	}

	d.mu.Lock()
	entry, ok := d.sessions[key]
	if ok {
		entry.lastUsed = d.now()
	}
	d.mu.Unlock()
	if ok {
		return d.with(entry, formID, func(*designer.Session) error { return nil })
	}

	l, err := d.forms.Layout(ctx, formID)
	if err != nil {
		return DesignerView{}, err
	}
	session := designer.NewSession(l,
		designer.WithRegistry(d.forms.Registry()),
		designer.WithIDGenerator(d.ids),
	)

	d.mu.Lock()
	if existing, raced := d.sessions[key]; raced {
		entry = existing
	} else {
		entry = &sessionEntry{session: session}
		d.sessions[key] = entry
		d.logger.Debug("designer session opened", zap.Uint("form_id", formID), zap.String("user_id", key.userID))
	}
	entry.lastUsed = d.now()
	d.mu.Unlock()

	return d.with(entry, formID, func(*designer.Session) error { return nil })
}

func (d *Designer) lookup(ctx context.Context, formID uint) (*sessionEntry, error) {
	key, err := d.key(ctx, formID)
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	entry, ok := d.sessions[key]
	if !ok {
		return nil, ErrNoSession
	}
	entry.lastUsed = d.now()
	return entry, nil
}

func (d *Designer) with(entry *sessionEntry, formID uint, fn func(*designer.Session) error) (DesignerView, error) {
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if err := fn(entry.session); err != nil {
		return DesignerView{}, err
	}
	return d.view(formID, entry.session), nil
}

func (d *Designer) view(formID uint, s *designer.Session) DesignerView {
	v := DesignerView{
		FormID:  formID,
		Layout:  s.Layout(),
		Dirty:   s.Dirty(),
		Palette: d.forms.Registry().Sections(),
	}
	if selected, ok := s.Selected(); ok {
		v.Selected = &selected
	}
	return v
}

func (d *Designer) apply(ctx context.Context, formID uint, fn func(*designer.Session) error) (DesignerView, error) {
	entry, err := d.lookup(ctx, formID)
	if err != nil {
		return DesignerView{}, err
	}
	return d.with(entry, formID, fn)
}

// View returns the current state of an open session.
func (d *Designer) View(ctx context.Context, formID uint) (DesignerView, error) {
	return d.apply(ctx, formID, func(*designer.Session) error { return nil })
}

// Drop resolves a drag event in the session of a form.
func (d *Designer) Drop(ctx context.Context, formID uint, event designer.DragEvent) (designer.Outcome, DesignerView, error) {
	var outcome designer.Outcome
	view, err := d.apply(ctx, formID, func(s *designer.Session) error {
		var err error
		outcome, err = s.Drop(event)
		return err
	})
	return outcome, view, err
}

// UpdateProperties edits the attributes of one element.
func (d *Designer) UpdateProperties(ctx context.Context, formID uint, elementID string, attrs model.Attributes) (DesignerView, error) {
	return d.apply(ctx, formID, func(s *designer.Session) error {
		_, err := s.UpdateProperties(elementID, attrs)
		return err
	})
}

// Remove deletes one element. Unknown element ids are ignored.
func (d *Designer) Remove(ctx context.Context, formID uint, elementID string) (DesignerView, error) {
	return d.apply(ctx, formID, func(s *designer.Session) error {
		s.Remove(elementID)
		return nil
	})
}

// Select changes the selection; an empty id clears it.
func (d *Designer) Select(ctx context.Context, formID uint, elementID string) (DesignerView, error) {
	return d.apply(ctx, formID, func(s *designer.Session) error {
		return s.Select(elementID)
	})
}

// Save persists the session layout and clears its dirty flag.
func (d *Designer) Save(ctx context.Context, formID uint) (DesignerView, error) {
	return d.apply(ctx, formID, func(s *designer.Session) error {
		if err := d.forms.SaveContent(ctx, formID, s.Layout()); err != nil {
			return err
		}
		s.MarkSaved()
		return nil
	})
}

// Discard closes the session of a form without saving.
func (d *Designer) Discard(ctx context.Context, formID uint) error {
	key, err := d.key(ctx, formID)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.sessions[key]; !ok {
		return ErrNoSession
	}
	delete(d.sessions, key)
	return nil
}

// Len reports the number of open sessions.
func (d *Designer) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many were
// removed.
func (d *Designer) Sweep() int {
	cutoff := d.now().Add(-d.ttl)
	d.mu.Lock()
	defer d.mu.Unlock()

	removed := 0
	for key, entry := range d.sessions {
		if entry.lastUsed.Before(cutoff) {
			delete(d.sessions, key)
			removed++
		}
	}
	return removed
}

// Run sweeps idle sessions until ctx is cancelled.
func (d *Designer) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := d.Sweep(); n > 0 {
				d.logger.Info("expired designer sessions", zap.Int("count", n))
			}
		}
	}
}
