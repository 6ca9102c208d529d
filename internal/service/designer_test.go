package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/goliatone/go-formbuilder/pkg/designer"
	"github.com/goliatone/go-formbuilder/pkg/elements"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/submission"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newDesigner(t *testing.T, opts ...DesignerOption) (*Designer, *Forms, uint) {
	t.Helper()
	forms := NewForms(newRepository(t))
	form, err := forms.Create(userCtx("u1"), CreateFormInput{Name: "Contact"})
	require.NoError(t, err)
	opts = append([]DesignerOption{WithElementIDs(designer.SequenceGenerator("el"))}, opts...)
	return NewDesigner(forms, opts...), forms, form.ID
}

func TestDesigner_EditAndSave(t *testing.T) {
	d, forms, formID := newDesigner(t)
	ctx := userCtx("u1")

	view, err := d.Open(ctx, formID)
	require.NoError(t, err)
	assert.Empty(t, view.Layout)
	assert.False(t, view.Dirty)
	require.Len(t, view.Palette, 2)

	_, _, err = d.Drop(ctx, formID, designer.PaletteOverCanvas{Type: model.TextField})
	require.NoError(t, err)
	outcome, view, err := d.Drop(ctx, formID, designer.PaletteOverElement{Type: model.TitleField, TargetID: "el-1", Half: designer.HalfTop})
	require.NoError(t, err)
	assert.True(t, outcome.Applied)
	assert.Equal(t, 0, outcome.Index)
	assert.Equal(t, []string{"el-2", "el-1"}, ids(view.Layout))
	assert.True(t, view.Dirty)

	view, err = d.Select(ctx, formID, "el-1")
	require.NoError(t, err)
	require.NotNil(t, view.Selected)

	view, err = d.UpdateProperties(ctx, formID, "el-1", model.Attributes{model.AttrLabel: "Full name", model.AttrRequired: true})
	require.NoError(t, err)
	assert.Equal(t, "Full name", view.Selected.Attributes.String(model.AttrLabel))

	_, err = d.UpdateProperties(ctx, formID, "el-1", model.Attributes{model.AttrLabel: "x"})
	assert.ErrorIs(t, err, submission.ErrValidationFailed)

	view, err = d.Save(ctx, formID)
	require.NoError(t, err)
	assert.False(t, view.Dirty)

	stored, err := forms.Layout(ctx, formID)
	require.NoError(t, err)
	assert.True(t, stored.Equal(view.Layout))

	view, err = d.Remove(ctx, formID, "el-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"el-1"}, ids(view.Layout))

	require.NoError(t, d.Discard(ctx, formID))
	_, err = d.View(ctx, formID)
	assert.ErrorIs(t, err, ErrNoSession)
	assert.ErrorIs(t, err, ErrNotFound)

	view, err = d.Open(ctx, formID)
	require.NoError(t, err)
	assert.Equal(t, []string{"el-2", "el-1"}, ids(view.Layout), "reopening hydrates the saved layout")
}

func TestDesigner_Errors(t *testing.T) {
	d, _, formID := newDesigner(t)

	_, err := d.Open(context.Background(), formID)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = d.Open(userCtx("u2"), formID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = d.Select(userCtx("u1"), formID, "el-1")
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = d.Open(userCtx("u1"), formID)
	require.NoError(t, err)

	_, _, err = d.Drop(userCtx("u1"), formID, designer.PaletteOverCanvas{Type: "Signature"})
	assert.ErrorIs(t, err, elements.ErrUnknownVariant)

	_, _, err = d.Drop(userCtx("u1"), formID, designer.PaletteOverElement{Type: model.TextField, TargetID: "missing", Half: designer.HalfTop})
	assert.ErrorIs(t, err, designer.ErrInvalidTarget)

	assert.ErrorIs(t, d.Discard(userCtx("u2"), formID), ErrNoSession)
}

func TestDesigner_SweepExpiresIdleSessions(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	d, _, formID := newDesigner(t, WithClock(clock.Now), WithSessionTTL(10*time.Minute))
	ctx := userCtx("u1")

	_, err := d.Open(ctx, formID)
	require.NoError(t, err)

	clock.Advance(5 * time.Minute)
	assert.Zero(t, d.Sweep())
	_, err = d.View(ctx, formID)
	require.NoError(t, err, "touching a session keeps it alive")

	clock.Advance(11 * time.Minute)
	assert.Equal(t, 1, d.Sweep())
	assert.Zero(t, d.Len())
}

func TestDesigner_RunStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	d := NewDesigner(nil, WithSweepInterval(time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestDesigner_ConcurrentDrops(t *testing.T) {
	d, _, formID := newDesigner(t)
	ctx := userCtx("u1")
	_, err := d.Open(ctx, formID)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := d.Drop(ctx, formID, designer.PaletteOverCanvas{Type: model.TextField})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	view, err := d.View(ctx, formID)
	require.NoError(t, err)
	assert.Len(t, view.Layout, 20)
}

func ids(l model.Layout) []string {
	out := make([]string, 0, len(l))
	for _, el := range l {
		out = append(out, el.ID)
	}
	return out
}
