package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formbuilder/internal/auth"
	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/internal/storage"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

var dbCounter atomic.Int64

func newRepository(t *testing.T) *storage.Repository {
	t.Helper()
	dsn := fmt.Sprintf("file:service_test_%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := storage.Open(config.DatabaseConfig{Driver: "sqlite", DSN: dsn, MaxOpenConns: 1})
	require.NoError(t, err)
	require.NoError(t, storage.Migrate(db))
	t.Cleanup(func() { _ = storage.Close(db) })
	return storage.NewRepository(db)
}

func userCtx(id string) context.Context {
	return auth.WithUser(context.Background(), auth.User{ID: id})
}

// publishedForm creates, fills and publishes a form owned by u1.
func publishedForm(t *testing.T, forms *Forms, l model.Layout) storage.Form {
	t.Helper()
	ctx := userCtx("u1")
	form, err := forms.Create(ctx, CreateFormInput{Name: "Contact"})
	require.NoError(t, err)
	require.NoError(t, forms.SaveContent(ctx, form.ID, l))
	form, err = forms.Publish(ctx, form.ID)
	require.NoError(t, err)
	return form
}

func contactLayout(t *testing.T) model.Layout {
	return testsupport.ContactLayout(t)
}
