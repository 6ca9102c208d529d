package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formbuilder/pkg/submission"
)

func TestPublic_UnpublishedIsNotFound(t *testing.T) {
	repo := newRepository(t)
	forms := NewForms(repo)
	public := NewPublic(repo)

	form, err := forms.Create(userCtx("u1"), CreateFormInput{Name: "Draft form"})
	require.NoError(t, err)

	_, err = public.Open(context.Background(), form.ShareURL)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = public.Submit(context.Background(), form.ShareURL, submission.Values{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPublic_OpenCountsVisits(t *testing.T) {
	repo := newRepository(t)
	forms := NewForms(repo)
	public := NewPublic(repo)
	form := publishedForm(t, forms, contactLayout(t))

	opened, err := public.Open(context.Background(), form.ShareURL)
	require.NoError(t, err)
	assert.Equal(t, "Contact", opened.Name)
	assert.Len(t, opened.Layout, 5)

	_, err = public.Form(context.Background(), form.ShareURL)
	require.NoError(t, err)

	got, err := forms.Get(userCtx("u1"), form.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Visits)
}

func TestPublic_SubmitValidates(t *testing.T) {
	repo := newRepository(t)
	forms := NewForms(repo)
	public := NewPublic(repo)
	form := publishedForm(t, forms, contactLayout(t))

	_, err := public.Submit(context.Background(), form.ShareURL, submission.Values{"name": "", "terms": "false"})
	require.ErrorIs(t, err, submission.ErrValidationFailed)

	var fieldErrs submission.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, map[string]string{"name": "is required", "terms": "must be checked"}, fieldErrs.ByElement())

	got, err := forms.Get(userCtx("u1"), form.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Submissions, "rejected submissions are not stored")

	cleaned, err := public.Submit(context.Background(), form.ShareURL, submission.Values{"name": "Ada", "terms": "true", "extra": "dropped"})
	require.NoError(t, err)
	assert.Equal(t, submission.Values{"name": "Ada", "email": "", "topic": "", "terms": "true"}, cleaned)
}
