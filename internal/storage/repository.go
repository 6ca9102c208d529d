package storage

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a form does not exist, belongs to another
// user, or is not published for public access.
var ErrNotFound = errors.New("storage: not found")

// Repository persists forms and submissions with gorm.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// CreateForm stores a new empty form owned by userID with a fresh share URL.
func (r *Repository) CreateForm(ctx context.Context, userID, name, description string) (Form, error) {
	form := Form{
		UserID:      userID,
		Name:        name,
		Description: description,
		Content:     "[]",
		ShareURL:    uuid.NewString(),
	}
	if err := r.db.WithContext(ctx).Create(&form).Error; err != nil {
		return Form{}, fmt.Errorf("storage: create form: %w", err)
	}
	return form, nil
}

// GetForm returns form id if it belongs to userID.
func (r *Repository) GetForm(ctx context.Context, userID string, id uint) (Form, error) {
	var form Form
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&form).Error
	if err != nil {
		return Form{}, notFound(err)
	}
	return form, nil
}

// ListForms returns the forms of userID, newest first.
func (r *Repository) ListForms(ctx context.Context, userID string) ([]Form, error) {
	var forms []Form
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&forms).Error
	if err != nil {
		return nil, fmt.Errorf("storage: list forms: %w", err)
	}
	return forms, nil
}

// UpdateContent replaces the serialized layout of a form.
func (r *Repository) UpdateContent(ctx context.Context, userID string, id uint, content string) error {
	res := r.db.WithContext(ctx).
		Model(&Form{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("content", content)
	if res.Error != nil {
		return fmt.Errorf("storage: update content: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Publish marks a form as published.
func (r *Repository) Publish(ctx context.Context, userID string, id uint) (Form, error) {
	var form Form
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&form).Error; err != nil {
			return notFound(err)
		}
		form.Published = true
		return tx.Model(&form).Update("published", true).Error
	})
	if err != nil {
		return Form{}, err
	}
	return form, nil
}

// IncrementVisits counts a visit of a published form and returns it.
func (r *Repository) IncrementVisits(ctx context.Context, shareURL string) (Form, error) {
	var form Form
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("share_url = ? AND published = ?", shareURL, true).First(&form).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Model(&form).UpdateColumn("visits", gorm.Expr("visits + ?", 1)).Error; err != nil {
			return err
		}
		form.Visits++
		return nil
	})
	if err != nil {
		return Form{}, err
	}
	return form, nil
}

// FormByShareURL returns a published form without counting a visit.
func (r *Repository) FormByShareURL(ctx context.Context, shareURL string) (Form, error) {
	var form Form
	err := r.db.WithContext(ctx).
		Where("share_url = ? AND published = ?", shareURL, true).
		First(&form).Error
	if err != nil {
		return Form{}, notFound(err)
	}
	return form, nil
}

// AppendSubmission stores content for the published form behind shareURL and
// increments its submission counter in the same transaction.
func (r *Repository) AppendSubmission(ctx context.Context, shareURL, content string) (FormSubmission, error) {
	var sub FormSubmission
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var form Form
		if err := tx.Where("share_url = ? AND published = ?", shareURL, true).First(&form).Error; err != nil {
			return notFound(err)
		}
		sub = FormSubmission{FormID: form.ID, Content: content}
		if err := tx.Create(&sub).Error; err != nil {
			return err
		}
		return tx.Model(&form).UpdateColumn("submissions", gorm.Expr("submissions + ?", 1)).Error
	})
	if err != nil {
		return FormSubmission{}, err
	}
	return sub, nil
}

// ListSubmissions returns the submissions of a form owned by userID, newest
// first.
func (r *Repository) ListSubmissions(ctx context.Context, userID string, id uint) ([]FormSubmission, error) {
	if _, err := r.GetForm(ctx, userID, id); err != nil {
		return nil, err
	}
	var subs []FormSubmission
	err := r.db.WithContext(ctx).
		Where("form_id = ?", id).
		Order("created_at DESC, id DESC").
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("storage: list submissions: %w", err)
	}
	return subs, nil
}

// Stats sums visits and submissions over the forms of userID.
func (r *Repository) Stats(ctx context.Context, userID string) (Stats, error) {
	var totals struct {
		Visits      int
		Submissions int
	}
	err := r.db.WithContext(ctx).
		Model(&Form{}).
		Select("COALESCE(SUM(visits), 0) AS visits, COALESCE(SUM(submissions), 0) AS submissions").
		Where("user_id = ?", userID).
		Scan(&totals).Error
	if err != nil {
		return Stats{}, fmt.Errorf("storage: stats: %w", err)
	}

	stats := Stats{Visits: totals.Visits, Submissions: totals.Submissions}
	if stats.Visits > 0 {
		stats.SubmissionRate = math.Round(float64(stats.Submissions) / float64(stats.Visits) * 100)
	}
	stats.BounceRate = 100 - stats.SubmissionRate
	return stats, nil
}
