package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/contacts-backend/internal/logger"
	"github.com/yungbote/contacts-backend/internal/types"
)

type NoteRepo interface {
	Create(ctx context.Context, tx *gorm.DB, note *types.Note) error
	GetByID(ctx context.Context, tx *gorm.DB, noteID int64) (*types.Note, error)
	ListByContactID(ctx context.Context, tx *gorm.DB, contactID int64) ([]*types.Note, error)
	Delete(ctx context.Context, tx *gorm.DB, noteID int64) error
	DeleteByContactID(ctx context.Context, tx *gorm.DB, contactID int64) error
}

type noteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNoteRepo(db *gorm.DB, baseLog *logger.Logger) NoteRepo {
	repoLog := baseLog.With("repo", "NoteRepo")
	return &noteRepo{db: db, log: repoLog}
}

func (nr *noteRepo) Create(ctx context.Context, tx *gorm.DB, note *types.Note) error {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	return transaction.WithContext(ctx).Create(note).Error
}

func (nr *noteRepo) GetByID(ctx context.Context, tx *gorm.DB, noteID int64) (*types.Note, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}

	var result types.Note
	if err := transaction.WithContext(ctx).
		Where("id = ?", noteID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (nr *noteRepo) ListByContactID(ctx context.Context, tx *gorm.DB, contactID int64) ([]*types.Note, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}

	var results []*types.Note
	if err := transaction.WithContext(ctx).
		Where("contact_id = ?", contactID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (nr *noteRepo) Delete(ctx context.Context, tx *gorm.DB, noteID int64) error {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", noteID).
		Delete(&types.Note{}).Error
}

func (nr *noteRepo) DeleteByContactID(ctx context.Context, tx *gorm.DB, contactID int64) error {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	return transaction.WithContext(ctx).
		Where("contact_id = ?", contactID).
		Delete(&types.Note{}).Error
}
