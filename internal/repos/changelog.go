package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/contacts-backend/internal/logger"
	"github.com/yungbote/contacts-backend/internal/types"
)

type ChangeLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entries []*types.ChangeLog) error
	ListByContactID(ctx context.Context, tx *gorm.DB, contactID int64) ([]*types.ChangeLog, error)
	DeleteByContactID(ctx context.Context, tx *gorm.DB, contactID int64) error
}

type changeLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChangeLogRepo(db *gorm.DB, baseLog *logger.Logger) ChangeLogRepo {
	repoLog := baseLog.With("repo", "ChangeLogRepo")
	return &changeLogRepo{db: db, log: repoLog}
}

func (clr *changeLogRepo) Create(ctx context.Context, tx *gorm.DB, entries []*types.ChangeLog) error {
	transaction := tx
	if transaction == nil {
		transaction = clr.db
	}

	if len(entries) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&entries).Error
}

func (clr *changeLogRepo) ListByContactID(ctx context.Context, tx *gorm.DB, contactID int64) ([]*types.ChangeLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = clr.db
	}

	var results []*types.ChangeLog
	if err := transaction.WithContext(ctx).
		Where("contact_id = ?", contactID).
		Order("changed_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// DeleteByContactID exists only for the contact-delete cascade. Change-log
// rows are never removed on any other path.
func (clr *changeLogRepo) DeleteByContactID(ctx context.Context, tx *gorm.DB, contactID int64) error {
	transaction := tx
	if transaction == nil {
		transaction = clr.db
	}
	return transaction.WithContext(ctx).
		Where("contact_id = ?", contactID).
		Delete(&types.ChangeLog{}).Error
}
