package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/contacts-backend/internal/logger"
	"github.com/yungbote/contacts-backend/internal/types"
)

type TagRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tag *types.Tag) error
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Tag, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Tag, error)
	ListByContactID(ctx context.Context, tx *gorm.DB, contactID int64) ([]*types.Tag, error)
	ReplaceLinks(ctx context.Context, tx *gorm.DB, contactID int64, tagIDs []int64) error
	DeleteLinksByContactID(ctx context.Context, tx *gorm.DB, contactID int64) error
}

type tagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTagRepo(db *gorm.DB, baseLog *logger.Logger) TagRepo {
	repoLog := baseLog.With("repo", "TagRepo")
	return &tagRepo{db: db, log: repoLog}
}

func (tr *tagRepo) Create(ctx context.Context, tx *gorm.DB, tag *types.Tag) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	return transaction.WithContext(ctx).Create(tag).Error
}

func (tr *tagRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Tag, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var result types.Tag
	if err := transaction.WithContext(ctx).
		Where("name = ?", name).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (tr *tagRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Tag, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.Tag
	if err := transaction.WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *tagRepo) ListByContactID(ctx context.Context, tx *gorm.DB, contactID int64) ([]*types.Tag, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.Tag
	if err := transaction.WithContext(ctx).
		Joins("JOIN contact_tag_link ON contact_tag_link.tag_id = tag.id").
		Where("contact_tag_link.contact_id = ?", contactID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ReplaceLinks swaps the whole tag association of one contact for the given
// set. Full replace, not a merge.
func (tr *tagRepo) ReplaceLinks(ctx context.Context, tx *gorm.DB, contactID int64, tagIDs []int64) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	if err := transaction.WithContext(ctx).
		Where("contact_id = ?", contactID).
		Delete(&types.ContactTagLink{}).Error; err != nil {
		return err
	}

	if len(tagIDs) == 0 {
		return nil
	}

	links := make([]*types.ContactTagLink, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		links = append(links, &types.ContactTagLink{ContactID: contactID, TagID: tagID})
	}
	return transaction.WithContext(ctx).Create(&links).Error
}

func (tr *tagRepo) DeleteLinksByContactID(ctx context.Context, tx *gorm.DB, contactID int64) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	return transaction.WithContext(ctx).
		Where("contact_id = ?", contactID).
		Delete(&types.ContactTagLink{}).Error
}
