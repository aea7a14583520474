package repos

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/contacts-backend/internal/logger"
	"github.com/yungbote/contacts-backend/internal/types"
)

type ContactRepo interface {
	Create(ctx context.Context, tx *gorm.DB, contact *types.Contact) error
	GetByID(ctx context.Context, tx *gorm.DB, contactID int64) (*types.Contact, error)
	Update(ctx context.Context, tx *gorm.DB, contact *types.Contact) error
	Delete(ctx context.Context, tx *gorm.DB, contactID int64) error
	List(ctx context.Context, tx *gorm.DB, filter types.ContactListFilter) ([]*types.Contact, error)
}

type contactRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContactRepo(db *gorm.DB, baseLog *logger.Logger) ContactRepo {
	repoLog := baseLog.With("repo", "ContactRepo")
	return &contactRepo{db: db, log: repoLog}
}

func (cr *contactRepo) Create(ctx context.Context, tx *gorm.DB, contact *types.Contact) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).Create(contact).Error
}

func (cr *contactRepo) GetByID(ctx context.Context, tx *gorm.DB, contactID int64) (*types.Contact, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var result types.Contact
	if err := transaction.WithContext(ctx).
		Where("id = ?", contactID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (cr *contactRepo) Update(ctx context.Context, tx *gorm.DB, contact *types.Contact) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).Save(contact).Error
}

func (cr *contactRepo) Delete(ctx context.Context, tx *gorm.DB, contactID int64) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", contactID).
		Delete(&types.Contact{}).Error
}

// List is the query engine: updated_at DESC ordering with optional favorite
// equality, tag membership and free-text predicates composed onto one
// statement. The free-text branch LEFT JOINs the multi-valued relations, so
// it must select DISTINCT to keep a contact with several matching notes or
// tags from appearing more than once.
func (cr *contactRepo) List(ctx context.Context, tx *gorm.DB, filter types.ContactListFilter) ([]*types.Contact, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	stmt := transaction.WithContext(ctx).Model(&types.Contact{})

	if filter.Favorite != nil {
		stmt = stmt.Where("contact.favorite = ?", *filter.Favorite)
	}

	if filter.Tag != "" {
		stmt = stmt.
			Joins("JOIN contact_tag_link ON contact_tag_link.contact_id = contact.id").
			Joins("JOIN tag ON tag.id = contact_tag_link.tag_id").
			Where("tag.name = ?", filter.Tag)
	}

	if filter.Query != "" {
		like := "%" + strings.ToLower(filter.Query) + "%"
		stmt = stmt.
			Joins("LEFT JOIN note ON note.contact_id = contact.id").
			Joins("LEFT JOIN contact_tag_link q_link ON q_link.contact_id = contact.id").
			Joins("LEFT JOIN tag q_tag ON q_tag.id = q_link.tag_id").
			Where(
				"LOWER(contact.name) LIKE ? OR LOWER(contact.email) LIKE ? OR LOWER(contact.phone) LIKE ? OR LOWER(q_tag.name) LIKE ? OR LOWER(note.content) LIKE ?",
				like, like, like, like, like,
			).
			Distinct("contact.*")
	}

	var results []*types.Contact
	if err := stmt.
		Order("contact.updated_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
