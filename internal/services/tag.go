package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/yungbote/contacts-backend/internal/apierr"
	"github.com/yungbote/contacts-backend/internal/logger"
	"github.com/yungbote/contacts-backend/internal/repos"
	"github.com/yungbote/contacts-backend/internal/types"
)

type TagService interface {
	CreateTag(ctx context.Context, input types.TagCreateInput) (*types.TagView, error)
	ListTags(ctx context.Context) ([]*types.TagView, error)

	// Reconcile resolves raw tag names to persisted rows inside the caller's
	// transaction: trim, drop empties, exact-match dedupe, lookup-then-create.
	Reconcile(ctx context.Context, tx *gorm.DB, names []string) ([]*types.Tag, error)
}

type tagService struct {
	db       *gorm.DB
	log      *logger.Logger
	validate *validator.Validate
	tagRepo  repos.TagRepo
}

func NewTagService(db *gorm.DB, log *logger.Logger, validate *validator.Validate, tagRepo repos.TagRepo) TagService {
	serviceLog := log.With("service", "TagService")
	return &tagService{db: db, log: serviceLog, validate: validate, tagRepo: tagRepo}
}

func (ts *tagService) CreateTag(ctx context.Context, input types.TagCreateInput) (*types.TagView, error) {
	if err := ts.validate.Struct(input); err != nil {
		return nil, apierr.Validation("invalid tag: %v", err)
	}

	var created *types.Tag
	err := ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := ts.tagRepo.GetByName(ctx, tx, input.Name)
		if err != nil {
			return fmt.Errorf("error looking up tag: %w", err)
		}
		if existing != nil {
			return apierr.Conflict("tag %q already exists", input.Name)
		}
		tag := &types.Tag{Name: input.Name}
		if err := ts.tagRepo.Create(ctx, tx, tag); err != nil {
			// A concurrent transaction can win the insert between lookup and
			// create; the unique index turns that race into a conflict
			// instead of a second row.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apierr.Conflict("tag %q already exists", input.Name)
			}
			return fmt.Errorf("error creating tag: %w", err)
		}
		created = tag
		return nil
	})
	if err != nil {
		return nil, asAPIError(err)
	}
	return &types.TagView{ID: created.ID, Name: created.Name}, nil
}

func (ts *tagService) ListTags(ctx context.Context) ([]*types.TagView, error) {
	tags, err := ts.tagRepo.List(ctx, nil)
	if err != nil {
		return nil, asAPIError(fmt.Errorf("error listing tags: %w", err))
	}
	views := make([]*types.TagView, 0, len(tags))
	for _, tag := range tags {
		views = append(views, &types.TagView{ID: tag.ID, Name: tag.Name})
	}
	return views, nil
}

func (ts *tagService) Reconcile(ctx context.Context, tx *gorm.DB, names []string) ([]*types.Tag, error) {
	seen := make(map[string]struct{}, len(names))
	resolved := make([]*types.Tag, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		tag, err := ts.tagRepo.GetByName(ctx, tx, name)
		if err != nil {
			return nil, fmt.Errorf("error looking up tag %q: %w", name, err)
		}
		if tag == nil {
			tag = &types.Tag{Name: name}
			if err := ts.tagRepo.Create(ctx, tx, tag); err != nil {
				return nil, fmt.Errorf("error creating tag %q: %w", name, err)
			}
		}
		resolved = append(resolved, tag)
	}
	return resolved, nil
}
