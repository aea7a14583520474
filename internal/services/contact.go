package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/yungbote/contacts-backend/internal/apierr"
	"github.com/yungbote/contacts-backend/internal/audit"
	"github.com/yungbote/contacts-backend/internal/logger"
	"github.com/yungbote/contacts-backend/internal/repos"
	"github.com/yungbote/contacts-backend/internal/types"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type ContactService interface {
	Create(ctx context.Context, input types.ContactCreateInput) (*types.ContactView, error)
	Get(ctx context.Context, contactID int64) (*types.ContactView, error)
	List(ctx context.Context, filter types.ContactListFilter) ([]*types.ContactView, error)
	Update(ctx context.Context, contactID int64, input types.ContactUpdateInput) (*types.ContactView, error)
	Delete(ctx context.Context, contactID int64) error

	AddNote(ctx context.Context, contactID int64, input types.NoteCreateInput) (*types.NoteView, error)
	ListNotes(ctx context.Context, contactID int64) ([]*types.NoteView, error)
	DeleteNote(ctx context.Context, contactID, noteID int64) error

	GetHistory(ctx context.Context, contactID int64) ([]*types.ChangeLogView, error)
}

type contactService struct {
	db            *gorm.DB
	log           *logger.Logger
	validate      *validator.Validate
	contactRepo   repos.ContactRepo
	tagRepo       repos.TagRepo
	noteRepo      repos.NoteRepo
	changeLogRepo repos.ChangeLogRepo
	tagService    TagService
}

func NewContactService(
	db *gorm.DB,
	log *logger.Logger,
	validate *validator.Validate,
	contactRepo repos.ContactRepo,
	tagRepo repos.TagRepo,
	noteRepo repos.NoteRepo,
	changeLogRepo repos.ChangeLogRepo,
	tagService TagService,
) ContactService {
	serviceLog := log.With("service", "ContactService")
	return &contactService{
		db:            db,
		log:           serviceLog,
		validate:      validate,
		contactRepo:   contactRepo,
		tagRepo:       tagRepo,
		noteRepo:      noteRepo,
		changeLogRepo: changeLogRepo,
		tagService:    tagService,
	}
}

func (cs *contactService) Create(ctx context.Context, input types.ContactCreateInput) (*types.ContactView, error) {
	if err := cs.validate.Struct(input); err != nil {
		return nil, apierr.Validation("invalid contact: %v", err)
	}

	now := time.Now().UTC()
	contact := &types.Contact{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.Favorite != nil {
		contact.Favorite = *input.Favorite
	}

	var view *types.ContactView
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := cs.contactRepo.Create(ctx, tx, contact); err != nil {
			return fmt.Errorf("error creating contact: %w", err)
		}
		if len(input.Tags) > 0 {
			tags, err := cs.tagService.Reconcile(ctx, tx, input.Tags)
			if err != nil {
				return err
			}
			if err := cs.tagRepo.ReplaceLinks(ctx, tx, contact.ID, tagIDs(tags)); err != nil {
				return fmt.Errorf("error linking tags: %w", err)
			}
		}
		v, err := cs.buildView(ctx, tx, contact)
		if err != nil {
			return err
		}
		view = v
		return nil
	})
	if err != nil {
		return nil, asAPIError(err)
	}
	cs.log.Info("Contact created", "contact_id", contact.ID)
	return view, nil
}

func (cs *contactService) Get(ctx context.Context, contactID int64) (*types.ContactView, error) {
	contact, err := cs.contactRepo.GetByID(ctx, nil, contactID)
	if err != nil {
		return nil, asAPIError(fmt.Errorf("error fetching contact: %w", err))
	}
	if contact == nil {
		return nil, apierr.NotFound("contact %d not found", contactID)
	}
	view, err := cs.buildView(ctx, nil, contact)
	if err != nil {
		return nil, asAPIError(err)
	}
	return view, nil
}

func (cs *contactService) List(ctx context.Context, filter types.ContactListFilter) ([]*types.ContactView, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	contacts, err := cs.contactRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, asAPIError(fmt.Errorf("error listing contacts: %w", err))
	}

	views := make([]*types.ContactView, 0, len(contacts))
	for _, contact := range contacts {
		view, err := cs.buildView(ctx, nil, contact)
		if err != nil {
			return nil, asAPIError(err)
		}
		views = append(views, view)
	}
	return views, nil
}

func (cs *contactService) Update(ctx context.Context, contactID int64, input types.ContactUpdateInput) (*types.ContactView, error) {
	if err := cs.validate.Struct(input); err != nil {
		return nil, apierr.Validation("invalid contact update: %v", err)
	}

	var view *types.ContactView
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contact, err := cs.contactRepo.GetByID(ctx, tx, contactID)
		if err != nil {
			return fmt.Errorf("error fetching contact: %w", err)
		}
		if contact == nil {
			return apierr.NotFound("contact %d not found", contactID)
		}

		// Snapshot before touching the live row.
		before := snapshotTracked(contact)

		after := audit.FieldSet{}
		if input.Name != nil {
			contact.Name = *input.Name
			after["name"] = *input.Name
		}
		if input.Email != nil {
			contact.Email = *input.Email
			after["email"] = *input.Email
		}
		if input.Phone != nil {
			contact.Phone = *input.Phone
			after["phone"] = *input.Phone
		}
		if input.Favorite != nil {
			contact.Favorite = *input.Favorite
			after["favorite"] = strconv.FormatBool(*input.Favorite)
		}

		// Bumped on every update call, changed values or not.
		now := time.Now().UTC()
		contact.UpdatedAt = now

		if err := cs.contactRepo.Update(ctx, tx, contact); err != nil {
			return fmt.Errorf("error updating contact: %w", err)
		}

		if input.Tags != nil {
			tags, err := cs.tagService.Reconcile(ctx, tx, *input.Tags)
			if err != nil {
				return err
			}
			if err := cs.tagRepo.ReplaceLinks(ctx, tx, contact.ID, tagIDs(tags)); err != nil {
				return fmt.Errorf("error replacing tag links: %w", err)
			}
		}

		changes := audit.Diff(before, after)
		if len(changes) > 0 {
			entries := make([]*types.ChangeLog, 0, len(changes))
			for _, change := range changes {
				entries = append(entries, &types.ChangeLog{
					ContactID: contact.ID,
					Field:     change.Field,
					OldValue:  change.OldValue,
					NewValue:  change.NewValue,
					ChangedAt: now,
				})
			}
			if err := cs.changeLogRepo.Create(ctx, tx, entries); err != nil {
				return fmt.Errorf("error recording change log: %w", err)
			}
		}

		v, err := cs.buildView(ctx, tx, contact)
		if err != nil {
			return err
		}
		view = v
		return nil
	})
	if err != nil {
		return nil, asAPIError(err)
	}
	cs.log.Info("Contact updated", "contact_id", contactID)
	return view, nil
}

// Delete removes the contact and everything it owns: notes, change log,
// link rows. Tags are shared vocabulary and stay behind. The deletions run
// as one ordered sequence inside a single transaction.
func (cs *contactService) Delete(ctx context.Context, contactID int64) error {
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contact, err := cs.contactRepo.GetByID(ctx, tx, contactID)
		if err != nil {
			return fmt.Errorf("error fetching contact: %w", err)
		}
		if contact == nil {
			return apierr.NotFound("contact %d not found", contactID)
		}
		if err := cs.noteRepo.DeleteByContactID(ctx, tx, contactID); err != nil {
			return fmt.Errorf("error deleting notes: %w", err)
		}
		if err := cs.changeLogRepo.DeleteByContactID(ctx, tx, contactID); err != nil {
			return fmt.Errorf("error deleting change log: %w", err)
		}
		if err := cs.tagRepo.DeleteLinksByContactID(ctx, tx, contactID); err != nil {
			return fmt.Errorf("error deleting tag links: %w", err)
		}
		if err := cs.contactRepo.Delete(ctx, tx, contactID); err != nil {
			return fmt.Errorf("error deleting contact: %w", err)
		}
		return nil
	})
	if err != nil {
		return asAPIError(err)
	}
	cs.log.Info("Contact deleted", "contact_id", contactID)
	return nil
}

func (cs *contactService) AddNote(ctx context.Context, contactID int64, input types.NoteCreateInput) (*types.NoteView, error) {
	if err := cs.validate.Struct(input); err != nil {
		return nil, apierr.Validation("invalid note: %v", err)
	}

	var view *types.NoteView
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contact, err := cs.contactRepo.GetByID(ctx, tx, contactID)
		if err != nil {
			return fmt.Errorf("error fetching contact: %w", err)
		}
		if contact == nil {
			return apierr.NotFound("contact %d not found", contactID)
		}
		note := &types.Note{
			ContactID: contactID,
			Content:   input.Content,
			CreatedAt: time.Now().UTC(),
		}
		if err := cs.noteRepo.Create(ctx, tx, note); err != nil {
			return fmt.Errorf("error creating note: %w", err)
		}
		view = noteView(note)
		return nil
	})
	if err != nil {
		return nil, asAPIError(err)
	}
	return view, nil
}

func (cs *contactService) ListNotes(ctx context.Context, contactID int64) ([]*types.NoteView, error) {
	contact, err := cs.contactRepo.GetByID(ctx, nil, contactID)
	if err != nil {
		return nil, asAPIError(fmt.Errorf("error fetching contact: %w", err))
	}
	if contact == nil {
		return nil, apierr.NotFound("contact %d not found", contactID)
	}

	notes, err := cs.noteRepo.ListByContactID(ctx, nil, contactID)
	if err != nil {
		return nil, asAPIError(fmt.Errorf("error listing notes: %w", err))
	}
	views := make([]*types.NoteView, 0, len(notes))
	for _, note := range notes {
		views = append(views, noteView(note))
	}
	return views, nil
}

func (cs *contactService) DeleteNote(ctx context.Context, contactID, noteID int64) error {
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contact, err := cs.contactRepo.GetByID(ctx, tx, contactID)
		if err != nil {
			return fmt.Errorf("error fetching contact: %w", err)
		}
		if contact == nil {
			return apierr.NotFound("contact %d not found", contactID)
		}
		note, err := cs.noteRepo.GetByID(ctx, tx, noteID)
		if err != nil {
			return fmt.Errorf("error fetching note: %w", err)
		}
		// A note id that exists under a different contact is rejected the
		// same way as a missing one.
		if note == nil || note.ContactID != contactID {
			return apierr.NotFound("note %d not found", noteID)
		}
		if err := cs.noteRepo.Delete(ctx, tx, noteID); err != nil {
			return fmt.Errorf("error deleting note: %w", err)
		}
		return nil
	})
	if err != nil {
		return asAPIError(err)
	}
	return nil
}

func (cs *contactService) GetHistory(ctx context.Context, contactID int64) ([]*types.ChangeLogView, error) {
	contact, err := cs.contactRepo.GetByID(ctx, nil, contactID)
	if err != nil {
		return nil, asAPIError(fmt.Errorf("error fetching contact: %w", err))
	}
	if contact == nil {
		return nil, apierr.NotFound("contact %d not found", contactID)
	}

	entries, err := cs.changeLogRepo.ListByContactID(ctx, nil, contactID)
	if err != nil {
		return nil, asAPIError(fmt.Errorf("error listing change log: %w", err))
	}
	views := make([]*types.ChangeLogView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, &types.ChangeLogView{
			ID:        entry.ID,
			Field:     entry.Field,
			OldValue:  entry.OldValue,
			NewValue:  entry.NewValue,
			ChangedAt: entry.ChangedAt.UTC().Format(time.RFC3339),
		})
	}
	return views, nil
}

func (cs *contactService) buildView(ctx context.Context, tx *gorm.DB, contact *types.Contact) (*types.ContactView, error) {
	tags, err := cs.tagRepo.ListByContactID(ctx, tx, contact.ID)
	if err != nil {
		return nil, fmt.Errorf("error fetching contact tags: %w", err)
	}
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return &types.ContactView{
		ID:        contact.ID,
		Name:      contact.Name,
		Email:     contact.Email,
		Phone:     contact.Phone,
		Favorite:  contact.Favorite,
		Tags:      names,
		CreatedAt: contact.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: contact.UpdatedAt.UTC().Format(time.RFC3339),
	}, nil
}

func snapshotTracked(contact *types.Contact) audit.FieldSet {
	return audit.FieldSet{
		"name":     contact.Name,
		"email":    contact.Email,
		"phone":    contact.Phone,
		"favorite": strconv.FormatBool(contact.Favorite),
	}
}

func tagIDs(tags []*types.Tag) []int64 {
	ids := make([]int64, 0, len(tags))
	for _, tag := range tags {
		ids = append(ids, tag.ID)
	}
	return ids
}

func noteView(note *types.Note) *types.NoteView {
	return &types.NoteView{
		ID:        note.ID,
		Content:   note.Content,
		CreatedAt: note.CreatedAt.UTC().Format(time.RFC3339),
	}
}
