package repos

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/contacts-backend/internal/logger"
	"github.com/yungbote/contacts-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.AutoMigrate(
		&types.Contact{},
		&types.Tag{},
		&types.Note{},
		&types.ChangeLog{},
		&types.ContactTagLink{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return database
}

func newTestLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// seedContact inserts a contact with a staggered updated_at so list ordering
// is deterministic.
func seedContact(t *testing.T, db *gorm.DB, name, email, phone string, favorite bool, age time.Duration) *types.Contact {
	t.Helper()
	now := time.Now().UTC()
	contact := &types.Contact{
		Name:      name,
		Email:     email,
		Phone:     phone,
		Favorite:  favorite,
		CreatedAt: now.Add(-age),
		UpdatedAt: now.Add(-age),
	}
	if err := db.Create(contact).Error; err != nil {
		t.Fatalf("seed contact %s: %v", name, err)
	}
	return contact
}

func seedTagged(t *testing.T, db *gorm.DB, tagRepo TagRepo, contact *types.Contact, names ...string) {
	t.Helper()
	ctx := context.Background()
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		tag, err := tagRepo.GetByName(ctx, nil, name)
		if err != nil {
			t.Fatalf("get tag %s: %v", name, err)
		}
		if tag == nil {
			tag = &types.Tag{Name: name}
			if err := tagRepo.Create(ctx, nil, tag); err != nil {
				t.Fatalf("create tag %s: %v", name, err)
			}
		}
		ids = append(ids, tag.ID)
	}
	if err := tagRepo.ReplaceLinks(ctx, nil, contact.ID, ids); err != nil {
		t.Fatalf("link tags: %v", err)
	}
}

func listIDs(t *testing.T, repo ContactRepo, filter types.ContactListFilter) []int64 {
	t.Helper()
	if filter.Limit == 0 {
		filter.Limit = 50
	}
	contacts, err := repo.List(context.Background(), nil, filter)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	ids := make([]int64, 0, len(contacts))
	for _, contact := range contacts {
		ids = append(ids, contact.ID)
	}
	return ids
}

func TestListOrdersByUpdatedAtDesc(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger()
	repo := NewContactRepo(db, log)

	oldest := seedContact(t, db, "Oldest", "o@x.com", "+1 555-0001", false, 3*time.Hour)
	middle := seedContact(t, db, "Middle", "m@x.com", "+1 555-0002", false, 2*time.Hour)
	newest := seedContact(t, db, "Newest", "n@x.com", "+1 555-0003", false, 1*time.Hour)

	ids := listIDs(t, repo, types.ContactListFilter{})
	want := []int64{newest.ID, middle.ID, oldest.ID}
	if len(ids) != 3 {
		t.Fatalf("List = %v, want 3 contacts", ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("List order = %v, want %v", ids, want)
		}
	}
}

func TestListFavoriteFilter(t *testing.T) {
	db := newTestDB(t)
	repo := NewContactRepo(db, newTestLogger())

	fav := seedContact(t, db, "Fav", "f@x.com", "+1 555-0001", true, time.Hour)
	seedContact(t, db, "Plain", "p@x.com", "+1 555-0002", false, 2*time.Hour)

	yes := true
	ids := listIDs(t, repo, types.ContactListFilter{Favorite: &yes})
	if len(ids) != 1 || ids[0] != fav.ID {
		t.Fatalf("favorite filter = %v, want only %d", ids, fav.ID)
	}

	no := false
	ids = listIDs(t, repo, types.ContactListFilter{Favorite: &no})
	if len(ids) != 1 || ids[0] == fav.ID {
		t.Fatalf("favorite=false filter = %v, want only the plain contact", ids)
	}
}

func TestListTagFilterExactMatch(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger()
	repo := NewContactRepo(db, log)
	tagRepo := NewTagRepo(db, log)

	tagged := seedContact(t, db, "Tagged", "t@x.com", "+1 555-0001", false, time.Hour)
	other := seedContact(t, db, "Other", "o@x.com", "+1 555-0002", false, 2*time.Hour)
	seedTagged(t, db, tagRepo, tagged, "vip")
	seedTagged(t, db, tagRepo, other, "VIP")

	ids := listIDs(t, repo, types.ContactListFilter{Tag: "vip"})
	if len(ids) != 1 || ids[0] != tagged.ID {
		t.Fatalf("tag=vip = %v, want only %d (exact, case-sensitive)", ids, tagged.ID)
	}

	ids = listIDs(t, repo, types.ContactListFilter{Tag: "missing"})
	if len(ids) != 0 {
		t.Fatalf("tag=missing = %v, want empty", ids)
	}
}

func TestListFreeTextSearch(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger()
	repo := NewContactRepo(db, log)
	tagRepo := NewTagRepo(db, log)
	noteRepo := NewNoteRepo(db, log)
	ctx := context.Background()

	jo := seedContact(t, db, "Jo Lee", "jo@x.com", "+1 555-1234", false, time.Hour)
	bob := seedContact(t, db, "Bob", "bob@y.com", "+1 555-9876", false, 2*time.Hour)
	seedTagged(t, db, tagRepo, jo, "vip", "friend")
	if err := noteRepo.Create(ctx, nil, &types.Note{ContactID: jo.ID, Content: "vip customer since 2019", CreatedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("seed note: %v", err)
	}

	cases := []struct {
		name  string
		query string
		want  []int64
	}{
		{name: "matches_name_case_insensitive", query: "jo lEE", want: []int64{jo.ID}},
		{name: "matches_email", query: "bob@y", want: []int64{bob.ID}},
		{name: "matches_phone_substring", query: "555-98", want: []int64{bob.ID}},
		{name: "matches_tag_and_note_deduplicated", query: "vip", want: []int64{jo.ID}},
		{name: "matches_note_content", query: "since 2019", want: []int64{jo.ID}},
		{name: "no_match", query: "zzz", want: []int64{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ids := listIDs(t, repo, types.ContactListFilter{Query: tc.query})
			if len(ids) != len(tc.want) {
				t.Fatalf("q=%q = %v, want %v", tc.query, ids, tc.want)
			}
			for i := range tc.want {
				if ids[i] != tc.want[i] {
					t.Fatalf("q=%q = %v, want %v", tc.query, ids, tc.want)
				}
			}
		})
	}
}

func TestListCombinesFilters(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger()
	repo := NewContactRepo(db, log)
	tagRepo := NewTagRepo(db, log)

	match := seedContact(t, db, "Match", "match@x.com", "+1 555-0001", true, time.Hour)
	wrongFav := seedContact(t, db, "WrongFav", "wf@x.com", "+1 555-0002", false, 2*time.Hour)
	seedTagged(t, db, tagRepo, match, "vip")
	seedTagged(t, db, tagRepo, wrongFav, "vip")

	yes := true
	ids := listIDs(t, repo, types.ContactListFilter{Favorite: &yes, Tag: "vip", Query: "match"})
	if len(ids) != 1 || ids[0] != match.ID {
		t.Fatalf("combined filters = %v, want only %d", ids, match.ID)
	}
}

func TestListPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewContactRepo(db, newTestLogger())

	var seeded []int64
	for i := 0; i < 5; i++ {
		c := seedContact(t, db, fmt.Sprintf("C%d", i), fmt.Sprintf("c%d@x.com", i), "+1 555-0000", false, time.Duration(i)*time.Hour)
		seeded = append(seeded, c.ID)
	}

	page := listIDs(t, repo, types.ContactListFilter{Limit: 2})
	if len(page) != 2 || page[0] != seeded[0] || page[1] != seeded[1] {
		t.Fatalf("page 1 = %v, want first two newest %v", page, seeded[:2])
	}

	page = listIDs(t, repo, types.ContactListFilter{Limit: 2, Offset: 2})
	if len(page) != 2 || page[0] != seeded[2] || page[1] != seeded[3] {
		t.Fatalf("page 2 = %v, want %v", page, seeded[2:4])
	}

	page = listIDs(t, repo, types.ContactListFilter{Limit: 2, Offset: 4})
	if len(page) != 1 || page[0] != seeded[4] {
		t.Fatalf("page 3 = %v, want %v", page, seeded[4:])
	}
}
