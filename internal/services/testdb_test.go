package services

import (
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/contacts-backend/internal/logger"
	"github.com/yungbote/contacts-backend/internal/repos"
	"github.com/yungbote/contacts-backend/internal/types"
	"github.com/yungbote/contacts-backend/internal/validate"
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

type testEnv struct {
	db             *gorm.DB
	contactRepo    repos.ContactRepo
	tagRepo        repos.TagRepo
	noteRepo       repos.NoteRepo
	changeLogRepo  repos.ChangeLogRepo
	tagService     TagService
	contactService ContactService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := newTestDB(t)
	log := newTestLogger()
	v := validate.New()

	contactRepo := repos.NewContactRepo(database, log)
	tagRepo := repos.NewTagRepo(database, log)
	noteRepo := repos.NewNoteRepo(database, log)
	changeLogRepo := repos.NewChangeLogRepo(database, log)
	tagService := NewTagService(database, log, v, tagRepo)
	contactService := NewContactService(database, log, v, contactRepo, tagRepo, noteRepo, changeLogRepo, tagService)

	return &testEnv{
		db:             database,
		contactRepo:    contactRepo,
		tagRepo:        tagRepo,
		noteRepo:       noteRepo,
		changeLogRepo:  changeLogRepo,
		tagService:     tagService,
		contactService: contactService,
	}
}
