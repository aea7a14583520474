package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yungbote/contacts-backend/internal/logger"
	"github.com/yungbote/contacts-backend/internal/types"
	"github.com/yungbote/contacts-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	log.Info("Loading environment variables...")
	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "contacts", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	log.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		log.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.Contact{},
		&types.Tag{},
		&types.Note{},
		&types.ChangeLog{},
		&types.ContactTagLink{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}

	// The service deletes child rows explicitly inside the request
	// transaction; the FK cascades are the storage-level backstop that keeps
	// note/change_log/link rows from ever outliving their contact.
	s.log.Info("Configuring foreign key relationships for postgres tables...")
	for _, fk := range []struct {
		table  string
		name   string
		column string
		refs   string
	}{
		{table: "note", name: "fk_note_contact_id", column: "contact_id", refs: "contact"},
		{table: "change_log", name: "fk_change_log_contact_id", column: "contact_id", refs: "contact"},
		{table: "contact_tag_link", name: "fk_contact_tag_link_contact_id", column: "contact_id", refs: "contact"},
		{table: "contact_tag_link", name: "fk_contact_tag_link_tag_id", column: "tag_id", refs: "tag"},
	} {
		drop := fmt.Sprintf(`ALTER TABLE %q DROP CONSTRAINT IF EXISTS %q`, fk.table, fk.name)
		if err := s.db.Exec(drop).Error; err != nil {
			return fmt.Errorf("failed to reset %s: %w", fk.name, err)
		}
		add := fmt.Sprintf(
			`ALTER TABLE %q ADD CONSTRAINT %q FOREIGN KEY (%q) REFERENCES %q("id") ON DELETE CASCADE`,
			fk.table, fk.name, fk.column, fk.refs,
		)
		if err := s.db.Exec(add).Error; err != nil {
			return fmt.Errorf("failed to add %s: %w", fk.name, err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
