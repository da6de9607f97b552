package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"syntra-pos/internal/database"
)

// SQLBackend keeps documents as rows of the documents table.
type SQLBackend struct {
	db *gorm.DB
}

func NewSQLBackend(db *gorm.DB) (*SQLBackend, error) {
	if err := database.MigrateDocumentDB(db); err != nil {
		return nil, err
	}
	return &SQLBackend{db: db}, nil
}

func (b *SQLBackend) Read(ctx context.Context, name string) ([]byte, error) {
	var doc database.Document
	err := b.db.WithContext(ctx).Where("name = ?", name).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(doc.Body), nil
}

func (b *SQLBackend) Write(ctx context.Context, name string, data []byte) error {
	doc := database.Document{
		Name:      name,
		Body:      string(data),
		UpdatedAt: time.Now(),
	}
	return b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
	}).Create(&doc).Error
}

func (b *SQLBackend) Name() string {
	return b.db.Dialector.Name()
}

func (b *SQLBackend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
