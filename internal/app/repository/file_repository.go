package repository

import (
	"github.com/vitrine/vitrine-backend/internal/app/model"
	"github.com/vitrine/vitrine-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FileRepository interface {
	// Resolve returns the existing file whose (name, path) pair matches, or
	// creates one. Safe to call inside an ongoing transaction; pass the
	// transaction handle so the create rolls back with the aggregate write.
	Resolve(tx *gorm.DB, name, path string) (*model.File, error)
	FindByID(id uint) (*model.File, error)
	DeleteOrphans() (int64, error)
}

type fileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Resolve(tx *gorm.DB, name, path string) (*model.File, error) {
	if tx == nil {
		tx = r.db
	}

	// The unique index on (name, path) plus DO NOTHING makes the
	// resolve-or-create atomic: two racing requests converge on one row.
	file := &model.File{Name: name, Path: path}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}, {Name: "path"}},
		DoNothing: true,
	}).Create(file).Error
	if err != nil {
		logger.Error("Failed to create file in database", err, map[string]interface{}{
			"name": name,
			"path": path,
		})
		return nil, err
	}

	if file.ID != 0 {
		logger.Debug("File created in database", map[string]interface{}{
			"file_id": file.ID,
			"name":    name,
		})
		return file, nil
	}

	// Conflict: the pair already exists, reuse the stored row.
	var existing model.File
	if err := tx.Where("name = ? AND path = ?", name, path).First(&existing).Error; err != nil {
		return nil, err
	}

	logger.Debug("File resolved to existing row", map[string]interface{}{
		"file_id": existing.ID,
		"name":    name,
	})
	return &existing, nil
}

func (r *fileRepository) FindByID(id uint) (*model.File, error) {
	var file model.File
	if err := r.db.First(&file, id).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// DeleteOrphans removes file rows no business logo or cover, product image,
// or user avatar references anymore. Soft-deleted parents keep their files.
func (r *fileRepository) DeleteOrphans() (int64, error) {
	result := r.db.
		Where("id NOT IN (SELECT logo_id FROM businesses WHERE logo_id IS NOT NULL)").
		Where("id NOT IN (SELECT image_id FROM businesses WHERE image_id IS NOT NULL)").
		Where("id NOT IN (SELECT image_id FROM products WHERE image_id IS NOT NULL)").
		Where("id NOT IN (SELECT avatar_id FROM users WHERE avatar_id IS NOT NULL)").
		Delete(&model.File{})
	if result.Error != nil {
		logger.Error("Failed to delete orphaned files", result.Error)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
