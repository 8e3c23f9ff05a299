package repository

import (
	"github.com/vitrine/vitrine-backend/internal/app/model"
	"github.com/vitrine/vitrine-backend/pkg/logger"
	"gorm.io/gorm"
)

type SegmentRepository interface {
	Create(segment *model.Segment) error
	FindByID(id uint) (*model.Segment, error)
	FindAll() ([]model.Segment, error)
}

type segmentRepository struct {
	db *gorm.DB
}

func NewSegmentRepository(db *gorm.DB) SegmentRepository {
	return &segmentRepository{db: db}
}

func (r *segmentRepository) Create(segment *model.Segment) error {
	if err := r.db.Create(segment).Error; err != nil {
		logger.Error("Failed to create segment in database", err, map[string]interface{}{
			"description": segment.Description,
		})
		return err
	}
	return nil
}

func (r *segmentRepository) FindByID(id uint) (*model.Segment, error) {
	var segment model.Segment
	if err := r.db.First(&segment, id).Error; err != nil {
		return nil, err
	}
	return &segment, nil
}

func (r *segmentRepository) FindAll() ([]model.Segment, error) {
	var segments []model.Segment
	if err := r.db.Order("description ASC").Find(&segments).Error; err != nil {
		logger.Error("Failed to list segments", err)
		return nil, err
	}
	return segments, nil
}
