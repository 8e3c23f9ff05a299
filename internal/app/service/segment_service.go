package service

import (
	"errors"

	"github.com/vitrine/vitrine-backend/internal/app/model"
	"github.com/vitrine/vitrine-backend/internal/app/repository"
)

var ErrSegmentNotFound = errors.New("segment not found")

type SegmentService interface {
	List() ([]model.Segment, error)
	Create(description string) (*model.Segment, error)
}

type segmentService struct {
	segmentRepo repository.SegmentRepository
}

func NewSegmentService(segmentRepo repository.SegmentRepository) SegmentService {
	return &segmentService{segmentRepo: segmentRepo}
}

func (s *segmentService) List() ([]model.Segment, error) {
	return s.segmentRepo.FindAll()
}

func (s *segmentService) Create(description string) (*model.Segment, error) {
	segment := &model.Segment{Description: description}
	if err := s.segmentRepo.Create(segment); err != nil {
		return nil, err
	}
	return segment, nil
}
