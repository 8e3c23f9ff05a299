package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/vitrine/vitrine-backend/internal/app/repository"
	"github.com/vitrine/vitrine-backend/pkg/logger"
)

// FileSweeper periodically purges file rows nothing references anymore.
// Uploads commit to storage before the owning aggregate commits to the
// database, so a failed aggregate write can leave a file row behind.
type FileSweeper struct {
	cron     *cron.Cron
	fileRepo repository.FileRepository
}

func NewFileSweeper(fileRepo repository.FileRepository) *FileSweeper {
	return &FileSweeper{
		cron:     cron.New(),
		fileRepo: fileRepo,
	}
}

// Start schedules the sweep daily at 03:00.
func (s *FileSweeper) Start() error {
	_, err := s.cron.AddFunc("0 3 * * *", func() {
		logger.Info("Starting orphan file sweep", nil)

		removed, err := s.fileRepo.DeleteOrphans()
		if err != nil {
			logger.Error("Failed to sweep orphan files", err, nil)
			return
		}

		logger.Info("Orphan file sweep completed", map[string]interface{}{
			"removed": removed,
		})
	})

	if err != nil {
		logger.Error("Failed to add cron job for orphan file sweep", err, nil)
		return err
	}

	s.cron.Start()
	logger.Info("File sweeper started (daily at 3:00 AM)", nil)

	return nil
}

func (s *FileSweeper) Stop() {
	s.cron.Stop()
	logger.Info("File sweeper stopped", nil)
}
