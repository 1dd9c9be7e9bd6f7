package jobs

import (
	"fmt"
	"log"

	"FundFolioSaas/internal/serviceiface"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CronService struct {
	config map[string]interface{}
	db     *pgxpool.Pool
}

func NewCronService(cfg map[string]interface{}, db *pgxpool.Pool) serviceiface.Service {
	return &CronService{config: cfg, db: db}
}

func (s *CronService) Name() string {
	return "cron"
}

func (s *CronService) Start() error {
	log.Println("Starting cron service...")

	amfiConfig := NewDefaultConfig()
	if s.config != nil {
		if schedule, ok := s.config["scheme_schedule"].(string); ok && schedule != "" {
			amfiConfig.SchemeSchedule = schedule
		}
		if batchSize, ok := s.config["batch_size"].(int); ok && batchSize > 0 {
			amfiConfig.BatchSize = batchSize
		}
	}

	if err := RunAMFISchemeSync(amfiConfig, s.db); err != nil {
		return fmt.Errorf("failed to start AMFI scheme sync: %v", err)
	}
	log.Println("Cron service started, AMFI scheme sync scheduled")
	return nil
}

func (s *CronService) Stop() error {
	return nil
}
