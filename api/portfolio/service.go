package portfolio

import "FundFolioSaas/internal/serviceiface"

type PortfolioService struct {
	config map[string]interface{}
}

func NewPortfolioService(cfg map[string]interface{}) serviceiface.Service {
	return &PortfolioService{config: cfg}
}

func (s *PortfolioService) Name() string {
	return "portfolio"
}

func (s *PortfolioService) Start() error {
	go StartPortfolioService()
	return nil
}

func (s *PortfolioService) Stop() error {
	return nil
}
