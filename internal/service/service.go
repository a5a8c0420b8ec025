package service

import (
	"github.com/tmervil/sere/internal/config"
	"github.com/tmervil/sere/internal/ledger"
	"github.com/tmervil/sere/internal/store"
)

type Service struct {
	Account     *AccountService
	Transaction *TransactionService
	Reporting   *ReportingService

	cfg *config.Config
}

func NewService(repo store.Repository, cfg *config.Config) *Service {
	// One engine per process: it owns the per-account locks, so every
	// mutation path must go through the same instance.
	engine := ledger.NewEngine()

	return &Service{
		Account:     NewAccountService(repo, cfg, engine),
		Transaction: NewTransactionService(repo, cfg, engine),
		Reporting:   NewReportingService(repo),
		cfg:         cfg,
	}
}

func (s *Service) Config() *config.Config {
	return s.cfg
}
