package service

import (
	"go.uber.org/zap"

	"github.com/spec-kit/au-connect/internal/events"
	"github.com/spec-kit/au-connect/internal/observability"
	"github.com/spec-kit/au-connect/internal/repository"
)

// LedgerDependencies bundles what the ledgers and the coordinator share.
type LedgerDependencies struct {
	Store      *repository.Store
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

func (d LedgerDependencies) dispatcher() events.Dispatcher {
	if d.Dispatcher == nil {
		return events.Nop()
	}
	return d.Dispatcher
}

func (d LedgerDependencies) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}
