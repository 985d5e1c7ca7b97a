package arquivo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"recadastro/pkg/requestcontext"
)

// Service applies the upload listing rules on top of a Store.
type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// List returns the uploads for a school whose data_upload falls inside the
// filter dates. The final date covers the whole day, so a filter ending on
// 2026-01-10 still matches an upload made at 23:50 that day.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Arquivo, error) {
	if filter.CodigoEscola <= 0 {
		return nil, fmt.Errorf("codigo escola is required")
	}
	if filter.InicialData.IsZero() || filter.FinalData.IsZero() {
		return nil, fmt.Errorf("inicial and final dates are required")
	}
	if filter.FinalData.Before(filter.InicialData) {
		return nil, fmt.Errorf("final date precedes inicial date")
	}

	start := startOfDay(filter.InicialData)
	end := endOfDay(filter.FinalData)

	arquivos, err := s.store.ListByEscolaAndPeriod(ctx, filter.CodigoEscola, start, end)
	if err != nil {
		return nil, fmt.Errorf("list arquivos for escola %d: %w", filter.CodigoEscola, err)
	}
	return arquivos, nil
}

// Register stores a new upload batch. A missing upload timestamp defaults to
// the request time.
func (s *Service) Register(ctx context.Context, a *Arquivo) error {
	if a == nil {
		return fmt.Errorf("arquivo is required")
	}
	if a.CodigoEscola <= 0 {
		return fmt.Errorf("codigo escola is required")
	}
	if a.NomeArquivo == "" {
		return fmt.Errorf("nome arquivo is required")
	}
	if a.DataUpload.IsZero() {
		a.DataUpload = requestcontext.Now(ctx)
	}
	if a.FinalData.IsZero() {
		a.FinalData = a.DataUpload
	}

	if err := s.store.Save(ctx, a); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "arquivo registered",
		"arquivo_id", a.ID, "codigo_escola", a.CodigoEscola, "registros", a.QuantidadeRegistro)
	return nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Arquivo, error) {
	return s.store.GetByID(ctx, id)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
