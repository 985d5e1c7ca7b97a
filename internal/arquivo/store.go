package arquivo

import (
	"context"
	"time"
)

type Store interface {
	Save(ctx context.Context, a *Arquivo) error
	GetByID(ctx context.Context, id int64) (*Arquivo, error)
	ListByEscolaAndPeriod(ctx context.Context, codigoEscola int64, start, end time.Time) ([]Arquivo, error)
}
