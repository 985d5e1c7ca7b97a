package arquivo

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recadastro/pkg/requestcontext"
)

func testService(t *testing.T) (*Service, *InMemoryStore) {
	t.Helper()
	store := NewInMemoryStore()
	return NewService(store, slog.New(slog.DiscardHandler)), store
}

func day(y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, time.UTC)
}

func TestServiceListIncludesWholeFinalDay(t *testing.T) {
	svc, store := testService(t)
	ctx := context.Background()

	late := &Arquivo{CodigoEscola: 42, NomeArquivo: "turma_a.txt", DataUpload: day(2026, time.January, 10, 23, 50, 0)}
	require.NoError(t, store.Save(ctx, late))

	arquivos, err := svc.List(ctx, ListFilter{
		CodigoEscola: 42,
		InicialData:  day(2026, time.January, 1, 0, 0, 0),
		FinalData:    day(2026, time.January, 10, 0, 0, 0),
	})
	require.NoError(t, err)
	require.Len(t, arquivos, 1)
	assert.Equal(t, "turma_a.txt", arquivos[0].NomeArquivo)
}

func TestServiceListFiltersBySchoolAndRange(t *testing.T) {
	svc, store := testService(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &Arquivo{CodigoEscola: 42, NomeArquivo: "dentro.txt", DataUpload: day(2026, time.March, 5, 10, 0, 0)}))
	require.NoError(t, store.Save(ctx, &Arquivo{CodigoEscola: 42, NomeArquivo: "antes.txt", DataUpload: day(2026, time.February, 28, 10, 0, 0)}))
	require.NoError(t, store.Save(ctx, &Arquivo{CodigoEscola: 99, NomeArquivo: "outra_escola.txt", DataUpload: day(2026, time.March, 5, 10, 0, 0)}))

	arquivos, err := svc.List(ctx, ListFilter{
		CodigoEscola: 42,
		InicialData:  day(2026, time.March, 1, 0, 0, 0),
		FinalData:    day(2026, time.March, 31, 0, 0, 0),
	})
	require.NoError(t, err)
	require.Len(t, arquivos, 1)
	assert.Equal(t, "dentro.txt", arquivos[0].NomeArquivo)
}

func TestServiceListValidation(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		filter ListFilter
	}{
		{"missing escola", ListFilter{InicialData: day(2026, time.March, 1, 0, 0, 0), FinalData: day(2026, time.March, 2, 0, 0, 0)}},
		{"missing dates", ListFilter{CodigoEscola: 42}},
		{"inverted range", ListFilter{CodigoEscola: 42, InicialData: day(2026, time.March, 2, 0, 0, 0), FinalData: day(2026, time.March, 1, 0, 0, 0)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.List(ctx, tc.filter)
			assert.Error(t, err)
		})
	}
}

func TestServiceRegisterDefaultsUploadTime(t *testing.T) {
	svc, _ := testService(t)
	now := day(2026, time.November, 20, 12, 0, 0)
	ctx := requestcontext.WithTime(context.Background(), now)

	a := &Arquivo{CodigoEscola: 42, NomeArquivo: "lote_1.txt", QuantidadeRegistro: 100, Aptos: 90}
	require.NoError(t, svc.Register(ctx, a))

	assert.NotZero(t, a.ID)
	assert.Equal(t, now, a.DataUpload)
	assert.Equal(t, now, a.FinalData)
}

func TestServiceRegisterValidation(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	assert.Error(t, svc.Register(ctx, nil))
	assert.Error(t, svc.Register(ctx, &Arquivo{NomeArquivo: "sem_escola.txt"}))
	assert.Error(t, svc.Register(ctx, &Arquivo{CodigoEscola: 42}))
}

func TestServiceGetByID(t *testing.T) {
	svc, store := testService(t)
	ctx := context.Background()

	saved := &Arquivo{CodigoEscola: 42, NomeArquivo: "lote_1.txt", DataUpload: day(2026, time.March, 5, 10, 0, 0)}
	require.NoError(t, store.Save(ctx, saved))

	got, err := svc.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.NomeArquivo, got.NomeArquivo)

	_, err = svc.GetByID(ctx, 9999)
	assert.Error(t, err)
}
