package arquivo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"recadastro/pkg/platform/sentinel"
)

// PostgresStore persists upload batches in the canonical PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const insertArquivoQuery = `
INSERT INTO arquivos (
	codigo_escola, nome_arquivo, data_upload, final_data,
	quantidade_registro, aptos, sem_documento, com_codigo_setps, com_erro
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`

const getArquivoQuery = `
SELECT id, codigo_escola, nome_arquivo, data_upload, final_data,
	quantidade_registro, aptos, sem_documento, com_codigo_setps, com_erro
FROM arquivos
WHERE id = $1`

const listArquivosQuery = `
SELECT id, codigo_escola, nome_arquivo, data_upload, final_data,
	quantidade_registro, aptos, sem_documento, com_codigo_setps, com_erro
FROM arquivos
WHERE codigo_escola = $1 AND data_upload BETWEEN $2 AND $3
ORDER BY data_upload`

func (s *PostgresStore) Save(ctx context.Context, a *Arquivo) error {
	if a == nil {
		return fmt.Errorf("arquivo is required")
	}
	err := s.db.QueryRowContext(ctx, insertArquivoQuery,
		a.CodigoEscola, a.NomeArquivo, a.DataUpload, a.FinalData,
		a.QuantidadeRegistro, a.Aptos, a.SemDocumento, a.ComCodigoSetps, a.ComErro,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("save arquivo: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetByID(ctx context.Context, id int64) (*Arquivo, error) {
	var a Arquivo
	err := s.db.QueryRowContext(ctx, getArquivoQuery, id).Scan(
		&a.ID, &a.CodigoEscola, &a.NomeArquivo, &a.DataUpload, &a.FinalData,
		&a.QuantidadeRegistro, &a.Aptos, &a.SemDocumento, &a.ComCodigoSetps, &a.ComErro,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get arquivo %d: %w", id, err)
	}
	return &a, nil
}

func (s *PostgresStore) ListByEscolaAndPeriod(ctx context.Context, codigoEscola int64, start, end time.Time) ([]Arquivo, error) {
	rows, err := s.db.QueryContext(ctx, listArquivosQuery, codigoEscola, start, end)
	if err != nil {
		return nil, fmt.Errorf("list arquivos: %w", err)
	}
	defer rows.Close()

	arquivos := make([]Arquivo, 0)
	for rows.Next() {
		var a Arquivo
		if err := rows.Scan(
			&a.ID, &a.CodigoEscola, &a.NomeArquivo, &a.DataUpload, &a.FinalData,
			&a.QuantidadeRegistro, &a.Aptos, &a.SemDocumento, &a.ComCodigoSetps, &a.ComErro,
		); err != nil {
			return nil, fmt.Errorf("scan arquivo: %w", err)
		}
		arquivos = append(arquivos, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list arquivos: %w", err)
	}
	return arquivos, nil
}
