package repository

//go:generate mockgen -source=import_audit.go -destination=mocks/import_audit.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/dsp-analytics-api/infrastructure/database"
	"github.com/vfg2006/dsp-analytics-api/internal/domain"
)

const (
	importsTable = "csv_imports ci"
)

type ImportAuditRepository interface {
	Create(ctx context.Context, audit *domain.ImportAudit) (int64, error)
	Finish(ctx context.Context, audit *domain.ImportAudit) error
	List(ctx context.Context, limit uint64) ([]*domain.ImportAudit, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type importAuditRepository struct {
	conn *database.Connection
}

func NewImportAuditRepository(conn *database.Connection) ImportAuditRepository {
	return &importAuditRepository{
		conn: conn,
	}
}

// Create registra o início de uma importação e devolve o ID gerado
func (r *importAuditRepository) Create(ctx context.Context, audit *domain.ImportAudit) (int64, error) {
	query, args, err := r.conn.Builder().
		Insert("csv_imports").
		Columns("filename", "distributor", "import_type", "status", "imported_by").
		Values(audit.Filename, audit.Distributor, audit.ImportType, string(audit.Status), audit.ImportedBy).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var id int64
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("erro ao registrar importação: %w", err)
	}

	audit.ID = id
	return id, nil
}

// Finish grava o estado terminal da importação (completed ou error)
func (r *importAuditRepository) Finish(ctx context.Context, audit *domain.ImportAudit) error {
	query, args, err := r.conn.Builder().
		Update("csv_imports").
		Set("status", string(audit.Status)).
		Set("rows_processed", audit.RowsProcessed).
		Set("rows_success", audit.RowsSuccess).
		Set("rows_error", audit.RowsError).
		Set("error_message", audit.ErrorMessage).
		Set("finished_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": audit.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar importação: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("importação %d não encontrada", audit.ID)
	}

	return nil
}

func (r *importAuditRepository) List(ctx context.Context, limit uint64) ([]*domain.ImportAudit, error) {
	builder := r.conn.Builder().
		Select("ci.id, ci.filename, ci.distributor, ci.import_type, ci.rows_processed, ci.rows_success, ci.rows_error, ci.status, ci.error_message, ci.imported_by, ci.imported_at, ci.finished_at").
		From(importsTable).
		OrderBy("ci.id DESC")

	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	audits := make([]*domain.ImportAudit, 0)
	for rows.Next() {
		audit := &domain.ImportAudit{}
		var distributor, importType *string
		var status string
		var importedAt, finishedAt dbTime

		if err := rows.Scan(
			&audit.ID,
			&audit.Filename,
			&distributor,
			&importType,
			&audit.RowsProcessed,
			&audit.RowsSuccess,
			&audit.RowsError,
			&status,
			&audit.ErrorMessage,
			&audit.ImportedBy,
			&importedAt,
			&finishedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear importação: %w", err)
		}

		if distributor != nil {
			audit.Distributor = *distributor
		}
		if importType != nil {
			audit.ImportType = *importType
		}
		audit.Status = domain.ImportStatus(status)
		audit.ImportedAt = importedAt.Time
		if finishedAt.Valid {
			finished := finishedAt.Time
			audit.FinishedAt = &finished
		}

		audits = append(audits, audit)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return audits, nil
}

func (r *importAuditRepository) DeleteAll(ctx context.Context) (int64, error) {
	query, args, err := r.conn.Builder().Delete("csv_imports").ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return result.RowsAffected()
}
