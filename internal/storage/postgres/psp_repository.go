package postgres

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/veldpay/methods-server/internal/paymentmethod"
	"github.com/veldpay/methods-server/internal/psp"
)

// PSPRepository implements the psp.Repository interface using PostgreSQL
type PSPRepository struct {
	db *pgxpool.Pool
}

var _ psp.Repository = (*PSPRepository)(nil)

// GetByFilter retrieves multiple PSPs following a filter, ordered by their code
func (repo *PSPRepository) GetByFilter(ctx context.Context, filter *psp.Filter) ([]*psp.PSP, error) {
	query := squirrel.Select("*").From("psps").OrderBy("code")
	if filter.Amount != nil {
		query = query.Where(squirrel.LtOrEq{"min_amount": *filter.Amount}).
			Where(squirrel.GtOrEq{"max_amount": *filter.Amount})
	}
	if filter.Language != nil {
		query = query.Where(squirrel.Eq{"language": *filter.Language})
	}
	if filter.TypeCode != nil {
		query = query.Where(squirrel.Eq{"type_code": *filter.TypeCode})
	}
	sql, vals, err := query.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := repo.db.Query(ctx, sql, vals...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []*psp.PSP{}, nil
		}
		return nil, err
	}
	objs := []*psp.PSP{}
	for rows.Next() {
		obj, err := repo.rowToPSP(rows)
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}

	return objs, nil
}

// ReplaceAll atomically replaces the whole PSP catalog with a new snapshot
func (repo *PSPRepository) ReplaceAll(ctx context.Context, psps []*psp.PSP) error {
	txn, err := repo.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer txn.Rollback(ctx)

	if _, err := txn.Exec(ctx, "DELETE FROM psps"); err != nil {
		return err
	}
	for _, obj := range psps {
		_, err := txn.Exec(ctx,
			"INSERT INTO psps VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) ON CONFLICT DO NOTHING",
			obj.Code, obj.TypeCode, obj.ChannelCode, obj.Language, obj.Status.String(),
			obj.BusinessName, obj.BrokerName, obj.Description, obj.MinAmount, obj.MaxAmount, obj.FixedCost,
		)
		if err != nil {
			return err
		}
	}

	return txn.Commit(ctx)
}

func (repo *PSPRepository) rowToPSP(row pgx.Row) (*psp.PSP, error) {
	obj := new(psp.PSP)
	var status string
	err := row.Scan(
		&obj.Code, &obj.TypeCode, &obj.ChannelCode, &obj.Language, &status,
		&obj.BusinessName, &obj.BrokerName, &obj.Description, &obj.MinAmount, &obj.MaxAmount, &obj.FixedCost,
	)
	if err != nil {
		return nil, err
	}
	parsed, err := paymentmethod.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	obj.Status = parsed
	return obj, nil
}
