package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/veldpay/methods-server/internal/paymentmethod"
)

// PaymentMethodRepository implements the paymentmethod.Repository interface using PostgreSQL
type PaymentMethodRepository struct {
	db *pgxpool.Pool
}

var _ paymentmethod.Repository = (*PaymentMethodRepository)(nil)

// GetByFilter retrieves all payment methods, ordered by their name.
// If amount is non-nil, only methods with at least one amount range bracketing it are returned.
// The amount check runs on the decoded ranges as they are stored as a JSON document.
func (repo *PaymentMethodRepository) GetByFilter(ctx context.Context, amount *int64) ([]*paymentmethod.Method, error) {
	sql, vals, err := squirrel.Select("*").From("payment_methods").OrderBy("name").
		PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := repo.db.Query(ctx, sql, vals...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []*paymentmethod.Method{}, nil
		}
		return nil, err
	}
	objs := []*paymentmethod.Method{}
	for rows.Next() {
		obj, err := repo.rowToMethod(rows)
		if err != nil {
			return nil, err
		}
		if amount != nil && !obj.AppliesTo(*amount) {
			continue
		}
		objs = append(objs, obj)
	}

	return objs, nil
}

// GetByID retrieves a payment method by its ID
func (repo *PaymentMethodRepository) GetByID(ctx context.Context, id uuid.UUID) (*paymentmethod.Method, error) {
	row := repo.db.QueryRow(ctx, "SELECT * FROM payment_methods WHERE method_id = $1", id)
	obj, err := repo.rowToMethod(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return obj, nil
}

// GetTypeCodes retrieves the payment type codes of all methods with the given status
func (repo *PaymentMethodRepository) GetTypeCodes(ctx context.Context, status paymentmethod.Status) ([]string, error) {
	rows, err := repo.db.Query(ctx, "SELECT DISTINCT type_code FROM payment_methods WHERE status = $1", status.String())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []string{}, nil
		}
		return nil, err
	}
	codes := []string{}
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, nil
}

// Create creates a new payment method.
// It returns paymentmethod.ErrNameInUse if a method with the same name already exists.
func (repo *PaymentMethodRepository) Create(ctx context.Context, create *paymentmethod.Create) (*paymentmethod.Method, error) {
	obj := &paymentmethod.Method{
		ID:          uuid.New(),
		Name:        create.Name,
		Description: create.Description,
		Status:      paymentmethod.StatusEnabled,
		TypeCode:    create.TypeCode,
		Asset:       create.Asset,
		Ranges:      create.Ranges,
	}

	ranges, err := json.Marshal(obj.Ranges)
	if err != nil {
		return nil, err
	}

	tag, err := repo.db.Exec(ctx,
		"INSERT INTO payment_methods VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT (name) DO NOTHING",
		obj.ID, obj.Name, obj.Description, obj.Status.String(), obj.TypeCode, obj.Asset, ranges,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, paymentmethod.ErrNameInUse
	}

	return obj, nil
}

// UpdateStatus updates the status of an existing payment method
func (repo *PaymentMethodRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status paymentmethod.Status) (*paymentmethod.Method, error) {
	_, err := repo.db.Exec(ctx, "UPDATE payment_methods SET status = $1 WHERE method_id = $2", status.String(), id)
	if err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, id)
}

func (repo *PaymentMethodRepository) rowToMethod(row pgx.Row) (*paymentmethod.Method, error) {
	obj := new(paymentmethod.Method)
	var status string
	var ranges []byte
	if err := row.Scan(&obj.ID, &obj.Name, &obj.Description, &status, &obj.TypeCode, &obj.Asset, &ranges); err != nil {
		return nil, err
	}
	parsed, err := paymentmethod.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	obj.Status = parsed
	if err := json.Unmarshal(ranges, &obj.Ranges); err != nil {
		return nil, err
	}
	return obj, nil
}
