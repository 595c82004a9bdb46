package postgres

import (
	"context"
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/veldpay/methods-server/internal/paymentmethod"
	"github.com/veldpay/methods-server/internal/psp"
	"github.com/veldpay/methods-server/internal/storage"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Driver represents the PostgreSQL storage driver implementation
type Driver struct {
	dsn            string
	db             *pgxpool.Pool
	paymentMethods *PaymentMethodRepository
	psps           *PSPRepository
}

var _ storage.Driver = (*Driver)(nil)

// New creates a new empty PostgreSQL storage driver.
// Use Initialize to open the database connection and initialize the repository implementations.
func New(dsn string) *Driver {
	return &Driver{
		dsn: dsn,
	}
}

// Initialize opens the database connection, migrates the database and initializes the repository implementations
func (driver *Driver) Initialize(ctx context.Context) error {
	// Perform SQL migrations
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	migrator, err := migrate.NewWithSourceInstance("iofs", source, driver.dsn)
	if err != nil {
		return err
	}
	defer migrator.Close()
	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	// Initialize the database connection pool
	pool, err := pgxpool.Connect(ctx, driver.dsn)
	if err != nil {
		return err
	}
	driver.db = pool

	// Initialize the repository implementations
	driver.paymentMethods = &PaymentMethodRepository{db: pool}
	driver.psps = &PSPRepository{db: pool}

	return nil
}

// PaymentMethods provides the PostgreSQL payment method repository implementation
func (driver *Driver) PaymentMethods() paymentmethod.Repository {
	return driver.paymentMethods
}

// PSPs provides the PostgreSQL PSP repository implementation
func (driver *Driver) PSPs() psp.Repository {
	return driver.psps
}

// Close discards the repository implementations and closes the database connection
func (driver *Driver) Close() {
	driver.paymentMethods = nil
	driver.psps = nil

	driver.db.Close()
	driver.db = nil
}
