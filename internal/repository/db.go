package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"hotel-booking-api/internal/apperror"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// DB wraps the gorm handle and applies the store-call timeout to every query
type DB struct {
	gorm    *gorm.DB
	timeout time.Duration
}

func NewDB(db *gorm.DB, timeout time.Duration) *DB {
	return &DB{gorm: db, timeout: timeout}
}

// session returns a handle bound to ctx, limited by the configured timeout
func (d *DB) session(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	if d.timeout <= 0 {
		return d.gorm.WithContext(ctx), func() {}
	}
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	return d.gorm.WithContext(ctx), cancel
}

func (d *DB) transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	db, cancel := d.session(ctx)
	defer cancel()
	return db.Transaction(fn)
}

func (d *DB) isMySQL() bool {
	return d.gorm.Dialector.Name() == "mysql"
}

// isDuplicateKey detects unique constraint violations for both supported drivers
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	// sqlite reports "UNIQUE constraint failed" without TranslateError
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

// lookupErr maps a record-not-found error to a NotFound with the given message
func lookupErr(op string, err error, notFound string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound("%s", notFound)
	}
	return apperror.Store(op, err)
}
