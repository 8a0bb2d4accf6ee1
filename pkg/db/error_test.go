package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKeyErr(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "gorm", err: fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), want: true},
		{name: "pgconn", err: &pgconn.PgError{Code: "23505"}, want: true},
		{name: "pgconn other", err: &pgconn.PgError{Code: "23503"}, want: false},
		{name: "mysql", err: errors.New("Error 1062: Duplicate entry"), want: true},
		{name: "sqlite", err: errors.New("UNIQUE constraint failed: orders.order_number"), want: true},
		{name: "other", err: errors.New("connection refused"), want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsDuplicateKeyErr(tc.err))
		})
	}
}

func TestIsDuplicateOn(t *testing.T) {
	sqliteErr := errors.New("UNIQUE constraint failed: orders.order_number")
	assert.True(t, IsDuplicateOn(sqliteErr, "order_number"))
	assert.False(t, IsDuplicateOn(sqliteErr, "type"))

	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "ux_orders_order_number", Detail: "Key (order_number)=(ORD-1) already exists."}
	assert.True(t, IsDuplicateOn(pgErr, "order_number"))
	assert.True(t, IsDuplicateOn(pgErr, "ux_orders_order_number"))
}
