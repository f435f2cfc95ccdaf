package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/tally/internal/db"
)

// FaultyUoW runs real transactions but fails one write so tests can check
// that nothing from a half-finished save or alert insert survives.
//
// A write fails when it is the FailOnExec-th ExecContext of the transaction
// (counted from 1), or when its SQL touches FailOnTable. Reads pass through.
type FaultyUoW struct {
	DB          *sql.DB
	FailOnExec  int
	FailOnTable string
	Err         error

	// Execs counts the writes attempted by the last transaction.
	Execs int
}

func (u *FaultyUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	faulty := &faultyTx{DBTX: tx, uow: u}
	u.Execs = 0
	if err := fn(ctx, faulty); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type faultyTx struct {
	db.DBTX
	uow *FaultyUoW
}

func (f *faultyTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.uow.Execs++
	if f.uow.Execs == f.uow.FailOnExec {
		return nil, f.uow.Err
	}
	if f.uow.FailOnTable != "" && strings.Contains(query, f.uow.FailOnTable) {
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
