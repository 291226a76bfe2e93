/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package store provides SQLite persistence for a day's reconstruction
// result: message counts, order lifecycle summaries, executions, and
// poisoned-book markers, written via prepared statements over a WAL-mode
// connection.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sixmd/imibook/runner"
)

const schema = `
CREATE TABLE IF NOT EXISTS days (
	date TEXT PRIMARY KEY,
	framing_errors INTEGER,
	decoding_errors INTEGER,
	reference_errors INTEGER,
	invariant_errors INTEGER,
	system_errors INTEGER
);
CREATE TABLE IF NOT EXISTS message_counts (
	date TEXT, book INTEGER, msg_type TEXT, count INTEGER
);
CREATE TABLE IF NOT EXISTS executions (
	date TEXT, book INTEGER, ts INTEGER, price INTEGER, size INTEGER,
	aggressor TEXT, best_bid INTEGER, best_ask INTEGER
);
CREATE TABLE IF NOT EXISTS order_stats (
	date TEXT, order_id INTEGER, book INTEGER, entry_time INTEGER,
	entry_price INTEGER, qty_entered INTEGER, qty_filled INTEGER,
	first_fill_time INTEGER, remove_time INTEGER
);
CREATE TABLE IF NOT EXISTS poisoned_books (
	date TEXT, book INTEGER, reason TEXT
);
`

const (
	insertDayQuery          = `INSERT OR REPLACE INTO days VALUES (?, ?, ?, ?, ?, ?)`
	insertMessageCountQuery = `INSERT INTO message_counts VALUES (?, ?, ?, ?)`
	insertExecutionQuery    = `INSERT INTO executions VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	insertOrderStatQuery    = `INSERT INTO order_stats VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	insertPoisonedBookQuery = `INSERT INTO poisoned_books VALUES (?, ?, ?)`
)

// ResultStore persists DayResult bundles to a SQLite file opened in WAL
// mode.
type ResultStore struct {
	db *sql.DB

	stmtDay          *sql.Stmt
	stmtMessageCount *sql.Stmt
	stmtExecution    *sql.Stmt
	stmtOrderStat    *sql.Stmt
	stmtPoisonedBook *sql.Stmt
}

// Open creates (or reuses) dbPath and prepares every insert statement
// once, so a day's transaction pays no SQL-parsing overhead per row.
func Open(dbPath string) (*ResultStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=1000")
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", dbPath, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}

	rs := &ResultStore{db: db}
	prep := func(q string) (*sql.Stmt, error) { return db.Prepare(q) }
	var perr error
	if rs.stmtDay, perr = prep(insertDayQuery); perr != nil {
		_ = db.Close()
		return nil, perr
	}
	if rs.stmtMessageCount, perr = prep(insertMessageCountQuery); perr != nil {
		_ = db.Close()
		return nil, perr
	}
	if rs.stmtExecution, perr = prep(insertExecutionQuery); perr != nil {
		_ = db.Close()
		return nil, perr
	}
	if rs.stmtOrderStat, perr = prep(insertOrderStatQuery); perr != nil {
		_ = db.Close()
		return nil, perr
	}
	if rs.stmtPoisonedBook, perr = prep(insertPoisonedBookQuery); perr != nil {
		_ = db.Close()
		return nil, perr
	}
	return rs, nil
}

// Close releases prepared statements and the underlying connection.
func (rs *ResultStore) Close() error {
	for _, s := range []*sql.Stmt{rs.stmtDay, rs.stmtMessageCount, rs.stmtExecution, rs.stmtOrderStat, rs.stmtPoisonedBook} {
		if s != nil {
			_ = s.Close()
		}
	}
	return rs.db.Close()
}

// StoreDay persists one day's result bundle in a single transaction:
// message counts, executions, order-lifecycle summaries, and poisoned
// book markers, plus the day-level error tally.
func (rs *ResultStore) StoreDay(res *runner.DayResult) error {
	tx, err := rs.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op once committed

	if _, err := tx.Stmt(rs.stmtDay).Exec(
		res.Date, res.Errors.Framing, res.Errors.Decoding,
		res.Errors.Reference, res.Errors.Invariant, res.Errors.System,
	); err != nil {
		return err
	}

	for book, bs := range res.Books {
		for msgType, count := range bs.MessageCounts {
			if _, err := tx.Stmt(rs.stmtMessageCount).Exec(res.Date, book, msgType, count); err != nil {
				return err
			}
		}
		for _, ex := range bs.Transactions {
			if _, err := tx.Stmt(rs.stmtExecution).Exec(
				res.Date, book, ex.Timestamp, ex.Price, ex.Size,
				string(ex.Aggressor), ex.BestBid, ex.BestAsk,
			); err != nil {
				return err
			}
		}
		for _, os := range bs.OrderStats {
			if _, err := tx.Stmt(rs.stmtOrderStat).Exec(
				res.Date, os.OrderID, book, os.EntryTime, os.EntryPrice,
				os.QuantityEntered, os.QuantityFilled, os.FirstFillTime, os.RemoveTime,
			); err != nil {
				return err
			}
		}
	}
	for book, reason := range res.PoisonedBooks {
		if _, err := tx.Stmt(rs.stmtPoisonedBook).Exec(res.Date, book, reason); err != nil {
			return err
		}
	}

	return tx.Commit()
}
