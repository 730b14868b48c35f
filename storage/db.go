// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package storage persists simulation result tables in a SQL
// database, so that reports can be regenerated without rerunning the
// simulations that produced them.
package storage

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"text/template"
	"time"

	"golang.org/x/simstat/simfmt"
)

// DB is a handle to a result database. It's safe for concurrent use
// by multiple goroutines.
type DB struct {
	sql *sql.DB
	// prepared statements
	insertRun  *sql.Stmt
	insertData *sql.Stmt
}

// Open creates a DB backed by a SQL database. The parameters are the
// same as the parameters for sql.Open. Only sqlite3 and mysql are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func Open(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Dataset VARCHAR(255),
	Uploaded DATETIME
);
CREATE TABLE IF NOT EXISTS RunData (
	RunID BIGINT UNSIGNED,
	Content BLOB,
	PRIMARY KEY (RunID),
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS RunsDataset ON Runs(Dataset);
{{end}}
`))

func (db *DB) createTables(driverName string) error {
	if driverName == "sqlite3" {
		if _, err := db.sql.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return err
		}
	}
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertRun, err = db.sql.Prepare("INSERT INTO Runs (Dataset, Uploaded) VALUES (?, ?)")
	if err != nil {
		return err
	}
	db.insertData, err = db.sql.Prepare("INSERT INTO RunData (RunID, Content) VALUES (?, ?)")
	return err
}

// A Run identifies one stored result table.
type Run struct {
	ID       int64
	Dataset  string
	Uploaded time.Time
}

// InsertRun stores one result table under the named dataset and
// returns its run ID. The records are serialized with their schema
// header, so a run can only be read back with the schema it was
// written with.
func (db *DB) InsertRun(ctx context.Context, dataset string, records []simfmt.Record) (int64, error) {
	if len(records) == 0 {
		return 0, fmt.Errorf("dataset %q: no records to store", dataset)
	}
	var buf bytes.Buffer
	if err := simfmt.WriteCSV(&buf, ',', records); err != nil {
		return 0, err
	}

	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.StmtContext(ctx, db.insertRun).ExecContext(ctx, dataset, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if _, err := tx.StmtContext(ctx, db.insertData).ExecContext(ctx, id, buf.Bytes()); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// Runs lists the stored runs for a dataset, newest first. An empty
// dataset lists every run.
func (db *DB) Runs(ctx context.Context, dataset string) ([]Run, error) {
	q := "SELECT RunID, Dataset, Uploaded FROM Runs"
	var args []interface{}
	if dataset != "" {
		q += " WHERE Dataset = ?"
		args = append(args, dataset)
	}
	q += " ORDER BY RunID DESC"

	rows, err := db.sql.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Dataset, &r.Uploaded); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ReadRun reads a stored run back as records of the given schema.
// Validation failures surface as the same *simfmt.SchemaViolation
// errors a fresh read would produce.
func (db *DB) ReadRun(ctx context.Context, id int64, schema *simfmt.Schema) ([]simfmt.Record, error) {
	var content []byte
	err := db.sql.QueryRowContext(ctx, "SELECT Content FROM RunData WHERE RunID = ?", id).Scan(&content)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return simfmt.ReadCSV(bytes.NewReader(content), ',', schema, fmt.Sprintf("run %d", id))
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	for _, stmt := range []*sql.Stmt{db.insertRun, db.insertData} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return db.sql.Close()
}
