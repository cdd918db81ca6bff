/*
Package store keeps the history of analysis runs in a SQLite database
*/
package store

import (
	"context"
	"database/sql"
	_ "github.com/mattn/go-sqlite3"
	"go-ml.dev/pkg/bankloan/fu"
	"go-ml.dev/pkg/bankloan/report"
	"go-ml.dev/pkg/zorros/zorros"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	source TEXT NOT NULL,
	seed INTEGER NOT NULL,
	nrows INTEGER NOT NULL,
	features TEXT NOT NULL,
	train INTEGER NOT NULL,
	test INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS results (
	run_id TEXT NOT NULL,
	variant TEXT NOT NULL,
	model TEXT NOT NULL,
	tp INTEGER NOT NULL,
	fp INTEGER NOT NULL,
	tn INTEGER NOT NULL,
	fn INTEGER NOT NULL,
	recall REAL NOT NULL,
	specificity REAL NOT NULL,
	precision REAL NOT NULL,
	f1 REAL NOT NULL,
	accuracy REAL NOT NULL,
	auc REAL NOT NULL,
	PRIMARY KEY (run_id, variant, model),
	FOREIGN KEY (run_id) REFERENCES runs(id)
);
CREATE INDEX IF NOT EXISTS idx_results_recall ON results(recall);
`

/*
Store is the run history database
*/
type Store struct {
	db   *sql.DB
	path string
}

/*
Run is a stored run summary
*/
type Run struct {
	ID         string
	Created    time.Time
	Source     string
	Seed       int64
	Rows       int
	Features   []string
	Train      int
	Test       int
	BestModel  string // variant/model having the best recall, empty if the run has no results
	BestRecall float64
}

/*
Result is a stored test evaluation of one fitted model
*/
type Result struct {
	Variant     string
	Model       string
	TP, FP      int
	TN, FN      int
	Recall      float64
	Specificity float64
	Precision   float64
	F1          float64
	Accuracy    float64
	AUC         float64
}

/*
Open opens or creates the database file and its schema,
relative paths are resolved into the user cache directory
*/
func Open(path string) (*Store, error) {
	path = fu.CachePath(path)
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, zorros.Wrapf(err, "failed to create directory: %v", err.Error())
		}
	}
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, zorros.Wrapf(err, "failed to open database: %v", err.Error())
	}
	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, zorros.Wrapf(err, "failed to initialize schema: %v", err.Error())
	}
	return &Store{db: db, path: path}, nil
}

/*
LuckyOpen opens the database and panics on error
*/
func LuckyOpen(path string) *Store {
	s, err := Open(path)
	if err != nil {
		panic(zorros.Panic(err))
	}
	return s
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Close() error {
	return s.db.Close()
}

/*
SaveRun stores the run and every its result in one transaction
*/
func (s *Store) SaveRun(ctx context.Context, r *report.Report) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return zorros.Trace(err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created, source, seed, nrows, features, train, test) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created.UTC(), r.Source, r.Seed, r.Rows, strings.Join(r.Features, ","), r.Split.Train, r.Split.Test)
	if err != nil {
		return zorros.Wrapf(err, "failed to save run %v: %v", r.RunID, err.Error())
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO results (run_id, variant, model, tp, fp, tn, fn, recall, specificity, precision, f1, accuracy, auc)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return zorros.Trace(err)
	}
	defer stmt.Close()
	for _, f := range r.Fits {
		m := f.Test
		_, err = stmt.ExecContext(ctx, r.RunID, f.Variant, f.Model, m.TP, m.FP, m.TN, m.FN,
			m.Recall(), m.Specificity(), m.Precision(), m.F1(), m.Accuracy(), m.AUC)
		if err != nil {
			return zorros.Wrapf(err, "failed to save result %v/%v: %v", f.Variant, f.Model, err.Error())
		}
	}
	return tx.Commit()
}

/*
Runs returns stored runs, the latest first
*/
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.created, r.source, r.seed, r.nrows, r.features, r.train, r.test,
			COALESCE((SELECT x.variant || '/' || x.model FROM results x WHERE x.run_id = r.id
				ORDER BY x.recall DESC, x.f1 DESC LIMIT 1), ''),
			COALESCE((SELECT MAX(x.recall) FROM results x WHERE x.run_id = r.id), 0)
		FROM runs r ORDER BY r.created DESC, r.id`)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	defer rows.Close()
	runs := []Run{}
	for rows.Next() {
		var r Run
		var features string
		if err = rows.Scan(&r.ID, &r.Created, &r.Source, &r.Seed, &r.Rows, &features,
			&r.Train, &r.Test, &r.BestModel, &r.BestRecall); err != nil {
			return nil, zorros.Trace(err)
		}
		if features != "" {
			r.Features = strings.Split(features, ",")
		}
		runs = append(runs, r)
	}
	if err = rows.Err(); err != nil {
		return nil, zorros.Trace(err)
	}
	return runs, nil
}

/*
Results returns stored results of the run in the order they were reported
*/
func (s *Store) Results(ctx context.Context, runID string) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT variant, model, tp, fp, tn, fn, recall, specificity, precision, f1, accuracy, auc
		FROM results WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	defer rows.Close()
	r := []Result{}
	for rows.Next() {
		var x Result
		if err = rows.Scan(&x.Variant, &x.Model, &x.TP, &x.FP, &x.TN, &x.FN,
			&x.Recall, &x.Specificity, &x.Precision, &x.F1, &x.Accuracy, &x.AUC); err != nil {
			return nil, zorros.Trace(err)
		}
		r = append(r, x)
	}
	if err = rows.Err(); err != nil {
		return nil, zorros.Trace(err)
	}
	return r, nil
}
