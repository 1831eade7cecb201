package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/amrit/lexiq/internal/proficiency"
)

const insertRecordSQL = `
	INSERT OR IGNORE INTO proficiency_records
		(student_id, level, scope_key, alpha, beta, mean_ability,
		 confidence, sample_count, forgetting_rate, last_updated)
	VALUES (:student_id, :level, :scope_key, :alpha, :beta, :mean_ability,
		:confidence, :sample_count, :forgetting_rate, :last_updated)`

const saveRecordSQL = `
	INSERT INTO proficiency_records
		(student_id, level, scope_key, alpha, beta, mean_ability,
		 confidence, sample_count, forgetting_rate, last_updated)
	VALUES (:student_id, :level, :scope_key, :alpha, :beta, :mean_ability,
		:confidence, :sample_count, :forgetting_rate, :last_updated)
	ON CONFLICT (student_id, level, scope_key) DO UPDATE SET
		alpha = excluded.alpha,
		beta = excluded.beta,
		mean_ability = excluded.mean_ability,
		confidence = excluded.confidence,
		sample_count = excluded.sample_count,
		forgetting_rate = excluded.forgetting_rate,
		last_updated = excluded.last_updated`

// recordQueries holds the query set shared by the repo and its
// transaction view. q is either the *sqlx.DB or an open *sqlx.Tx.
type recordQueries struct {
	q   sqlx.ExtContext
	cfg proficiency.Config
}

func (r recordQueries) get(ctx context.Context, studentID string, level proficiency.Level, scopeKey string) (*proficiency.Record, error) {
	var rec proficiency.Record
	err := sqlx.GetContext(ctx, r.q, &rec,
		`SELECT * FROM proficiency_records
		 WHERE student_id = ? AND level = ? AND scope_key = ?`,
		studentID, level, scopeKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, &StorageError{Op: "get record", Err: err}
	}
	return &rec, nil
}

func (r recordQueries) getOrCreate(ctx context.Context, studentID string, level proficiency.Level, scopeKey string) (*proficiency.Record, error) {
	rec, err := r.get(ctx, studentID, level, scopeKey)
	if err != nil || rec != nil {
		return rec, err
	}

	fresh := proficiency.NewRecord(r.cfg, studentID, level, scopeKey)
	if _, err := sqlx.NamedExecContext(ctx, r.q, insertRecordSQL, fresh); err != nil {
		return nil, &StorageError{Op: "create record", Err: err}
	}
	return fresh, nil
}

func (r recordQueries) save(ctx context.Context, rec *proficiency.Record) error {
	if _, err := sqlx.NamedExecContext(ctx, r.q, saveRecordSQL, rec); err != nil {
		return &StorageError{Op: "save record", Err: err}
	}
	return nil
}

// proficiencyRepo is the SQLite-backed ProficiencyRepo.
type proficiencyRepo struct {
	db  *sqlx.DB
	cfg proficiency.Config
}

// ProficiencyRepo returns a ProficiencyRepo backed by this store,
// creating new records from the given prior configuration.
func (s *Store) ProficiencyRepo(cfg proficiency.Config) ProficiencyRepo {
	return &proficiencyRepo{db: s.db, cfg: cfg}
}

func (p *proficiencyRepo) queries() recordQueries {
	return recordQueries{q: p.db, cfg: p.cfg}
}

func (p *proficiencyRepo) Get(ctx context.Context, studentID string, level proficiency.Level, scopeKey string) (*proficiency.Record, error) {
	return p.queries().get(ctx, studentID, level, scopeKey)
}

func (p *proficiencyRepo) GetOrCreate(ctx context.Context, studentID string, level proficiency.Level, scopeKey string) (*proficiency.Record, error) {
	return p.queries().getOrCreate(ctx, studentID, level, scopeKey)
}

func (p *proficiencyRepo) Save(ctx context.Context, rec *proficiency.Record) error {
	return p.queries().save(ctx, rec)
}

func (p *proficiencyRepo) BulkInitialize(ctx context.Context, studentID, moduleID, domain string, itemIDs []string) error {
	return p.InTx(ctx, studentID, func(tx Txn) error {
		if _, err := tx.GetOrCreate(ctx, studentID, proficiency.LevelDomain, domain); err != nil {
			return err
		}
		if _, err := tx.GetOrCreate(ctx, studentID, proficiency.LevelModule, moduleID); err != nil {
			return err
		}
		for _, itemID := range itemIDs {
			scope := proficiency.ItemScopeKey(moduleID, itemID)
			if _, err := tx.GetOrCreate(ctx, studentID, proficiency.LevelItem, scope); err != nil {
				return err
			}
		}
		return nil
	})
}

func (p *proficiencyRepo) ItemsUnderModule(ctx context.Context, studentID, moduleID string) ([]*proficiency.Record, error) {
	var recs []*proficiency.Record
	err := sqlx.SelectContext(ctx, p.db, &recs,
		`SELECT * FROM proficiency_records
		 WHERE student_id = ? AND level = ? AND scope_key LIKE ?
		 ORDER BY scope_key`,
		studentID, proficiency.LevelItem, moduleID+"/%")
	if err != nil {
		return nil, &StorageError{Op: "items under module", Err: err}
	}
	return recs, nil
}

func (p *proficiencyRepo) AllForStudent(ctx context.Context, studentID string) ([]*proficiency.Record, error) {
	var recs []*proficiency.Record
	err := sqlx.SelectContext(ctx, p.db, &recs,
		`SELECT * FROM proficiency_records
		 WHERE student_id = ?
		 ORDER BY level, scope_key`,
		studentID)
	if err != nil {
		return nil, &StorageError{Op: "all for student", Err: err}
	}
	return recs, nil
}

func (p *proficiencyRepo) Reset(ctx context.Context, studentID string) error {
	fresh := proficiency.NewRecord(p.cfg, studentID, proficiency.LevelModule, "reset")
	_, err := p.db.ExecContext(ctx,
		`UPDATE proficiency_records SET
			alpha = ?, beta = ?, mean_ability = ?, confidence = ?,
			sample_count = 0, last_updated = ?
		 WHERE student_id = ?`,
		fresh.Alpha, fresh.Beta, fresh.MeanAbility, fresh.Confidence,
		fresh.LastUpdated, studentID)
	if err != nil {
		return &StorageError{Op: "reset student", Err: err}
	}
	return nil
}

func (p *proficiencyRepo) InTx(ctx context.Context, studentID string, fn func(tx Txn) error) error {
	_ = studentID // the single SQLite writer already serializes students
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return &StorageError{Op: "begin tx", Err: err}
	}

	if err := fn(&sqlTxn{recordQueries{q: tx, cfg: p.cfg}}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return &StorageError{Op: "commit tx", Err: err}
	}
	return nil
}

// sqlTxn adapts recordQueries over an open transaction to the Txn
// interface.
type sqlTxn struct {
	recordQueries
}

func (t *sqlTxn) GetOrCreate(ctx context.Context, studentID string, level proficiency.Level, scopeKey string) (*proficiency.Record, error) {
	return t.getOrCreate(ctx, studentID, level, scopeKey)
}

func (t *sqlTxn) Save(ctx context.Context, rec *proficiency.Record) error {
	return t.save(ctx, rec)
}
