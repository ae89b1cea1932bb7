// Package callstore persists classified admission records across calls.
// It maintains three views: a per-(city, call) snapshot that is replaced
// wholesale every time a call is merged, a per-city cumulative store that
// only ever grows (one entry per enrollment id), and a full per-call dump.
package callstore

import (
	"context"
	"database/sql"
	"encoding/json"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// Indeterminate is the grouping key for records whose city could not be
// resolved. Snapshots and dumps keep such records; the cumulative city
// stores never do.
const Indeterminate = "indeterminado"

type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

type Entry struct {
	Enrollment string
	// empty when the record's city is unresolved
	City   string
	Record json.RawMessage
}

func (e Entry) groupKey() string {
	if e.City == "" {
		return Indeterminate
	}
	return e.City
}

type MergeRequest struct {
	Institution string
	Call        int
	Entries     []Entry
}

type MergeResult struct {
	// enrollment ids newly added to a cumulative city store
	Appended int
	// ids that were already present in their city store
	Skipped int
}

// Merge applies one confirmed call batch in a single transaction.
// Re-merging the same batch leaves the cumulative stores unchanged: the
// append is an insert that ignores conflicts on (institution, city,
// enrollment), which also defends against duplicate ids within the batch.
func (s Store) Merge(ctx context.Context, req MergeRequest) (MergeResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return MergeResult{}, err
	}
	defer tx.Rollback()

	groups := map[string][]Entry{}
	for _, e := range req.Entries {
		key := e.groupKey()
		groups[key] = append(groups[key], e)
	}

	for city, entries := range groups {
		_, err := tx.ExecContext(ctx,
			`DELETE FROM call_snapshots WHERE institution = ? AND city = ? AND call_number = ?`,
			req.Institution, city, req.Call,
		)
		if err != nil {
			return MergeResult{}, err
		}
		for _, e := range entries {
			_, err := tx.ExecContext(ctx,
				`INSERT OR REPLACE INTO call_snapshots (institution, city, call_number, enrollment, record)
				 VALUES (?, ?, ?, ?, ?)`,
				req.Institution, city, req.Call, e.Enrollment, string(e.Record),
			)
			if err != nil {
				return MergeResult{}, err
			}
		}
	}

	var result MergeResult
	for city, entries := range groups {
		if city == Indeterminate {
			continue
		}
		for _, e := range entries {
			res, err := tx.ExecContext(ctx,
				`INSERT INTO city_records (institution, city, enrollment, record)
				 VALUES (?, ?, ?, ?)
				 ON CONFLICT (institution, city, enrollment) DO NOTHING`,
				req.Institution, city, e.Enrollment, string(e.Record),
			)
			if err != nil {
				return MergeResult{}, err
			}
			appended, err := res.RowsAffected()
			if err != nil {
				return MergeResult{}, err
			}
			if appended > 0 {
				result.Appended++
			} else {
				result.Skipped++
			}
		}
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM call_dumps WHERE institution = ? AND call_number = ?`,
		req.Institution, req.Call,
	)
	if err != nil {
		return MergeResult{}, err
	}
	for _, e := range req.Entries {
		_, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO call_dumps (institution, call_number, enrollment, record)
			 VALUES (?, ?, ?, ?)`,
			req.Institution, req.Call, e.Enrollment, string(e.Record),
		)
		if err != nil {
			return MergeResult{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return MergeResult{}, err
	}
	return result, nil
}

type CityCount struct {
	City    string
	Records int
}

func (s Store) Cities(ctx context.Context, institution string) ([]CityCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT city, COUNT(*) FROM city_records WHERE institution = ? GROUP BY city ORDER BY city`,
		institution,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CityCount
	for rows.Next() {
		var c CityCount
		if err := rows.Scan(&c.City, &c.Records); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s Store) CityRecords(ctx context.Context, institution, city string) ([]json.RawMessage, error) {
	return s.queryRecords(ctx,
		`SELECT record FROM city_records WHERE institution = ? AND city = ? ORDER BY enrollment`,
		institution, city,
	)
}

func (s Store) CallSnapshot(ctx context.Context, institution, city string, call int) ([]json.RawMessage, error) {
	return s.queryRecords(ctx,
		`SELECT record FROM call_snapshots WHERE institution = ? AND city = ? AND call_number = ? ORDER BY enrollment`,
		institution, city, call,
	)
}

func (s Store) CallDump(ctx context.Context, institution string, call int) ([]json.RawMessage, error) {
	return s.queryRecords(ctx,
		`SELECT record FROM call_dumps WHERE institution = ? AND call_number = ? ORDER BY enrollment`,
		institution, call,
	)
}

func (s Store) queryRecords(ctx context.Context, query string, args ...any) ([]json.RawMessage, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []json.RawMessage
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return nil, err
		}
		out = append(out, json.RawMessage(record))
	}
	return out, rows.Err()
}
