package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownTable is returned for export requests naming a table
// outside the whitelist.
var ErrUnknownTable = errors.New("unknown export table")

type exportSpec struct {
	columns       []string
	sessionScoped bool
}

// exportTables whitelists what CSV export may touch. Columns are listed
// explicitly so the export never leaks a column added later by accident.
var exportTables = map[string]exportSpec{
	"sessions": {
		columns: []string{"session_id", "session_name", "is_active", "created_at"},
	},
	"teams": {
		columns:       []string{"session_id", "team_name", "team_indication", "parent_name", "child_name", "created_at"},
		sessionScoped: true,
	},
	"game1_heights": {
		columns:       []string{"session_id", "team_name", "parent_height", "child_height", "submitted_at"},
		sessionScoped: true,
	},
	"game2_perimeter": {
		columns: []string{"session_id", "team_name", "parent_estimate", "child_estimate",
			"parent_delta", "child_delta", "parent_abs_delta", "child_abs_delta", "submitted_at"},
		sessionScoped: true,
	},
	"game3_memory": {
		columns: []string{"session_id", "team_name", "round_number", "correct_answer",
			"team_answer", "is_correct", "submitted_at"},
		sessionScoped: true,
	},
	"game4_clinical": {
		columns: []string{"session_id", "team_name", "parent_treatment", "child_treatment",
			"parent_before", "parent_after", "child_before", "child_after", "submitted_at"},
		sessionScoped: true,
	},
	"feedback": {
		columns:       []string{"session_id", "team_name", "overall_rating", "favorite_game", "comments", "submitted_at"},
		sessionScoped: true,
	},
	"secret_trial": {
		columns: []string{"team_name", "parent_treatment", "child_treatment",
			"placebo_before", "placebo_after", "medicine_before", "medicine_after"},
	},
}

// ExportableTables lists the tables CSV export accepts, for error messages.
func ExportableTables() []string {
	names := make([]string, 0, len(exportTables))
	for name := range exportTables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExportSession dumps every whitelisted table in one call, keyed by
// table name, for full-session backups.
func ExportSession(db *sql.DB, sessionID string) (map[string][][]string, error) {
	dump := make(map[string][][]string, len(exportTables))
	for table := range exportTables {
		records, err := ExportTable(db, table, sessionID)
		if err != nil {
			return nil, err
		}
		dump[table] = records
	}
	return dump, nil
}

// ExportTable dumps a whitelisted table as string records, header row
// first. Session-scoped tables are filtered to the given session;
// sessions and secret_trial ignore the filter.
func ExportTable(db *sql.DB, table, sessionID string) ([][]string, error) {
	spec, ok := exportTables[table]
	if !ok {
		return nil, ErrUnknownTable
	}

	query := `SELECT ` + strings.Join(spec.columns, ", ") + ` FROM ` + table
	args := []any{}
	if spec.sessionScoped {
		query += ` WHERE session_id = ?`
		args = append(args, sessionID)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to export %s: %w", table, err)
	}
	defer rows.Close()

	records := [][]string{spec.columns}
	for rows.Next() {
		values := make([]sql.NullString, len(spec.columns))
		dest := make([]any, len(values))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}

		record := make([]string, len(values))
		for i, v := range values {
			record[i] = v.String
		}
		records = append(records, record)
	}

	return records, rows.Err()
}
