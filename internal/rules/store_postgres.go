package rules

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	id "canna-gate/pkg/domain"
	"canna-gate/pkg/platform/sentinel"
)

// PostgresLoader builds rule table snapshots from the jurisdiction_rules
// table. Rule authoring happens elsewhere; this loader only reads whole
// versions.
//
// Schema:
//
//	CREATE TABLE jurisdiction_rules (
//	    version               TEXT        NOT NULL,
//	    code                  TEXT        NOT NULL,
//	    legal_status          TEXT        NOT NULL,
//	    min_age               INT         NOT NULL,
//	    requires_medical_card BOOLEAN     NOT NULL,
//	    purchase_limits       JSONB       NOT NULL DEFAULT '{}',
//	    created_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    PRIMARY KEY (version, code)
//	);
type PostgresLoader struct {
	db *sql.DB
}

// NewPostgresLoader constructs a loader over an open connection pool.
func NewPostgresLoader(db *sql.DB) *PostgresLoader {
	return &PostgresLoader{db: db}
}

// OpenPostgres connects with the pgx stdlib driver and verifies the
// connection before returning.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open rules postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping rules postgres: %w", err)
	}
	return db, nil
}

// Load reads the most recent version in full. Loading all rows of one
// version keeps the swap atomic; there is no row-at-a-time refresh path.
func (l *PostgresLoader) Load(ctx context.Context) (*Table, error) {
	var version string
	err := l.db.QueryRowContext(ctx, `
		SELECT version FROM jurisdiction_rules
		ORDER BY created_at DESC, version DESC
		LIMIT 1
	`).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("resolve current rules version: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve current rules version: %w", err)
	}

	rows, err := l.db.QueryContext(ctx, `
		SELECT code, legal_status, min_age, requires_medical_card, purchase_limits
		FROM jurisdiction_rules
		WHERE version = $1
	`, version)
	if err != nil {
		return nil, fmt.Errorf("load rules version %s: %w", version, err)
	}
	defer rows.Close()

	var sets []RuleSet
	for rows.Next() {
		var (
			rawCode   string
			rawStatus string
			minAge    int
			requires  bool
			rawLimits []byte
		)
		if err := rows.Scan(&rawCode, &rawStatus, &minAge, &requires, &rawLimits); err != nil {
			return nil, fmt.Errorf("scan rule row: %w", err)
		}

		code, err := id.ParseJurisdictionCode(rawCode)
		if err != nil {
			return nil, fmt.Errorf("rules version %s: %w", version, err)
		}
		status, err := id.ParseLegalStatus(rawStatus)
		if err != nil {
			return nil, fmt.Errorf("rules version %s, entry %s: %w", version, code, err)
		}

		var rawMap map[string]float64
		if err := json.Unmarshal(rawLimits, &rawMap); err != nil {
			return nil, fmt.Errorf("rules version %s, entry %s: parse limits: %w", version, code, err)
		}
		limits := make(map[id.Category]float64, len(rawMap))
		for name, limit := range rawMap {
			category, err := id.ParseCategory(name)
			if err != nil {
				return nil, fmt.Errorf("rules version %s, entry %s: %w", version, code, err)
			}
			limits[category] = limit
		}

		sets = append(sets, RuleSet{
			Code:                code,
			LegalStatus:         status,
			MinAge:              minAge,
			RequiresMedicalCard: requires,
			PurchaseLimits:      limits,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rule rows: %w", err)
	}

	return NewTable(version, sets)
}
