package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/drug-interaction-server/internal/domain"
)

// SQLiteSource loads the dataset from a SQLite database. Enzymes are stored
// denormalized as a comma-separated column and evidence as one, which keeps
// the schema flat for file-based curated datasets.
type SQLiteSource struct {
	db *sql.DB
}

// NewSQLiteSource opens the SQLite dataset at dbPath.
func NewSQLiteSource(dbPath string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite dataset: %w", err)
	}
	return &SQLiteSource{db: db}, nil
}

// NewSQLiteSourceFromDB wraps an existing database handle, for tests.
func NewSQLiteSourceFromDB(db *sql.DB) *SQLiteSource {
	return &SQLiteSource{db: db}
}

// LoadDrugs reads all drug rows in curation order.
func (s *SQLiteSource) LoadDrugs(ctx context.Context) ([]domain.DrugNode, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, class, enzymes, protein_binding, half_life, molecular_weight
		FROM drugs
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("querying drugs: %w", err)
	}
	defer rows.Close()

	var drugs []domain.DrugNode
	for rows.Next() {
		var d domain.DrugNode
		var enzymes string
		if err := rows.Scan(&d.ID, &d.Label, &d.Class, &enzymes,
			&d.Properties.ProteinBinding, &d.Properties.HalfLife, &d.Properties.MolecularWeight); err != nil {
			return nil, fmt.Errorf("scanning drug row: %w", err)
		}
		d.Enzymes = splitList(enzymes)
		drugs = append(drugs, d)
	}
	return drugs, rows.Err()
}

// LoadInteractions reads all interaction rows in curation order.
func (s *SQLiteSource) LoadInteractions(ctx context.Context) ([]domain.InteractionEdge, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT drug_a, drug_b, mechanism, severity, risk_score, evidence
		FROM interactions
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("querying interactions: %w", err)
	}
	defer rows.Close()

	var interactions []domain.InteractionEdge
	for rows.Next() {
		var ix domain.InteractionEdge
		var severity, evidence string
		if err := rows.Scan(&ix.DrugA, &ix.DrugB, &ix.Mechanism, &severity, &ix.RiskScore, &evidence); err != nil {
			return nil, fmt.Errorf("scanning interaction row: %w", err)
		}
		ix.Severity = domain.Severity(severity)
		ix.Evidence = splitList(evidence)
		interactions = append(interactions, ix)
	}
	return interactions, rows.Err()
}

// Close closes the underlying database handle.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

func splitList(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
