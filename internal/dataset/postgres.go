package dataset

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/drug-interaction-server/internal/domain"
)

// PostgresSource loads the dataset from a Postgres database. Enzymes and
// evidence use native text arrays; ordering follows the curated position
// column so graph builds are reproducible.
type PostgresSource struct {
	db  *pgxpool.Pool
	log *logrus.Logger
}

// NewPostgresSource creates a Postgres dataset source backed by the pool.
func NewPostgresSource(db *pgxpool.Pool, logger *logrus.Logger) *PostgresSource {
	return &PostgresSource{
		db:  db,
		log: logger,
	}
}

// LoadDrugs reads all drug rows in curation order.
func (p *PostgresSource) LoadDrugs(ctx context.Context) ([]domain.DrugNode, error) {
	query := `
		SELECT id, label, class, enzymes, protein_binding, half_life, molecular_weight
		FROM drugs
		ORDER BY position`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying drugs: %w", err)
	}
	defer rows.Close()

	var drugs []domain.DrugNode
	for rows.Next() {
		var d domain.DrugNode
		if err := rows.Scan(&d.ID, &d.Label, &d.Class, &d.Enzymes,
			&d.Properties.ProteinBinding, &d.Properties.HalfLife, &d.Properties.MolecularWeight); err != nil {
			return nil, fmt.Errorf("scanning drug row: %w", err)
		}
		drugs = append(drugs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating drug rows: %w", err)
	}

	p.log.WithField("count", len(drugs)).Debug("Loaded drugs from Postgres")
	return drugs, nil
}

// LoadInteractions reads all interaction rows in curation order.
func (p *PostgresSource) LoadInteractions(ctx context.Context) ([]domain.InteractionEdge, error) {
	query := `
		SELECT drug_a, drug_b, mechanism, severity, risk_score, evidence
		FROM interactions
		ORDER BY position`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying interactions: %w", err)
	}
	defer rows.Close()

	var interactions []domain.InteractionEdge
	for rows.Next() {
		var ix domain.InteractionEdge
		var severity string
		if err := rows.Scan(&ix.DrugA, &ix.DrugB, &ix.Mechanism, &severity, &ix.RiskScore, &ix.Evidence); err != nil {
			return nil, fmt.Errorf("scanning interaction row: %w", err)
		}
		ix.Severity = domain.Severity(severity)
		interactions = append(interactions, ix)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating interaction rows: %w", err)
	}

	p.log.WithField("count", len(interactions)).Debug("Loaded interactions from Postgres")
	return interactions, nil
}
