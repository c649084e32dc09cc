// Package repository provides Postgres-backed persistence for leads.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("lead not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Lead is the persisted lead record. The intelligence layer treats it as
// read-only; only the CRUD surface mutates it.
type Lead struct {
	ID              uuid.UUID
	OrganizationID  uuid.UUID
	Name            string
	Company         string
	Position        string
	Source          string
	Status          string
	Score           int
	Interactions    int
	LastContactAt   *time.Time
	NextActionAt    *time.Time
	Notes           *string
	CompanySize     *int
	EstimatedBudget *float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const leadColumns = `id, organization_id, name, company, position, source, status, score,
	interactions, last_contact_at, next_action_at, notes, company_size, estimated_budget,
	created_at, updated_at`

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	err := row.Scan(
		&lead.ID, &lead.OrganizationID, &lead.Name, &lead.Company, &lead.Position,
		&lead.Source, &lead.Status, &lead.Score, &lead.Interactions,
		&lead.LastContactAt, &lead.NextActionAt, &lead.Notes,
		&lead.CompanySize, &lead.EstimatedBudget,
		&lead.CreatedAt, &lead.UpdatedAt,
	)
	return lead, err
}

type CreateLeadParams struct {
	OrganizationID  uuid.UUID
	Name            string
	Company         string
	Position        string
	Source          string
	Status          string
	Score           int
	Interactions    int
	LastContactAt   *time.Time
	NextActionAt    *time.Time
	Notes           *string
	CompanySize     *int
	EstimatedBudget *float64
}

func (r *Repository) Create(ctx context.Context, params CreateLeadParams) (Lead, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO leads (
			organization_id, name, company, position, source, status, score,
			interactions, last_contact_at, next_action_at, notes, company_size, estimated_budget
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+leadColumns,
		params.OrganizationID, params.Name, params.Company, params.Position,
		params.Source, params.Status, params.Score, params.Interactions,
		params.LastContactAt, params.NextActionAt, params.Notes,
		params.CompanySize, params.EstimatedBudget,
	)
	lead, err := scanLead(row)
	if err != nil {
		return Lead{}, err
	}
	return lead, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID, organizationID uuid.UUID) (Lead, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		WHERE id = $1 AND organization_id = $2
	`, id, organizationID)
	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, ErrNotFound
		}
		return Lead{}, err
	}
	return lead, nil
}

type UpdateLeadParams struct {
	Name            *string
	Company         *string
	Position        *string
	Source          *string
	Status          *string
	Score           *int
	Interactions    *int
	LastContactAt   *time.Time
	LastContactSet  bool
	NextActionAt    *time.Time
	NextActionSet   bool
	Notes           *string
	NotesSet        bool
	CompanySize     *int
	EstimatedBudget *float64
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, organizationID uuid.UUID, params UpdateLeadParams) (Lead, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{id, organizationID}
	argIdx := 3

	addSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if params.Name != nil {
		addSet("name", *params.Name)
	}
	if params.Company != nil {
		addSet("company", *params.Company)
	}
	if params.Position != nil {
		addSet("position", *params.Position)
	}
	if params.Source != nil {
		addSet("source", *params.Source)
	}
	if params.Status != nil {
		addSet("status", *params.Status)
	}
	if params.Score != nil {
		addSet("score", *params.Score)
	}
	if params.Interactions != nil {
		addSet("interactions", *params.Interactions)
	}
	if params.LastContactSet {
		addSet("last_contact_at", params.LastContactAt)
	}
	if params.NextActionSet {
		addSet("next_action_at", params.NextActionAt)
	}
	if params.NotesSet {
		addSet("notes", params.Notes)
	}
	if params.CompanySize != nil {
		addSet("company_size", *params.CompanySize)
	}
	if params.EstimatedBudget != nil {
		addSet("estimated_budget", *params.EstimatedBudget)
	}

	query := fmt.Sprintf(`
		UPDATE leads SET %s
		WHERE id = $1 AND organization_id = $2
		RETURNING %s
	`, joinSets(sets), leadColumns)

	lead, err := scanLead(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, ErrNotFound
		}
		return Lead{}, err
	}
	return lead, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID, organizationID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1 AND organization_id = $2`, id, organizationID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListParams filters a lead listing. OrganizationID is mandatory for
// tenant isolation; all other filters are optional.
type ListParams struct {
	OrganizationID uuid.UUID
	Status         *string
	Source         *string
	Search         string
	MinScore       *int
}

func (r *Repository) List(ctx context.Context, params ListParams) ([]Lead, error) {
	whereClause, args := buildLeadListWhere(params)

	query := fmt.Sprintf(`
		SELECT %s
		FROM leads
		WHERE %s
		ORDER BY created_at DESC
	`, leadColumns, whereClause)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return leads, nil
}

func buildLeadListWhere(params ListParams) (string, []interface{}) {
	// Organization ID is always the first filter (mandatory for tenant isolation)
	whereClauses := []string{"organization_id = $1"}
	args := []interface{}{params.OrganizationID}
	argIdx := 2

	addClause := func(clause string, value interface{}) {
		whereClauses = append(whereClauses, fmt.Sprintf(clause, argIdx))
		args = append(args, value)
		argIdx++
	}

	if params.Status != nil {
		addClause("status = $%d", *params.Status)
	}
	if params.Source != nil {
		addClause("source = $%d", *params.Source)
	}
	if params.Search != "" {
		addClause("(name ILIKE $%d OR company ILIKE $%[1]d)", "%"+params.Search+"%")
	}
	if params.MinScore != nil {
		addClause("score >= $%d", *params.MinScore)
	}

	return joinAnd(whereClauses), args
}

func joinAnd(clauses []string) string {
	out := clauses[0]
	for _, clause := range clauses[1:] {
		out += " AND " + clause
	}
	return out
}

func joinSets(sets []string) string {
	out := sets[0]
	for _, set := range sets[1:] {
		out += ", " + set
	}
	return out
}

// Ping reports database reachability for health checks.
func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
