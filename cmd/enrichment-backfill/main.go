// Command enrichment-backfill recomputes signal bundles for every lead
// in every organization and prints a per-organization analytics summary.
// Intended as a periodic batch job; the API serves the same numbers
// on demand.
package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"crm_intel_backend/internal/leads/intelligence"
	"crm_intel_backend/internal/leads/repository"
	"crm_intel_backend/platform/config"
	"crm_intel_backend/platform/db"
	"crm_intel_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting enrichment backfill")

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	repo := repository.New(pool)
	svc := intelligence.NewService(repo, repo, nil, cfg, log)

	orgIDs, err := listOrganizations(ctx, pool)
	if err != nil {
		log.Error("failed to list organizations", "error", err)
		panic("failed to list organizations: " + err.Error())
	}
	if len(orgIDs) == 0 {
		log.Info("no organizations found, nothing to do")
		return
	}

	const delayBetweenOrgs = 200 * time.Millisecond

	report := make(map[string]intelligence.AnalyticsSummary, len(orgIDs))
	for _, orgID := range orgIDs {
		summary, ok := svc.Analytics(ctx, repository.ListParams{OrganizationID: orgID})
		if !ok {
			log.Error("failed to compute analytics", "organizationId", orgID)
			continue
		}
		report[orgID.String()] = summary
		log.Info("organization enriched",
			"organizationId", orgID,
			"totalLeads", summary.Total,
			"overallHealth", summary.OverallHealth,
		)
		time.Sleep(delayBetweenOrgs)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		log.Error("failed to write report", "error", err)
	}

	log.Info("enrichment backfill complete", "organizations", len(report))
}

func listOrganizations(ctx context.Context, pool *pgxpool.Pool) ([]uuid.UUID, error) {
	rows, err := pool.Query(ctx, `SELECT DISTINCT organization_id FROM leads ORDER BY organization_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
