package database

import (
	"database/sql"
	"log"
)

// RunMigrations bootstraps the schema. Every statement is idempotent so the
// application can run this on each startup.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

		`CREATE TABLE IF NOT EXISTS organizations (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			name TEXT NOT NULL,
			preferred_framework TEXT NOT NULL DEFAULT 'near-term-1.5c',
			baseline_year INT,
			include_scope1 BOOLEAN NOT NULL DEFAULT true,
			include_scope2 BOOLEAN NOT NULL DEFAULT true,
			include_scope3 BOOLEAN NOT NULL DEFAULT false,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS emission_measurements (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			organization_id UUID NOT NULL REFERENCES organizations(id),
			category TEXT NOT NULL,
			scope TEXT NOT NULL,
			period_start DATE NOT NULL,
			period_end DATE NOT NULL,
			co2e_tonnes NUMERIC NOT NULL CHECK (co2e_tonnes >= 0),
			data_source TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_measurements_org_period
			ON emission_measurements (organization_id, period_start, period_end)`,

		`CREATE TABLE IF NOT EXISTS targets (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			organization_id UUID NOT NULL REFERENCES organizations(id),
			target_type TEXT NOT NULL,
			scope_coverage TEXT NOT NULL DEFAULT 'all',
			baseline_year INT NOT NULL,
			baseline_emissions NUMERIC NOT NULL CHECK (baseline_emissions >= 0),
			target_year INT NOT NULL,
			reduction_percent NUMERIC NOT NULL CHECK (reduction_percent > 0 AND reduction_percent <= 100),
			target_emissions NUMERIC NOT NULL,
			status TEXT NOT NULL DEFAULT 'draft',
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_by TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			CHECK (target_year > baseline_year)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_targets_org_active
			ON targets (organization_id, is_active)`,

		`CREATE TABLE IF NOT EXISTS category_targets (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			target_id UUID NOT NULL REFERENCES targets(id) ON DELETE CASCADE,
			category TEXT NOT NULL,
			scope TEXT NOT NULL DEFAULT 'all',
			baseline_year INT NOT NULL,
			baseline_emissions NUMERIC NOT NULL,
			emission_percent NUMERIC NOT NULL CHECK (emission_percent >= 0 AND emission_percent <= 100),
			effort_factor NUMERIC NOT NULL DEFAULT 1.0 CHECK (effort_factor >= 0.5 AND effort_factor <= 2.0),
			baseline_target_percent NUMERIC NOT NULL,
			adjusted_target_percent NUMERIC NOT NULL,
			target_emissions NUMERIC NOT NULL,
			feasibility TEXT NOT NULL DEFAULT 'medium',
			manual_override BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (target_id, category, baseline_year)
		)`,

		`CREATE TABLE IF NOT EXISTS progress_records (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			target_id UUID NOT NULL REFERENCES targets(id) ON DELETE CASCADE,
			category_target_id UUID REFERENCES category_targets(id) ON DELETE CASCADE,
			year INT NOT NULL,
			month INT CHECK (month BETWEEN 1 AND 12),
			quarter INT CHECK (quarter BETWEEN 1 AND 4),
			reporting_date DATE NOT NULL,
			actual_emissions NUMERIC NOT NULL,
			required_emissions NUMERIC NOT NULL,
			gap NUMERIC NOT NULL,
			status TEXT NOT NULL,
			data_quality_score NUMERIC NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		// Monthly and quarterly series are independent; each gets its own
		// uniqueness rule, yearly records are the rows with neither set.
		// Category-level records form their own series per category target,
		// with the zero UUID standing in for the target-level rows.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_progress_monthly
			ON progress_records (target_id, COALESCE(category_target_id, '00000000-0000-0000-0000-000000000000'::uuid), year, month)
			WHERE month IS NOT NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_progress_quarterly
			ON progress_records (target_id, COALESCE(category_target_id, '00000000-0000-0000-0000-000000000000'::uuid), year, quarter)
			WHERE quarter IS NOT NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_progress_yearly
			ON progress_records (target_id, COALESCE(category_target_id, '00000000-0000-0000-0000-000000000000'::uuid), year)
			WHERE month IS NULL AND quarter IS NULL`,

		`CREATE TABLE IF NOT EXISTS baseline_recalculations (
			id UUID PRIMARY KEY,
			organization_id UUID NOT NULL REFERENCES organizations(id),
			old_baseline_year INT NOT NULL,
			new_baseline_year INT NOT NULL,
			reason TEXT,
			targets_updated INT NOT NULL DEFAULT 0,
			categories_updated INT NOT NULL DEFAULT 0,
			recalculated_by TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (organization_id, new_baseline_year)
		)`,

		`CREATE TABLE IF NOT EXISTS engine_events (
			id UUID PRIMARY KEY,
			organization_id UUID NOT NULL REFERENCES organizations(id),
			target_id UUID,
			type TEXT NOT NULL,
			payload JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_engine_events_created
			ON engine_events (created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration failed: %v", err)
			return err
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
