package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates the schema if it does not exist yet. Every statement
// is idempotent so the app can run this on every startup.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

		`CREATE TABLE IF NOT EXISTS managers (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			fathername TEXT NOT NULL,
			mothername TEXT NOT NULL,
			student_mob TEXT NOT NULL,
			parents_mob TEXT NOT NULL,
			aadharcard TEXT,
			aadhar_image_id TEXT,
			aadhar_image_url TEXT,
			enrollment TEXT,
			session TEXT NOT NULL,
			course TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS fees (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			code TEXT NOT NULL,
			session TEXT NOT NULL,
			fee NUMERIC NOT NULL,
			deposited NUMERIC NOT NULL,
			remaining NUMERIC NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_fees_student ON fees (student_id)`,
		`CREATE INDEX IF NOT EXISTS idx_fees_session ON fees (session)`,

		`CREATE TABLE IF NOT EXISTS results (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			session TEXT NOT NULL,
			year TEXT NOT NULL CHECK (year IN ('first', 'second')),
			subjects JSONB NOT NULL DEFAULT '[]',
			practicals JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (student_id, session, year)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_results_student ON results (student_id)`,
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
