package db

import "context"

// EnsureSchema - 서비스가 사용하는 전체 테이블 생성
func (db *Postgres) EnsureSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			phone_number TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			key_hash TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL,
			gender TEXT NOT NULL DEFAULT 'Other',
			date_of_birth DATE NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS customers (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			gender TEXT NOT NULL DEFAULT 'Other',
			phone_number TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS customers_user_id_idx ON customers(user_id)`,
		`
		CREATE TABLE IF NOT EXISTS customer_security (
			customer_id BIGINT PRIMARY KEY REFERENCES customers(id) ON DELETE CASCADE,
			is_korean BOOLEAN NOT NULL DEFAULT TRUE,
			key TEXT NOT NULL DEFAULT '000000',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS counsels (
			id BIGSERIAL PRIMARY KEY,
			customer_id BIGINT NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
			summary TEXT NOT NULL,
			details TEXT NOT NULL,
			emergency BOOLEAN NOT NULL DEFAULT FALSE,
			status TEXT NOT NULL DEFAULT 'Pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS counsels_customer_id_idx ON counsels(customer_id)`,
		`
		CREATE TABLE IF NOT EXISTS counsel_documents (
			id BIGSERIAL PRIMARY KEY,
			counsel_id BIGINT NOT NULL REFERENCES counsels(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS counsel_documents_counsel_id_idx ON counsel_documents(counsel_id)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}
