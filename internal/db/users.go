package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/maeum-crm/backend/internal/model"
)

const userColumns = `id, phone_number, password_hash, key_hash, name, gender, date_of_birth, address, is_active, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.PhoneNumber,
		&user.PasswordHash,
		&user.KeyHash,
		&user.Name,
		&user.Gender,
		&user.DateOfBirth,
		&user.Address,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *Postgres) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		INSERT INTO users (phone_number, password_hash, key_hash, name, gender, date_of_birth, address, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING ` + userColumns
	row := db.Pool.QueryRow(ctx, query,
		user.PhoneNumber,
		user.PasswordHash,
		user.KeyHash,
		user.Name,
		user.Gender,
		user.DateOfBirth,
		user.Address,
		user.IsActive,
	)
	return scanUser(row)
}

func (db *Postgres) GetUserByPhoneNumber(ctx context.Context, phoneNumber string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone_number = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, phoneNumber))
}

func (db *Postgres) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, userID))
}

func (db *Postgres) UpdateUser(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		UPDATE users
		SET password_hash = $2,
			key_hash = $3,
			name = $4,
			gender = $5,
			date_of_birth = $6,
			address = $7,
			is_active = $8,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns
	row := db.Pool.QueryRow(ctx, query,
		user.ID,
		user.PasswordHash,
		user.KeyHash,
		user.Name,
		user.Gender,
		user.DateOfBirth,
		user.Address,
		user.IsActive,
	)
	return scanUser(row)
}

func (db *Postgres) DeleteUser(ctx context.Context, userID int64) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
