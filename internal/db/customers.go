package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/maeum-crm/backend/internal/model"
)

const customerColumns = `
	c.id, c.user_id, c.name, c.gender, c.phone_number, c.address, c.created_at, c.updated_at,
	s.is_korean, s.key, s.created_at, s.updated_at`

func scanCustomer(row interface{ Scan(...any) error }) (*model.Customer, error) {
	var customer model.Customer
	err := row.Scan(
		&customer.ID,
		&customer.UserID,
		&customer.Name,
		&customer.Gender,
		&customer.PhoneNumber,
		&customer.Address,
		&customer.CreatedAt,
		&customer.UpdatedAt,
		&customer.Security.IsKorean,
		&customer.Security.Key,
		&customer.Security.CreatedAt,
		&customer.Security.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	customer.Security.CustomerID = customer.ID
	return &customer, nil
}

// CreateCustomer - 고객과 1:1 보안 행을 같은 트랜잭션에서 생성
func (db *Postgres) CreateCustomer(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO customers (user_id, name, gender, phone_number, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id
	`, customer.UserID, customer.Name, customer.Gender, customer.PhoneNumber, customer.Address).Scan(&id)
	if err != nil {
		return nil, err
	}

	if _, err = tx.Exec(ctx, `
		INSERT INTO customer_security (customer_id, created_at, updated_at)
		VALUES ($1, NOW(), NOW())
	`, id); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}

	return db.GetCustomer(ctx, id, customer.UserID)
}

func (db *Postgres) ListCustomers(ctx context.Context, userID int64) ([]model.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers c
		JOIN customer_security s ON s.customer_id = c.id
		WHERE c.user_id = $1
		ORDER BY c.id
	`
	rows, err := db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []model.Customer{}
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *customer)
	}
	return customers, rows.Err()
}

// GetCustomer - userID 소유가 아닌 고객은 pgx.ErrNoRows로 처리
func (db *Postgres) GetCustomer(ctx context.Context, customerID, userID int64) (*model.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers c
		JOIN customer_security s ON s.customer_id = c.id
		WHERE c.id = $1 AND c.user_id = $2
	`
	return scanCustomer(db.Pool.QueryRow(ctx, query, customerID, userID))
}

func (db *Postgres) UpdateCustomer(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	tag, err := db.Pool.Exec(ctx, `
		UPDATE customers
		SET name = $3, gender = $4, phone_number = $5, address = $6, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`, customer.ID, customer.UserID, customer.Name, customer.Gender, customer.PhoneNumber, customer.Address)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}
	return db.GetCustomer(ctx, customer.ID, customer.UserID)
}

func (db *Postgres) UpdateCustomerSecurity(ctx context.Context, customerID, userID int64, isKorean bool, key string) (*model.Customer, error) {
	tag, err := db.Pool.Exec(ctx, `
		UPDATE customer_security s
		SET is_korean = $3, key = $4, updated_at = NOW()
		FROM customers c
		WHERE s.customer_id = $1 AND c.id = s.customer_id AND c.user_id = $2
	`, customerID, userID, isKorean, key)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}
	return db.GetCustomer(ctx, customerID, userID)
}

func (db *Postgres) DeleteCustomer(ctx context.Context, customerID, userID int64) error {
	tag, err := db.Pool.Exec(ctx, `
		DELETE FROM customers WHERE id = $1 AND user_id = $2
	`, customerID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
