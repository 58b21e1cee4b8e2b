package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/maeum-crm/backend/internal/model"
)

const counselColumns = `n.id, n.customer_id, n.summary, n.details, n.emergency, n.status, n.created_at, n.updated_at`

func scanCounsel(row interface{ Scan(...any) error }) (*model.Counsel, error) {
	var counsel model.Counsel
	err := row.Scan(
		&counsel.ID,
		&counsel.CustomerID,
		&counsel.Summary,
		&counsel.Details,
		&counsel.Emergency,
		&counsel.Status,
		&counsel.CreatedAt,
		&counsel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &counsel, nil
}

func (db *Postgres) CreateCounsel(ctx context.Context, counsel *model.Counsel) (*model.Counsel, error) {
	query := `
		INSERT INTO counsels (customer_id, summary, details, emergency, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, customer_id, summary, details, emergency, status, created_at, updated_at
	`
	row := db.Pool.QueryRow(ctx, query,
		counsel.CustomerID, counsel.Summary, counsel.Details, counsel.Emergency, counsel.Status)
	return scanCounsel(row)
}

// ListCounsels - 로그인 사용자 소유 고객들의 상담 기록만 조회
func (db *Postgres) ListCounsels(ctx context.Context, userID int64) ([]model.Counsel, error) {
	query := `
		SELECT ` + counselColumns + `
		FROM counsels n
		JOIN customers c ON c.id = n.customer_id
		WHERE c.user_id = $1
		ORDER BY n.id
	`
	rows, err := db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counsels := []model.Counsel{}
	for rows.Next() {
		counsel, err := scanCounsel(rows)
		if err != nil {
			return nil, err
		}
		counsels = append(counsels, *counsel)
	}
	return counsels, rows.Err()
}

func (db *Postgres) GetCounsel(ctx context.Context, counselID, userID int64) (*model.Counsel, error) {
	query := `
		SELECT ` + counselColumns + `
		FROM counsels n
		JOIN customers c ON c.id = n.customer_id
		WHERE n.id = $1 AND c.user_id = $2
	`
	return scanCounsel(db.Pool.QueryRow(ctx, query, counselID, userID))
}

func (db *Postgres) UpdateCounsel(ctx context.Context, counsel *model.Counsel, userID int64) (*model.Counsel, error) {
	query := `
		UPDATE counsels n
		SET summary = $3, details = $4, emergency = $5, status = $6, updated_at = NOW()
		FROM customers c
		WHERE n.id = $1 AND c.id = n.customer_id AND c.user_id = $2
		RETURNING ` + counselColumns
	row := db.Pool.QueryRow(ctx, query,
		counsel.ID, userID, counsel.Summary, counsel.Details, counsel.Emergency, counsel.Status)
	return scanCounsel(row)
}

func (db *Postgres) DeleteCounsel(ctx context.Context, counselID, userID int64) error {
	tag, err := db.Pool.Exec(ctx, `
		DELETE FROM counsels n
		USING customers c
		WHERE n.id = $1 AND c.id = n.customer_id AND c.user_id = $2
	`, counselID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const documentColumns = `d.id, d.counsel_id, d.title, d.content, d.created_at, d.updated_at`

func scanDocument(row interface{ Scan(...any) error }) (*model.CounselDocument, error) {
	var doc model.CounselDocument
	err := row.Scan(
		&doc.ID,
		&doc.CounselID,
		&doc.Title,
		&doc.Content,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (db *Postgres) CreateCounselDocument(ctx context.Context, doc *model.CounselDocument) (*model.CounselDocument, error) {
	query := `
		INSERT INTO counsel_documents (counsel_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, counsel_id, title, content, created_at, updated_at
	`
	row := db.Pool.QueryRow(ctx, query, doc.CounselID, doc.Title, doc.Content)
	return scanDocument(row)
}

func (db *Postgres) ListCounselDocuments(ctx context.Context, counselID, userID int64) ([]model.CounselDocument, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM counsel_documents d
		JOIN counsels n ON n.id = d.counsel_id
		JOIN customers c ON c.id = n.customer_id
		WHERE d.counsel_id = $1 AND c.user_id = $2
		ORDER BY d.id
	`
	rows, err := db.Pool.Query(ctx, query, counselID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []model.CounselDocument{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

func (db *Postgres) GetCounselDocument(ctx context.Context, docID, counselID, userID int64) (*model.CounselDocument, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM counsel_documents d
		JOIN counsels n ON n.id = d.counsel_id
		JOIN customers c ON c.id = n.customer_id
		WHERE d.id = $1 AND d.counsel_id = $2 AND c.user_id = $3
	`
	return scanDocument(db.Pool.QueryRow(ctx, query, docID, counselID, userID))
}

func (db *Postgres) UpdateCounselDocument(ctx context.Context, doc *model.CounselDocument, userID int64) (*model.CounselDocument, error) {
	query := `
		UPDATE counsel_documents d
		SET title = $4, content = $5, updated_at = NOW()
		FROM counsels n
		JOIN customers c ON c.id = n.customer_id
		WHERE d.id = $1 AND d.counsel_id = $2 AND n.id = d.counsel_id AND c.user_id = $3
		RETURNING ` + documentColumns
	row := db.Pool.QueryRow(ctx, query, doc.ID, doc.CounselID, userID, doc.Title, doc.Content)
	return scanDocument(row)
}

func (db *Postgres) DeleteCounselDocument(ctx context.Context, docID, counselID, userID int64) error {
	tag, err := db.Pool.Exec(ctx, `
		DELETE FROM counsel_documents d
		USING counsels n, customers c
		WHERE d.id = $1 AND d.counsel_id = $2
			AND n.id = d.counsel_id AND c.id = n.customer_id AND c.user_id = $3
	`, docID, counselID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
