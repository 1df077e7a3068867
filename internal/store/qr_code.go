package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"queueless/internal/model"
)

type QRStore struct {
	db *sql.DB
}

func NewQRStore(db *sql.DB) *QRStore {
	return &QRStore{db: db}
}

func scanQRCode(scanner interface{ Scan(...any) error }) (*model.QRCode, error) {
	var q model.QRCode
	err := scanner.Scan(&q.ID, &q.TableName, &q.TableNumber, &q.QRURL, &q.CreatedDate)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

const qrCodeCols = `id, table_name, table_number, qr_url, created_date`

func (s *QRStore) List() ([]model.QRCode, error) {
	rows, err := s.db.Query(`SELECT ` + qrCodeCols + ` FROM qr_codes ORDER BY table_number ASC, created_date ASC`)
	if err != nil {
		return nil, fmt.Errorf("list qr codes: %w", err)
	}
	defer rows.Close()

	var codes []model.QRCode
	for rows.Next() {
		q, err := scanQRCode(rows)
		if err != nil {
			return nil, fmt.Errorf("scan qr code: %w", err)
		}
		codes = append(codes, *q)
	}
	return codes, rows.Err()
}

func (s *QRStore) GetByID(id string) (*model.QRCode, error) {
	row := s.db.QueryRow(`SELECT `+qrCodeCols+` FROM qr_codes WHERE id = ?`, id)
	q, err := scanQRCode(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get qr code: %w", err)
	}
	return q, nil
}

func (s *QRStore) Create(tableName string, tableNumber int, qrURL string) (*model.QRCode, error) {
	id := uuid.NewString()
	createdDate := time.Now().UTC().Format("2006-01-02")

	_, err := s.db.Exec(
		`INSERT INTO qr_codes (id, table_name, table_number, qr_url, created_date) VALUES (?, ?, ?, ?, ?)`,
		id, tableName, tableNumber, qrURL, createdDate,
	)
	if err != nil {
		return nil, fmt.Errorf("insert qr code: %w", err)
	}
	return s.GetByID(id)
}

func (s *QRStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM qr_codes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete qr code: %w", err)
	}
	return nil
}

// Count returns the number of table entries, the dashboard's "active tables".
func (s *QRStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM qr_codes`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count qr codes: %w", err)
	}
	return count, nil
}
