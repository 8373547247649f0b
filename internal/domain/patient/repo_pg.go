package patient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/erx/erx/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type patientRepoPG struct {
	pool *pgxpool.Pool
}

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &patientRepoPG{pool: pool}
}

func (r *patientRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

// conditions and medications are stored as JSONB documents.
const patientCols = `id, name, dob, allergies, insurance, medicare_id, medicaid_id,
	conditions, medications, created_at`

func (r *patientRepoPG) scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Name, &p.DOB, &p.Allergies, &p.Insurance, &p.MedicareID,
		&p.MedicaidID, &p.Conditions, &p.Medications, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create lets the patient_number_seq default pick the id when p.ID is empty.
func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	args := []interface{}{p.Name, p.DOB, nonNil(p.Allergies), p.Insurance, p.MedicareID,
		p.MedicaidID, nonNil(p.Conditions), nonNil(p.Medications)}
	sql := `INSERT INTO patients (name, dob, allergies, insurance, medicare_id, medicaid_id, conditions, medications)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`
	if p.ID != "" {
		args = append(args, p.ID)
		sql = `INSERT INTO patients (name, dob, allergies, insurance, medicare_id, medicaid_id, conditions, medications, id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`
	}
	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&p.ID, &p.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: id %s already exists", ErrInvalidInput, p.ID)
		}
		return fmt.Errorf("insert patient: %w", err)
	}
	return nil
}

func (r *patientRepoPG) GetByID(ctx context.Context, id string) (*Patient, error) {
	return r.scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
}

func (r *patientRepoPG) List(ctx context.Context, query string, limit, offset int) ([]*Patient, int, error) {
	where, args := buildPatientWhere(query)

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patients`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	rows, err := r.conn(ctx).Query(ctx,
		fmt.Sprintf(`SELECT %s FROM patients%s ORDER BY id LIMIT $%d OFFSET $%d`, patientCols, where, n+1, n+2),
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	patients := []*Patient{}
	for rows.Next() {
		p, err := r.scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		patients = append(patients, p)
	}
	return patients, total, rows.Err()
}

func buildPatientWhere(query string) (string, []interface{}) {
	q := strings.TrimSpace(query)
	if q == "" {
		return "", nil
	}
	return " WHERE name ILIKE $1 OR id ILIKE $1", []interface{}{"%" + q + "%"}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
