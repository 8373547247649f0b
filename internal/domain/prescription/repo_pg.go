package prescription

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
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

func conn(ctx context.Context, pool *pgxpool.Pool) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return pool
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// =========== Prescription Repository ===========

type prescriptionRepoPG struct{ pool *pgxpool.Pool }

func NewPrescriptionRepoPG(pool *pgxpool.Pool) PrescriptionRepository {
	return &prescriptionRepoPG{pool: pool}
}

const rxCols = `id, patient_id, patient_name, medication, strength, quantity, refills,
	sig, pharmacy, status, is_controlled, schedule_class, prescribed_by,
	prescribed_at, updated_at`

func scanPrescription(row pgx.Row) (*Prescription, error) {
	var p Prescription
	err := row.Scan(&p.ID, &p.PatientID, &p.PatientName, &p.Medication, &p.Strength,
		&p.Quantity, &p.Refills, &p.Sig, &p.Pharmacy, &p.Status, &p.IsControlled,
		&p.ScheduleClass, &p.PrescribedBy, &p.PrescribedAt, &p.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *prescriptionRepoPG) Create(ctx context.Context, p *Prescription) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO prescriptions (id, patient_id, patient_name, medication, strength,
			quantity, refills, sig, pharmacy, status, is_controlled, schedule_class, prescribed_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING prescribed_at, updated_at`,
		p.ID, p.PatientID, p.PatientName, p.Medication, p.Strength,
		p.Quantity, p.Refills, p.Sig, p.Pharmacy, p.Status, p.IsControlled,
		p.ScheduleClass, p.PrescribedBy,
	).Scan(&p.PrescribedAt, &p.UpdatedAt)
}

func (r *prescriptionRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return scanPrescription(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+rxCols+` FROM prescriptions WHERE id = $1`, id))
}

func (r *prescriptionRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) (*Prescription, error) {
	p, err := scanPrescription(conn(ctx, r.pool).QueryRow(ctx, `
		UPDATE prescriptions SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING `+rxCols, id, from, to))
	if errors.Is(err, ErrNotFound) {
		// distinguish a missing row from a lost race on the status
		if _, getErr := r.GetByID(ctx, id); getErr == nil {
			return nil, ErrInvalidTransition
		}
	}
	return p, err
}

func (r *prescriptionRepoPG) DecrementRefills(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	p, err := scanPrescription(conn(ctx, r.pool).QueryRow(ctx, `
		UPDATE prescriptions SET refills = refills - 1, updated_at = NOW()
		WHERE id = $1 AND refills > 0
		RETURNING `+rxCols, id))
	if errors.Is(err, ErrNotFound) {
		if _, getErr := r.GetByID(ctx, id); getErr == nil {
			return nil, ErrNoRefills
		}
	}
	return p, err
}

func buildRxWhere(f ListFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}
	if f.Status != "" {
		args = append(args, f.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.PatientID != "" {
		args = append(args, f.PatientID)
		clauses = append(clauses, fmt.Sprintf("patient_id = $%d", len(args)))
	}
	if f.Controlled != nil {
		args = append(args, *f.Controlled)
		clauses = append(clauses, fmt.Sprintf("is_controlled = $%d", len(args)))
	}
	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *prescriptionRepoPG) List(ctx context.Context, f ListFilter, limit, offset int) ([]*Prescription, int, error) {
	where, args := buildRxWhere(f)

	var total int
	if err := conn(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM prescriptions`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM prescriptions%s ORDER BY prescribed_at DESC, id LIMIT $%d OFFSET $%d`,
		rxCols, where, len(args)+1, len(args)+2)
	rows, err := conn(ctx, r.pool).Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []*Prescription{}
	for rows.Next() {
		p, err := scanPrescription(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *prescriptionRepoPG) Stats(ctx context.Context) (map[Status]int, int, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT status, COUNT(*), COUNT(*) FILTER (WHERE is_controlled)
		FROM prescriptions GROUP BY status`)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	byStatus := make(map[Status]int)
	controlled := 0
	for rows.Next() {
		var s Status
		var n, c int
		if err := rows.Scan(&s, &n, &c); err != nil {
			return nil, 0, err
		}
		byStatus[s] = n
		controlled += c
	}
	return byStatus, controlled, rows.Err()
}

// =========== Refill Repository ===========

type refillRepoPG struct{ pool *pgxpool.Pool }

func NewRefillRepoPG(pool *pgxpool.Pool) RefillRepository {
	return &refillRepoPG{pool: pool}
}

const refillCols = `id, prescription_id, patient_name, medication, last_fill_date,
	remaining_refills, pharmacy, status, created_at, updated_at`

func scanRefill(row pgx.Row) (*RefillRequest, error) {
	var rr RefillRequest
	err := row.Scan(&rr.ID, &rr.PrescriptionID, &rr.PatientName, &rr.Medication,
		&rr.LastFillDate, &rr.RemainingRefills, &rr.Pharmacy, &rr.Status,
		&rr.CreatedAt, &rr.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &rr, nil
}

func (r *refillRepoPG) Create(ctx context.Context, rr *RefillRequest) error {
	if rr.ID == uuid.Nil {
		rr.ID = uuid.New()
	}
	return conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO refill_requests (id, prescription_id, patient_name, medication,
			last_fill_date, remaining_refills, pharmacy, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at, updated_at`,
		rr.ID, rr.PrescriptionID, rr.PatientName, rr.Medication,
		rr.LastFillDate, rr.RemainingRefills, rr.Pharmacy, rr.Status,
	).Scan(&rr.CreatedAt, &rr.UpdatedAt)
}

func (r *refillRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*RefillRequest, error) {
	return scanRefill(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+refillCols+` FROM refill_requests WHERE id = $1`, id))
}

func (r *refillRepoPG) Decide(ctx context.Context, id uuid.UUID, to RefillStatus, remaining int) (*RefillRequest, error) {
	rr, err := scanRefill(conn(ctx, r.pool).QueryRow(ctx, `
		UPDATE refill_requests SET status = $2, remaining_refills = $3, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING `+refillCols, id, to, remaining))
	if errors.Is(err, ErrNotFound) {
		if _, getErr := r.GetByID(ctx, id); getErr == nil {
			return nil, ErrInvalidTransition
		}
	}
	return rr, err
}

func (r *refillRepoPG) List(ctx context.Context, status RefillStatus, limit, offset int) ([]*RefillRequest, int, error) {
	where := ""
	var args []interface{}
	if status != "" {
		where = " WHERE status = $1"
		args = append(args, status)
	}

	var total int
	if err := conn(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM refill_requests`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM refill_requests%s ORDER BY created_at, id LIMIT $%d OFFSET $%d`,
		refillCols, where, len(args)+1, len(args)+2)
	rows, err := conn(ctx, r.pool).Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []*RefillRequest{}
	for rows.Next() {
		rr, err := scanRefill(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rr)
	}
	return items, total, rows.Err()
}

func (r *refillRepoPG) CountPending(ctx context.Context) (int, error) {
	var n int
	err := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT COUNT(*) FROM refill_requests WHERE status = 'pending'`).Scan(&n)
	return n, err
}
