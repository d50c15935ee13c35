package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/codekids/academy-api/internal/data/pgxutil"
	"github.com/codekids/academy-api/internal/domain/model"
)

// EnrollmentRepo provides database operations for enrollments.
type EnrollmentRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewEnrollmentRepo creates a new EnrollmentRepo with real time provider.
func NewEnrollmentRepo(db *sql.DB) *EnrollmentRepo {
	return &EnrollmentRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewEnrollmentRepoWithTimeProvider creates a new EnrollmentRepo with a custom time provider (useful for tests).
func NewEnrollmentRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *EnrollmentRepo {
	return &EnrollmentRepo{DB: db, timeProvider: tp}
}

const enrollmentColumns = `id, course_id, parent_id, student_name, status, created_at, updated_at`

// Create inserts a new active enrollment. A partial unique index on
// (course_id, parent_id, student_name) WHERE status = 'active' enforces the
// one-active-enrollment rule.
func (r *EnrollmentRepo) Create(
	ctx context.Context,
	parentID string,
	req *model.CreateEnrollmentRequest,
) (*model.Enrollment, error) {
	if req == nil {
		return nil, errors.New("create enrollment request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(parentID) == "" {
		return nil, errors.New("parent_id is required")
	}

	now := r.timeProvider.Now().UTC()
	var out model.Enrollment
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO enrollments (course_id, parent_id, student_name, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			RETURNING `+enrollmentColumns,
			req.CourseID,
			parentID,
			req.StudentName,
			model.EnrollmentActive,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Enrollment])
		return err
	}); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrEnrollmentExists
		}
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}
	return &out, nil
}

// GetByID retrieves an enrollment by ID.
func (r *EnrollmentRepo) GetByID(ctx context.Context, id string) (*model.Enrollment, error) {
	var enr model.Enrollment
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+enrollmentColumns+` FROM enrollments WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		enr, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Enrollment])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("failed to get enrollment by ID: %w", err)
	}
	return &enr, nil
}

// List retrieves enrollments, newest first, with optional filters.
func (r *EnrollmentRepo) List(
	ctx context.Context,
	opts model.EnrollmentsListOptions,
) ([]*model.Enrollment, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	where := make([]string, 0, 3)
	args := make([]any, 0, 5)
	nextIdx := func() int { return len(args) + 1 }

	if opts.ParentID != nil {
		where = append(where, fmt.Sprintf("parent_id = $%d", nextIdx()))
		args = append(args, *opts.ParentID)
	}
	if opts.CourseID != nil {
		where = append(where, fmt.Sprintf("course_id = $%d", nextIdx()))
		args = append(args, *opts.CourseID)
	}
	if opts.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", nextIdx()))
		args = append(args, *opts.Status)
	}

	query := `SELECT ` + enrollmentColumns + ` FROM enrollments`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(nextIdx())
	args = append(args, limit)
	query += ` OFFSET $` + strconv.Itoa(nextIdx())
	args = append(args, offset)

	var rowsOut []model.Enrollment
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Enrollment])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}

	res := make([]*model.Enrollment, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Cancel marks an enrollment cancelled. Cancelling an already cancelled
// enrollment is a no-op that returns the current row.
func (r *EnrollmentRepo) Cancel(ctx context.Context, id string) (*model.Enrollment, error) {
	now := r.timeProvider.Now().UTC()
	var out model.Enrollment
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE enrollments
			SET status = $1,
			    updated_at = CASE WHEN status = $1 THEN updated_at ELSE $2 END
			WHERE id = $3
			RETURNING `+enrollmentColumns,
			model.EnrollmentCancelled, now, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Enrollment])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("failed to cancel enrollment: %w", err)
	}
	return &out, nil
}
