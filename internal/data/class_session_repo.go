package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/codekids/academy-api/internal/data/pgxutil"
	"github.com/codekids/academy-api/internal/domain/model"
)

// ClassSessionRepo provides database operations for scheduled class sessions.
type ClassSessionRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewClassSessionRepo creates a new ClassSessionRepo with real time provider.
func NewClassSessionRepo(db *sql.DB) *ClassSessionRepo {
	return &ClassSessionRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewClassSessionRepoWithTimeProvider creates a new ClassSessionRepo with a custom time provider (useful for tests).
func NewClassSessionRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ClassSessionRepo {
	return &ClassSessionRepo{DB: db, timeProvider: tp}
}

const classSessionColumns = `id, course_id, instructor_id, topic, starts_at, duration_minutes, capacity, created_at, updated_at`

// Create inserts a new class session.
func (r *ClassSessionRepo) Create(
	ctx context.Context,
	req *model.CreateClassSessionRequest,
) (*model.ClassSession, error) {
	if req == nil {
		return nil, errors.New("create class session request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.InstructorID) == "" {
		return nil, errors.New("instructor_id is required")
	}

	now := r.timeProvider.Now().UTC()
	var out model.ClassSession
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO class_sessions (course_id, instructor_id, topic, starts_at, duration_minutes, capacity, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
			RETURNING `+classSessionColumns,
			req.CourseID,
			req.InstructorID,
			req.Topic,
			req.StartsAt.UTC(),
			req.DurationMinutes,
			req.Capacity,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ClassSession])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create class session: %w", err)
	}
	return &out, nil
}

// GetByID retrieves a class session by ID.
func (r *ClassSessionRepo) GetByID(ctx context.Context, id string) (*model.ClassSession, error) {
	var cs model.ClassSession
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+classSessionColumns+` FROM class_sessions WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		cs, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ClassSession])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClassSessionNotFound
		}
		return nil, fmt.Errorf("failed to get class session by ID: %w", err)
	}
	return &cs, nil
}

// List retrieves class sessions ordered by start time ascending, with
// optional filters.
func (r *ClassSessionRepo) List(
	ctx context.Context,
	opts model.ClassSessionsListOptions,
) ([]*model.ClassSession, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	where := make([]string, 0, 3)
	args := make([]any, 0, 5)
	nextIdx := func() int { return len(args) + 1 }

	if opts.CourseID != nil {
		where = append(where, fmt.Sprintf("course_id = $%d", nextIdx()))
		args = append(args, *opts.CourseID)
	}
	if opts.InstructorID != nil {
		where = append(where, fmt.Sprintf("instructor_id = $%d", nextIdx()))
		args = append(args, *opts.InstructorID)
	}
	if opts.After != nil {
		where = append(where, fmt.Sprintf("starts_at >= $%d", nextIdx()))
		args = append(args, opts.After.UTC())
	}

	query := `SELECT ` + classSessionColumns + ` FROM class_sessions`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY starts_at ASC LIMIT $` + strconv.Itoa(nextIdx())
	args = append(args, limit)
	query += ` OFFSET $` + strconv.Itoa(nextIdx())
	args = append(args, offset)

	var rowsOut []model.ClassSession
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.ClassSession])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list class sessions: %w", err)
	}

	res := make([]*model.ClassSession, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a class session.
func (r *ClassSessionRepo) Update(
	ctx context.Context,
	id string,
	req model.UpdateClassSessionRequest,
) (*model.ClassSession, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.ClassSession
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		setClause, args := r.buildUpdateClause(req)
		if setClause == "" {
			rows, err := conn.Query(ctx, `SELECT `+classSessionColumns+` FROM class_sessions WHERE id = $1`, id)
			if err != nil {
				return err
			}
			defer rows.Close()
			var e error
			out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ClassSession])
			return e
		}
		args = append(args, id)
		query := "UPDATE class_sessions SET " + setClause +
			" WHERE id = $" + strconv.Itoa(len(args)) +
			" RETURNING " + classSessionColumns
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ClassSession])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClassSessionNotFound
		}
		return nil, fmt.Errorf("failed to update class session: %w", err)
	}
	return &out, nil
}

// Delete deletes a class session by ID.
func (r *ClassSessionRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM class_sessions WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete class session: %w", err)
	}
	return rows > 0, nil
}

func (r *ClassSessionRepo) buildUpdateClause(req model.UpdateClassSessionRequest) (string, []any) {
	setParts := make([]string, 0, 5)
	args := make([]any, 0, 6)
	nextIdx := func() int { return len(args) + 1 }

	if req.Topic != nil {
		setParts = append(setParts, fmt.Sprintf("topic = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Topic))
	}
	if req.StartsAt != nil {
		setParts = append(setParts, fmt.Sprintf("starts_at = $%d", nextIdx()))
		args = append(args, req.StartsAt.UTC())
	}
	if req.DurationMinutes != nil {
		setParts = append(setParts, fmt.Sprintf("duration_minutes = $%d", nextIdx()))
		args = append(args, *req.DurationMinutes)
	}
	if req.Capacity != nil {
		setParts = append(setParts, fmt.Sprintf("capacity = $%d", nextIdx()))
		args = append(args, *req.Capacity)
	}

	if len(setParts) == 0 {
		return "", nil
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())
	return strings.Join(setParts, ", "), args
}
