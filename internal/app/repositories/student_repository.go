package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tharun/campusvote/internal/app/models"
	"github.com/tharun/campusvote/internal/pkg/apperrors"
	"github.com/tharun/campusvote/internal/pkg/dberrors"
	"github.com/tharun/campusvote/internal/pkg/logger"
)

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new student row. The primary key on register_number is
// the duplicate-registration guard; a collision surfaces as
// apperrors.ErrStudentAlreadyRegistered.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns("register_number", "name").
		Values(student.RegisterNumber, student.Name).
		Suffix("RETURNING registration_time").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&student.RegisteredAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_pkey") {
			logger.Warn().Str("registerNumber", student.RegisterNumber).Msg("Attempted to register duplicate register number")
			return apperrors.ErrStudentAlreadyRegistered
		}
		logger.Error().Err(err).Str("registerNumber", student.RegisterNumber).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}

	logger.Info().Str("registerNumber", student.RegisterNumber).Msg("Student registered successfully")
	return nil
}

// GetByRegisterNumber retrieves a student by register number
func (r *StudentRepository) GetByRegisterNumber(ctx context.Context, registerNumber string) (*models.Student, error) {
	var student models.Student
	sql, args, err := r.sb.Select("register_number", "name", "registration_time").
		From("students").
		Where(squirrel.Eq{"register_number": registerNumber}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get student SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&student.RegisterNumber, &student.Name, &student.RegisteredAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("registerNumber", registerNumber).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// Exists checks if a register number is registered
func (r *StudentRepository) Exists(ctx context.Context, registerNumber string) (bool, error) {
	var exists bool
	sql, args, err := r.sb.Select("1").
		From("students").
		Where(squirrel.Eq{"register_number": registerNumber}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building student exists SQL")
		return false, fmt.Errorf("failed to build student exists query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil {
		logger.Error().Err(err).Str("registerNumber", registerNumber).Msg("Error checking student existence")
		return false, fmt.Errorf("error checking student existence: %w", err)
	}

	return exists, nil
}

// List retrieves the full roster, newest registrations first
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	sql, args, err := r.sb.Select("register_number", "name", "registration_time").
		From("students").
		OrderBy("registration_time DESC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building list students SQL")
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	students := make([]models.Student, 0)
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(&student.RegisterNumber, &student.Name, &student.RegisteredAt); err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}

// Count returns the number of registered students
func (r *StudentRepository) Count(ctx context.Context) (int, error) {
	var count int
	sql, args, err := r.sb.Select("COUNT(*)").From("students").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count students query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error counting students")
		return 0, fmt.Errorf("error counting students: %w", err)
	}

	return count, nil
}
