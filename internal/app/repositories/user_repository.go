package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/mindease/mindease-server/internal/app/models"
	"github.com/mindease/mindease-server/internal/db"
	"github.com/mindease/mindease-server/internal/pkg/apperrors"
	"github.com/mindease/mindease-server/internal/pkg/dberrors"
	"github.com/mindease/mindease-server/internal/pkg/logger"
)

var userColumns = []string{
	"id", "email", "password_hash", "name", "user_type",
	"emergency_contact", "institution", "created_at",
}

// IUserRepository defines the user operations the services depend on
type IUserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetCounselorsByInstitution(ctx context.Context, institution string) ([]models.Counselor, error)
}

// UserRepository handles user database operations
type UserRepository struct {
	db *db.Database
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(database *db.Database) *UserRepository {
	return &UserRepository{
		db: database,
		sb: database.Builder(),
	}
}

// CreateUser inserts a user and returns its id. An empty role defaults to student.
// A duplicate email surfaces as apperrors.ErrEmailAlreadyExists.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	userType := user.UserType
	if userType == "" {
		userType = models.UserTypeStudent
	}

	query, args, err := r.sb.Insert("users").
		Columns("email", "password_hash", "name", "user_type", "emergency_contact", "institution").
		Values(user.Email, user.PasswordHash, user.Name, userType, user.EmergencyContact, user.Institution).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create user SQL")
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	var id int64
	if err := r.db.DB.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error executing create user query")
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

// GetUserByEmail retrieves a user by exact (case-sensitive) email.
// Returns ErrNotFound when no user matches.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

// GetUserByID retrieves a user by ID. Returns ErrNotFound when absent.
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *UserRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.User, error) {
	query, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get user SQL")
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user := &models.User{}
	if err := r.db.DB.GetContext(ctx, user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Msg("Error scanning user row")
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return user, nil
}

// EmailExists checks if an email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	query, args, err := r.sb.Select("COUNT(*)").
		From("users").
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build email exists query: %w", err)
	}

	var count int
	if err := r.db.DB.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}
	return count > 0, nil
}

// GetCounselorsByInstitution lists counselors whose institution matches exactly.
func (r *UserRepository) GetCounselorsByInstitution(ctx context.Context, institution string) ([]models.Counselor, error) {
	query, args, err := r.sb.Select("id", "name", "email").
		From("users").
		Where(squirrel.Eq{"user_type": models.UserTypeCounselor, "institution": institution}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building counselors by institution SQL")
		return nil, fmt.Errorf("failed to build counselors query: %w", err)
	}

	counselors := []models.Counselor{}
	if err := r.db.DB.SelectContext(ctx, &counselors, query, args...); err != nil {
		logger.Error().Err(err).Str("institution", institution).Msg("Error querying counselors")
		return nil, fmt.Errorf("error querying counselors: %w", err)
	}
	return counselors, nil
}
