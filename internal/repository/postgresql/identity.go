package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/face-attendance-backend-go/internal/domain/identity"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
)

type identityRepository struct {
	db *database.DB
}

// Create implements identity.IdentityRepository.
func (r *identityRepository) Create(ctx context.Context, ident identity.Identity) (identity.Identity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO identities (
			id, display_name, employee_code, email, password_hash, role,
			face_descriptor, shift_start, grace_minutes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		ident.ID,
		ident.DisplayName,
		ident.EmployeeCode,
		ident.Email,
		ident.PasswordHash,
		ident.Role,
		pgvector.NewVector(ident.FaceDescriptor),
		ident.ShiftStart,
		ident.GraceMinutes,
	).Scan(&ident.CreatedAt, &ident.UpdatedAt)

	if err != nil {
		return identity.Identity{}, fmt.Errorf("failed to create identity: %w", err)
	}

	return ident, nil
}

// GetByID implements identity.IdentityRepository.
func (r *identityRepository) GetByID(ctx context.Context, id string) (identity.Identity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, display_name, employee_code, email, password_hash, role,
			   face_descriptor, shift_start, grace_minutes, created_at, updated_at
		FROM identities
		WHERE id = $1
	`

	var ident identity.Identity
	var descriptor pgvector.Vector
	err := q.QueryRow(ctx, query, id).Scan(
		&ident.ID, &ident.DisplayName, &ident.EmployeeCode, &ident.Email, &ident.PasswordHash, &ident.Role,
		&descriptor, &ident.ShiftStart, &ident.GraceMinutes, &ident.CreatedAt, &ident.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return identity.Identity{}, identity.ErrIdentityNotFound
		}
		return identity.Identity{}, fmt.Errorf("failed to get identity: %w", err)
	}
	ident.FaceDescriptor = descriptor.Slice()

	return ident, nil
}

// GetByEmail implements identity.IdentityRepository.
func (r *identityRepository) GetByEmail(ctx context.Context, email string) (identity.Identity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, display_name, employee_code, email, password_hash, role,
			   face_descriptor, shift_start, grace_minutes, created_at, updated_at
		FROM identities
		WHERE email = $1
	`

	var ident identity.Identity
	var descriptor pgvector.Vector
	err := q.QueryRow(ctx, query, email).Scan(
		&ident.ID, &ident.DisplayName, &ident.EmployeeCode, &ident.Email, &ident.PasswordHash, &ident.Role,
		&descriptor, &ident.ShiftStart, &ident.GraceMinutes, &ident.CreatedAt, &ident.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return identity.Identity{}, identity.ErrIdentityNotFound
		}
		return identity.Identity{}, fmt.Errorf("failed to get identity by email: %w", err)
	}
	ident.FaceDescriptor = descriptor.Slice()

	return ident, nil
}

// ListEnrolled implements identity.IdentityRepository.
func (r *identityRepository) ListEnrolled(ctx context.Context) ([]identity.Identity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, display_name, employee_code, role,
			   face_descriptor, shift_start, grace_minutes
		FROM identities
		WHERE face_descriptor IS NOT NULL
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrolled identities: %w", err)
	}
	defer rows.Close()

	var identities []identity.Identity
	for rows.Next() {
		var ident identity.Identity
		var descriptor pgvector.Vector
		err := rows.Scan(
			&ident.ID, &ident.DisplayName, &ident.EmployeeCode, &ident.Role,
			&descriptor, &ident.ShiftStart, &ident.GraceMinutes,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan identity: %w", err)
		}
		ident.FaceDescriptor = descriptor.Slice()
		identities = append(identities, ident)
	}

	return identities, nil
}

// List implements identity.IdentityRepository.
func (r *identityRepository) List(ctx context.Context, filter identity.ListFilter) ([]identity.Identity, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.Search != nil && *filter.Search != "" {
		baseWhere += fmt.Sprintf(" AND (display_name ILIKE $%d OR employee_code ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	if filter.Role != nil && *filter.Role != "" {
		baseWhere += fmt.Sprintf(" AND role = $%d", argIdx)
		args = append(args, *filter.Role)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM identities WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count identities: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT id, display_name, employee_code, email, role,
			   shift_start, grace_minutes, created_at, updated_at
		FROM identities
		WHERE %s
		ORDER BY display_name ASC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query identities: %w", err)
	}
	defer rows.Close()

	var identities []identity.Identity
	for rows.Next() {
		var ident identity.Identity
		err := rows.Scan(
			&ident.ID, &ident.DisplayName, &ident.EmployeeCode, &ident.Email, &ident.Role,
			&ident.ShiftStart, &ident.GraceMinutes, &ident.CreatedAt, &ident.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan identity: %w", err)
		}
		identities = append(identities, ident)
	}

	return identities, total, nil
}

// Update implements identity.IdentityRepository.
func (r *identityRepository) Update(ctx context.Context, ident identity.Identity) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE identities
		SET display_name = $2,
			email = $3,
			role = $4,
			shift_start = $5,
			grace_minutes = $6,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		ident.ID,
		ident.DisplayName,
		ident.Email,
		ident.Role,
		ident.ShiftStart,
		ident.GraceMinutes,
	)
	if err != nil {
		return fmt.Errorf("failed to update identity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return identity.ErrIdentityNotFound
	}

	return nil
}

func NewIdentityRepository(db *database.DB) identity.IdentityRepository {
	return &identityRepository{db: db}
}
