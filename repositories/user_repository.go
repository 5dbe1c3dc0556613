package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"reboot-api/identity"
	"reboot-api/models"
)

const userColumns = "id, clerk_id, email, name, role, profile_image, created_at, updated_at"

type UserRepository struct {
	DB Store
}

func NewUserRepository(db Store) *UserRepository {
	return &UserRepository{DB: db}
}

// RoleBySubject resolves the caller's role by their identity-provider subject
// id. A caller without a local row is a customer.
func (r *UserRepository) RoleBySubject(ctx context.Context, subjectID string) (models.Role, error) {
	var role models.Role
	err := r.DB.QueryRow(ctx, "SELECT role FROM users WHERE clerk_id = $1", subjectID).Scan(&role)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.RoleCustomer, nil
	}
	if err != nil {
		return "", err
	}
	return role, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	row := r.DB.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
	u, err := scanUser(row)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) ListWithOrderCount(ctx context.Context, role string) ([]models.UserWithOrderCount, error) {
	query := `
		SELECT ` + userColumns + `,
			(SELECT COUNT(*) FROM orders o WHERE o.user_id = users.clerk_id) AS order_count
		FROM users`
	args := []any{}
	if role != "" {
		query += " WHERE role = $1"
		args = append(args, role)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.UserWithOrderCount{}
	for rows.Next() {
		var u models.UserWithOrderCount
		err := rows.Scan(
			&u.ID, &u.ClerkID, &u.Email, &u.Name, &u.Role, &u.ProfileImage,
			&u.CreatedAt, &u.UpdatedAt, &u.OrderCount,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, id string, req models.UpdateUserRequest) (*models.User, error) {
	b := &UpdateBuilder{}
	if req.Name != nil {
		b.Set("name", *req.Name)
	}
	if req.Email != nil {
		b.Set("email", *req.Email)
	}
	if req.Role != nil {
		b.Set("role", *req.Role)
	}
	if req.AvatarURL != nil {
		b.Set("profile_image", *req.AvatarURL)
	}

	query, args := b.SQL("users", "id", id, userColumns)
	u, err := scanUser(r.DB.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	return err
}

func (r *UserRepository) DeleteBySubject(ctx context.Context, subjectID string) error {
	_, err := r.DB.Exec(ctx, "DELETE FROM users WHERE clerk_id = $1", subjectID)
	return err
}

// CreateFromDirectory inserts a user row from a provider payload, keyed by
// subject id.
func (r *UserRepository) CreateFromDirectory(ctx context.Context, data identity.UserData) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO users (clerk_id, email, name, role, profile_image, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		data.ID, data.PrimaryEmail(), data.DisplayName(), data.Role(), data.ImageURL, data.CreatedTime())
	return err
}

// UpdateFromDirectory refreshes the row for the payload's subject id and
// reports whether a row was matched; a zero count lets callers recover by
// creating the row instead.
func (r *UserRepository) UpdateFromDirectory(ctx context.Context, data identity.UserData) (bool, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE users SET email = $1, name = $2, role = $3, profile_image = $4, updated_at = $5
		 WHERE clerk_id = $6`,
		data.PrimaryEmail(), data.DisplayName(), data.Role(), data.ImageURL, data.UpdatedTime(), data.ID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// UpsertFromDirectory is the sync-batch path: look up the row first, then
// update or create. Returns true when a new row was created.
func (r *UserRepository) UpsertFromDirectory(ctx context.Context, data identity.UserData) (bool, error) {
	var existingID string
	err := r.DB.QueryRow(ctx, "SELECT id FROM users WHERE clerk_id = $1", data.ID).Scan(&existingID)
	if errors.Is(err, pgx.ErrNoRows) {
		return true, r.CreateFromDirectory(ctx, data)
	}
	if err != nil {
		return false, err
	}

	_, err = r.DB.Exec(ctx,
		`UPDATE users SET email = $1, name = $2, role = $3, profile_image = $4, updated_at = $5
		 WHERE clerk_id = $6`,
		data.PrimaryEmail(), data.DisplayName(), data.Role(), data.ImageURL, time.Now(), data.ID)
	return false, err
}

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.ClerkID, &u.Email, &u.Name, &u.Role, &u.ProfileImage,
		&u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}
