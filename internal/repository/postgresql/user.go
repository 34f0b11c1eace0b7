package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/shiftpoint/attendance-backend-go/internal/domain/user"
	"github.com/shiftpoint/attendance-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `
	u.id, u.email, u.password_hash, u.full_name, u.role,
	u.campaign_id, u.team_leader_id, u.timezone,
	u.created_at, u.updated_at,
	c.name AS campaign_name, tl.full_name AS team_leader_name
`

const userJoins = `
	FROM users u
	LEFT JOIN campaigns c ON c.id = u.campaign_id
	LEFT JOIN users tl ON tl.id = u.team_leader_id
`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role,
		&u.CampaignID, &u.TeamLeaderID, &u.Timezone,
		&u.CreatedAt, &u.UpdatedAt,
		&u.CampaignName, &u.TeamLeaderName,
	)
	return u, err
}

func collectUsers(rows pgx.Rows) ([]user.User, error) {
	defer rows.Close()
	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepositoryImpl) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO users (email, password_hash, full_name, role, campaign_id, team_leader_id, timezone)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		u.Email, u.PasswordHash, u.FullName, u.Role,
		u.CampaignID, u.TeamLeaderID, u.Timezone,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}

func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT` + userColumns + userJoins + `WHERE u.id = $1`

	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT` + userColumns + userJoins + `WHERE LOWER(u.email) = LOWER($1)`

	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *userRepositoryImpl) Update(ctx context.Context, u user.User) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE users
		SET full_name = $2, role = $3, campaign_id = $4,
			team_leader_id = $5, timezone = $6, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		u.ID, u.FullName, u.Role, u.CampaignID, u.TeamLeaderID, u.Timezone)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *userRepositoryImpl) List(ctx context.Context) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT` + userColumns + userJoins + `ORDER BY u.full_name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (r *userRepositoryImpl) ListByCampaigns(ctx context.Context, campaignIDs []string) ([]user.User, error) {
	if len(campaignIDs) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)
	query := `SELECT` + userColumns + userJoins + `WHERE u.campaign_id = ANY($1) ORDER BY u.full_name`

	rows, err := q.Query(ctx, query, campaignIDs)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (r *userRepositoryImpl) ListByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT` + userColumns + userJoins + `WHERE u.role = $1 ORDER BY u.full_name`

	rows, err := q.Query(ctx, query, role)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (r *userRepositoryImpl) ListTeamLeaders(ctx context.Context, campaignID string) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT` + userColumns + userJoins + `
		WHERE u.id IN (
			SELECT DISTINCT m.team_leader_id
			FROM users m
			WHERE m.campaign_id = $1 AND m.team_leader_id IS NOT NULL
		)
		ORDER BY u.full_name
	`
	rows, err := q.Query(ctx, query, campaignID)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}
