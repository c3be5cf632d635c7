package auth

import (
	"context"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var UpdateMemberPasswordSQL = `UPDATE "members" AS "mbr"
SET
	"password_hash" = ?
WHERE
	"mbr"."deleted_at" IS NULL
AND (
	"mbr"."id" = ?
) RETURNING *;`

var TrackIssuedTokenSQL = `UPDATE "members" AS "mbr"
SET
	"last_access_token" = ?
WHERE
	"mbr"."deleted_at" IS NULL
AND (
	"mbr"."id" = ?
) RETURNING *;`

// Members is the credential store contract. It layers diary specific
// operations on top of the generic repository.
type Members interface {
	repository.Repository[*Member]

	ExistsActiveByEmail(ctx context.Context, email string) (bool, error)
	ExistsActiveByEmailTx(ctx context.Context, tx bun.IDB, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (*Member, error)
	GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*Member, error)

	Register(ctx context.Context, member *Member) (*Member, error)
	RegisterTx(ctx context.Context, tx bun.IDB, member *Member) (*Member, error)
	Create(ctx context.Context, record *Member, criteria ...repository.InsertCriteria) (*Member, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Member, criteria ...repository.InsertCriteria) (*Member, error)

	TrackAttemptedLogin(ctx context.Context, member *Member) error
	TrackAttemptedLoginTx(ctx context.Context, tx bun.IDB, member *Member) error
	TrackSuccessfulLogin(ctx context.Context, member *Member) error
	TrackSuccessfulLoginTx(ctx context.Context, tx bun.IDB, member *Member) error
	TrackIssuedToken(ctx context.Context, id uuid.UUID, accessToken string) error
	TrackIssuedTokenTx(ctx context.Context, tx bun.IDB, id uuid.UUID, accessToken string) error

	UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdatePasswordHashTx(ctx context.Context, tx bun.IDB, id uuid.UUID, passwordHash string) error
}

type members struct {
	repository.Repository[*Member]
	db *bun.DB
}

var (
	_ Members                        = (*members)(nil)
	_ repository.Repository[*Member] = (*members)(nil)
	_ MemberStore                    = (*members)(nil)
)

func NewMembersRepository(db *bun.DB) Members {
	repo := repository.NewRepository[*Member](db, repository.ModelHandlers[*Member]{
		NewRecord: func() *Member { return &Member{} },
		GetID: func(m *Member) uuid.UUID {
			if m == nil {
				return uuid.Nil
			}
			return m.ID
		},
		SetID: func(m *Member, id uuid.UUID) {
			if m != nil {
				m.ID = id
			}
		},
	})

	return &members{
		Repository: repo,
		db:         db,
	}
}

func (a *members) ExistsActiveByEmail(ctx context.Context, email string) (bool, error) {
	return a.ExistsActiveByEmailTx(ctx, a.db, email)
}

func (a *members) ExistsActiveByEmailTx(ctx context.Context, tx bun.IDB, email string) (bool, error) {
	return tx.NewSelect().
		Model((*Member)(nil)).
		Where("?TableAlias.email = ?", email).
		Exists(ctx)
}

func (a *members) GetByEmail(ctx context.Context, email string) (*Member, error) {
	return a.GetByEmailTx(ctx, a.db, email)
}

func (a *members) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*Member, error) {
	record := &Member{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"email": email,
				})
		}
		return nil, err
	}

	return record, nil
}

func (a *members) Register(ctx context.Context, member *Member) (*Member, error) {
	return a.RegisterTx(ctx, a.db, member)
}

func (a *members) RegisterTx(ctx context.Context, tx bun.IDB, member *Member) (*Member, error) {
	return a.CreateTx(ctx, tx, member)
}

func (a *members) Create(ctx context.Context, record *Member, criteria ...repository.InsertCriteria) (*Member, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *members) CreateTx(ctx context.Context, tx bun.IDB, record *Member, criteria ...repository.InsertCriteria) (*Member, error) {
	prepareMemberDefaults(record)
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}

func (a *members) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return a.UpdatePasswordHashTx(ctx, a.db, id, passwordHash)
}

func (a *members) UpdatePasswordHashTx(ctx context.Context, tx bun.IDB, id uuid.UUID, passwordHash string) error {
	res, err := a.Repository.RawTx(ctx, tx, UpdateMemberPasswordSQL, passwordHash, id.String())
	if err != nil {
		return err
	}

	if len(res) == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"id": id.String(),
			})
	}

	return nil
}

func (a *members) TrackIssuedToken(ctx context.Context, id uuid.UUID, accessToken string) error {
	return a.TrackIssuedTokenTx(ctx, a.db, id, accessToken)
}

func (a *members) TrackIssuedTokenTx(ctx context.Context, tx bun.IDB, id uuid.UUID, accessToken string) error {
	res, err := a.Repository.RawTx(ctx, tx, TrackIssuedTokenSQL, accessToken, id.String())
	if err != nil {
		return err
	}

	if len(res) == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"id": id.String(),
			})
	}

	return nil
}

func (a *members) TrackSuccessfulLogin(ctx context.Context, member *Member) error {
	return a.TrackSuccessfulLoginTx(ctx, a.db, member)
}

func (a *members) TrackSuccessfulLoginTx(ctx context.Context, tx bun.IDB, member *Member) error {
	// NOTE: Updating using the ORM fails due to a bug, it wont reset
	// login_attempt_at, login_attempts fields.
	loggedInAt := time.Now()
	_, err := tx.NewRaw(`
		UPDATE "members" AS "mbr"
		SET
			"loggedin_at" = ?,
			"login_attempt_at" = NULL,
			"login_attempts" = 0
		WHERE
			("mbr".id = ?)
			AND "mbr"."deleted_at" IS NULL;
	`, loggedInAt, member.ID).Exec(ctx)

	return err
}

func (a *members) TrackAttemptedLogin(ctx context.Context, member *Member) error {
	return a.TrackAttemptedLoginTx(ctx, a.db, member)
}

func (a *members) TrackAttemptedLoginTx(ctx context.Context, tx bun.IDB, member *Member) error {
	criteria := []repository.UpdateCriteria{
		repository.UpdateByID(member.ID.String()),
	}

	record := &Member{}
	record.ID = member.ID
	record.LoginAttempts = member.LoginAttempts + 1
	now := time.Now()
	record.LoginAttemptAt = &now

	_, err := a.Repository.UpdateTx(ctx, tx, record, criteria...)

	return err
}

func prepareMemberDefaults(record *Member) {
	if record == nil {
		return
	}

	if record.Role == "" {
		record.Role = RoleMember
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}
