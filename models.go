package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// MemberRole is the member's role
type MemberRole string

const (
	// RoleGuest can read shared diaries only
	RoleGuest MemberRole = "guest"
	// RoleMember can write and manage their own diary
	RoleMember MemberRole = "member"
	// RoleAdmin can moderate diaries and members
	RoleAdmin MemberRole = "admin"
	// RoleOwner is the operator role
	RoleOwner MemberRole = "owner"
)

// Member is the credential record: identity, hashed password, and the last
// issued access token kept for audit. Records are never physically deleted;
// deleted_at marks removal, so the schema enforces email uniqueness with a
// partial index over rows where deleted_at IS NULL rather than a column
// constraint. A soft-deleted member's email stays available for re-signup.
type Member struct {
	bun.BaseModel   `bun:"table:members,alias:mbr"`
	ID              uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Role            MemberRole `bun:"member_role,notnull" json:"member_role,omitempty"`
	Nickname        string     `bun:"nickname,notnull" json:"nickname,omitempty"`
	Email           string     `bun:"email,notnull" json:"email,omitempty"`
	PasswordHash    string     `bun:"password_hash,notnull" json:"-"`
	LastAccessToken *string    `bun:"last_access_token,nullzero" json:"-"`
	LoginAttempts   int        `bun:"login_attempts" json:"login_attempts,omitempty"`
	LoginAttemptAt  *time.Time `bun:"login_attempt_at" json:"login_attempt_at,omitempty"`
	LoggedInAt      *time.Time `bun:"loggedin_at" json:"loggedin_at,omitempty"`
	CreatedAt       *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt       *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt       *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// Identity projects the record into the token-issuance view.
func (m *Member) Identity() Identity {
	return memberIdentity{
		id:       m.ID.String(),
		nickname: m.Nickname,
		email:    m.Email,
		role:     string(m.Role),
	}
}

// SignupRequest carries the join payload into Signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

// MemberResponse is the public-safe projection returned from Signup.
// It never carries the password hash.
type MemberResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Nickname  string     `json:"nickname"`
	Role      MemberRole `json:"member_role"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// ToMemberResponse builds the public projection of a member record.
func ToMemberResponse(m *Member) *MemberResponse {
	if m == nil {
		return nil
	}
	return &MemberResponse{
		ID:        m.ID,
		Email:     m.Email,
		Nickname:  m.Nickname,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
	}
}

type memberIdentity struct {
	id       string
	nickname string
	email    string
	role     string
}

func (a memberIdentity) ID() string       { return a.id }
func (a memberIdentity) Nickname() string { return a.nickname }
func (a memberIdentity) Email() string    { return a.email }
func (a memberIdentity) Role() string     { return a.role }

var _ Identity = memberIdentity{}
