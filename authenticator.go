package auth

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// MaxLoginAttempts is the maximum number of attempts a member gets
// in a period
var MaxLoginAttempts = 5

// CoolDownPeriod is the period in which we enforce a cool down
var CoolDownPeriod = "24h"

// Auther composes the credential store, password hasher, token issuer, and
// session store into the session lifecycle operations. Every operation is a
// stateless request handler: it completes or fails within one call, reports
// typed errors synchronously, and relies on the session store's single-key
// atomicity as the only ordering guarantee between concurrent calls for the
// same identity.
type Auther struct {
	members          MemberStore
	sessions         SessionStore
	tokens           TokenIssuer
	hasher           PasswordAuthenticator
	policy           PasswordPolicy
	logger           Logger
	activitySink     ActivitySink
	deterministicIDs bool
	now              func() time.Time
}

// NewAuthenticator returns a new Auther wired to the given collaborators.
func NewAuthenticator(members MemberStore, sessions SessionStore, cfg Config) (*Auther, error) {
	if err := cfg.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid auth configuration")
	}

	return &Auther{
		members:      members,
		sessions:     sessions,
		tokens:       NewTokenService(cfg),
		hasher:       BcryptHasher{},
		policy:       NewDefaultPasswordPolicy(),
		logger:       defLogger{},
		activitySink: noopActivitySink{},
		now:          time.Now,
	}, nil
}

var _ Authenticator = (*Auther)(nil)

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithActivitySink configures an ActivitySink for emitting auth events.
func (s *Auther) WithActivitySink(sink ActivitySink) *Auther {
	s.activitySink = normalizeActivitySink(sink)
	return s
}

// WithTokenIssuer swaps the token issuer, e.g. for a clock-injected one.
func (s *Auther) WithTokenIssuer(issuer TokenIssuer) *Auther {
	if issuer != nil {
		s.tokens = issuer
	}
	return s
}

// WithPasswordHasher overrides the bcrypt default.
func (s *Auther) WithPasswordHasher(hasher PasswordAuthenticator) *Auther {
	if hasher != nil {
		s.hasher = hasher
	}
	return s
}

// WithPasswordPolicy overrides the stock composition/length policy.
func (s *Auther) WithPasswordPolicy(policy PasswordPolicy) *Auther {
	if policy != nil {
		s.policy = policy
	}
	return s
}

// WithDeterministicIDs derives member IDs from the email on signup instead
// of random UUIDs.
func (s *Auther) WithDeterministicIDs() *Auther {
	s.deterministicIDs = true
	return s
}

// WithClock injects a custom clock (useful for tests).
func (s *Auther) WithClock(clock func() time.Time) *Auther {
	if clock != nil {
		s.now = clock
	}
	return s
}

// TokenIssuer returns the TokenIssuer instance used by this Auther.
func (s *Auther) TokenIssuer() TokenIssuer {
	return s.tokens
}

// Signup validates the password against the policy, rejects duplicate active
// emails, and persists a new member record. The returned projection never
// carries the password hash.
func (s *Auther) Signup(ctx context.Context, req SignupRequest) (*MemberResponse, error) {
	if err := s.policy.Check(req.Password); err != nil {
		return nil, err
	}

	exists, err := s.members.ExistsActiveByEmail(ctx, req.Email)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check for existing account")
	}

	if exists {
		return nil, ErrDuplicateAccount
	}

	hash, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	member := &Member{
		Email:        req.Email,
		Nickname:     getNickname(req.Nickname, req.Email),
		PasswordHash: hash,
		Role:         RoleMember,
	}

	if s.deterministicIDs {
		if id, err := hashid.NewUUID(req.Email); err == nil {
			member.ID = id
		}
	}

	created, err := s.members.Register(ctx, member)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryConflict, "could not create member")
	}

	s.emitAuthEvent(ctx, ActivityEventSignup, ActorRef{ID: created.ID.String(), Type: "member"}, created.ID.String(), map[string]any{
		"email": created.Email,
	})

	return ToMemberResponse(created), nil
}

// Login verifies credentials and starts a session: a fresh token pair is
// issued and the refresh token becomes the identity's current session entry,
// replacing whatever was there before.
func (s *Auther) Login(ctx context.Context, email, password string, adminRequested bool) (*TokenPair, error) {
	member, err := s.members.GetByEmail(ctx, email)
	if err != nil {
		if goerrors.IsNotFound(err) {
			s.emitAuthEvent(ctx, ActivityEventLoginFailure, ActorRef{Type: "unknown"}, "", map[string]any{
				"email": email,
				"error": ErrInvalidCredentials.Message,
			})
			return nil, ErrInvalidCredentials
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve member during login")
	}

	if member.LoginAttemptAt != nil {
		expired, err := IsOutsideThresholdPeriod(s.now(), *member.LoginAttemptAt, CoolDownPeriod)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to calculate login attempt cooldown")
		}

		if expired {
			member.LoginAttempts = 0
		}
	}

	// too many attempts in the window, cool off
	if member.LoginAttempts > MaxLoginAttempts {
		return nil, ErrTooManyLoginAttempts
	}

	if err := s.hasher.ComparePasswordAndHash(password, member.PasswordHash); err != nil {
		if err2 := s.members.TrackAttemptedLogin(ctx, member); err2 != nil {
			return nil, goerrors.Wrap(err2, goerrors.CategoryInternal, "failed to track login attempt")
		}

		s.emitAuthEvent(ctx, ActivityEventLoginFailure, s.actorFromMember(member), member.ID.String(), map[string]any{
			"email": email,
			"error": ErrInvalidCredentials.Message,
		})
		return nil, ErrInvalidCredentials
	}

	if adminRequested && !member.Role.IsAdmin() {
		s.emitAuthEvent(ctx, ActivityEventLoginFailure, s.actorFromMember(member), member.ID.String(), map[string]any{
			"email": email,
			"error": ErrAdminRequired.Message,
		})
		return nil, ErrAdminRequired
	}

	if err := s.members.TrackSuccessfulLogin(ctx, member); err != nil {
		s.logger.Warn("failed to track successful login: %v", err)
	}

	pair, err := s.startSession(ctx, member.Identity())
	if err != nil {
		return nil, err
	}

	s.emitAuthEvent(ctx, ActivityEventLoginSuccess, s.actorFromMember(member), member.ID.String(), map[string]any{
		"email": email,
	})

	return pair, nil
}

// Reissue exchanges a valid refresh token for a fresh pair. The refresh token
// gets full validation; identity is decoded from the access token with a
// structural check only, so an access token past its stated expiry still
// reaches the session lookup. Access-token expiry is enforced by resource
// checks, not here.
func (s *Auther) Reissue(ctx context.Context, accessToken, refreshToken string) (*TokenPair, error) {
	if !s.tokens.Validate(refreshToken) {
		return nil, ErrInvalidToken
	}

	claims, err := s.tokens.DecodeClaims(accessToken)
	if err != nil {
		return nil, err
	}

	// a refresh token in the access slot carries no role and must not
	// resolve a session
	if claims.TokenUse() != TokenUseAccess {
		return nil, ErrInvalidToken
	}

	identity := tokenIdentity{
		id:   claims.MemberID(),
		role: claims.Role(),
	}

	stored, err := s.sessions.GetSession(ctx, identity.ID())
	if err != nil {
		if goerrors.IsNotFound(err) {
			return nil, ErrSessionMismatch
		}
		return nil, err
	}

	if !tokensEqual(stored, refreshToken) {
		return nil, ErrSessionMismatch
	}

	pair, err := s.startSession(ctx, identity)
	if err != nil {
		return nil, err
	}

	s.emitAuthEvent(ctx, ActivityEventTokenReissue, s.actorFromIdentity(identity), identity.ID(), nil)

	return pair, nil
}

// Logout clears the identity's session entry and denylists the exact access
// token until its natural expiry, so any holder presenting it to a resource
// check is rejected.
func (s *Auther) Logout(ctx context.Context, accessToken string) error {
	if !s.tokens.Validate(accessToken) {
		return ErrInvalidToken
	}

	identity, err := s.tokens.DecodeIdentity(accessToken)
	if err != nil {
		return err
	}

	if err := s.sessions.ClearSession(ctx, identity); err != nil {
		return err
	}

	remaining, err := s.tokens.RemainingLifetime(accessToken)
	if err != nil {
		return err
	}

	if err := s.sessions.MarkRevoked(ctx, accessToken, remaining); err != nil {
		return err
	}

	s.emitAuthEvent(ctx, ActivityEventLogout, ActorRef{ID: identity, Type: "member"}, identity, nil)

	return nil
}

// UpdatePassword replaces the stored hash for the member with the given
// email. Verifying the current password is the calling layer's policy
// decision; this core only swaps the hash.
func (s *Auther) UpdatePassword(ctx context.Context, email, newPassword string) error {
	member, err := s.members.GetByEmail(ctx, email)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return ErrAccountNotFound
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve member for password update")
	}

	hash, err := s.hasher.HashPassword(newPassword)
	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	if err := s.members.UpdatePasswordHash(ctx, member.ID, hash); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to persist password hash")
	}

	s.emitAuthEvent(ctx, ActivityEventPasswordChanged, s.actorFromMember(member), member.ID.String(), nil)

	return nil
}

// VerifyAccess is the downstream resource check: the access token must be
// well formed, unexpired, of access use, and not revoked by a logout.
func (s *Auther) VerifyAccess(ctx context.Context, accessToken string) (*JWTClaims, error) {
	claims, err := s.tokens.DecodeClaims(accessToken)
	if err != nil {
		return nil, err
	}

	if claims.TokenUse() != TokenUseAccess {
		return nil, ErrInvalidToken
	}

	if expiry := claims.Expires(); expiry.IsZero() || !expiry.After(s.now()) {
		return nil, ErrTokenExpired
	}

	revoked, err := s.sessions.IsRevoked(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	if revoked {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}

// startSession issues a pair and makes its refresh token the current session
// entry. The entry TTL is bound to the access token's remaining lifetime at
// set-time, not the refresh token's; a session entry can therefore lapse
// before the refresh token's own embedded expiry.
func (s *Auther) startSession(ctx context.Context, identity Identity) (*TokenPair, error) {
	pair, err := s.tokens.Issue(identity)
	if err != nil {
		return nil, err
	}

	ttl := pair.AccessTokenExpiresIn(s.now())
	if err := s.sessions.SetSession(ctx, identity.ID(), pair.RefreshToken, ttl); err != nil {
		return nil, err
	}

	// The last_access_token column is advisory; a failed update never
	// blocks issuance and the session store stays authoritative.
	if id, err := uuid.Parse(identity.ID()); err == nil {
		if err := s.members.TrackIssuedToken(ctx, id, pair.AccessToken); err != nil {
			s.logger.Warn("failed to record issued access token for %s: %v", identity.ID(), err)
		}
	}

	return pair, nil
}

func (s *Auther) emitAuthEvent(ctx context.Context, eventType ActivityEventType, actor ActorRef, memberID string, metadata map[string]any) {
	event := ActivityEvent{
		EventType: eventType,
		Actor:     actor,
		MemberID:  memberID,
		Metadata:  metadata,
	}

	if event.Metadata == nil {
		event.Metadata = map[string]any{}
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.now()
	}

	if err := s.activitySink.Record(ctx, event); err != nil {
		s.logger.Warn("activity sink record error: %v", err)
	}
}

func (s *Auther) actorFromMember(member *Member) ActorRef {
	if member == nil {
		return ActorRef{Type: "unknown"}
	}

	return ActorRef{
		ID:   member.ID.String(),
		Type: "member",
	}
}

func (s *Auther) actorFromIdentity(identity Identity) ActorRef {
	if identity == nil {
		return ActorRef{Type: "unknown"}
	}

	return ActorRef{
		ID:   identity.ID(),
		Type: "member",
	}
}

// tokenIdentity is the identity view reconstructed from access-token claims
// during reissue; no credential-store read happens on that path.
type tokenIdentity struct {
	id   string
	role string
}

func (t tokenIdentity) ID() string       { return t.id }
func (t tokenIdentity) Nickname() string { return "" }
func (t tokenIdentity) Email() string    { return "" }
func (t tokenIdentity) Role() string     { return t.role }

var _ Identity = tokenIdentity{}

func tokensEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func getNickname(nickname, email string) string {
	if nickname != "" {
		return nickname
	}

	if strings.Contains(email, "@") {
		nickname = strings.Split(email, "@")[0]
	}

	return nickname
}
