// Package auth provides credential authentication and the session token
// lifecycle for the diary service: signup, login, token reissue, logout, and
// password updates.
//
// Session model:
//   - Each identity holds at most one live session. A session is the identity's
//     current refresh token, kept in a TTL store keyed by member ID. Logging in
//     or reissuing replaces the entry wholesale, so the newest writer wins and
//     older refresh tokens stop resolving.
//   - Reissue only honors a refresh token that exactly matches the stored
//     session entry. A missing or mismatched entry surfaces ErrSessionMismatch.
//   - Logout clears the session entry and denylists the presented access token
//     for its remaining lifetime. VerifyAccess consults the denylist so a
//     logged-out token is rejected before its natural expiry.
//
// Error contract:
//   - Operations fail with typed errors carrying stable text codes
//     (TextCodeAlreadyJoined, TextCodeInvalidCreds, TextCodeSessionMismatch,
//     and so on) so transport layers can map them without string matching.
//
// Activity sinks:
//   - ActivitySink is a light-weight audit emitter used by Auther to describe
//     signup, login, reissue, logout, and password change events. Sinks run
//     best-effort (errors are logged) so you can forward to a database or
//     queue without blocking authentication.
package auth
