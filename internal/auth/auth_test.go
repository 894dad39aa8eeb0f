package auth

import (
	"context"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"universo/internal/model"
)

func TestTokenRoundTrip(t *testing.T) {
	c := qt.New(t)

	tokens := NewTokens("s3cret", 8*time.Hour)
	raw, expires, err := tokens.Issue(model.User{ID: 7, Email: "ana@x.com", Role: model.RoleEmployee})
	c.Assert(err, qt.IsNil)
	c.Assert(expires.After(time.Now().Add(7*time.Hour)), qt.IsTrue)

	id, err := tokens.Verify(raw)
	c.Assert(err, qt.IsNil)
	c.Assert(id, qt.DeepEquals, Identity{UserID: 7, Email: "ana@x.com", Role: model.RoleEmployee})
	c.Assert(id.IsAdmin(), qt.IsFalse)
}

func TestTokenRejected(t *testing.T) {
	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTokens("s3cret", time.Hour)
	issuer.now = func() time.Time { return issued }
	raw, _, err := issuer.Issue(model.User{ID: 1, Email: "admin@universo.com", Role: model.RoleAdmin})
	qt.Assert(t, err, qt.IsNil)

	tests := []struct {
		name     string
		verifier *Tokens
		token    string
	}{
		{
			name:     "empty",
			verifier: issuer,
			token:    "",
		},
		{
			name:     "garbage",
			verifier: issuer,
			token:    "not.a.token",
		},
		{
			name:     "wrong secret",
			verifier: &Tokens{secret: []byte("other"), ttl: time.Hour, now: func() time.Time { return issued }},
			token:    raw,
		},
		{
			name:     "expired",
			verifier: &Tokens{secret: []byte("s3cret"), ttl: time.Hour, now: func() time.Time { return issued.Add(2 * time.Hour) }},
			token:    raw,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.verifier.Verify(tt.token)
			qt.New(t).Assert(err, qt.IsNotNil)
		})
	}
}

func TestPasswordHash(t *testing.T) {
	c := qt.New(t)

	hash, err := HashPassword("secret1")
	c.Assert(err, qt.IsNil)
	c.Assert(hash, qt.Not(qt.Equals), "secret1")
	c.Assert(CheckPassword(hash, "secret1"), qt.IsTrue)
	c.Assert(CheckPassword(hash, "secret2"), qt.IsFalse)

	again, err := HashPassword("secret1")
	c.Assert(err, qt.IsNil)
	c.Assert(again, qt.Not(qt.Equals), hash)
}

func TestIdentityContext(t *testing.T) {
	c := qt.New(t)

	_, ok := FromContext(context.Background())
	c.Assert(ok, qt.IsFalse)

	ctx := NewContext(context.Background(), Identity{UserID: 3, Role: model.RoleAdmin})
	id, ok := FromContext(ctx)
	c.Assert(ok, qt.IsTrue)
	c.Assert(id.UserID, qt.Equals, uint(3))
	c.Assert(id.IsAdmin(), qt.IsTrue)
}
