package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// contextKey is a private type for context values set by middleware.
type contextKey string

// UserContextKey is the request-context key holding the authenticated
// user's uuid.UUID.
const UserContextKey contextKey = "user_id"

// Claims are the JWT claims issued by the auth collaborator.
type Claims struct {
	UserID uuid.UUID `json:"uid"`
	jwt.RegisteredClaims
}
