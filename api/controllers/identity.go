package controllers

import (
	"net/http"

	"github.com/angelmondragon/leadflow-backend/api/middleware"
	"github.com/angelmondragon/leadflow-backend/internal/leads"
	pkgerrors "github.com/angelmondragon/leadflow-backend/pkg/errors"
)

func identityFromRequest(r *http.Request) (middleware.Identity, error) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		return middleware.Identity{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	return identity, nil
}

func actorFromRequest(r *http.Request) (leads.Actor, error) {
	identity, err := identityFromRequest(r)
	if err != nil {
		return leads.Actor{}, err
	}
	return leads.Actor{ID: identity.ID, Role: identity.Role}, nil
}
