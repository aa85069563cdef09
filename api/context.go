package api

import (
	"context"
	"errors"

	"github.com/rpupo63/student-portfolio-backend/models"
	"github.com/rpupo63/student-portfolio-backend/services"
)

type keyType string

const (
	sessionKey keyType = "session"
	viewKey    keyType = "view"
)

// ctxWithSession adds the authenticated session to the context
func ctxWithSession(ctx context.Context, session *models.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// ctxWithView adds the signed-in user's role view to the context
func ctxWithView(ctx context.Context, view services.View) context.Context {
	return context.WithValue(ctx, viewKey, view)
}

func ctxGetSession(ctx context.Context) (*models.Session, error) {
	session, ok := ctx.Value(sessionKey).(*models.Session)
	if !ok || session == nil {
		return nil, errors.New("session not found in context")
	}
	return session, nil
}

// ctxGetView retrieves the role view set by the auth middleware
func ctxGetView(ctx context.Context) (services.View, error) {
	view, ok := ctx.Value(viewKey).(services.View)
	if !ok || view == nil {
		return nil, errors.New("view not found in context")
	}
	return view, nil
}
