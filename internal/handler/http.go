package handler

import (
	"net/http"
)

type Middleware = func(http.Handler) http.Handler

// Guards are the access policies routes are registered with. Nil guards let everything through.
type Guards struct {
	// User requires an authenticated caller.
	User Middleware
	// Visitor identifies the caller if a token is present.
	Visitor Middleware
	// Admin requires an operator.
	Admin Middleware
	// Limited throttles token-addressed routes.
	Limited Middleware
}

func (g Guards) withDefaults() Guards {
	for _, m := range []*Middleware{&g.User, &g.Visitor, &g.Admin, &g.Limited} {
		if *m == nil {
			*m = passThrough
		}
	}
	return g
}

func passThrough(next http.Handler) http.Handler {
	return next
}
