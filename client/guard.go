package client

import "context"

// View is a screen the client can show.
type View func(ctx context.Context) error

// Authenticator is the slice of session state the guard needs.
type Authenticator interface {
	IsAuthenticated() bool
}

// Guard redirects to the login view when the session holds no token.
type Guard struct {
	session Authenticator
	login   View
}

func NewGuard(session Authenticator, login View) *Guard {
	return &Guard{session: session, login: login}
}

// Protect wraps a view so it only renders for an authenticated session;
// otherwise the login view renders instead and the wrapped view never runs.
func (g *Guard) Protect(view View) View {
	return func(ctx context.Context) error {
		if !g.session.IsAuthenticated() {
			return g.login(ctx)
		}
		return view(ctx)
	}
}
