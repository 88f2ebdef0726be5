package client

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnanasetu/platform/client/session"
)

func TestGuard_protect(t *testing.T) {
	sess, err := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	var loginShown, viewShown bool
	login := View(func(ctx context.Context) error { loginShown = true; return nil })
	view := View(func(ctx context.Context) error { viewShown = true; return nil })

	guard := NewGuard(sess, login)
	protected := guard.Protect(view)

	t.Run("no token redirects to login", func(t *testing.T) {
		loginShown, viewShown = false, false

		require.NoError(t, protected(context.Background()))
		assert.True(t, loginShown)
		assert.False(t, viewShown, "protected view must not run without a session")
	})

	t.Run("authenticated session renders the view", func(t *testing.T) {
		require.NoError(t, sess.SetSession("tok-123", "Jane Awe"))
		loginShown, viewShown = false, false

		require.NoError(t, protected(context.Background()))
		assert.True(t, viewShown)
		assert.False(t, loginShown)
	})

	t.Run("logout guards again", func(t *testing.T) {
		require.NoError(t, sess.Logout())
		loginShown, viewShown = false, false

		require.NoError(t, protected(context.Background()))
		assert.True(t, loginShown)
		assert.False(t, viewShown)
	})
}
