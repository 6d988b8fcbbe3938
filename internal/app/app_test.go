package app

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chirpnet/chirp/internal/console"
	"github.com/chirpnet/chirp/internal/model"
	"github.com/chirpnet/chirp/internal/session"
	"github.com/chirpnet/chirp/internal/store/sqlite"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.Open(fmt.Sprintf("file:app-%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// newTestApp builds an App reading the scripted input and writing to
// the returned buffer.
func newTestApp(t *testing.T, st *sqlite.Store, input string) (*App, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	con := console.New(strings.NewReader(input), out)
	a := New(st, con, session.NewService(st, zap.NewNop()), zap.NewNop())
	a.now = func() time.Time { return fixedNow }
	return a, out
}

func seedUser(t *testing.T, st *sqlite.Store, name, city string) model.User {
	t.Helper()
	u := model.User{Name: name, City: city}
	_, err := st.CreateUser(context.Background(), &u, "pw")
	require.NoError(t, err)
	return u
}

func seedTweet(t *testing.T, st *sqlite.Store, writer int64, day, text string) int64 {
	t.Helper()
	d, err := time.Parse(model.DateLayout, day)
	require.NoError(t, err)
	id, err := st.CreateTweet(context.Background(), &model.Tweet{WriterID: writer, Date: d, Text: text})
	require.NoError(t, err)
	return id
}

func seedFollow(t *testing.T, st *sqlite.Store, follower, followee int64) {
	t.Helper()
	require.NoError(t, st.CreateFollow(context.Background(), follower, followee, fixedNow))
}

func startSession(a *App, u model.User) {
	a.sess = &session.Session{User: u, StartedAt: fixedNow}
}

func TestRunSignupLoginComposeLogout(t *testing.T) {
	st := newTestStore(t)
	input := strings.Join([]string{
		"a",               // signup
		"Bob", "pw", "pw", // name + password twice
		"bob@example.com", "Town", "UTC",
		"b", "1", "pw", // login as the new user
		"c", "Hello world", // compose
		"q", // logout
		"q", // quit program
	}, "\n") + "\n"
	a, out := newTestApp(t, st, input)

	require.NoError(t, a.Run(context.Background()))

	s := out.String()
	assert.Contains(t, s, "Thank you for signing up, Bob! Your userID is 1.")
	assert.Contains(t, s, "Login successful, welcome Bob!")
	assert.Contains(t, s, "You have no recent activity.")
	assert.Contains(t, s, "Your tweet...")
	assert.Contains(t, s, "    Bob : Hello world")
	assert.Contains(t, s, "...has been made!")
	assert.Contains(t, s, "Logout successful, goodbye Bob!")

	u, err := st.GetUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Bob", u.Name)
}

func TestRunSignupPasswordMismatch(t *testing.T) {
	st := newTestStore(t)
	a, out := newTestApp(t, st, "a\nBob\npw1\npw2\nq\n")

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), "Error: passwords do not match. Please try again.")

	_, err := st.GetUser(context.Background(), 1)
	assert.Error(t, err, "no user may be created on mismatch")
}

func TestRunLoginFailures(t *testing.T) {
	st := newTestStore(t)
	seedUser(t, st, "Ann", "")

	// Wrong password, then a non-numeric id: both take the same
	// failure path with unlimited retries.
	a, out := newTestApp(t, st, "b\n1\nwrong\nb\nnope\npw\nq\n")
	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, 2, strings.Count(out.String(), "Login failed! Please recheck your credentials and try again."))
}

func TestRunInvalidMenuInputReprompts(t *testing.T) {
	st := newTestStore(t)
	a, out := newTestApp(t, st, "z\n7\nq\n")
	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, 2, strings.Count(out.String(), "Invalid input. Please try again."))
}
