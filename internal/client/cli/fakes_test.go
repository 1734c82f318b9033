package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/vsrclient/internal/client/client"
	"github.com/dmitrijs2005/vsrclient/internal/client/config"
	"github.com/dmitrijs2005/vsrclient/internal/client/models"
	"github.com/dmitrijs2005/vsrclient/internal/client/paging"
	"github.com/dmitrijs2005/vsrclient/internal/client/services"
	"github.com/dmitrijs2005/vsrclient/internal/client/storage"
	"github.com/dmitrijs2005/vsrclient/internal/logging"
	"github.com/stretchr/testify/require"
)

// ---- fake services ----

type fakeAuth struct {
	session *services.Session

	loginRole string
	loginErr  error
	meErr     error
	regErr    error

	regEmail, regPass     string
	loginEmail, loginPass string
	meCalls               int
}

func (f *fakeAuth) Session() *services.Session { return f.session }

func (f *fakeAuth) Register(ctx context.Context, email, password string) error {
	f.regEmail, f.regPass = email, password
	return f.regErr
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (services.SessionInfo, error) {
	f.loginEmail, f.loginPass = email, password
	if f.loginErr != nil {
		return services.SessionInfo{}, f.loginErr
	}
	if err := f.session.Start(ctx, "tok", email); err != nil {
		return services.SessionInfo{}, err
	}
	if f.meErr != nil {
		return f.session.Info(), f.meErr
	}
	f.session.SetRole(f.loginRole)
	return f.session.Info(), nil
}

func (f *fakeAuth) FetchIdentity(ctx context.Context) (string, error) {
	f.meCalls++
	if !f.session.IsAuthenticated() {
		return "", services.ErrUnauthenticated
	}
	if f.meErr != nil {
		return "", f.meErr
	}
	f.session.SetRole(f.loginRole)
	return f.loginRole, nil
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	return f.session.Clear(ctx)
}

type resCall struct {
	Method   string
	Resource models.Resource
	ID       int64
	Query    paging.Query
	Input    any
}

type fakeResources struct {
	calls []resCall

	listResp *client.Response
	getResp  *client.Response
	err      error
}

func (f *fakeResources) resp(r *client.Response) (*client.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	if r == nil {
		r = &client.Response{Status: 200}
	}
	return r, nil
}

func (f *fakeResources) List(ctx context.Context, r models.Resource, q paging.Query) (*client.Response, error) {
	f.calls = append(f.calls, resCall{Method: "list", Resource: r, Query: q})
	return f.resp(f.listResp)
}

func (f *fakeResources) Comments(ctx context.Context, postID int64, q paging.Query) (*client.Response, error) {
	f.calls = append(f.calls, resCall{Method: "comments", Resource: models.ResourceComment, ID: postID, Query: q})
	return f.resp(f.listResp)
}

func (f *fakeResources) Get(ctx context.Context, r models.Resource, id int64) (*client.Response, error) {
	f.calls = append(f.calls, resCall{Method: "get", Resource: r, ID: id})
	return f.resp(f.getResp)
}

func (f *fakeResources) Create(ctx context.Context, r models.Resource, input any) (*client.Response, error) {
	f.calls = append(f.calls, resCall{Method: "create", Resource: r, Input: input})
	return f.resp(nil)
}

func (f *fakeResources) Update(ctx context.Context, r models.Resource, id int64, input any) (*client.Response, error) {
	f.calls = append(f.calls, resCall{Method: "update", Resource: r, ID: id, Input: input})
	return f.resp(nil)
}

func (f *fakeResources) Delete(ctx context.Context, r models.Resource, id int64) (*client.Response, error) {
	f.calls = append(f.calls, resCall{Method: "delete", Resource: r, ID: id})
	return f.resp(nil)
}

func (f *fakeResources) Promote(ctx context.Context, id int64) (*client.Response, error) {
	f.calls = append(f.calls, resCall{Method: "promote", Resource: models.ResourceUser, ID: id})
	return f.resp(nil)
}

// ---- helpers ----

func newSession(t *testing.T) *services.Session {
	t.Helper()
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "cli.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return services.NewSession(storage.NewSQLiteStore(db), nil)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.Width = 120
	return cfg
}

type testEnv struct {
	app  *App
	auth *fakeAuth
	res  *fakeResources
	out  *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	fa := &fakeAuth{session: newSession(t)}
	fr := &fakeResources{}
	a := newApp(testConfig(), logging.Nop(), fa, fr)

	out := &bytes.Buffer{}
	a.setOutput(out)
	a.reader = bufio.NewReader(bytes.NewReader(nil))
	return &testEnv{app: a, auth: fa, res: fr, out: out}
}

func (e *testEnv) login(t *testing.T, role string) {
	t.Helper()
	require.NoError(t, e.auth.session.Start(context.Background(), "tok", "a@b.c"))
	e.auth.session.SetRole(role)
}

// stubAnswers feeds the given answers, in order, to every prompt helper.
func stubAnswers(t *testing.T, answers ...string) {
	t.Helper()
	origST, origGP, origML := getSimpleText, getPassword, getMultiline
	t.Cleanup(func() {
		getSimpleText, getPassword, getMultiline = origST, origGP, origML
	})

	next := func() string {
		if len(answers) == 0 {
			t.Fatalf("unexpected prompt")
		}
		a := answers[0]
		answers = answers[1:]
		return a
	}
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	getPassword = func(_ string, _ io.Writer) (string, error) { return next(), nil }
}

func jsonResp(t *testing.T, v any) *client.Response {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var data any
	require.NoError(t, dec.Decode(&data))
	return &client.Response{Status: 200, ContentType: "application/json", IsJSON: true, Data: data, Raw: raw}
}
