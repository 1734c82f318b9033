package services

import (
	"context"
	"encoding/json"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/vsrclient/internal/client/client"
	"github.com/dmitrijs2005/vsrclient/internal/client/models"
	"github.com/dmitrijs2005/vsrclient/internal/client/storage"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "vsrc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return storage.NewSQLiteStore(db)
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func jsonResponse(t *testing.T, v any) *client.Response {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	var data any
	require.NoError(t, json.Unmarshal(raw, &data))
	return &client.Response{Status: 200, ContentType: "application/json", IsJSON: true, Data: data, Raw: raw}
}

type call struct {
	Method   string
	Resource models.Resource
	ID       int64
	Query    url.Values
	Body     any
}

// fakeClient implements client.Client and records every call.
type fakeClient struct {
	calls []call

	RegisterErr error
	LoginRet    *models.TokenResponse
	LoginErr    error
	MeRet       *models.Identity
	MeErr       error

	GetRet    *client.Response
	GetErr    error
	UpdateErr error
	Resp      *client.Response
}

func (f *fakeClient) record(c call) *client.Response {
	f.calls = append(f.calls, c)
	if f.Resp != nil {
		return f.Resp
	}
	return &client.Response{Status: 200}
}

func (f *fakeClient) Register(ctx context.Context, creds models.Credentials) (*models.TokenResponse, error) {
	f.calls = append(f.calls, call{Method: "register", Body: creds})
	return &models.TokenResponse{}, f.RegisterErr
}

func (f *fakeClient) Login(ctx context.Context, creds models.Credentials) (*models.TokenResponse, error) {
	f.calls = append(f.calls, call{Method: "login", Body: creds})
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	return f.LoginRet, nil
}

func (f *fakeClient) Me(ctx context.Context) (*models.Identity, error) {
	f.calls = append(f.calls, call{Method: "me"})
	if f.MeErr != nil {
		return nil, f.MeErr
	}
	return f.MeRet, nil
}

func (f *fakeClient) List(ctx context.Context, r models.Resource, q url.Values) (*client.Response, error) {
	return f.record(call{Method: "list", Resource: r, Query: q}), nil
}

func (f *fakeClient) ListChildren(ctx context.Context, parent models.Resource, parentID int64, child models.Resource, q url.Values) (*client.Response, error) {
	return f.record(call{Method: "children", Resource: child, ID: parentID, Query: q}), nil
}

func (f *fakeClient) Get(ctx context.Context, r models.Resource, id int64) (*client.Response, error) {
	f.calls = append(f.calls, call{Method: "get", Resource: r, ID: id})
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	if f.GetRet != nil {
		return f.GetRet, nil
	}
	return &client.Response{Status: 200}, nil
}

func (f *fakeClient) Create(ctx context.Context, r models.Resource, body any) (*client.Response, error) {
	return f.record(call{Method: "create", Resource: r, Body: body}), nil
}

func (f *fakeClient) Update(ctx context.Context, r models.Resource, id int64, body any) (*client.Response, error) {
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	return f.record(call{Method: "update", Resource: r, ID: id, Body: body}), nil
}

func (f *fakeClient) Delete(ctx context.Context, r models.Resource, id int64) (*client.Response, error) {
	return f.record(call{Method: "delete", Resource: r, ID: id}), nil
}

func (f *fakeClient) Close() error { return nil }

// loggedIn returns a session holding a token and the given role.
func loggedIn(t *testing.T, role string) *Session {
	t.Helper()
	s := NewSession(newStore(t), nil)
	require.NoError(t, s.Start(context.Background(), "tok", "a@b.c"))
	s.SetRole(role)
	return s
}
