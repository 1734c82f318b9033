package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/vsrclient/internal/client/models"
)

// API implements Client over an HTTPClient.
type API struct {
	http     *HTTPClient
	authBase string
	apiBase  string
}

// NewAPI binds h to the auth prefix (e.g. http://host/auth) and the resource
// prefix (e.g. http://host/api).
func NewAPI(h *HTTPClient, authBase, apiBase string) *API {
	return &API{http: h, authBase: authBase, apiBase: apiBase}
}

func (a *API) Register(ctx context.Context, creds models.Credentials) (*models.TokenResponse, error) {
	resp, err := a.http.Do(ctx, http.MethodPost, a.authBase+"/register", creds)
	if err != nil {
		return nil, err
	}

	// Some backends return a token on registration, some only a message.
	var out models.TokenResponse
	if resp.IsJSON {
		if err := resp.Decode(&out); err != nil {
			a.http.logger.Debug(ctx, "ignoring register response body", "error", err)
		}
	}
	return &out, nil
}

func (a *API) Login(ctx context.Context, creds models.Credentials) (*models.TokenResponse, error) {
	resp, err := a.http.Do(ctx, http.MethodPost, a.authBase+"/login", creds)
	if err != nil {
		return nil, err
	}

	var out models.TokenResponse
	if err := resp.Decode(&out); err != nil {
		return nil, fmt.Errorf("parse login response: %w", err)
	}
	if out.Token == "" {
		return nil, fmt.Errorf("parse login response: no token")
	}
	return &out, nil
}

func (a *API) Me(ctx context.Context) (*models.Identity, error) {
	resp, err := a.http.Do(ctx, http.MethodGet, a.authBase+"/me", nil)
	if err != nil {
		return nil, err
	}

	var out models.Identity
	if err := resp.Decode(&out); err != nil {
		return nil, fmt.Errorf("parse identity: %w", err)
	}
	return &out, nil
}

func (a *API) List(ctx context.Context, resource models.Resource, query url.Values) (*Response, error) {
	return a.http.Do(ctx, http.MethodGet, withQuery(a.collectionURL(resource), query), nil)
}

// ListChildren fetches a nested collection such as /post/{id}/comment.
func (a *API) ListChildren(ctx context.Context, parent models.Resource, parentID int64, child models.Resource, query url.Values) (*Response, error) {
	u := a.itemURL(parent, parentID) + "/" + string(child)
	return a.http.Do(ctx, http.MethodGet, withQuery(u, query), nil)
}

func (a *API) Get(ctx context.Context, resource models.Resource, id int64) (*Response, error) {
	return a.http.Do(ctx, http.MethodGet, a.itemURL(resource, id), nil)
}

func (a *API) Create(ctx context.Context, resource models.Resource, body any) (*Response, error) {
	return a.http.Do(ctx, http.MethodPost, a.collectionURL(resource), body)
}

func (a *API) Update(ctx context.Context, resource models.Resource, id int64, body any) (*Response, error) {
	return a.http.Do(ctx, http.MethodPut, a.itemURL(resource, id), body)
}

func (a *API) Delete(ctx context.Context, resource models.Resource, id int64) (*Response, error) {
	return a.http.Do(ctx, http.MethodDelete, a.itemURL(resource, id), nil)
}

func (a *API) Close() error {
	return a.http.Close()
}

func (a *API) collectionURL(resource models.Resource) string {
	return a.apiBase + "/" + string(resource)
}

func (a *API) itemURL(resource models.Resource, id int64) string {
	return a.collectionURL(resource) + "/" + strconv.FormatInt(id, 10)
}

func withQuery(u string, query url.Values) string {
	if len(query) == 0 {
		return u
	}
	return u + "?" + query.Encode()
}
