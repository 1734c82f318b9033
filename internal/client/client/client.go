package client

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/vsrclient/internal/client/models"
)

// Client is the transport-agnostic contract the services depend on.
type Client interface {
	Register(ctx context.Context, creds models.Credentials) (*models.TokenResponse, error)
	Login(ctx context.Context, creds models.Credentials) (*models.TokenResponse, error)
	Me(ctx context.Context) (*models.Identity, error)

	List(ctx context.Context, resource models.Resource, query url.Values) (*Response, error)
	ListChildren(ctx context.Context, parent models.Resource, parentID int64, child models.Resource, query url.Values) (*Response, error)
	Get(ctx context.Context, resource models.Resource, id int64) (*Response, error)
	Create(ctx context.Context, resource models.Resource, body any) (*Response, error)
	Update(ctx context.Context, resource models.Resource, id int64, body any) (*Response, error)
	Delete(ctx context.Context, resource models.Resource, id int64) (*Response, error)

	Close() error
}
