package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/vsrclient/internal/client/client"
	"github.com/dmitrijs2005/vsrclient/internal/client/models"
	"github.com/dmitrijs2005/vsrclient/internal/client/paging"
	"github.com/dmitrijs2005/vsrclient/internal/common"
	"github.com/dmitrijs2005/vsrclient/internal/logging"
)

// DefaultUserRole is assigned to users created without an explicit role.
const DefaultUserRole = "user"

// ResourceService performs CRUD on posts, comments and users.
//
// Reads of posts and comments are sent as is and the server decides.
// Writes need a session, and every users operation needs the admin role;
// both are checked locally first. Inputs are validated before any request.
type ResourceService interface {
	List(ctx context.Context, r models.Resource, q paging.Query) (*client.Response, error)
	Comments(ctx context.Context, postID int64, q paging.Query) (*client.Response, error)
	Get(ctx context.Context, r models.Resource, id int64) (*client.Response, error)
	Create(ctx context.Context, r models.Resource, input any) (*client.Response, error)
	Update(ctx context.Context, r models.Resource, id int64, input any) (*client.Response, error)
	Delete(ctx context.Context, r models.Resource, id int64) (*client.Response, error)
	Promote(ctx context.Context, userID int64) (*client.Response, error)
}

type resourceService struct {
	client  client.Client
	session *Session
	logger  logging.Logger
}

func NewResourceService(c client.Client, session *Session, logger logging.Logger) ResourceService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &resourceService{client: c, session: session, logger: logger}
}

func (s *resourceService) List(ctx context.Context, r models.Resource, q paging.Query) (*client.Response, error) {
	if err := s.authorizeRead(r); err != nil {
		return nil, err
	}
	return s.client.List(ctx, r, q.Values())
}

func (s *resourceService) Comments(ctx context.Context, postID int64, q paging.Query) (*client.Response, error) {
	if err := validateID("post_id", postID); err != nil {
		return nil, err
	}
	return s.client.ListChildren(ctx, models.ResourcePost, postID, models.ResourceComment, q.Values())
}

func (s *resourceService) Get(ctx context.Context, r models.Resource, id int64) (*client.Response, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	if err := s.authorizeRead(r); err != nil {
		return nil, err
	}
	return s.client.Get(ctx, r, id)
}

func (s *resourceService) Create(ctx context.Context, r models.Resource, input any) (*client.Response, error) {
	body, err := normalizeInput(r, input, true)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeWrite(r); err != nil {
		return nil, err
	}

	resp, err := s.client.Create(ctx, r, body)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "created", "resource", r)
	return resp, nil
}

func (s *resourceService) Update(ctx context.Context, r models.Resource, id int64, input any) (*client.Response, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	body, err := normalizeInput(r, input, false)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeWrite(r); err != nil {
		return nil, err
	}

	resp, err := s.client.Update(ctx, r, id, body)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "updated", "resource", r, "id", id)
	return resp, nil
}

func (s *resourceService) Delete(ctx context.Context, r models.Resource, id int64) (*client.Response, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	if err := s.authorizeWrite(r); err != nil {
		return nil, err
	}

	resp, err := s.client.Delete(ctx, r, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "deleted", "resource", r, "id", id)
	return resp, nil
}

// Promote gives a user the admin role: the record is read back and written
// again with only the role changed.
func (s *resourceService) Promote(ctx context.Context, userID int64) (*client.Response, error) {
	if err := validateID("id", userID); err != nil {
		return nil, err
	}
	if err := s.authorizeWrite(models.ResourceUser); err != nil {
		return nil, err
	}

	resp, err := s.client.Get(ctx, models.ResourceUser, userID)
	if err != nil {
		return nil, err
	}
	var rec models.Record
	if err := resp.Decode(&rec); err != nil {
		return nil, fmt.Errorf("parse user %d: %w", userID, err)
	}

	in := models.UserInput{Role: common.RoleAdmin}
	if email, ok := rec["email"].(string); ok {
		in.Email = email
	}
	if in.Email == "" {
		return nil, fmt.Errorf("parse user %d: no email", userID)
	}
	if role, _ := rec["role"].(string); role == common.RoleAdmin {
		return resp, nil
	}

	out, err := s.client.Update(ctx, models.ResourceUser, userID, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "promoted user", "id", userID)
	return out, nil
}

func (s *resourceService) authorizeRead(r models.Resource) error {
	if r != models.ResourceUser {
		return nil
	}
	return s.requireAdmin()
}

func (s *resourceService) authorizeWrite(r models.Resource) error {
	if r == models.ResourceUser {
		return s.requireAdmin()
	}
	if !s.session.IsAuthenticated() {
		return ErrUnauthenticated
	}
	return nil
}

func (s *resourceService) requireAdmin() error {
	if !s.session.IsAuthenticated() {
		return ErrUnauthenticated
	}
	if !s.session.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

func validateID(field string, id int64) error {
	if id <= 0 {
		return &ValidationError{Field: field, Message: "must be a positive integer"}
	}
	return nil
}

// normalizeInput checks input against the rules of r and returns the body
// to send, with surrounding blanks trimmed.
func normalizeInput(r models.Resource, input any, create bool) (any, error) {
	switch r {
	case models.ResourcePost:
		in, ok := input.(models.PostInput)
		if !ok {
			return nil, fmt.Errorf("unexpected %T for %s", input, r)
		}
		in.Title = strings.TrimSpace(in.Title)
		if in.Title == "" {
			return nil, required("title")
		}
		if strings.TrimSpace(in.Content) == "" {
			return nil, required("content")
		}
		return in, nil

	case models.ResourceComment:
		in, ok := input.(models.CommentInput)
		if !ok {
			return nil, fmt.Errorf("unexpected %T for %s", input, r)
		}
		if err := validateID("post_id", in.PostID); err != nil {
			return nil, err
		}
		in.Title = strings.TrimSpace(in.Title)
		if in.Title == "" {
			return nil, required("title")
		}
		if strings.TrimSpace(in.Content) == "" {
			return nil, required("content")
		}
		return in, nil

	case models.ResourceUser:
		in, ok := input.(models.UserInput)
		if !ok {
			return nil, fmt.Errorf("unexpected %T for %s", input, r)
		}
		in.Email = strings.TrimSpace(in.Email)
		if in.Email == "" {
			return nil, required("email")
		}
		if create && in.Password == "" {
			return nil, required("password")
		}
		// Role changes go through Promote only; edits never send one.
		if !create {
			in.Role = ""
			return in, nil
		}
		in.Role = strings.TrimSpace(in.Role)
		if in.Role == "" {
			in.Role = DefaultUserRole
		}
		return in, nil

	default:
		return nil, fmt.Errorf("unknown resource %q", r)
	}
}
