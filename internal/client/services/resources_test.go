package services

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/dmitrijs2005/vsrclient/internal/client/models"
	"github.com/dmitrijs2005/vsrclient/internal/client/paging"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_SendsQuery(t *testing.T) {
	fc := &fakeClient{}
	svc := NewResourceService(fc, NewSession(newStore(t), nil), nil)

	q := paging.NewQuery()
	q.Apply("go", 5, "title", paging.Desc)

	_, err := svc.List(context.Background(), models.ResourcePost, q)
	require.NoError(t, err)

	require.Len(t, fc.calls, 1)
	want := url.Values{
		"page": {"1"}, "limit": {"5"}, "order_by": {"title"}, "order_dir": {"desc"}, "search": {"go"},
	}
	if diff := cmp.Diff(want, fc.calls[0].Query); diff != "" {
		t.Fatalf("query mismatch (-want +got):\n%s", diff)
	}
}

func TestComments(t *testing.T) {
	fc := &fakeClient{}
	svc := NewResourceService(fc, NewSession(newStore(t), nil), nil)

	_, err := svc.Comments(context.Background(), 0, paging.NewQuery())
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Comments(context.Background(), 4, paging.NewQuery())
	require.NoError(t, err)
	require.Len(t, fc.calls, 1)
	assert.Equal(t, "children", fc.calls[0].Method)
	assert.Equal(t, int64(4), fc.calls[0].ID)
	assert.Equal(t, models.ResourceComment, fc.calls[0].Resource)
}

func TestCreate_ValidationMakesNoCall(t *testing.T) {
	tests := []struct {
		name  string
		r     models.Resource
		input any
		field string
	}{
		{"post title", models.ResourcePost, models.PostInput{Content: "c"}, "title"},
		{"post content", models.ResourcePost, models.PostInput{Title: "t", Content: " "}, "content"},
		{"comment post id", models.ResourceComment, models.CommentInput{Title: "t", Content: "c"}, "post_id"},
		{"comment title", models.ResourceComment, models.CommentInput{PostID: 1, Content: "c"}, "title"},
		{"user email", models.ResourceUser, models.UserInput{Password: "p"}, "email"},
		{"user password", models.ResourceUser, models.UserInput{Email: "a@b.c"}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeClient{}
			svc := NewResourceService(fc, loggedIn(t, "admin"), nil)

			_, err := svc.Create(context.Background(), tt.r, tt.input)
			require.ErrorIs(t, err, ErrValidation)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Empty(t, fc.calls)
		})
	}
}

func TestCreate_RequiresSession(t *testing.T) {
	fc := &fakeClient{}
	svc := NewResourceService(fc, NewSession(newStore(t), nil), nil)

	_, err := svc.Create(context.Background(), models.ResourcePost, models.PostInput{Title: "t", Content: "c"})
	require.ErrorIs(t, err, ErrUnauthenticated)
	assert.Empty(t, fc.calls)
}

func TestCreate_Post(t *testing.T) {
	fc := &fakeClient{}
	svc := NewResourceService(fc, loggedIn(t, "user"), nil)

	_, err := svc.Create(context.Background(), models.ResourcePost, models.PostInput{Title: " t ", Content: "c"})
	require.NoError(t, err)
	require.Len(t, fc.calls, 1)
	assert.Equal(t, models.PostInput{Title: "t", Content: "c"}, fc.calls[0].Body)
}

func TestCreate_UserDefaultsRole(t *testing.T) {
	fc := &fakeClient{}
	svc := NewResourceService(fc, loggedIn(t, "admin"), nil)

	_, err := svc.Create(context.Background(), models.ResourceUser, models.UserInput{Email: "n@b.c", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, models.UserInput{Email: "n@b.c", Password: "p", Role: DefaultUserRole}, fc.calls[0].Body)
}

func TestCreate_WrongInputType(t *testing.T) {
	svc := NewResourceService(&fakeClient{}, loggedIn(t, "admin"), nil)
	_, err := svc.Create(context.Background(), models.ResourcePost, models.CommentInput{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestUpdate_UserKeepsRoleWhenUnset(t *testing.T) {
	fc := &fakeClient{}
	svc := NewResourceService(fc, loggedIn(t, "admin"), nil)

	_, err := svc.Update(context.Background(), models.ResourceUser, 3, models.UserInput{Email: "n@b.c"})
	require.NoError(t, err)
	assert.Equal(t, models.UserInput{Email: "n@b.c"}, fc.calls[0].Body)
}

func TestUpdate_UserNeverSendsRole(t *testing.T) {
	fc := &fakeClient{}
	svc := NewResourceService(fc, loggedIn(t, "admin"), nil)

	_, err := svc.Update(context.Background(), models.ResourceUser, 5, models.UserInput{Email: "u@b.c", Role: "user"})
	require.NoError(t, err)
	require.Len(t, fc.calls, 1)
	assert.Equal(t, models.UserInput{Email: "u@b.c"}, fc.calls[0].Body)

	raw, err := json.Marshal(fc.calls[0].Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"u@b.c"}`, string(raw))
}

func TestUsers_RequireAdmin(t *testing.T) {
	ctx := context.Background()

	fc := &fakeClient{}
	svc := NewResourceService(fc, NewSession(newStore(t), nil), nil)
	_, err := svc.List(ctx, models.ResourceUser, paging.NewQuery())
	require.ErrorIs(t, err, ErrUnauthenticated)

	svc = NewResourceService(fc, loggedIn(t, "user"), nil)
	_, err = svc.List(ctx, models.ResourceUser, paging.NewQuery())
	require.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Delete(ctx, models.ResourceUser, 2)
	require.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Get(ctx, models.ResourceUser, 2)
	require.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, fc.calls)

	svc = NewResourceService(fc, loggedIn(t, "admin"), nil)
	_, err = svc.List(ctx, models.ResourceUser, paging.NewQuery())
	require.NoError(t, err)
	assert.Len(t, fc.calls, 1)
}

func TestDelete_InvalidID(t *testing.T) {
	fc := &fakeClient{}
	svc := NewResourceService(fc, loggedIn(t, "user"), nil)

	_, err := svc.Delete(context.Background(), models.ResourcePost, -1)
	require.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, fc.calls)

	_, err = svc.Delete(context.Background(), models.ResourceComment, 7)
	require.NoError(t, err)
	assert.Equal(t, call{Method: "delete", Resource: models.ResourceComment, ID: 7}, fc.calls[0])
}

func TestPromote(t *testing.T) {
	fc := &fakeClient{
		GetRet: jsonResponse(t, map[string]any{"id": 5, "email": "u@b.c", "role": "user"}),
	}
	svc := NewResourceService(fc, loggedIn(t, "admin"), nil)

	_, err := svc.Promote(context.Background(), 5)
	require.NoError(t, err)

	require.Len(t, fc.calls, 2)
	assert.Equal(t, "get", fc.calls[0].Method)
	assert.Equal(t, call{
		Method:   "update",
		Resource: models.ResourceUser,
		ID:       5,
		Body:     models.UserInput{Email: "u@b.c", Role: "admin"},
	}, fc.calls[1])
}

func TestPromote_AlreadyAdmin(t *testing.T) {
	fc := &fakeClient{
		GetRet: jsonResponse(t, map[string]any{"id": 5, "email": "u@b.c", "role": "admin"}),
	}
	svc := NewResourceService(fc, loggedIn(t, "admin"), nil)

	_, err := svc.Promote(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, fc.calls, 1)
}

func TestPromote_RequiresAdmin(t *testing.T) {
	fc := &fakeClient{}
	svc := NewResourceService(fc, loggedIn(t, "user"), nil)

	_, err := svc.Promote(context.Background(), 5)
	require.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, fc.calls)
}
