package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/vsrclient/internal/client/client"
	"github.com/dmitrijs2005/vsrclient/internal/client/models"
	"github.com/dmitrijs2005/vsrclient/internal/client/paging"
	"github.com/dmitrijs2005/vsrclient/internal/client/render"
	"github.com/dmitrijs2005/vsrclient/internal/client/services"
)

var errAborted = errors.New("aborted")

// Resource runs a REPL resource command such as "list --page 2" or
// "edit 3" against r.
func (a *App) Resource(ctx context.Context, r models.Resource, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: %s %s", r, resourceVerbs(r))
	}
	verb, rest := args[0], args[1:]

	switch verb {
	case "list", "ls", "l":
		opts, _, err := parseListArgs(string(r)+" list", rest)
		if err != nil {
			return err
		}
		return a.List(ctx, r, opts)

	case "next":
		return a.Page(ctx, r, 1)

	case "prev":
		return a.Page(ctx, r, -1)

	case "get", "show":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		return a.Show(ctx, r, id)

	case "create", "add", "new":
		return a.Create(ctx, r, rest)

	case "edit", "update":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		return a.Edit(ctx, r, id)

	case "delete", "rm":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		return a.Delete(ctx, r, id, false)

	case "comments":
		if r != models.ResourcePost {
			break
		}
		opts, pos, err := parseListArgs("post comments", rest)
		if err != nil {
			return err
		}
		id, err := parseID(pos)
		if err != nil {
			return err
		}
		return a.Comments(ctx, id, opts)

	case "promote":
		if r != models.ResourceUser {
			break
		}
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		return a.Promote(ctx, id)
	}

	return fmt.Errorf("unknown %s command %q, want one of %s", r, verb, resourceVerbs(r))
}

func resourceVerbs(r models.Resource) string {
	verbs := "list|next|prev|get|create|edit|delete"
	switch r {
	case models.ResourcePost:
		verbs += "|comments"
	case models.ResourceUser:
		verbs += "|promote"
	}
	return verbs
}

// List applies opts to the remembered query of r and fetches that page.
func (a *App) List(ctx context.Context, r models.Resource, opts listOptions) error {
	if r == models.ResourceComment {
		a.commentsOf = 0
	}
	q := a.pages.Update(r, opts.apply)
	return a.fetchPage(ctx, r, q)
}

// Page moves the remembered query of r by delta pages and fetches it.
func (a *App) Page(ctx context.Context, r models.Resource, delta int) error {
	q := a.pages.Update(r, func(q *paging.Query) { q.Advance(delta) })
	if r == models.ResourceComment && a.commentsOf > 0 {
		return a.fetchComments(ctx, a.commentsOf, q)
	}
	return a.fetchPage(ctx, r, q)
}

// Comments lists the comments of one post using the comment paging state.
func (a *App) Comments(ctx context.Context, postID int64, opts listOptions) error {
	if a.commentsOf != postID {
		a.pages.Reset(models.ResourceComment)
	}
	q := a.pages.Update(models.ResourceComment, opts.apply)
	if err := a.fetchComments(ctx, postID, q); err != nil {
		return err
	}
	a.commentsOf = postID
	return nil
}

func (a *App) fetchPage(ctx context.Context, r models.Resource, q paging.Query) error {
	resp, err := a.resources.List(ctx, r, q)
	if err != nil {
		return err
	}
	a.show(resp, r)
	a.pageFooter(q)
	return nil
}

func (a *App) fetchComments(ctx context.Context, postID int64, q paging.Query) error {
	resp, err := a.resources.Comments(ctx, postID, q)
	if err != nil {
		return err
	}
	a.show(resp, models.ResourceComment)
	a.pageFooter(q)
	return nil
}

func (a *App) pageFooter(q paging.Query) {
	s := fmt.Sprintf("page %d, %d per page", q.Page, q.Limit)
	if q.SortField != "" {
		s += fmt.Sprintf(", sorted by %s %s", q.SortField, q.Direction)
	}
	if q.Search != "" {
		s += fmt.Sprintf(", search %q", q.Search)
	}
	a.println(s)
}

// Show fetches and prints one record.
func (a *App) Show(ctx context.Context, r models.Resource, id int64) error {
	resp, err := a.resources.Get(ctx, r, id)
	if err != nil {
		return err
	}
	a.show(resp, r)
	return nil
}

// Create prompts for the fields of a new r and sends it. For comments the
// first argument, if any, is the post id.
func (a *App) Create(ctx context.Context, r models.Resource, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	input, err := a.promptInput(r, nil, args, true)
	if err != nil {
		return err
	}

	resp, err := a.resources.Create(ctx, r, input)
	if err != nil {
		return err
	}
	a.println("Created", r)
	a.show(resp, r)
	return nil
}

// Edit loads record id, prompts with its current values as defaults and
// saves the result.
func (a *App) Edit(ctx context.Context, r models.Resource, id int64) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	resp, err := a.resources.Get(ctx, r, id)
	if err != nil {
		return err
	}

	var current models.Record
	if resp.IsJSON {
		if err := resp.Decode(&current); err != nil {
			return fmt.Errorf("parse %s %d: %w", r, id, err)
		}
	}

	input, err := a.promptInput(r, current, nil, false)
	if err != nil {
		return err
	}

	out, err := a.resources.Update(ctx, r, id, input)
	if err != nil {
		return err
	}
	a.println("Updated", r, id)
	a.show(out, r)
	return nil
}

// Delete removes record id after confirmation, unless confirmed is set.
func (a *App) Delete(ctx context.Context, r models.Resource, id int64, confirmed bool) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if !confirmed {
		answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete %s %d? [y/N]", r, id), a.out)
		if err != nil {
			return err
		}
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			return errAborted
		}
	}

	resp, err := a.resources.Delete(ctx, r, id)
	if err != nil {
		return err
	}
	a.println("Deleted", r, id)
	if text := strings.TrimSpace(resp.Text); text != "" {
		a.println(text)
	}
	return nil
}

// Promote gives user id the admin role.
func (a *App) Promote(ctx context.Context, id int64) error {
	resp, err := a.resources.Promote(ctx, id)
	if err != nil {
		return err
	}
	a.println("Promoted user", id, "to admin")
	a.show(resp, models.ResourceUser)
	return nil
}

// show renders a successful response at the current width. Users carry no
// distinguishing field, so their kind is passed explicitly.
func (a *App) show(resp *client.Response, kind models.Resource) {
	if resp == nil {
		return
	}
	payload := resp.Payload()
	if s, ok := payload.(string); ok && strings.TrimSpace(s) == "" {
		return
	}
	if payload == nil {
		return
	}

	opts := render.Options{NarrowWidth: a.config.NarrowWidth}
	if kind == models.ResourceUser {
		opts.Kind = models.ResourceUser
	}
	if err := a.terminal.Print(render.Build(payload, a.width(), opts)); err != nil {
		a.logger.Warn(context.Background(), "render failed", "error", err)
	}
}

func parseID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, &services.ValidationError{Field: "id", Message: "is required"}
	}
	return parsePositive("id", args[0])
}

func parsePositive(field, s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, &services.ValidationError{Field: field, Message: "must be a positive integer"}
	}
	return id, nil
}
