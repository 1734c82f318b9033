package cli

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/vsrclient/internal/client/models"
	"github.com/dmitrijs2005/vsrclient/internal/client/services"
)

// promptInput asks for the fields of r. current holds the values being
// edited (nil on create); an empty answer keeps the current value.
func (a *App) promptInput(r models.Resource, current models.Record, args []string, create bool) (any, error) {
	switch r {
	case models.ResourcePost:
		title, err := a.ask("Title", field(current, "title"))
		if err != nil {
			return nil, err
		}
		content, err := a.askMultiline("Content", field(current, "content"))
		if err != nil {
			return nil, err
		}
		return models.PostInput{Title: title, Content: content}, nil

	case models.ResourceComment:
		postID, err := a.askPostID(current, args)
		if err != nil {
			return nil, err
		}
		title, err := a.ask("Title", field(current, "title"))
		if err != nil {
			return nil, err
		}
		content, err := a.askMultiline("Content", field(current, "content"))
		if err != nil {
			return nil, err
		}
		return models.CommentInput{PostID: postID, Title: title, Content: content}, nil

	case models.ResourceUser:
		email, err := a.ask("Email", field(current, "email"))
		if err != nil {
			return nil, err
		}
		label := "Password"
		if !create {
			label = "New password (empty keeps the current one)"
		}
		password, err := getPassword(label, a.out)
		if err != nil {
			return nil, err
		}
		if !create {
			// roles change through promote only
			return models.UserInput{Email: email, Password: password}, nil
		}
		role, err := a.ask("Role", services.DefaultUserRole)
		if err != nil {
			return nil, err
		}
		return models.UserInput{Email: email, Password: password, Role: role}, nil
	}
	return nil, fmt.Errorf("unknown resource %q", r)
}

func (a *App) askPostID(current models.Record, args []string) (int64, error) {
	if len(args) > 0 {
		return parsePositive("post_id", args[0])
	}
	raw, err := a.ask("Post ID", field(current, "post_id"))
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return 0, &services.ValidationError{Field: "post_id", Message: "is required"}
	}
	return parsePositive("post_id", raw)
}

// ask reads one line; def is shown in brackets and returned for an empty
// answer.
func (a *App) ask(prompt, def string) (string, error) {
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, def)
	}
	v, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if v == "" {
		return def, nil
	}
	return v, nil
}

func (a *App) askMultiline(prompt, def string) (string, error) {
	if def != "" {
		prompt += " (empty keeps the current text)"
	}
	v, err := getMultiline(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if v == "" {
		return def, nil
	}
	return v, nil
}

// field returns rec[name] as text, or "".
func field(rec models.Record, name string) string {
	switch v := rec[name].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprint(v)
	}
}
