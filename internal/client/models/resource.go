// Package models defines client-side data models used by the vsrc CLI.
package models

import "fmt"

// Resource names a REST collection on the backend. The value doubles as the
// URL path segment (/api/post, /api/comment, /api/user).
type Resource string

const (
	ResourcePost    Resource = "post"
	ResourceComment Resource = "comment"
	ResourceUser    Resource = "user"
)

// Resources lists every known kind in display order.
var Resources = []Resource{ResourcePost, ResourceComment, ResourceUser}

// ParseResource accepts singular or plural names ("post", "posts").
func ParseResource(s string) (Resource, error) {
	switch s {
	case "post", "posts":
		return ResourcePost, nil
	case "comment", "comments":
		return ResourceComment, nil
	case "user", "users":
		return ResourceUser, nil
	default:
		return "", fmt.Errorf("unknown resource %q", s)
	}
}

// Plural is used in user-facing messages.
func (r Resource) Plural() string {
	return string(r) + "s"
}
