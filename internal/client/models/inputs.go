package models

// PostInput is the body of POST/PUT /post.
type PostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CommentInput is the body of POST/PUT /comment.
type CommentInput struct {
	PostID  int64  `json:"post_id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UserInput is the body of POST/PUT /user. Password and role are only sent
// when set, so an edit leaves them unchanged.
type UserInput struct {
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Record is an opaque backend payload. Only "id" and "post_id" are read by
// the client.
type Record = map[string]any
