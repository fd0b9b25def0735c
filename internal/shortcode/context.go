package shortcode

import (
	"net/url"
	"time"
)

// Site describes the site content is rendered for.
type Site struct {
	Title       string `json:"title"`
	Tagline     string `json:"tagline"`
	URL         string `json:"url"`
	AdminEmail  string `json:"adminEmail"`
	Language    string `json:"language"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// User is the user viewing the rendered content.
type User struct {
	ID          uint64 `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

// Post is the post whose content is rendered.
type Post struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Published time.Time `json:"published"`
	Modified  time.Time `json:"modified"`
}

// Context is what a shortcode renders against.
type Context struct {
	Site  Site
	User  *User // nil for visitors
	Post  *Post
	Query url.Values
	Now   time.Time
}

// LoggedIn reports whether a user is present.
func (c *Context) LoggedIn() bool {
	return c != nil && c.User != nil && c.User.ID > 0
}

// Time returns Now, or the current time when Now is unset.
func (c *Context) Time() time.Time {
	if c == nil || c.Now.IsZero() {
		return time.Now()
	}

	return c.Now
}
