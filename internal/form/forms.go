// Package form declares the typed inputs accepted by each page and the rules
// they must satisfy before a service sees them.
package form

import (
	"strings"
	"time"

	"social-stream/internal/domain"
)

// BirthdayLayout is the accepted date format for the profile birthday field.
const BirthdayLayout = "2006-01-02"

// LoginForm is submitted from the index page and from /login.
type LoginForm struct {
	Username   string `form:"username" validate:"required,max=64"`
	Password   string `form:"password" validate:"required,max=256"`
	RememberMe string `form:"remember_me"`
	Next       string `form:"next"`
}

// Remember reports whether the remember-me checkbox was ticked. Browsers send
// "on" for a checked box without an explicit value.
func (f LoginForm) Remember() bool {
	switch strings.ToLower(strings.TrimSpace(f.RememberMe)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// RegisterForm creates a new account.
type RegisterForm struct {
	Username        string `form:"username" validate:"required,username"`
	FirstName       string `form:"first_name" validate:"required,max=100"`
	LastName        string `form:"last_name" validate:"required,max=100"`
	Password        string `form:"password" validate:"required,password"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
}

// Normalize trims the free-text fields. Passwords are kept verbatim.
func (f *RegisterForm) Normalize() {
	f.Username = strings.TrimSpace(f.Username)
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
}

// PostForm carries the text part of a stream post; the image travels as a
// multipart file next to it.
type PostForm struct {
	Content string `form:"content" validate:"max=5000"`
}

// CommentForm adds a comment to a post.
type CommentForm struct {
	Comment string `form:"comment" validate:"required,max=2000"`
}

// FriendForm names the user to add as a friend.
type FriendForm struct {
	Username string `form:"username" validate:"required,max=64"`
}

// ProfileForm edits the optional profile details.
type ProfileForm struct {
	Education   string `form:"education" validate:"max=200"`
	Employment  string `form:"employment" validate:"max=200"`
	Music       string `form:"music" validate:"max=200"`
	Movie       string `form:"movie" validate:"max=200"`
	Nationality string `form:"nationality" validate:"max=200"`
	Birthday    string `form:"birthday" validate:"omitempty,datetime=2006-01-02"`
}

// Normalize trims every field so padding neither fails the birthday layout
// nor counts toward the length limits.
func (f *ProfileForm) Normalize() {
	f.Education = strings.TrimSpace(f.Education)
	f.Employment = strings.TrimSpace(f.Employment)
	f.Music = strings.TrimSpace(f.Music)
	f.Movie = strings.TrimSpace(f.Movie)
	f.Nationality = strings.TrimSpace(f.Nationality)
	f.Birthday = strings.TrimSpace(f.Birthday)
}

// Profile converts a validated form into the domain value.
func (f ProfileForm) Profile() domain.Profile {
	p := domain.Profile{
		Education:   strings.TrimSpace(f.Education),
		Employment:  strings.TrimSpace(f.Employment),
		Music:       strings.TrimSpace(f.Music),
		Movie:       strings.TrimSpace(f.Movie),
		Nationality: strings.TrimSpace(f.Nationality),
	}
	if b, err := time.Parse(BirthdayLayout, strings.TrimSpace(f.Birthday)); err == nil {
		p.Birthday = &b
	}
	return p
}
