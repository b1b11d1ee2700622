package domain

import "time"

// User represents a registered member of the network.
type User struct {
	ID           int64
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string
	Profile      Profile
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile holds the optional, user-editable details shown on the profile page.
type Profile struct {
	Education   string
	Employment  string
	Music       string
	Movie       string
	Nationality string
	Birthday    *time.Time
}

// Author is the public identity attached to posts, comments and friend edges.
type Author struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}
