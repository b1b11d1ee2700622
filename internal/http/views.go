package http

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"social-stream/internal/domain"
	"social-stream/internal/form"
	"social-stream/internal/service"
)

// Page is the envelope every GET route renders.
type Page struct {
	Name   string    `json:"page"`
	Title  string    `json:"title"`
	Flash  string    `json:"flash,omitempty"`
	Viewer *UserView `json:"viewer,omitempty"`
	Data   any       `json:"data,omitempty"`
}

type UserView struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type ProfileView struct {
	UserView
	Education   string  `json:"education"`
	Employment  string  `json:"employment"`
	Music       string  `json:"music"`
	Movie       string  `json:"movie"`
	Nationality string  `json:"nationality"`
	Birthday    *string `json:"birthday,omitempty"`
	Editable    bool    `json:"editable"`
}

type PostView struct {
	ID           int64    `json:"id"`
	Author       UserView `json:"author"`
	Content      string   `json:"content"`
	ImageURL     string   `json:"image_url,omitempty"`
	CommentCount int      `json:"comment_count"`
	CommentsURL  string   `json:"comments_url"`
	CreatedAt    string   `json:"created_at"`
}

type CommentView struct {
	ID        int64    `json:"id"`
	Author    UserView `json:"author"`
	Comment   string   `json:"comment"`
	CreatedAt string   `json:"created_at"`
}

type FriendView struct {
	UserView
	Since string `json:"since"`
}

type StreamData struct {
	Owner   UserView   `json:"owner"`
	CanPost bool       `json:"can_post"`
	Posts   []PostView `json:"posts"`
}

type CommentsData struct {
	Username string        `json:"username"`
	Post     PostView      `json:"post"`
	Comments []CommentView `json:"comments"`
}

type FriendsData struct {
	Owner   UserView     `json:"owner"`
	CanAdd  bool         `json:"can_add"`
	Friends []FriendView `json:"friends"`
}

type LoginData struct {
	Next string `json:"next,omitempty"`
}

// render writes a page, consuming any pending flash message.
func (h *Handler) render(c *gin.Context, status int, name, title string, data any) {
	p := Page{
		Name:  name,
		Title: title,
		Flash: h.popFlash(c),
		Data:  data,
	}
	if user := currentUser(c); user != nil {
		v := userView(*user)
		p.Viewer = &v
	}
	c.JSON(status, p)
}

func userView(u domain.User) UserView {
	return UserView{ID: u.ID, Username: u.Username, FirstName: u.FirstName, LastName: u.LastName}
}

func authorView(a domain.Author) UserView {
	return UserView{ID: a.ID, Username: a.Username, FirstName: a.FirstName, LastName: a.LastName}
}

func profileView(u domain.User, editable bool) ProfileView {
	v := ProfileView{
		UserView:    userView(u),
		Education:   u.Profile.Education,
		Employment:  u.Profile.Employment,
		Music:       u.Profile.Music,
		Movie:       u.Profile.Movie,
		Nationality: u.Profile.Nationality,
		Editable:    editable,
	}
	if u.Profile.Birthday != nil {
		b := u.Profile.Birthday.Format(form.BirthdayLayout)
		v.Birthday = &b
	}
	return v
}

// postView links comments under the stream owner the post was seen on.
func postView(item service.FeedItem, owner string) PostView {
	return PostView{
		ID:           item.ID,
		Author:       authorView(item.Author),
		Content:      item.Content,
		ImageURL:     item.ImageURL,
		CommentCount: item.CommentCount,
		CommentsURL:  "/comments/" + url.PathEscape(owner) + "/" + strconv.FormatInt(item.ID, 10),
		CreatedAt:    item.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func commentView(cm domain.Comment) CommentView {
	return CommentView{
		ID:        cm.ID,
		Author:    authorView(cm.Author),
		Comment:   cm.Text,
		CreatedAt: cm.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func friendView(e domain.FriendEdge) FriendView {
	return FriendView{
		UserView: authorView(e.Friend),
		Since:    e.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func renderError(c *gin.Context, status int) {
	c.JSON(status, gin.H{"error": http.StatusText(status)})
}
