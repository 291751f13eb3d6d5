package domain

import "time"

type Post struct {
	ID            string    `json:"id"`
	Content       string    `json:"content"`
	AuthorID      int64     `json:"-"`
	Author        string    `json:"author"`
	Tags          []string  `json:"tags"`
	CreatedAt     time.Time `json:"createdAt"`
	LikesCount    int       `json:"likesCount"`
	DislikesCount int       `json:"dislikesCount"`
}
