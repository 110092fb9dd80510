package entity

import "time"

type Post struct {
	ID        string    `json:"id" db:"id"`
	AuthorID  string    `json:"author_id" db:"author_id"`
	Content   string    `json:"content" db:"content"`
	Likes     int       `json:"likes" db:"likes"`
	Comments  int       `json:"comments" db:"comments"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
