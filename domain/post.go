package domain

import "time"

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"column:author_id;index;not null" json:"author_id"`
	Title     string    `gorm:"column:title;size:140;not null" json:"title"`
	Content   string    `gorm:"column:content;type:text" json:"content"`
	CreatedAt time.Time `gorm:"column:created_at;index" json:"created_at"`
}

func (Post) TableName() string {
	return "posts"
}
