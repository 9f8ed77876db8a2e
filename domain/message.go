package domain

import "time"

type Message struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SenderID   uint      `gorm:"column:sender_id;index;not null" json:"sender_id"`
	ReceiverID uint      `gorm:"column:receiver_id;index;not null" json:"receiver_id"`
	Content    string    `gorm:"column:content;type:text;not null" json:"content"`
	CreatedAt  time.Time `gorm:"column:created_at;index" json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}
