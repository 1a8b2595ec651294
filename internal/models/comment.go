package models

import "time"

// Comment отзыв о вещи. Оставить его может только пользователь,
// у которого есть завершенное бронирование этой вещи.
type Comment struct {
	ID       int64     `json:"id"`
	Text     string    `json:"text"`
	ItemID   int64     `json:"item_id"`
	AuthorID int64     `json:"author_id"`
	// AuthorName денормализуется из профиля автора при чтении.
	AuthorName string    `json:"author_name"`
	Created    time.Time `json:"created"`
}
