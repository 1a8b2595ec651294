package models

import "time"

// Request запрос пользователя на вещь, которой нет в каталоге.
// После создания не изменяется; время создания назначает сервер.
type Request struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequesterID int64     `json:"requester_id"`
	Created     time.Time `json:"created"`
}

// RequestDetail запрос вместе с вещами, созданными для его выполнения.
type RequestDetail struct {
	Request
	Items []Item `json:"items"`
}
