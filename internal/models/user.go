package models

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserUpdate частичное обновление: nil-поле означает "оставить как есть".
type UserUpdate struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}
