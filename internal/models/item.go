package models

type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"owner_id"`
	// RequestID заполняется, только если вещь создана под конкретный запрос.
	RequestID int64 `json:"request_id,omitempty"`
}

// NewItem данные для создания вещи.
type NewItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   int64  `json:"request_id"`
}

// ItemUpdate частичное обновление: nil-поле означает "оставить как есть".
type ItemUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// ItemDetail витрина вещи: ближайшие прошлое и будущее бронирования и отзывы.
type ItemDetail struct {
	Item
	LastBooking *Booking  `json:"last_booking,omitempty"`
	NextBooking *Booking  `json:"next_booking,omitempty"`
	Comments    []Comment `json:"comments"`
}
