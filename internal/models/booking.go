package models

import "time"

// Booking всегда возвращается с полностью развернутыми вещью и арендатором,
// наружу не отдаются частичные ссылки по идентификаторам.
type Booking struct {
	ID     int64     `json:"id"`
	Start  time.Time `json:"start_date"`
	End    time.Time `json:"end_date"`
	Status Status    `json:"status"`
	Item   Item      `json:"item"`
	Booker User      `json:"booker"`
}

// NewBooking данные для создания бронирования.
type NewBooking struct {
	ItemID int64     `json:"item_id"`
	Start  time.Time `json:"start_date"`
	End    time.Time `json:"end_date"`
}
