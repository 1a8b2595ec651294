package models

import "fmt"

// Status закрытое перечисление статусов бронирования.
// Единственный начальный статус - WAITING, переходы только в APPROVED или REJECTED.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	// StatusCanceled существует в предметной области, но ни одна операция
	// публичной поверхности не переводит бронирование в этот статус.
	StatusCanceled Status = "CANCELED"
)

// ParseStatus проверяет строку на соответствие закрытому перечислению.
// Нераспознанные значения отклоняются на границе, а не протаскиваются дальше.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusWaiting, StatusApproved, StatusRejected, StatusCanceled:
		return Status(raw), nil
	default:
		return "", fmt.Errorf("unknown booking status %q", raw)
	}
}

// Role определяет, с чьей стороны запрашивается список бронирований.
type Role string

const (
	RoleBooker Role = "booker"
	RoleOwner  Role = "owner"
)

// State временная классификация бронирований относительно текущего момента
// плюс фильтры по статусу. Расширенный словарь фильтра списка бронирований.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState разбирает значение фильтра; пустая строка означает ALL.
func ParseState(raw string) (State, error) {
	if raw == "" {
		return StateAll, nil
	}
	switch State(raw) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return State(raw), nil
	default:
		return "", fmt.Errorf("unknown booking state %q", raw)
	}
}
