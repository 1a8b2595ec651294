package database

import (
	"errors"
	"fmt"
)

// Базовые категории ошибок. Конкретные ошибки ниже оборачивают одну из них,
// поэтому вызывающий код классифицирует через errors.Is.
var (
	ErrNotFound       = errors.New("object not found")
	ErrInvalidRequest = errors.New("invalid request")
	ErrConflict       = errors.New("data conflict")
)

var (
	ErrItemUnavailable   = fmt.Errorf("%w: the item is not available for booking", ErrInvalidRequest)
	ErrEqualBookingTimes = fmt.Errorf("%w: the start and end times cannot be equal", ErrInvalidRequest)
	ErrEndBeforeStart    = fmt.Errorf("%w: the end time cannot be earlier than the start time", ErrInvalidRequest)
	ErrNotOwner          = fmt.Errorf("%w: only the owner of the item can confirm the booking", ErrInvalidRequest)
	ErrAccessDenied      = fmt.Errorf("%w: the user must be the owner of the item or the author of the booking", ErrInvalidRequest)
	ErrNoFinishedBooking = fmt.Errorf("%w: the user did not rent this item", ErrInvalidRequest)
	ErrInvalidEmail      = fmt.Errorf("%w: email must be non-empty and contain @", ErrInvalidRequest)

	ErrDuplicateEmail = fmt.Errorf("%w: email is already in use", ErrConflict)
	ErrUnknownRole    = fmt.Errorf("%w: an unknown role was obtained", ErrConflict)
	// ErrNotItemOwner редактирование чужой вещи трактуется как конфликт данных,
	// а не как ошибка клиента.
	ErrNotItemOwner = fmt.Errorf("%w: only the owner of the item can edit it", ErrConflict)
)
