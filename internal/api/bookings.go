package api

import (
	"net/http"
	"strconv"

	"lendly/internal/models"
)

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var body models.NewBooking
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := s.services.Bookings.Create(r.Context(), userID, body)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (s *HTTPServer) handleSetApproval(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	bookingID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "approved query parameter must be true or false")
		return
	}

	booking, err := s.services.Bookings.SetApproval(r.Context(), userID, bookingID, approved)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	bookingID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := s.services.Bookings.GetForViewer(r.Context(), userID, bookingID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleListBookings(w http.ResponseWriter, r *http.Request) {
	s.listBookings(w, r, models.RoleBooker)
}

func (s *HTTPServer) handleListOwnerBookings(w http.ResponseWriter, r *http.Request) {
	s.listBookings(w, r, models.RoleOwner)
}

// listBookings поддерживает обе формы фильтра: расширенную (?state=...)
// и простую по точному статусу (?status=...).
func (s *HTTPServer) listBookings(w http.ResponseWriter, r *http.Request, role models.Role) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var bookings []*models.Booking

	if raw := r.URL.Query().Get("status"); raw != "" {
		var status models.Status
		if raw != "ALL" {
			status, err = models.ParseStatus(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
		}
		bookings, err = s.services.Bookings.ListByStatus(r.Context(), userID, role, status)
	} else {
		state, parseErr := models.ParseState(r.URL.Query().Get("state"))
		if parseErr != nil {
			writeError(w, http.StatusBadRequest, parseErr.Error())
			return
		}
		bookings, err = s.services.Bookings.ListByState(r.Context(), userID, role, state)
	}

	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	if bookings == nil {
		bookings = []*models.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}
