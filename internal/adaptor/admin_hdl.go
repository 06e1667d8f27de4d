package adaptor

import (
	"encoding/json"
	"net/http"

	"court-booking/internal/dto/request"
	"court-booking/internal/usecase"
	"court-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log,
	}
}

// ListBookings handles GET /api/admin/bookings
func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	page, perPage := paginationQuery(r)
	req := request.PaginatedRequest{Page: page, PerPage: perPage}

	bookings, err := h.service.ListBookings(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "Bookings retrieved successfully", bookings)
}

// ListPayments handles GET /api/admin/payments
func (h *AdminHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	page, perPage := paginationQuery(r)
	req := request.PaginatedRequest{Page: page, PerPage: perPage}

	payments, err := h.service.ListPayments(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list payments")
		return
	}

	utils.ResponseSuccess(w, "Payments retrieved successfully", payments)
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, perPage := paginationQuery(r)
	req := request.PaginatedRequest{Page: page, PerPage: perPage}

	users, err := h.service.ListUsers(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list users")
		return
	}

	utils.ResponseSuccess(w, "Users retrieved successfully", users)
}

// Verify handles POST /api/admin/bookings/{id}/verify
func (h *AdminHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.VerifyBooking(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "verify booking")
		return
	}

	utils.ResponseSuccess(w, "Booking verification processed", booking)
}

// Complete handles POST /api/admin/bookings/{id}/complete
func (h *AdminHandler) Complete(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.CompleteBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "complete booking")
		return
	}

	utils.ResponseSuccess(w, "Booking completed successfully", booking)
}

// Expire handles POST /api/admin/bookings/expire
func (h *AdminHandler) Expire(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.SweepExpired(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "sweep expired bookings")
		return
	}

	utils.ResponseSuccess(w, "Expired bookings processed", result)
}
