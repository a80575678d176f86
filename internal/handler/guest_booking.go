package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/hotel-room-booking/internal/metrics"
	"github.com/iliyamo/hotel-room-booking/internal/model"
	"github.com/iliyamo/hotel-room-booking/internal/queue"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
	"github.com/iliyamo/hotel-room-booking/internal/service"
)

// BookingWorkflow is the slice of the booking service the handlers use.
// Tests substitute a mock.
type BookingWorkflow interface {
	Create(ctx context.Context, userID, roomID uint64, start, end time.Time) (*model.Booking, error)
	Reschedule(ctx context.Context, bookingID, userID uint64, start, end time.Time) (*model.Booking, error)
	Cancel(ctx context.Context, bookingID, userID uint64) (*model.Booking, error)
	UpdateStatus(ctx context.Context, bookingID, ownerID uint64, status string) (*model.Booking, error)
}

// BookingLister is the read side the booking handlers need; implemented
// by *repository.BookingRepo.
type BookingLister interface {
	GetDetail(ctx context.Context, id uint64) (*repository.BookingDetail, error)
	ListByUser(ctx context.Context, userID uint64) ([]repository.BookingDetail, error)
	ListByHotel(ctx context.Context, hotelID uint64) ([]repository.BookingDetail, error)
}

// HotelByOwner resolves an owner's hotel; implemented by
// *repository.HotelRepo.
type HotelByOwner interface {
	GetByOwner(ctx context.Context, ownerID uint64) (*model.Hotel, error)
}

// BookingHandler serves the guest booking endpoints and the owner's
// status update.
type BookingHandler struct {
	Svc      BookingWorkflow
	Bookings BookingLister
	Hotels   HotelByOwner
	Publish  func(context.Context, queue.BookingCreatedEvent) error
}

func NewBookingHandler(svc BookingWorkflow, b BookingLister, h HotelByOwner) *BookingHandler {
	return &BookingHandler{Svc: svc, Bookings: b, Hotels: h, Publish: queue.PublishBookingCreated}
}

type bookingReq struct {
	RoomID    uint64 `json:"room_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}
type rescheduleReq struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}
type statusReq struct {
	Status string `json:"status"`
}

func parseRange(startRaw, endRaw string) (start, end time.Time, err error) {
	start, err = parseDate(strings.TrimSpace(startRaw))
	if err != nil {
		return start, end, errors.New("start_date must be a YYYY-MM-DD date")
	}
	end, err = parseDate(strings.TrimSpace(endRaw))
	if err != nil {
		return start, end, errors.New("end_date must be a YYYY-MM-DD date")
	}
	return start, end, nil
}

// bookingError maps service sentinels onto HTTP responses.
func bookingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrRoomNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": service.ErrRoomNotFound.Error()})
	case errors.Is(err, service.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": service.ErrBookingNotFound.Error()})
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": service.ErrForbidden.Error()})
	case errors.Is(err, service.ErrDateOrder),
		errors.Is(err, service.ErrStartInPast),
		errors.Is(err, service.ErrEndInPast),
		errors.Is(err, service.ErrNotAvailable),
		errors.Is(err, service.ErrBadStatus),
		errors.Is(err, service.ErrBadTransition):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking operation failed"})
}

// Create books a room for the authenticated guest.
func (h *BookingHandler) Create(c echo.Context) error {
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id required"})
	}
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.Svc.Create(ctx, userID(c), req.RoomID, start, end)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAvailable):
			metrics.IncBooking("conflict")
		case errors.Is(err, service.ErrDateOrder),
			errors.Is(err, service.ErrStartInPast),
			errors.Is(err, service.ErrEndInPast):
			metrics.IncBooking("invalid")
		default:
			metrics.IncBooking("error")
		}
		return bookingError(c, err)
	}
	metrics.IncBooking("created")

	h.publishCreated(b)

	detail, err := h.Bookings.GetDetail(ctx, b.ID)
	if err != nil {
		// The booking exists; fall back to the bare record.
		return c.JSON(http.StatusCreated, bookingView(b))
	}
	return c.JSON(http.StatusCreated, detail)
}

// publishCreated emits the booking.created event without blocking the
// response; a broker outage is logged and otherwise ignored.
func (h *BookingHandler) publishCreated(b *model.Booking) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		ev := queue.BookingCreatedEvent{
			BookingID: b.ID,
			UserID:    b.UserID,
			RoomID:    b.RoomID,
			StartDate: b.StartDate.Format(dateLayout),
			EndDate:   b.EndDate.Format(dateLayout),
			Nights:    b.Nights(),
			Status:    b.Status,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if d, err := h.Bookings.GetDetail(ctx, b.ID); err == nil {
			ev.HotelID = d.HotelID
			ev.HotelName = d.HotelName
			ev.RoomType = d.RoomType
		}
		if err := h.Publish(ctx, ev); err != nil {
			log.Warn().Err(err).Uint64("booking_id", b.ID).Msg("booking.created publish failed")
		}
	}()
}

// MyBookings lists the caller's bookings, newest stay first.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	list, err := h.Bookings.ListByUser(ctx, userID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": list})
}

// Reschedule moves the caller's booking to new dates.
func (h *BookingHandler) Reschedule(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req rescheduleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.Svc.Reschedule(ctx, id, userID(c), start, end)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, bookingView(b))
}

// Cancel soft-cancels the caller's booking.
func (h *BookingHandler) Cancel(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.Svc.Cancel(ctx, id, userID(c))
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, bookingView(b))
}

// UpdateStatus lets the hotel that owns the booked room move the booking
// through its status machine.
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Status) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.Svc.UpdateStatus(ctx, id, userID(c), strings.ToLower(strings.TrimSpace(req.Status)))
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, bookingView(b))
}

// HotelBookings lists every booking across the caller's hotel rooms.
func (h *BookingHandler) HotelBookings(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	hotel, err := h.Hotels.GetByOwner(ctx, userID(c))
	if err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	list, err := h.Bookings.ListByHotel(ctx, hotel.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": list})
}
