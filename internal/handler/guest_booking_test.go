package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-room-booking/internal/model"
	"github.com/iliyamo/hotel-room-booking/internal/queue"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
	"github.com/iliyamo/hotel-room-booking/internal/service"
)

// mockWorkflow scripts the service responses for handler tests.
type mockWorkflow struct {
	createFn     func(userID, roomID uint64, start, end time.Time) (*model.Booking, error)
	rescheduleFn func(bookingID, userID uint64, start, end time.Time) (*model.Booking, error)
	cancelFn     func(bookingID, userID uint64) (*model.Booking, error)
	statusFn     func(bookingID, ownerID uint64, status string) (*model.Booking, error)
}

func (m *mockWorkflow) Create(_ context.Context, userID, roomID uint64, start, end time.Time) (*model.Booking, error) {
	return m.createFn(userID, roomID, start, end)
}
func (m *mockWorkflow) Reschedule(_ context.Context, bookingID, userID uint64, start, end time.Time) (*model.Booking, error) {
	return m.rescheduleFn(bookingID, userID, start, end)
}
func (m *mockWorkflow) Cancel(_ context.Context, bookingID, userID uint64) (*model.Booking, error) {
	return m.cancelFn(bookingID, userID)
}
func (m *mockWorkflow) UpdateStatus(_ context.Context, bookingID, ownerID uint64, status string) (*model.Booking, error) {
	return m.statusFn(bookingID, ownerID, status)
}

type mockLister struct {
	detail *repository.BookingDetail
	byUser []repository.BookingDetail
}

func (m *mockLister) GetDetail(context.Context, uint64) (*repository.BookingDetail, error) {
	if m.detail == nil {
		return nil, repository.ErrBookingNotFound
	}
	return m.detail, nil
}
func (m *mockLister) ListByUser(context.Context, uint64) ([]repository.BookingDetail, error) {
	return m.byUser, nil
}
func (m *mockLister) ListByHotel(context.Context, uint64) ([]repository.BookingDetail, error) {
	return nil, nil
}

func newBookingHandler(wf *mockWorkflow, lister *mockLister) *BookingHandler {
	return &BookingHandler{
		Svc:      wf,
		Bookings: lister,
		Publish:  func(context.Context, queue.BookingCreatedEvent) error { return nil },
	}
}

func doJSON(h echo.HandlerFunc, method, target, body string, uid uint64, params ...string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uid)
	for i := 0; i+1 < len(params); i += 2 {
		c.SetParamNames(params[i])
		c.SetParamValues(params[i+1])
	}
	_ = h(c)
	return rec
}

func TestCreateBookingHandler(t *testing.T) {
	start, _ := parseDate("2030-06-01")
	end, _ := parseDate("2030-06-05")

	wf := &mockWorkflow{
		createFn: func(userID, roomID uint64, gotStart, gotEnd time.Time) (*model.Booking, error) {
			assert.Equal(t, uint64(7), userID)
			assert.Equal(t, uint64(3), roomID)
			assert.Equal(t, start, gotStart)
			assert.Equal(t, end, gotEnd)
			return &model.Booking{ID: 42, RoomID: roomID, UserID: userID,
				StartDate: gotStart, EndDate: gotEnd, Status: model.BookingPending}, nil
		},
	}
	h := newBookingHandler(wf, &mockLister{})

	rec := doJSON(h.Create, http.MethodPost, "/v1/bookings",
		`{"room_id":3,"start_date":"2030-06-01","end_date":"2030-06-05"}`, 7)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp bookingResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(42), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 4, resp.Nights)
}

func TestCreateBookingHandlerErrors(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		svcErr   error
		wantCode int
		wantMsg  string
	}{
		{"malformed date", `{"room_id":3,"start_date":"June 1","end_date":"2030-06-05"}`,
			nil, http.StatusBadRequest, "start_date must be a YYYY-MM-DD date"},
		{"missing room", `{"start_date":"2030-06-01","end_date":"2030-06-05"}`,
			nil, http.StatusBadRequest, "room_id required"},
		{"room not found", `{"room_id":3,"start_date":"2030-06-01","end_date":"2030-06-05"}`,
			service.ErrRoomNotFound, http.StatusNotFound, "room not found"},
		{"not available", `{"room_id":3,"start_date":"2030-06-01","end_date":"2030-06-05"}`,
			service.ErrNotAvailable, http.StatusBadRequest, "room is not available for the selected dates"},
		{"date order", `{"room_id":3,"start_date":"2030-06-05","end_date":"2030-06-01"}`,
			service.ErrDateOrder, http.StatusBadRequest, "start date must be before end date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wf := &mockWorkflow{
				createFn: func(uint64, uint64, time.Time, time.Time) (*model.Booking, error) {
					return nil, tc.svcErr
				},
			}
			h := newBookingHandler(wf, &mockLister{})

			rec := doJSON(h.Create, http.MethodPost, "/v1/bookings", tc.body, 7)
			assert.Equal(t, tc.wantCode, rec.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.wantMsg, resp["error"])
		})
	}
}

func TestRescheduleHandler(t *testing.T) {
	wf := &mockWorkflow{
		rescheduleFn: func(bookingID, userID uint64, start, end time.Time) (*model.Booking, error) {
			assert.Equal(t, uint64(42), bookingID)
			return &model.Booking{ID: bookingID, UserID: userID,
				StartDate: start, EndDate: end, Status: model.BookingPending}, nil
		},
	}
	h := newBookingHandler(wf, &mockLister{})

	rec := doJSON(h.Reschedule, http.MethodPost, "/v1/bookings/42/reschedule",
		`{"start_date":"2030-07-01","end_date":"2030-07-03"}`, 7, "id", "42")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp bookingResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2030-07-01", resp.StartDate)
	assert.Equal(t, "2030-07-03", resp.EndDate)
}

func TestRescheduleHandlerForbidden(t *testing.T) {
	wf := &mockWorkflow{
		rescheduleFn: func(uint64, uint64, time.Time, time.Time) (*model.Booking, error) {
			return nil, service.ErrForbidden
		},
	}
	h := newBookingHandler(wf, &mockLister{})

	rec := doJSON(h.Reschedule, http.MethodPost, "/v1/bookings/42/reschedule",
		`{"start_date":"2030-07-01","end_date":"2030-07-03"}`, 8, "id", "42")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCancelHandler(t *testing.T) {
	wf := &mockWorkflow{
		cancelFn: func(bookingID, userID uint64) (*model.Booking, error) {
			return &model.Booking{ID: bookingID, UserID: userID, Status: model.BookingCancelled}, nil
		},
	}
	h := newBookingHandler(wf, &mockLister{})

	rec := doJSON(h.Cancel, http.MethodDelete, "/v1/bookings/42", "", 7, "id", "42")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp bookingResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "cancelled", resp.Status)
}

func TestUpdateStatusHandler(t *testing.T) {
	wf := &mockWorkflow{
		statusFn: func(bookingID, ownerID uint64, status string) (*model.Booking, error) {
			assert.Equal(t, "confirmed", status)
			return &model.Booking{ID: bookingID, Status: status}, nil
		},
	}
	h := newBookingHandler(wf, &mockLister{})

	rec := doJSON(h.UpdateStatus, http.MethodPatch, "/v1/bookings/42",
		`{"status":"CONFIRMED"}`, 20, "id", "42")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMyBookingsHandler(t *testing.T) {
	lister := &mockLister{byUser: []repository.BookingDetail{
		{ID: 1, HotelName: "Seaside", Status: "pending", TotalPrice: 400},
	}}
	h := newBookingHandler(&mockWorkflow{}, lister)

	rec := doJSON(h.MyBookings, http.MethodGet, "/v1/my-bookings", "", 7)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Bookings []repository.BookingDetail `json:"bookings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "Seaside", resp.Bookings[0].HotelName)
}
