package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/hotel-room-booking/internal/model"
)

// BookingRepo provides persistence for bookings.  The availability check
// and the insert that depends on it run through InRoomTx, which takes a
// row lock on the room so that two concurrent requests for the same room
// cannot both observe "available" and both insert.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = "id, room_id, user_id, start_date, end_date, status, created_at, updated_at"

// BookingTx exposes the booking operations available inside a room-locked
// transaction.  Implementations outside tests are backed by *sql.Tx.
type BookingTx interface {
	// Overlapping returns every booking for the room whose half-open date
	// range conflicts with [start, end): start_date < end AND end_date >
	// start.  No status filter is applied; the stored data model treats
	// bookings of every status as blocking.
	Overlapping(roomID uint64, start, end time.Time) ([]model.Booking, error)
	// Insert persists a new booking and populates its generated fields.
	Insert(b *model.Booking) error
	// Get fetches a booking by id, re-read under the lock.
	Get(id uint64) (*model.Booking, error)
	// UpdateDates moves a booking to a new date range.
	UpdateDates(id uint64, start, end time.Time) error
}

type txBookingOps struct {
	ctx context.Context
	tx  *sql.Tx
}

func scanBooking(row interface{ Scan(...any) error }) (*model.Booking, error) {
	var b model.Booking
	err := row.Scan(&b.ID, &b.RoomID, &b.UserID, &b.StartDate, &b.EndDate,
		&b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (o *txBookingOps) Overlapping(roomID uint64, start, end time.Time) ([]model.Booking, error) {
	const q = "SELECT " + bookingColumns + ` FROM bookings
	           WHERE room_id = ? AND start_date < ? AND end_date > ?`
	rows, err := o.tx.QueryContext(o.ctx, q, roomID, end, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (o *txBookingOps) Insert(b *model.Booking) error {
	const q = "INSERT INTO bookings (room_id, user_id, start_date, end_date, status) VALUES (?, ?, ?, ?, ?)"
	res, err := o.tx.ExecContext(o.ctx, q, b.RoomID, b.UserID, b.StartDate, b.EndDate, b.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	const sel = "SELECT " + bookingColumns + " FROM bookings WHERE id = ?"
	got, err := scanBooking(o.tx.QueryRowContext(o.ctx, sel, b.ID))
	if err != nil {
		return err
	}
	*b = *got
	return nil
}

func (o *txBookingOps) Get(id uint64) (*model.Booking, error) {
	const q = "SELECT " + bookingColumns + " FROM bookings WHERE id = ?"
	b, err := scanBooking(o.tx.QueryRowContext(o.ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (o *txBookingOps) UpdateDates(id uint64, start, end time.Time) error {
	_, err := o.tx.ExecContext(o.ctx,
		"UPDATE bookings SET start_date = ?, end_date = ? WHERE id = ?", start, end, id)
	return err
}

// InRoomTx runs fn inside a transaction that first locks the room row
// with SELECT ... FOR UPDATE.  The lock serializes concurrent
// availability-check-then-insert sequences on the same room.  It returns
// ErrRoomNotFound when the room does not exist.  The transaction is
// committed when fn returns nil and rolled back otherwise.
func (r *BookingRepo) InRoomTx(ctx context.Context, roomID uint64, fn func(BookingTx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	var locked uint64
	if err := tx.QueryRowContext(ctx,
		"SELECT id FROM rooms WHERE id = ? FOR UPDATE", roomID).Scan(&locked); err != nil {
		_ = tx.Rollback()
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRoomNotFound
		}
		return err
	}

	if err := fn(&txBookingOps{ctx: ctx, tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// GetByID fetches a booking outside of any transaction.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = "SELECT " + bookingColumns + " FROM bookings WHERE id = ?"
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// GetWithHotelOwner fetches a booking together with the owner ID of the
// hotel the booked room belongs to.  Used to authorize status changes by
// hotel accounts.
func (r *BookingRepo) GetWithHotelOwner(ctx context.Context, id uint64) (*model.Booking, uint64, error) {
	const q = `SELECT b.id, b.room_id, b.user_id, b.start_date, b.end_date, b.status, b.created_at, b.updated_at,
	                  h.owner_id
	           FROM bookings b
	           JOIN rooms r  ON r.id = b.room_id
	           JOIN hotels h ON h.id = r.hotel_id
	           WHERE b.id = ?`
	var (
		b       model.Booking
		ownerID uint64
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.RoomID, &b.UserID, &b.StartDate, &b.EndDate, &b.Status,
		&b.CreatedAt, &b.UpdatedAt, &ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrBookingNotFound
		}
		return nil, 0, err
	}
	return &b, ownerID, nil
}

// UpdateStatus rewrites a booking's status.  Transition validity is the
// caller's responsibility.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE bookings SET status = ? WHERE id = ?", status, id)
	return err
}

// BookingDetail carries a booking together with room and hotel context
// and the derived total price for the stay.  It is what listing
// endpoints return to guests and hotel owners.
type BookingDetail struct {
	ID         uint64  `json:"id"`
	RoomID     uint64  `json:"room_id"`
	RoomType   string  `json:"room_type"`
	RoomPrice  float64 `json:"room_price"`
	HotelID    uint64  `json:"hotel_id"`
	HotelName  string  `json:"hotel_name"`
	UserID     uint64  `json:"user_id"`
	GuestEmail string  `json:"guest_email"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"total_price"`
}

const bookingDetailQuery = `SELECT b.id, b.room_id, r.room_type, r.price,
	       h.id, h.name, b.user_id, u.email,
	       DATE_FORMAT(b.start_date, '%Y-%m-%d'), DATE_FORMAT(b.end_date, '%Y-%m-%d'),
	       b.status, DATEDIFF(b.end_date, b.start_date) * r.price
	FROM bookings b
	JOIN rooms r  ON r.id = b.room_id
	JOIN hotels h ON h.id = r.hotel_id
	JOIN users u  ON u.id = b.user_id`

func (r *BookingRepo) listDetails(ctx context.Context, where string, arg uint64) ([]BookingDetail, error) {
	q := bookingDetailQuery + " WHERE " + where + " ORDER BY b.start_date DESC, b.id DESC"
	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]BookingDetail, 0)
	for rows.Next() {
		var d BookingDetail
		if err := rows.Scan(&d.ID, &d.RoomID, &d.RoomType, &d.RoomPrice,
			&d.HotelID, &d.HotelName, &d.UserID, &d.GuestEmail,
			&d.StartDate, &d.EndDate, &d.Status, &d.TotalPrice); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDetail returns a single booking with its room and hotel context.
func (r *BookingRepo) GetDetail(ctx context.Context, id uint64) (*BookingDetail, error) {
	var d BookingDetail
	err := r.db.QueryRowContext(ctx, bookingDetailQuery+" WHERE b.id = ?", id).Scan(
		&d.ID, &d.RoomID, &d.RoomType, &d.RoomPrice,
		&d.HotelID, &d.HotelName, &d.UserID, &d.GuestEmail,
		&d.StartDate, &d.EndDate, &d.Status, &d.TotalPrice)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &d, nil
}

// ListByUser returns all bookings made by a guest, newest stay first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	return r.listDetails(ctx, "b.user_id = ?", userID)
}

// ListByHotel returns all bookings across a hotel's rooms, newest stay
// first.
func (r *BookingRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]BookingDetail, error) {
	return r.listDetails(ctx, "h.id = ?", hotelID)
}
