package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hotel-room-booking/internal/model"
)

// RoomRepo provides CRUD operations for rooms.  Every write through this
// repository is expected to be followed by an explicit call to
// HotelRepo.RecomputePricePerNight for the owning hotel.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

const roomColumns = "id, hotel_id, price, description, bed_count, max_adults, room_type, created_at, updated_at"

func scanRoom(row interface{ Scan(...any) error }) (*model.Room, error) {
	var (
		rm   model.Room
		desc sql.NullString
	)
	err := row.Scan(&rm.ID, &rm.HotelID, &rm.Price, &desc, &rm.BedCount,
		&rm.MaxAdults, &rm.RoomType, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if desc.Valid {
		rm.Description = &desc.String
	}
	return &rm, nil
}

// Create inserts a new room and populates generated fields on success.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
	const qInsert = "INSERT INTO rooms (hotel_id, price, description, bed_count, max_adults, room_type) VALUES (?, ?, ?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, rm.HotelID, rm.Price, rm.Description, rm.BedCount, rm.MaxAdults, rm.RoomType)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rm.ID = uint64(id)

	got, err := r.GetByID(ctx, rm.ID)
	if err != nil {
		return err
	}
	*rm = *got
	return nil
}

// GetByID fetches a room by id.  ErrRoomNotFound is returned when no row
// exists.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = "SELECT " + roomColumns + " FROM rooms WHERE id = ?"
	rm, err := scanRoom(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return rm, nil
}

// ListByHotel returns all rooms of a hotel ordered by id.
func (r *RoomRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]*model.Room, error) {
	const q = "SELECT " + roomColumns + " FROM rooms WHERE hotel_id = ? ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites the mutable fields of a room, but only when the room
// belongs to the given hotel.  ErrRoomNotFound is returned when the
// room does not exist under that hotel.
func (r *RoomRepo) Update(ctx context.Context, id, hotelID uint64, price float64, description *string, bedCount, maxAdults uint32, roomType string) error {
	const q = `UPDATE rooms
	           SET price = ?, description = ?, bed_count = ?, max_adults = ?, room_type = ?
	           WHERE id = ? AND hotel_id = ?`
	res, err := r.db.ExecContext(ctx, q, price, description, bedCount, maxAdults, roomType, id, hotelID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists uint64
		if err := r.db.QueryRowContext(ctx,
			"SELECT id FROM rooms WHERE id = ? AND hotel_id = ?", id, hotelID).Scan(&exists); err != nil {
			return ErrRoomNotFound
		}
	}
	return nil
}

// Delete removes a room belonging to the given hotel.  Bookings reference
// rooms with ON DELETE CASCADE.  ErrRoomNotFound is returned when
// nothing was deleted.
func (r *RoomRepo) Delete(ctx context.Context, id, hotelID uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM rooms WHERE id = ? AND hotel_id = ?", id, hotelID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRoomNotFound
	}
	return nil
}
