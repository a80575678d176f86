package model

import "time"

// Review stores a guest's rating and comment for a hotel.  Each user may
// review a hotel once; resubmitting replaces the previous review.
//
// Fields:
//  ID        – primary key identifier.
//  HotelID   – hotel being reviewed.
//  UserID    – author of the review.
//  Rating    – integer rating from 1 to 5.
//  Comment   – optional free-form text.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Review struct {
	ID        uint64    // reviews.id
	HotelID   uint64    // reviews.hotel_id
	UserID    uint64    // reviews.user_id
	Rating    uint8     // reviews.rating
	Comment   *string   // reviews.comment (nullable)
	CreatedAt time.Time // reviews.created_at
	UpdatedAt time.Time // reviews.updated_at
}

// Favorite marks a hotel saved by a user.  The (user, hotel) pair is
// unique; favoriting the same hotel twice is a conflict.
type Favorite struct {
	ID        uint64    // favorites.id
	UserID    uint64    // favorites.user_id
	HotelID   uint64    // favorites.hotel_id
	CreatedAt time.Time // favorites.created_at
}
