package mysql

import (
	"context"
	"database/sql"
	"errors"

	"stay_sync/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func valInt64Ptr(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func (r *Repo) GuestByPhone(ctx context.Context, phone string) (*domain.Guest, error) {
	row := r.db.QueryRowContext(ctx, guestByPhoneSQL, phone)

	var g domain.Guest
	if err := row.Scan(&g.ID, &g.Name, &g.Phone, &g.Language, &g.CreatedAt, &g.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func (r *Repo) CreateGuest(ctx context.Context, g domain.Guest) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertGuestSQL,
		g.Name, g.Phone, g.Language, g.CreatedAt, g.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) UpdateGuest(ctx context.Context, g domain.Guest) error {
	_, err := r.db.ExecContext(ctx, updateGuestSQL,
		g.Name, g.Phone, g.Language, g.UpdatedAt, g.ID)
	return err
}

func (r *Repo) StayByReservationID(ctx context.Context, vendor, reservationID string) (*domain.Stay, error) {
	row := r.db.QueryRowContext(ctx, stayByReservationSQL, vendor, reservationID)

	var s domain.Stay
	var guestID sql.NullInt64
	var status string
	if err := row.Scan(
		&s.ID, &s.HotelID, &s.Vendor, &s.ReservationID, &s.VendorGuestID,
		&guestID, &status, &s.CheckIn, &s.CheckOut, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if guestID.Valid {
		id := guestID.Int64
		s.GuestID = &id
	}
	s.Status = domain.StayStatus(status)
	return &s, nil
}

func (r *Repo) CreateStay(ctx context.Context, s domain.Stay) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertStaySQL,
		s.HotelID, s.Vendor, s.ReservationID, s.VendorGuestID, valInt64Ptr(s.GuestID),
		string(s.Status), s.CheckIn, s.CheckOut, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) UpdateStay(ctx context.Context, s domain.Stay) error {
	_, err := r.db.ExecContext(ctx, updateStaySQL,
		s.HotelID, s.VendorGuestID, valInt64Ptr(s.GuestID), string(s.Status),
		s.CheckIn, s.CheckOut, s.UpdatedAt, s.ID)
	return err
}

func (r *Repo) HotelByVendorID(ctx context.Context, vendor, vendorHotelID string) (*domain.Hotel, error) {
	row := r.db.QueryRowContext(ctx, hotelByVendorSQL, vendor, vendorHotelID)

	var h domain.Hotel
	if err := row.Scan(&h.ID, &h.Vendor, &h.VendorHotelID, &h.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &h, nil
}
