package mysql

// Guests are deduplicated by phone; the UNIQUE index on guests.phone backs
// the at-most-one-record-per-phone invariant.
const guestByPhoneSQL = `
SELECT id, name, phone, language, created_at, updated_at
FROM guests
WHERE phone = ?
`

const insertGuestSQL = `
INSERT INTO guests (name, phone, language, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
`

const updateGuestSQL = `
UPDATE guests
SET name = ?, phone = ?, language = ?, updated_at = ?
WHERE id = ?
`

// Stays are deduplicated by (vendor, pms_reservation_id).
const stayByReservationSQL = `
SELECT id, hotel_id, vendor, pms_reservation_id, pms_guest_id, guest_id,
       status, checkin, checkout, created_at, updated_at
FROM stays
WHERE vendor = ? AND pms_reservation_id = ?
`

const insertStaySQL = `
INSERT INTO stays
  (hotel_id, vendor, pms_reservation_id, pms_guest_id, guest_id,
   status, checkin, checkout, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const updateStaySQL = `
UPDATE stays
SET hotel_id = ?, pms_guest_id = ?, guest_id = ?, status = ?,
    checkin = ?, checkout = ?, updated_at = ?
WHERE id = ?
`

const hotelByVendorSQL = `
SELECT id, vendor, pms_hotel_id, name
FROM hotels
WHERE vendor = ? AND pms_hotel_id = ?
`
