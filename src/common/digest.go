package common

import (
	"context"
	"fmt"
	"log"

	"portfolio/src/lib"
	"portfolio/src/models"
	"portfolio/src/types"
)

type Digest struct {
	Total    int
	Pending  int
	Approved int
	Declined int
}

func BuildDigest(bookings []models.Booking) Digest {
	d := Digest{Total: len(bookings)}
	for _, b := range bookings {
		switch b.Status {
		case types.BOOKING_PENDING:
			d.Pending++
		case types.BOOKING_APPROVED:
			d.Approved++
		case types.BOOKING_DECLINED:
			d.Declined++
		}
	}
	return d
}

func (d Digest) String() string {
	return fmt.Sprintf("Total bookings: %d\nPending: %d\nApproved: %d\nDeclined: %d\n", d.Total, d.Pending, d.Approved, d.Declined)
}

// SendDigest logs the booking counts and mails them to owner when a mailer is configured.
func (s *BookingService) SendDigest(ctx context.Context, owner string) (Digest, error) {
	bookings, err := s.store.GetAll(ctx)
	if err != nil {
		return Digest{}, err
	}
	d := BuildDigest(bookings)
	log.Printf("[digest] total=%d pending=%d\n", d.Total, d.Pending)
	if s.mailer == nil || owner == "" {
		return d, nil
	}
	err = s.mailer.Send(ctx, &lib.SendMailInput{
		To:      []string{owner},
		Subject: fmt.Sprintf("Daily booking digest: %d pending", d.Pending),
		Body:    d.String(),
	})
	return d, err
}
