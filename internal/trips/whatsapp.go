package trips

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// WhatsAppTarget selects who an outbound trip message is addressed to.
type WhatsAppTarget string

const (
	SendToCustomer WhatsAppTarget = "customer"
	SendToDriver   WhatsAppTarget = "driver"
)

// WhatsAppLink builds a wa.me handoff link carrying a trip summary for the
// customer or the driver on the trip's snapshot number. Admin only.
func (s *Service) WhatsAppLink(ctx context.Context, c Caller, id string, sendTo WhatsAppTarget) (string, error) {
	trip, err := s.findTrip(ctx, id)
	if err != nil {
		return "", err
	}
	if err := Authorize(c, ActionWhatsApp, trip, true); err != nil {
		return "", err
	}

	var number string
	switch sendTo {
	case SendToCustomer:
		number = trip.CustomerNumber
	case SendToDriver:
		number = trip.DriverNumber
	default:
		verr := &ValidationError{}
		return "", verr.Add("sendTo", "must be customer or driver")
	}
	digits := digitsOnly(number)
	if digits == "" {
		verr := &ValidationError{}
		return "", verr.Add("sendTo", fmt.Sprintf("trip has no %s number", sendTo))
	}

	msg := fmt.Sprintf("Trip %s: %s to %s on %s, amount %.2f",
		trip.BookingID, trip.FromLocation, trip.EndLocation,
		trip.StartDate.Format("02 Jan 2006"), trip.TripAmount)
	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(msg), nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
