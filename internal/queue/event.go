// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingRequestedEvent is published when a staff member submits a completed
// quote as a booking request.  It carries the resolved sales contact, the
// pre-formatted message body and enough of the selection for downstream
// consumers to dispatch the email and log the request without touching the
// primary database.
type BookingRequestedEvent struct {
	RequestID         string   `json:"request_id"`
	SessionID         string   `json:"session_id"`
	BookerName        string   `json:"booker_name"`
	BookerEmail       string   `json:"booker_email"`
	BookerPhone       string   `json:"booker_phone"`
	LeadTraveller     string   `json:"lead_traveller"`
	GuestTravellers   []string `json:"guest_travellers"`
	SalesContactName  string   `json:"sales_contact_name"`
	SalesContactEmail string   `json:"sales_contact_email"`
	EventName         string   `json:"event_name"`
	PackageName       string   `json:"package_name"`
	HotelName         string   `json:"hotel_name"`
	Adults            int      `json:"adults"`
	Currency          string   `json:"currency"`
	TotalDisplay      string   `json:"total_display"`
	Message           string   `json:"message"`
	RequestedAt       string   `json:"requested_at"`
}
