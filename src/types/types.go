package types

import "time"

type CreateBookingRequestBody struct {
	Name  string `json:"name" binding:"required,notblank"`
	Email string `json:"email" binding:"required,notblank"`
	Date  string `json:"date" binding:"required,notblank"`
	Time  string `json:"time" binding:"required,notblank"`
	Notes string `json:"notes,omitempty"`
}

type ReviewBookingRequestBody struct {
	ID     string `json:"id" binding:"required,notblank"`
	Action string `json:"action" binding:"required,oneof=approve decline"`
}

type ContactRequestBody struct {
	FromEmail string `json:"fromEmail"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}

// Sender prefers fromEmail and falls back to email, matching the contact form payloads in the wild.
func (b *ContactRequestBody) Sender() string {
	if b.FromEmail != "" {
		return b.FromEmail
	}
	return b.Email
}

type PresignUploadRequestBody struct {
	ContentType string `json:"contentType"`
	FileSize    int64  `json:"fileSize"`
}

type CalendarCallbackQuery struct {
	Code  string `form:"code" binding:"required"`
	State string `form:"state" binding:"required"`
	Scope string `form:"scope"`
}

type BookingStatus string

const (
	BOOKING_PENDING  BookingStatus = "PENDING"
	BOOKING_APPROVED BookingStatus = "APPROVED"
	BOOKING_DECLINED BookingStatus = "DECLINED"
)

// IsResolution reports whether s is a status a review can move a booking to.
func (s BookingStatus) IsResolution() bool {
	return s == BOOKING_APPROVED || s == BOOKING_DECLINED
}

type ReviewAction string

const (
	REVIEW_APPROVE ReviewAction = "approve"
	REVIEW_DECLINE ReviewAction = "decline"
)

// Status maps an operator action onto the status it resolves a booking to.
func (a ReviewAction) Status() (BookingStatus, bool) {
	switch a {
	case REVIEW_APPROVE:
		return BOOKING_APPROVED, true
	case REVIEW_DECLINE:
		return BOOKING_DECLINED, true
	}
	return "", false
}

type Oauth2FlowState struct {
	Nonce    string    `json:"nonce"`
	IssuedAt time.Time `json:"iat"`
}
