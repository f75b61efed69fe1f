package domain

import "time"

// Attribute names of the persisted Identity fields. Kept next to the struct
// so the dynamodbav tags and the partial-update maps cannot drift apart.
const (
	AttrIdentityID  = "identity_id"
	AttrPhoneNumber = "phone_number"
	AttrEmail       = "email"
	AttrOTP         = "otp"
	AttrStatus      = "status"
)

// Identity is the sole persisted entity: one contact point (phone number or
// email), the OTP most recently issued for it, and whether that contact has
// ever completed verification. The contact fields omit when nil: they are the
// hash keys of the phone_number/email GSIs, and a NULL attribute on an S-typed
// index key fails the write.
type Identity struct {
	IdentityID  string    `json:"id" dynamodbav:"identity_id"`
	PhoneNumber *string   `json:"phoneNumber,omitempty" dynamodbav:"phone_number,omitempty"`
	Email       *string   `json:"email,omitempty" dynamodbav:"email,omitempty"`
	OTP         int       `json:"otp" dynamodbav:"otp"`
	Status      bool      `json:"status" dynamodbav:"status"`
	CreatedAt   time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}

// PublicIdentity is the projection exposed by the read endpoints. It never
// carries the OTP or the store timestamps.
type PublicIdentity struct {
	IdentityID  string  `json:"id" dynamodbav:"identity_id"`
	Email       *string `json:"email,omitempty" dynamodbav:"email"`
	PhoneNumber *string `json:"phoneNumber,omitempty" dynamodbav:"phone_number"`
	Status      bool    `json:"status" dynamodbav:"status"`
}

// Public returns the read-endpoint projection of the identity.
func (i *Identity) Public() *PublicIdentity {
	return &PublicIdentity{
		IdentityID:  i.IdentityID,
		Email:       i.Email,
		PhoneNumber: i.PhoneNumber,
		Status:      i.Status,
	}
}

// ContactFields is the validated subset shared by both public endpoints.
// At least one field must be present; that check lives in the validation
// middleware because `required_without` cannot express the exact messages
// the API contract fixes per field.
type ContactFields struct {
	PhoneNumber *string `json:"phoneNumber" validate:"omitnil,phone10"`
	Email       *string `json:"email" validate:"omitnil,contact_email"`
}

type SendOTPRequest struct {
	ContactFields
}

type LoginRequest struct {
	ContactFields
	OTP int `json:"otp"`
}
