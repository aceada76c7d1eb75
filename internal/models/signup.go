package models

// SignupDraft is the farmer self-registration payload assembled by the
// multi-step signup form. File attachments travel under a fixed whitelist of
// field names enforced by the API client.
type SignupDraft struct {
	FullName string
	Email    string
	Phone    string
	Password string

	Address  string
	State    string
	District string
	Tehsil   string
	Village  string
	Pincode  string

	LandAreaHectares float64

	// CornerPhotos carries up to MaxCornerPhotoSlots geo-tagged farm corner
	// shots; slot order is preserved on the wire.
	CornerPhotos []Attachment

	AadhaarCard  *Attachment
	LandRecord   *Attachment
	BankPassbook *Attachment
}

// MaxCornerPhotoSlots bounds the corner photo list on the signup form.
const MaxCornerPhotoSlots = 8
