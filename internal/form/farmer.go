package form

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/agrisure-console/internal/models"
	apperrors "github.com/noah-isme/agrisure-console/pkg/errors"
)

type farmerClient interface {
	CreateFarmer(ctx context.Context, draft models.FarmerDraft) *apperrors.Error
	UpdateFarmer(ctx context.Context, id string, draft models.FarmerDraft) *apperrors.Error
}

type identityStep struct {
	FullName string `validate:"required"`
	Email    string `validate:"required,email"`
	Phone    string `validate:"required,len=10,numeric"`
	Aadhaar  string `validate:"required,len=12,numeric"`
}

type locationStep struct {
	Address  string `validate:"required"`
	State    string `validate:"required"`
	District string `validate:"required"`
	Pincode  string `validate:"required,len=6,numeric"`
}

var identityFieldOrder = []string{"FullName", "Email", "Phone", "Aadhaar"}
var identityMessages = map[string]string{
	"FullName.required": "farmer name is required",
	"Email.required":    "email is required",
	"Email.email":       "enter a valid email address",
	"Phone.required":    "phone number is required",
	"Phone.len":         "phone number must be 10 digits",
	"Phone.numeric":     "phone number must be 10 digits",
	"Aadhaar.required":  "aadhaar number is required",
	"Aadhaar.len":       "aadhaar number must be 12 digits",
	"Aadhaar.numeric":   "aadhaar number must be 12 digits",
}

var locationFieldOrder = []string{"Address", "State", "District", "Pincode"}
var locationMessages = map[string]string{
	"Address.required":  "address is required",
	"State.required":    "state is required",
	"District.required": "district is required",
	"Pincode.required":  "pincode is required",
	"Pincode.len":       "pincode must be 6 digits",
	"Pincode.numeric":   "pincode must be 6 digits",
}

// FarmerField names one editable field of the upsert form.
type FarmerField string

const (
	FarmerFullName FarmerField = "fullName"
	FarmerEmail    FarmerField = "email"
	FarmerPhone    FarmerField = "phone"
	FarmerAadhaar  FarmerField = "aadhaar"
	FarmerAddress  FarmerField = "address"
	FarmerState    FarmerField = "state"
	FarmerDistrict FarmerField = "district"
	FarmerPincode  FarmerField = "pincode"
)

// FarmerUpsertForm is the insurer's two-step add/edit farmer form:
// identity → location. An empty target id creates; otherwise it updates.
type FarmerUpsertForm struct {
	stepper  *Stepper
	identity identityStep
	location locationStep

	targetID   string
	client     farmerClient
	validate   *validator.Validate
	logger     *zap.Logger
	submitting bool
	submitted  bool
}

// NewFarmerUpsertForm builds a create form.
func NewFarmerUpsertForm(client farmerClient, logger *zap.Logger) *FarmerUpsertForm {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &FarmerUpsertForm{
		client:   client,
		validate: validator.New(),
		logger:   logger,
	}
	f.stepper = NewStepper(f.validateIdentity, f.validateLocation)
	return f
}

// NewFarmerEditForm builds an edit form pre-populated from an existing
// record.
func NewFarmerEditForm(client farmerClient, farmer models.Farmer, logger *zap.Logger) *FarmerUpsertForm {
	f := NewFarmerUpsertForm(client, logger)
	f.targetID = farmer.ID
	f.identity = identityStep{
		FullName: farmer.FullName,
		Email:    farmer.Email,
		Phone:    farmer.Phone,
		Aadhaar:  farmer.AadhaarNumber,
	}
	f.location = locationStep{
		Address:  farmer.Address,
		State:    farmer.State,
		District: farmer.District,
		Pincode:  farmer.Pincode,
	}
	return f
}

// Step returns the current 1-based step.
func (f *FarmerUpsertForm) Step() int { return f.stepper.Step() }

// Err returns the single visible error message.
func (f *FarmerUpsertForm) Err() string { return f.stepper.Err() }

// Submitted reports whether the form completed successfully.
func (f *FarmerUpsertForm) Submitted() bool { return f.submitted }

// SetField records one field edit.
func (f *FarmerUpsertForm) SetField(field FarmerField, value string) {
	switch field {
	case FarmerFullName:
		f.identity.FullName = value
	case FarmerEmail:
		f.identity.Email = value
	case FarmerPhone:
		f.identity.Phone = value
	case FarmerAadhaar:
		f.identity.Aadhaar = value
	case FarmerAddress:
		f.location.Address = value
	case FarmerState:
		f.location.State = value
	case FarmerDistrict:
		f.location.District = value
	case FarmerPincode:
		f.location.Pincode = value
	}
}

// Next advances when the current step validates.
func (f *FarmerUpsertForm) Next() bool { return f.stepper.Next() }

// Prev always goes back without validating.
func (f *FarmerUpsertForm) Prev() { f.stepper.Prev() }

func (f *FarmerUpsertForm) validateIdentity() string {
	return firstMessage(f.validate.Struct(f.identity), identityFieldOrder, identityMessages)
}

func (f *FarmerUpsertForm) validateLocation() string {
	return firstMessage(f.validate.Struct(f.location), locationFieldOrder, locationMessages)
}

// Submit re-validates everything and issues the create or update call.
func (f *FarmerUpsertForm) Submit(ctx context.Context) error {
	if f.submitting {
		return apperrors.ErrMutationInFlight
	}
	if msg := f.stepper.ValidateAll(); msg != "" {
		return apperrors.Clone(apperrors.ErrValidation, msg)
	}

	f.submitting = true
	defer func() { f.submitting = false }()

	draft := models.FarmerDraft{
		FullName:      f.identity.FullName,
		Email:         f.identity.Email,
		Phone:         f.identity.Phone,
		AadhaarNumber: f.identity.Aadhaar,
		Address:       f.location.Address,
		State:         f.location.State,
		District:      f.location.District,
		Pincode:       f.location.Pincode,
	}

	var appErr *apperrors.Error
	if f.targetID == "" {
		appErr = f.client.CreateFarmer(ctx, draft)
	} else {
		appErr = f.client.UpdateFarmer(ctx, f.targetID, draft)
	}
	if appErr != nil {
		f.stepper.setErr(appErr.Message)
		return appErr
	}

	f.submitted = true
	return nil
}
