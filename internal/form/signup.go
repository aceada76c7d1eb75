package form

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/agrisure-console/internal/models"
	"github.com/noah-isme/agrisure-console/internal/session"
	"github.com/noah-isme/agrisure-console/pkg/blob"
	apperrors "github.com/noah-isme/agrisure-console/pkg/errors"
)

type signupClient interface {
	SignupFarmer(ctx context.Context, draft models.SignupDraft) *apperrors.Error
}

// AccountField names a step-1 text field.
type AccountField string

const (
	AccountFullName AccountField = "fullName"
	AccountEmail    AccountField = "email"
	AccountPhone    AccountField = "phone"
	AccountPassword AccountField = "password"
)

// FarmField names a step-2 text field.
type FarmField string

const (
	FarmAddress  FarmField = "address"
	FarmState    FarmField = "state"
	FarmDistrict FarmField = "district"
	FarmTehsil   FarmField = "tehsil"
	FarmVillage  FarmField = "village"
	FarmPincode  FarmField = "pincode"
)

// DocumentField names a step-3 single-file slot.
type DocumentField string

const (
	DocAadhaarCard  DocumentField = "aadhaarCard"
	DocLandRecord   DocumentField = "landRecord"
	DocBankPassbook DocumentField = "bankPassbook"
)

// Action is the tagged union of signup form updates; every change flows
// through Apply.
type Action interface{ isSignupAction() }

type SetAccountField struct {
	Field AccountField
	Value string
}

type SetFarmField struct {
	Field FarmField
	Value string
}

type SetLandArea struct{ Hectares float64 }

// AttachCornerPhoto fills one of the eight geo-tagged corner photo slots.
type AttachCornerPhoto struct {
	Slot        int
	FileName    string
	ContentType string
	Data        []byte
	GPS         string
}

type RemoveCornerPhoto struct{ Slot int }

type SetCornerGPS struct {
	Slot int
	GPS  string
}

type AttachDocument struct {
	Field       DocumentField
	FileName    string
	ContentType string
	Data        []byte
}

type RemoveDocument struct{ Field DocumentField }

type NextStep struct{}
type PrevStep struct{}

func (SetAccountField) isSignupAction()   {}
func (SetFarmField) isSignupAction()      {}
func (SetLandArea) isSignupAction()       {}
func (AttachCornerPhoto) isSignupAction() {}
func (RemoveCornerPhoto) isSignupAction() {}
func (SetCornerGPS) isSignupAction()      {}
func (AttachDocument) isSignupAction()    {}
func (RemoveDocument) isSignupAction()    {}
func (NextStep) isSignupAction()          {}
func (PrevStep) isSignupAction()          {}

type accountStep struct {
	FullName string `validate:"required"`
	Email    string `validate:"required,email"`
	Phone    string `validate:"required,len=10,numeric"`
	Password string `validate:"required,min=8"`
}

type farmStep struct {
	Address  string `validate:"required"`
	State    string `validate:"required"`
	District string `validate:"required"`
	Tehsil   string
	Village  string
	Pincode  string  `validate:"required,len=6,numeric"`
	LandArea float64 `validate:"required,gt=0"`
}

var accountFieldOrder = []string{"FullName", "Email", "Phone", "Password"}
var accountMessages = map[string]string{
	"FullName.required": "full name is required",
	"Email.required":    "email is required",
	"Email.email":       "enter a valid email address",
	"Phone.required":    "phone number is required",
	"Phone.len":         "phone number must be 10 digits",
	"Phone.numeric":     "phone number must be 10 digits",
	"Password.required": "password is required",
	"Password.min":      "password must be at least 8 characters",
}

var farmFieldOrder = []string{"Address", "State", "District", "Tehsil", "Village", "Pincode", "LandArea"}
var farmMessages = map[string]string{
	"Address.required":  "farm address is required",
	"State.required":    "state is required",
	"District.required": "district is required",
	"Pincode.required":  "pincode is required",
	"Pincode.len":       "pincode must be 6 digits",
	"Pincode.numeric":   "pincode must be 6 digits",
	"LandArea.required": "land area is required",
	"LandArea.gt":       "land area must be greater than zero",
}

type cornerSlot struct {
	attachment models.Attachment
	preview    *blob.Handle
	filled     bool
}

type documentSlot struct {
	attachment models.Attachment
	preview    *blob.Handle
	filled     bool
}

// SignupForm is the three-step farmer self-registration form:
// account → farm/location → documents.
type SignupForm struct {
	stepper *Stepper

	account accountStep
	farm    farmStep

	corners   [models.MaxCornerPhotoSlots]cornerSlot
	documents map[DocumentField]*documentSlot

	client     signupClient
	validate   *validator.Validate
	blobs      *blob.Store
	navigator  session.Navigator
	loginRoute string
	logger     *zap.Logger

	submitting bool
	submitted  bool
}

// NewSignupForm builds a fresh signup form.
func NewSignupForm(client signupClient, blobs *blob.Store, navigator session.Navigator, loginRoute string, logger *zap.Logger) *SignupForm {
	if logger == nil {
		logger = zap.NewNop()
	}
	if blobs == nil {
		blobs = blob.NewStore()
	}
	f := &SignupForm{
		client:     client,
		validate:   validator.New(),
		blobs:      blobs,
		navigator:  navigator,
		loginRoute: loginRoute,
		logger:     logger,
		documents:  make(map[DocumentField]*documentSlot),
	}
	f.stepper = NewStepper(f.validateAccount, f.validateFarm, f.validateDocuments)
	return f
}

// Step returns the current 1-based step.
func (f *SignupForm) Step() int { return f.stepper.Step() }

// Err returns the single visible error message.
func (f *SignupForm) Err() string { return f.stepper.Err() }

// Submitted reports whether the form completed successfully.
func (f *SignupForm) Submitted() bool { return f.submitted }

// Apply routes one update through the reducer.
func (f *SignupForm) Apply(action Action) {
	switch a := action.(type) {
	case SetAccountField:
		f.setAccountField(a)
	case SetFarmField:
		f.setFarmField(a)
	case SetLandArea:
		f.farm.LandArea = a.Hectares
	case AttachCornerPhoto:
		f.attachCorner(a)
	case RemoveCornerPhoto:
		f.removeCorner(a.Slot)
	case SetCornerGPS:
		if a.Slot >= 0 && a.Slot < len(f.corners) && f.corners[a.Slot].filled {
			f.corners[a.Slot].attachment.GPS = a.GPS
		}
	case AttachDocument:
		f.attachDocument(a)
	case RemoveDocument:
		f.removeDocument(a.Field)
	case NextStep:
		f.stepper.Next()
	case PrevStep:
		f.stepper.Prev()
	}
}

func (f *SignupForm) setAccountField(a SetAccountField) {
	switch a.Field {
	case AccountFullName:
		f.account.FullName = a.Value
	case AccountEmail:
		f.account.Email = a.Value
	case AccountPhone:
		f.account.Phone = a.Value
	case AccountPassword:
		f.account.Password = a.Value
	}
}

func (f *SignupForm) setFarmField(a SetFarmField) {
	switch a.Field {
	case FarmAddress:
		f.farm.Address = a.Value
	case FarmState:
		f.farm.State = a.Value
	case FarmDistrict:
		f.farm.District = a.Value
	case FarmTehsil:
		f.farm.Tehsil = a.Value
	case FarmVillage:
		f.farm.Village = a.Value
	case FarmPincode:
		f.farm.Pincode = a.Value
	}
}

func (f *SignupForm) attachCorner(a AttachCornerPhoto) {
	if a.Slot < 0 || a.Slot >= len(f.corners) {
		return
	}
	slot := &f.corners[a.Slot]
	if slot.preview != nil {
		slot.preview.Release()
	}
	slot.attachment = models.Attachment{
		FileName:    a.FileName,
		ContentType: a.ContentType,
		Data:        a.Data,
		GPS:         a.GPS,
	}
	slot.preview = f.blobs.Put(fmt.Sprintf("corner-%d", a.Slot), a.ContentType, a.Data)
	slot.filled = true
}

func (f *SignupForm) removeCorner(slot int) {
	if slot < 0 || slot >= len(f.corners) {
		return
	}
	s := &f.corners[slot]
	if s.preview != nil {
		s.preview.Release()
	}
	*s = cornerSlot{}
}

func (f *SignupForm) attachDocument(a AttachDocument) {
	if existing, ok := f.documents[a.Field]; ok && existing.preview != nil {
		existing.preview.Release()
	}
	f.documents[a.Field] = &documentSlot{
		attachment: models.Attachment{
			FileName:    a.FileName,
			ContentType: a.ContentType,
			Data:        a.Data,
		},
		preview: f.blobs.Put(string(a.Field), a.ContentType, a.Data),
		filled:  true,
	}
}

func (f *SignupForm) removeDocument(field DocumentField) {
	if existing, ok := f.documents[field]; ok {
		if existing.preview != nil {
			existing.preview.Release()
		}
		delete(f.documents, field)
	}
}

// CornerPreviewURL exposes the preview token for a filled slot.
func (f *SignupForm) CornerPreviewURL(slot int) string {
	if slot < 0 || slot >= len(f.corners) || !f.corners[slot].filled {
		return ""
	}
	return f.corners[slot].preview.URL()
}

// Close releases every preview resource. Called on navigation away.
func (f *SignupForm) Close() {
	for i := range f.corners {
		f.removeCorner(i)
	}
	for field := range f.documents {
		f.removeDocument(field)
	}
}

func (f *SignupForm) validateAccount() string {
	return firstMessage(f.validate.Struct(f.account), accountFieldOrder, accountMessages)
}

func (f *SignupForm) validateFarm() string {
	return firstMessage(f.validate.Struct(f.farm), farmFieldOrder, farmMessages)
}

func (f *SignupForm) validateDocuments() string {
	hasCorner := false
	for i := range f.corners {
		if f.corners[i].filled {
			hasCorner = true
			break
		}
	}
	if !hasCorner {
		return "attach at least one farm corner photo"
	}
	if doc, ok := f.documents[DocAadhaarCard]; !ok || !doc.filled {
		return "aadhaar card is required"
	}
	if doc, ok := f.documents[DocLandRecord]; !ok || !doc.filled {
		return "land record is required"
	}
	return ""
}

// Submit re-runs every step's validator and, when clean, uploads the
// multipart registration. A duplicate registration (409) routes to the
// login screen carrying the backend's message instead of blocking.
func (f *SignupForm) Submit(ctx context.Context) error {
	if f.submitting {
		return apperrors.ErrMutationInFlight
	}
	if msg := f.stepper.ValidateAll(); msg != "" {
		return apperrors.Clone(apperrors.ErrValidation, msg)
	}

	f.submitting = true
	defer func() { f.submitting = false }()

	appErr := f.client.SignupFarmer(ctx, f.draft())
	if appErr != nil {
		if appErr.Code == apperrors.ErrConflict.Code {
			if f.navigator != nil {
				f.navigator.NavigateTo(session.LoginRoute(f.loginRoute, appErr.Message))
			}
			return appErr
		}
		f.stepper.setErr(appErr.Message)
		return appErr
	}

	f.submitted = true
	f.Close()
	if f.navigator != nil {
		f.navigator.NavigateTo(session.LoginRoute(f.loginRoute, "registration submitted, awaiting approval"))
	}
	return nil
}

func (f *SignupForm) draft() models.SignupDraft {
	draft := models.SignupDraft{
		FullName:         f.account.FullName,
		Email:            f.account.Email,
		Phone:            f.account.Phone,
		Password:         f.account.Password,
		Address:          f.farm.Address,
		State:            f.farm.State,
		District:         f.farm.District,
		Tehsil:           f.farm.Tehsil,
		Village:          f.farm.Village,
		Pincode:          f.farm.Pincode,
		LandAreaHectares: f.farm.LandArea,
	}
	for i := range f.corners {
		if f.corners[i].filled {
			draft.CornerPhotos = append(draft.CornerPhotos, f.corners[i].attachment)
		}
	}
	if doc, ok := f.documents[DocAadhaarCard]; ok {
		att := doc.attachment
		draft.AadhaarCard = &att
	}
	if doc, ok := f.documents[DocLandRecord]; ok {
		att := doc.attachment
		draft.LandRecord = &att
	}
	if doc, ok := f.documents[DocBankPassbook]; ok {
		att := doc.attachment
		draft.BankPassbook = &att
	}
	return draft
}
