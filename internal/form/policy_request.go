package form

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/agrisure-console/internal/models"
	"github.com/noah-isme/agrisure-console/pkg/blob"
	apperrors "github.com/noah-isme/agrisure-console/pkg/errors"
)

type policyRequestClient interface {
	SubmitPolicyRequest(ctx context.Context, draft models.PolicyRequestDraft) *apperrors.Error
}

type coverageStep struct {
	InsurerID    string  `validate:"required"`
	CropType     string  `validate:"required"`
	AreaHectares float64 `validate:"required,gt=0"`
	SowingDate   string  `validate:"required"`
}

type farmLocationStep struct {
	Address  string `validate:"required"`
	State    string `validate:"required"`
	District string `validate:"required"`
	Pincode  string `validate:"required,len=6,numeric"`
}

var coverageFieldOrder = []string{"InsurerID", "CropType", "AreaHectares", "SowingDate"}
var coverageMessages = map[string]string{
	"InsurerID.required":    "please choose an insurer",
	"CropType.required":     "crop type is required",
	"AreaHectares.required": "farm area is required",
	"AreaHectares.gt":       "farm area must be greater than zero",
	"SowingDate.required":   "sowing date is required",
}

var farmLocationFieldOrder = []string{"Address", "State", "District", "Pincode"}
var farmLocationMessages = map[string]string{
	"Address.required":  "farm address is required",
	"State.required":    "state is required",
	"District.required": "district is required",
	"Pincode.required":  "pincode is required",
	"Pincode.len":       "pincode must be 6 digits",
	"Pincode.numeric":   "pincode must be 6 digits",
}

// RequestField names one editable text field of the policy request form.
type RequestField string

const (
	RequestInsurer    RequestField = "insurerId"
	RequestCrop       RequestField = "cropType"
	RequestSowingDate RequestField = "sowingDate"
	RequestAddress    RequestField = "address"
	RequestState      RequestField = "state"
	RequestDistrict   RequestField = "district"
	RequestPincode    RequestField = "pincode"
)

type requestAttachment struct {
	att     models.Attachment
	preview *blob.Handle
}

// PolicyRequestForm is the farmer's three-step application for cover:
// coverage details, farm location, then farm images and supporting
// documents. Attached files carry blob previews released when the file is
// removed and on Close.
type PolicyRequestForm struct {
	stepper  *Stepper
	coverage coverageStep
	location farmLocationStep

	farmImages []requestAttachment
	documents  []requestAttachment
	previews   *blob.Store

	client     policyRequestClient
	validate   *validator.Validate
	logger     *zap.Logger
	submitting bool
	submitted  bool
}

// NewPolicyRequestForm builds an empty request form.
func NewPolicyRequestForm(client policyRequestClient, logger *zap.Logger) *PolicyRequestForm {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &PolicyRequestForm{
		client:   client,
		previews: blob.NewStore(),
		validate: validator.New(),
		logger:   logger,
	}
	f.stepper = NewStepper(f.validateCoverage, f.validateLocation, f.validateAttachments)
	return f
}

// Step returns the current 1-based step.
func (f *PolicyRequestForm) Step() int { return f.stepper.Step() }

// Err returns the single visible error message.
func (f *PolicyRequestForm) Err() string { return f.stepper.Err() }

// Submitted reports whether the request went through.
func (f *PolicyRequestForm) Submitted() bool { return f.submitted }

// Previews exposes the live preview store.
func (f *PolicyRequestForm) Previews() *blob.Store { return f.previews }

// SetField records one text field edit.
func (f *PolicyRequestForm) SetField(field RequestField, value string) {
	switch field {
	case RequestInsurer:
		f.coverage.InsurerID = value
	case RequestCrop:
		f.coverage.CropType = value
	case RequestSowingDate:
		f.coverage.SowingDate = value
	case RequestAddress:
		f.location.Address = value
	case RequestState:
		f.location.State = value
	case RequestDistrict:
		f.location.District = value
	case RequestPincode:
		f.location.Pincode = value
	}
}

// SetArea records the farm area in hectares.
func (f *PolicyRequestForm) SetArea(hectares float64) {
	f.coverage.AreaHectares = hectares
}

// AttachFarmImage queues a farm image with a live preview.
func (f *PolicyRequestForm) AttachFarmImage(fileName, contentType string, data []byte, gps string) string {
	h := f.previews.Put(fmt.Sprintf("request-farm-%d", len(f.farmImages)), contentType, data)
	f.farmImages = append(f.farmImages, requestAttachment{
		att:     models.Attachment{FileName: fileName, ContentType: contentType, Data: data, GPS: gps},
		preview: h,
	})
	return h.URL()
}

// RemoveFarmImage drops the image at idx and releases exactly its preview.
func (f *PolicyRequestForm) RemoveFarmImage(idx int) {
	if idx < 0 || idx >= len(f.farmImages) {
		return
	}
	f.farmImages[idx].preview.Release()
	f.farmImages = append(f.farmImages[:idx], f.farmImages[idx+1:]...)
}

// AttachDocument queues a supporting document with a live preview.
func (f *PolicyRequestForm) AttachDocument(fileName, contentType string, data []byte) string {
	h := f.previews.Put(fmt.Sprintf("request-doc-%d", len(f.documents)), contentType, data)
	f.documents = append(f.documents, requestAttachment{
		att:     models.Attachment{FileName: fileName, ContentType: contentType, Data: data},
		preview: h,
	})
	return h.URL()
}

// RemoveDocument drops the document at idx and releases exactly its preview.
func (f *PolicyRequestForm) RemoveDocument(idx int) {
	if idx < 0 || idx >= len(f.documents) {
		return
	}
	f.documents[idx].preview.Release()
	f.documents = append(f.documents[:idx], f.documents[idx+1:]...)
}

// FarmImageCount reports queued farm images.
func (f *PolicyRequestForm) FarmImageCount() int { return len(f.farmImages) }

// DocumentCount reports queued documents.
func (f *PolicyRequestForm) DocumentCount() int { return len(f.documents) }

// Next advances when the current step validates.
func (f *PolicyRequestForm) Next() bool { return f.stepper.Next() }

// Prev always goes back without validating.
func (f *PolicyRequestForm) Prev() { f.stepper.Prev() }

// Close releases every live preview. Call on form teardown.
func (f *PolicyRequestForm) Close() {
	f.farmImages = nil
	f.documents = nil
	f.previews.ReleaseAll()
}

func (f *PolicyRequestForm) validateCoverage() string {
	return firstMessage(f.validate.Struct(f.coverage), coverageFieldOrder, coverageMessages)
}

func (f *PolicyRequestForm) validateLocation() string {
	return firstMessage(f.validate.Struct(f.location), farmLocationFieldOrder, farmLocationMessages)
}

func (f *PolicyRequestForm) validateAttachments() string {
	if len(f.farmImages) == 0 {
		return "please attach at least one farm image"
	}
	return ""
}

// Submit re-validates every step and uploads the request. Successful submit
// releases all previews.
func (f *PolicyRequestForm) Submit(ctx context.Context) error {
	if f.submitting {
		return apperrors.ErrMutationInFlight
	}
	if msg := f.stepper.ValidateAll(); msg != "" {
		return apperrors.Clone(apperrors.ErrValidation, msg)
	}

	f.submitting = true
	defer func() { f.submitting = false }()

	draft := models.PolicyRequestDraft{
		InsurerID:    f.coverage.InsurerID,
		CropType:     f.coverage.CropType,
		AreaHectares: f.coverage.AreaHectares,
		SowingDate:   f.coverage.SowingDate,
		Address:      f.location.Address,
		State:        f.location.State,
		District:     f.location.District,
		Pincode:      f.location.Pincode,
	}
	for _, img := range f.farmImages {
		draft.FarmImages = append(draft.FarmImages, img.att)
	}
	for _, doc := range f.documents {
		draft.Documents = append(draft.Documents, doc.att)
	}

	if appErr := f.client.SubmitPolicyRequest(ctx, draft); appErr != nil {
		f.stepper.setErr(appErr.Message)
		return appErr
	}

	f.logger.Info("policy_request_submitted",
		zap.String("insurer_id", draft.InsurerID),
		zap.Int("farm_images", len(draft.FarmImages)),
	)
	f.submitted = true
	f.Close()
	return nil
}
