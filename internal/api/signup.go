package api

import (
	"context"
	"strconv"

	"github.com/noah-isme/agrisure-console/internal/models"
	apperrors "github.com/noah-isme/agrisure-console/pkg/errors"
)

// File field names accepted by the signup endpoint. Anything outside this
// whitelist is dropped before encoding, matching the backend contract.
const (
	signupFieldCornerPhotos = "cornerPhotos"
	signupFieldAadhaar      = "aadhaarCard"
	signupFieldLandRecord   = "landRecord"
	signupFieldBankPassbook = "bankPassbook"
)

// SignupFarmer submits a farmer self-registration as a multipart form.
// POST /auth/signup/farmer. A 409 response means the account already exists;
// callers route that to the login screen with the carried message.
func (c *Client) SignupFarmer(ctx context.Context, draft models.SignupDraft) *apperrors.Error {
	fields := map[string]string{
		"fullName": draft.FullName,
		"email":    draft.Email,
		"phone":    draft.Phone,
		"password": draft.Password,
		"address":  draft.Address,
		"state":    draft.State,
		"district": draft.District,
		"tehsil":   draft.Tehsil,
		"village":  draft.Village,
		"pincode":  draft.Pincode,
	}
	if draft.LandAreaHectares > 0 {
		fields["landAreaHectares"] = strconv.FormatFloat(draft.LandAreaHectares, 'f', -1, 64)
	}

	attachments := map[string][]models.Attachment{}

	corners := draft.CornerPhotos
	if len(corners) > models.MaxCornerPhotoSlots {
		corners = corners[:models.MaxCornerPhotoSlots]
	}
	if len(corners) > 0 {
		group := make([]models.Attachment, 0, len(corners))
		for _, att := range corners {
			att.FieldName = signupFieldCornerPhotos
			group = append(group, att)
		}
		attachments[signupFieldCornerPhotos] = group
	}

	for field, att := range map[string]*models.Attachment{
		signupFieldAadhaar:      draft.AadhaarCard,
		signupFieldLandRecord:   draft.LandRecord,
		signupFieldBankPassbook: draft.BankPassbook,
	} {
		if att == nil {
			continue
		}
		single := *att
		single.FieldName = field
		attachments[field] = []models.Attachment{single}
	}

	body, contentType, err := encodeMultipart(fields, attachments)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to encode signup payload")
	}

	_, appErr := c.doMultipart(ctx, "auth.signup.farmer", "/auth/signup/farmer", body, contentType)
	return appErr
}
