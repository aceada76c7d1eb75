// Package panel composes the generic controller pattern into the concrete
// role dashboards: admin insurer management, signup review, farmer policies,
// policy request review, sessions, and the insurer's farmer directory.
//
// A panel owns one list controller, one confirmation gate, and one mutation
// gateway. The embedding UI renders Snapshot/Visible output, feeds user
// input back in, and calls Confirm/Cancel on the gate flows.
package panel

import apperrors "github.com/noah-isme/agrisure-console/pkg/errors"

// asErr converts a typed API error to a plain error without producing a
// non-nil interface around a nil pointer.
func asErr(appErr *apperrors.Error) error {
	if appErr == nil {
		return nil
	}
	return appErr
}
