package panel

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/agrisure-console/internal/controller"
	"github.com/noah-isme/agrisure-console/internal/models"
	"github.com/noah-isme/agrisure-console/pkg/blob"
	apperrors "github.com/noah-isme/agrisure-console/pkg/errors"
	"github.com/noah-isme/agrisure-console/pkg/metrics"
)

type requestReviewer interface {
	ListPolicyRequests(ctx context.Context, filter models.FilterState) ([]models.PolicyRequest, *models.Pagination, *apperrors.Error)
	IssuePolicyRequest(ctx context.Context, id string) *apperrors.Error
	RejectPolicyRequest(ctx context.Context, id, reason string) *apperrors.Error
	FetchFarmImage(ctx context.Context, id string, idx int) ([]byte, string, *apperrors.Error)
	FetchRequestDocument(ctx context.Context, id string, idx int) ([]byte, string, *apperrors.Error)
}

// defaultPolicyRejectionReason substitutes a blank reject reason.
const defaultPolicyRejectionReason = "Rejected by administrator"

// RequestReviewPanel is the insurer's policy-request queue: issue or reject
// each application, with in-memory previews of the farmer's farm images and
// documents. Previews are released when their row leaves the list and on
// panel teardown.
type RequestReviewPanel struct {
	client  requestReviewer
	blobs   *blob.Store
	list    *controller.ListController[models.PolicyRequest]
	gate    *controller.ConfirmationGate
	gateway *controller.Gateway

	mu       sync.Mutex
	previews map[string][]*blob.Handle
}

// NewRequestReviewPanel wires the page.
func NewRequestReviewPanel(client requestReviewer, notifier controller.Notifier, logger *zap.Logger, rec *metrics.Recorder) *RequestReviewPanel {
	p := &RequestReviewPanel{
		client:   client,
		blobs:    blob.NewStore(),
		previews: make(map[string][]*blob.Handle),
	}

	p.list = controller.NewListController(func(ctx context.Context, filter models.FilterState) ([]models.PolicyRequest, *models.Pagination, error) {
		requests, pagination, appErr := client.ListPolicyRequests(ctx, filter)
		if appErr != nil {
			return nil, nil, appErr
		}
		p.releaseDeparted(requests)
		return requests, pagination, nil
	}, logger)

	p.gate = controller.NewConfirmationGate(defaultPolicyRejectionReason)
	p.gateway = controller.NewGateway(controller.GatewayConfig{
		Gate:     p.gate,
		Refresh:  func(ctx context.Context) { _ = p.list.Refresh(ctx) },
		Notifier: notifier,
		Logger:   logger,
		Metrics:  rec,
	})

	return p
}

// Open performs the mount-time fetch.
func (p *RequestReviewPanel) Open(ctx context.Context) error {
	return p.list.Refresh(ctx)
}

// Close releases every live preview. Call on page teardown.
func (p *RequestReviewPanel) Close() {
	p.mu.Lock()
	p.previews = make(map[string][]*blob.Handle)
	p.mu.Unlock()
	p.blobs.ReleaseAll()
}

// List exposes the list controller.
func (p *RequestReviewPanel) List() *controller.ListController[models.PolicyRequest] {
	return p.list
}

// Visible returns the rows to render under the current filter state.
func (p *RequestReviewPanel) Visible() []models.PolicyRequest {
	snap := p.list.Snapshot()
	return controller.Visible(snap.Items, snap.Filter.Search, snap.Filter.Status)
}

// Gate exposes the confirmation dialog state, including the typed reason.
func (p *RequestReviewPanel) Gate() *controller.ConfirmationGate {
	return p.gate
}

// InFlight reports whether a review for the given request is still pending.
func (p *RequestReviewPanel) InFlight(id string) bool {
	return p.gateway.InFlight(id)
}

// LoadPreviews fetches every farm image and document for one request and
// returns their preview URLs. Previously loaded previews for the same
// request are released first, so expanding a row twice does not leak.
func (p *RequestReviewPanel) LoadPreviews(ctx context.Context, req models.PolicyRequest) ([]string, error) {
	p.releaseFor(req.ID)

	handles := make([]*blob.Handle, 0, req.FarmImageCount+req.DocumentCount)
	urls := make([]string, 0, cap(handles))

	for i := 0; i < req.FarmImageCount; i++ {
		data, contentType, appErr := p.client.FetchFarmImage(ctx, req.ID, i)
		if appErr != nil {
			releaseAll(handles)
			return nil, appErr
		}
		h := p.blobs.Put(fmt.Sprintf("farm-%s-%d", req.ID, i), contentType, data)
		handles = append(handles, h)
		urls = append(urls, h.URL())
	}
	for i := 0; i < req.DocumentCount; i++ {
		data, contentType, appErr := p.client.FetchRequestDocument(ctx, req.ID, i)
		if appErr != nil {
			releaseAll(handles)
			return nil, appErr
		}
		h := p.blobs.Put(fmt.Sprintf("doc-%s-%d", req.ID, i), contentType, data)
		handles = append(handles, h)
		urls = append(urls, h.URL())
	}

	p.mu.Lock()
	p.previews[req.ID] = handles
	p.mu.Unlock()
	return urls, nil
}

// Previews returns the live store backing this panel's preview URLs.
func (p *RequestReviewPanel) Previews() *blob.Store {
	return p.blobs
}

// RequestIssue arms the confirmation for issuing a policy.
func (p *RequestReviewPanel) RequestIssue(id, label string) {
	p.gate.Open(controller.PendingConfirmation{ItemID: id, Kind: controller.KindIssue, Label: label})
}

// RequestReject arms the reject confirmation, which also collects a reason.
func (p *RequestReviewPanel) RequestReject(id, label string) {
	p.gate.Open(controller.PendingConfirmation{ItemID: id, Kind: controller.KindReject, Label: label})
}

// ConfirmPending fires the armed review action.
func (p *RequestReviewPanel) ConfirmPending(ctx context.Context) error {
	target, reason, ok := p.gate.Confirm()
	if !ok {
		return nil
	}
	return p.gateway.Dispatch(ctx, controller.Mutation{ID: target.ItemID, Kind: target.Kind, Reason: reason},
		func(ctx context.Context) error {
			if target.Kind == controller.KindIssue {
				return asErr(p.client.IssuePolicyRequest(ctx, target.ItemID))
			}
			return asErr(p.client.RejectPolicyRequest(ctx, target.ItemID, reason))
		})
}

// CancelPending discards the armed confirmation and any typed reason.
func (p *RequestReviewPanel) CancelPending() {
	p.gate.Cancel()
}

// releaseDeparted drops previews whose request is no longer in the list.
func (p *RequestReviewPanel) releaseDeparted(current []models.PolicyRequest) {
	present := make(map[string]struct{}, len(current))
	for _, r := range current {
		present[r.ID] = struct{}{}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for id, handles := range p.previews {
		if _, ok := present[id]; ok {
			continue
		}
		releaseAll(handles)
		delete(p.previews, id)
	}
}

func (p *RequestReviewPanel) releaseFor(id string) {
	p.mu.Lock()
	handles := p.previews[id]
	delete(p.previews, id)
	p.mu.Unlock()
	releaseAll(handles)
}

func releaseAll(handles []*blob.Handle) {
	for _, h := range handles {
		h.Release()
	}
}
