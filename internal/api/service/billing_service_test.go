package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"gary-picks-engine/internal/api/config"
	"gary-picks-engine/internal/api/repository"
	"gary-picks-engine/internal/entity"
	"gary-picks-engine/pkg/logger"

	stripe "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeSubscriptionRepo struct {
	subs map[string]*entity.Subscription // keyed by user id
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[string]*entity.Subscription)}
}

func (f *fakeSubscriptionRepo) FindByUser(ctx context.Context, userID string) (*entity.Subscription, error) {
	sub, ok := f.subs[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return sub, nil
}

func (f *fakeSubscriptionRepo) FindByCustomerID(ctx context.Context, customerID string) (*entity.Subscription, error) {
	for _, sub := range f.subs {
		if sub.CustomerID == customerID {
			return sub, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSubscriptionRepo) Upsert(ctx context.Context, sub *entity.Subscription) error {
	f.subs[sub.UserID] = sub
	return nil
}

type fakeWebhookEventRepo struct {
	seen      map[string]bool
	processed []string
}

func newFakeWebhookEventRepo() *fakeWebhookEventRepo {
	return &fakeWebhookEventRepo{seen: make(map[string]bool)}
}

func (f *fakeWebhookEventRepo) Create(ctx context.Context, event *entity.WebhookEvent) error {
	if f.seen[event.EventID] {
		return repository.ErrDuplicateEvent
	}
	f.seen[event.EventID] = true
	return nil
}

func (f *fakeWebhookEventRepo) MarkProcessed(ctx context.Context, event *entity.WebhookEvent) error {
	f.processed = append(f.processed, event.EventID)
	return nil
}

func newTestBillingService(t *testing.T, subRepo repository.SubscriptionRepository, eventRepo repository.WebhookEventRepository) BillingService {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	cfg := &config.Config{}
	cfg.Stripe.WebhookSecret = "whsec_test"
	return NewBillingService(subRepo, eventRepo, cfg, log)
}

func signedWebhookPayload(t *testing.T, eventID, eventType string, object interface{}) ([]byte, string) {
	t.Helper()
	objectJSON, err := json.Marshal(object)
	require.NoError(t, err)

	payload := []byte(fmt.Sprintf(`{"id": %q, "api_version": %q, "type": %q, "data": {"object": %s}}`,
		eventID, stripe.APIVersion, eventType, objectJSON))

	now := time.Now()
	sig := webhook.ComputeSignature(now, payload, "whsec_test")
	header := fmt.Sprintf("t=%d,v1=%x", now.Unix(), sig)
	return payload, header
}

func TestHandleWebhookCheckoutCompleted(t *testing.T) {
	subRepo := newFakeSubscriptionRepo()
	eventRepo := newFakeWebhookEventRepo()
	svc := newTestBillingService(t, subRepo, eventRepo)

	payload, header := signedWebhookPayload(t, "evt_1", "checkout.session.completed", map[string]interface{}{
		"client_reference_id": "user-1",
		"customer":            map[string]string{"id": "cus_1"},
		"subscription":        map[string]string{"id": "sub_1"},
	})

	require.NoError(t, svc.HandleWebhook(context.Background(), payload, header))

	sub, ok := subRepo.subs["user-1"]
	require.True(t, ok)
	assert.Equal(t, entity.PlanPro, sub.PlanTier)
	assert.Equal(t, "active", sub.Status)
	assert.Equal(t, "cus_1", sub.CustomerID)
	assert.Equal(t, "sub_1", sub.SubscriptionID)
	assert.Equal(t, []string{"evt_1"}, eventRepo.processed)
}

func TestHandleWebhookDuplicateEvent(t *testing.T) {
	subRepo := newFakeSubscriptionRepo()
	eventRepo := newFakeWebhookEventRepo()
	svc := newTestBillingService(t, subRepo, eventRepo)

	payload, header := signedWebhookPayload(t, "evt_dup", "checkout.session.completed", map[string]interface{}{
		"client_reference_id": "user-1",
	})

	require.NoError(t, svc.HandleWebhook(context.Background(), payload, header))
	require.NoError(t, svc.HandleWebhook(context.Background(), payload, header))

	// The redelivery is acknowledged without reprocessing.
	assert.Equal(t, []string{"evt_dup"}, eventRepo.processed)
}

func TestHandleWebhookBadSignature(t *testing.T) {
	subRepo := newFakeSubscriptionRepo()
	eventRepo := newFakeWebhookEventRepo()
	svc := newTestBillingService(t, subRepo, eventRepo)

	payload, _ := signedWebhookPayload(t, "evt_2", "checkout.session.completed", map[string]interface{}{
		"client_reference_id": "user-1",
	})

	err := svc.HandleWebhook(context.Background(), payload, "t=1,v1=deadbeef")
	assert.Error(t, err)
	assert.Empty(t, subRepo.subs)
}

func TestHandleWebhookIgnoresUnknownType(t *testing.T) {
	subRepo := newFakeSubscriptionRepo()
	eventRepo := newFakeWebhookEventRepo()
	svc := newTestBillingService(t, subRepo, eventRepo)

	payload, header := signedWebhookPayload(t, "evt_3", "invoice.paid", map[string]interface{}{})

	require.NoError(t, svc.HandleWebhook(context.Background(), payload, header))
	assert.Empty(t, subRepo.subs)
	assert.Equal(t, []string{"evt_3"}, eventRepo.processed)
}

func TestApplySubscriptionUpdate(t *testing.T) {
	tests := []struct {
		name     string
		status   stripe.SubscriptionStatus
		deleted  bool
		wantTier entity.PlanTier
	}{
		{name: "active stays pro", status: stripe.SubscriptionStatusActive, wantTier: entity.PlanPro},
		{name: "trialing stays pro", status: stripe.SubscriptionStatusTrialing, wantTier: entity.PlanPro},
		{name: "canceled drops to free", status: stripe.SubscriptionStatusCanceled, wantTier: entity.PlanFree},
		{name: "unpaid drops to free", status: stripe.SubscriptionStatusUnpaid, wantTier: entity.PlanFree},
		{name: "deleted drops to free", status: stripe.SubscriptionStatusActive, deleted: true, wantTier: entity.PlanFree},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subRepo := newFakeSubscriptionRepo()
			subRepo.subs["user-1"] = &entity.Subscription{
				UserID:     "user-1",
				CustomerID: "cus_1",
				PlanTier:   entity.PlanPro,
				Status:     "active",
			}
			svc := newTestBillingService(t, subRepo, newFakeWebhookEventRepo()).(*billingService)

			err := svc.applySubscriptionUpdate(context.Background(), &stripe.Subscription{
				ID:               "sub_1",
				Customer:         &stripe.Customer{ID: "cus_1"},
				Status:           tt.status,
				CurrentPeriodEnd: time.Now().Add(24 * time.Hour).Unix(),
			}, tt.deleted)

			require.NoError(t, err)
			sub := subRepo.subs["user-1"]
			assert.Equal(t, tt.wantTier, sub.PlanTier)
			assert.Equal(t, string(tt.status), sub.Status)
			assert.NotNil(t, sub.CurrentPeriodEnd)
		})
	}
}

func TestApplySubscriptionUpdateUnknownCustomer(t *testing.T) {
	subRepo := newFakeSubscriptionRepo()
	svc := newTestBillingService(t, subRepo, newFakeWebhookEventRepo()).(*billingService)

	err := svc.applySubscriptionUpdate(context.Background(), &stripe.Subscription{
		ID:       "sub_1",
		Customer: &stripe.Customer{ID: "cus_unknown"},
		Status:   stripe.SubscriptionStatusActive,
	}, false)

	assert.NoError(t, err)
	assert.Empty(t, subRepo.subs)
}

func TestGetSubscriptionDefaultsToFree(t *testing.T) {
	svc := newTestBillingService(t, newFakeSubscriptionRepo(), newFakeWebhookEventRepo())

	resp, err := svc.GetSubscription(context.Background(), "user-new")
	require.NoError(t, err)
	assert.Equal(t, string(entity.PlanFree), resp.PlanTier)
	assert.Equal(t, "inactive", resp.Status)
}
