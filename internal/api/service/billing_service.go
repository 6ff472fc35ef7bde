package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gary-picks-engine/internal/api/config"
	"gary-picks-engine/internal/api/dto"
	"gary-picks-engine/internal/api/repository"
	"gary-picks-engine/internal/entity"
	"gary-picks-engine/pkg/logger"

	stripe "github.com/stripe/stripe-go/v78"
	portalsession "github.com/stripe/stripe-go/v78/billingportal/session"
	"github.com/stripe/stripe-go/v78/webhook"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrNoSubscription is returned when a user has no billing record yet.
var ErrNoSubscription = errors.New("no subscription on file")

// BillingService defines the interface for subscription and webhook handling.
type BillingService interface {
	GetSubscription(ctx context.Context, userID string) (*dto.SubscriptionResponse, error)
	CreatePortalSession(ctx context.Context, req *dto.CreatePortalSessionRequest) (*dto.PortalSessionResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

// NewBillingService creates a new billing service backed by Stripe.
func NewBillingService(subRepo repository.SubscriptionRepository, eventRepo repository.WebhookEventRepository, cfg *config.Config, logger *logger.Logger) BillingService {
	stripe.Key = cfg.Stripe.APIKey
	return &billingService{
		subRepo:   subRepo,
		eventRepo: eventRepo,
		cfg:       cfg,
		logger:    logger,
	}
}

type billingService struct {
	subRepo   repository.SubscriptionRepository
	eventRepo repository.WebhookEventRepository
	cfg       *config.Config
	logger    *logger.Logger
}

// GetSubscription retrieves a user's billing state. Users without a record are
// reported on the free tier.
func (s *billingService) GetSubscription(ctx context.Context, userID string) (*dto.SubscriptionResponse, error) {
	sub, err := s.subRepo.FindByUser(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &dto.SubscriptionResponse{
			UserID:   userID,
			PlanTier: string(entity.PlanFree),
			Status:   "inactive",
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &dto.SubscriptionResponse{
		UserID:            sub.UserID,
		PlanTier:          string(sub.PlanTier),
		Status:            sub.Status,
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
	}, nil
}

// CreatePortalSession creates a Stripe billing portal session for the customer.
func (s *billingService) CreatePortalSession(ctx context.Context, req *dto.CreatePortalSessionRequest) (*dto.PortalSessionResponse, error) {
	returnURL := req.ReturnURL
	if returnURL == "" {
		returnURL = s.cfg.Stripe.PortalReturn
	}

	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(req.CustomerID),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx

	sess, err := portalsession.New(params)
	if err != nil {
		s.logger.Error("Failed to create portal session", logger.ErrorField(err), logger.StringField("customer_id", req.CustomerID))
		return nil, err
	}

	return &dto.PortalSessionResponse{URL: sess.URL}, nil
}

// HandleWebhook verifies a Stripe webhook delivery and applies its event.
// Redelivered event ids are acknowledged without reprocessing.
func (s *billingService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.cfg.Stripe.WebhookSecret)
	if err != nil {
		s.logger.Error("Webhook signature verification failed", logger.ErrorField(err))
		return err
	}

	record := &entity.WebhookEvent{
		Provider:  "stripe",
		EventID:   event.ID,
		EventType: string(event.Type),
		Payload:   datatypes.JSON(payload),
	}
	if err := s.eventRepo.Create(ctx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicateEvent) {
			s.logger.Info("Duplicate webhook event skipped", logger.StringField("event_id", event.ID))
			return nil
		}
		return err
	}

	applyErr := s.applyEvent(ctx, &event)

	now := time.Now()
	record.Processed = applyErr == nil
	record.ProcessedAt = &now
	if applyErr != nil {
		record.ErrorMessage = applyErr.Error()
	}
	if err := s.eventRepo.MarkProcessed(ctx, record); err != nil {
		s.logger.Error("Failed to mark webhook event", logger.ErrorField(err), logger.StringField("event_id", event.ID))
	}

	return applyErr
}

// applyEvent mutates subscription state for the event types we care about.
// Unknown types are acknowledged and ignored.
func (s *billingService) applyEvent(ctx context.Context, event *stripe.Event) error {
	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return err
		}
		return s.applyCheckoutCompleted(ctx, &sess)
	case "customer.subscription.updated":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return err
		}
		return s.applySubscriptionUpdate(ctx, &sub, false)
	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return err
		}
		return s.applySubscriptionUpdate(ctx, &sub, true)
	default:
		s.logger.Debug("Ignoring webhook event type", logger.StringField("event_type", string(event.Type)))
		return nil
	}
}

// applyCheckoutCompleted activates the pro tier for the user named in the
// checkout session's client reference id.
func (s *billingService) applyCheckoutCompleted(ctx context.Context, sess *stripe.CheckoutSession) error {
	if sess.ClientReferenceID == "" {
		return errors.New("checkout session missing client reference id")
	}

	sub := &entity.Subscription{
		UserID:   sess.ClientReferenceID,
		PlanTier: entity.PlanPro,
		Status:   "active",
	}
	if sess.Customer != nil {
		sub.CustomerID = sess.Customer.ID
	}
	if sess.Subscription != nil {
		sub.SubscriptionID = sess.Subscription.ID
	}

	if err := s.subRepo.Upsert(ctx, sub); err != nil {
		return err
	}

	s.logger.Info("Subscription activated", logger.StringField("user_id", sub.UserID))
	return nil
}

// applySubscriptionUpdate syncs lifecycle changes keyed by customer id. A
// deleted subscription drops the user back to the free tier.
func (s *billingService) applySubscriptionUpdate(ctx context.Context, stripeSub *stripe.Subscription, deleted bool) error {
	if stripeSub.Customer == nil {
		return errors.New("subscription event missing customer")
	}

	sub, err := s.subRepo.FindByCustomerID(ctx, stripeSub.Customer.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Checkout completion has not landed yet. Stripe will retry ordering
		// issues out via subsequent events, so skip rather than fail.
		s.logger.Warn("Subscription event for unknown customer", logger.StringField("customer_id", stripeSub.Customer.ID))
		return nil
	}
	if err != nil {
		return err
	}

	sub.SubscriptionID = stripeSub.ID
	sub.Status = string(stripeSub.Status)
	sub.CancelAtPeriodEnd = stripeSub.CancelAtPeriodEnd
	if stripeSub.CurrentPeriodEnd > 0 {
		periodEnd := time.Unix(stripeSub.CurrentPeriodEnd, 0)
		sub.CurrentPeriodEnd = &periodEnd
	}

	if deleted || stripeSub.Status == stripe.SubscriptionStatusCanceled || stripeSub.Status == stripe.SubscriptionStatusUnpaid {
		sub.PlanTier = entity.PlanFree
	} else if stripeSub.Status == stripe.SubscriptionStatusActive || stripeSub.Status == stripe.SubscriptionStatusTrialing {
		sub.PlanTier = entity.PlanPro
	}

	if err := s.subRepo.Upsert(ctx, sub); err != nil {
		return err
	}

	s.logger.Info("Subscription updated",
		logger.StringField("user_id", sub.UserID),
		logger.StringField("status", sub.Status),
		logger.StringField("plan_tier", string(sub.PlanTier)))
	return nil
}
