package service

import (
	"context"
	"errors"
	"fmt"

	"gary-picks-engine/internal/api/dto"
	"gary-picks-engine/internal/api/repository"
	"gary-picks-engine/internal/entity"
	"gary-picks-engine/pkg/logger"
	"gary-picks-engine/pkg/utils"

	"gorm.io/gorm"
)

var (
	// ErrDecisionExists is returned when a user already made a call on a pick.
	ErrDecisionExists = errors.New("decision already recorded for this pick")
	// ErrPickLocked is returned when the game has already started.
	ErrPickLocked = errors.New("pick is locked, game already started")
	// ErrInvalidDecision is returned for a decision value other than bet or fade.
	ErrInvalidDecision = errors.New("decision must be bet or fade")
)

// DecisionService defines the interface for recording and reading bet/fade calls.
type DecisionService interface {
	CreateDecision(ctx context.Context, req *dto.CreateDecisionRequest) (*dto.DecisionResponse, error)
	GetUserDecisions(ctx context.Context, userID string, limit int) ([]*dto.DecisionResponse, error)
}

// NewDecisionService creates a new decision service.
func NewDecisionService(decisionRepo repository.UserDecisionRepository, pickRepo repository.PickRepository, logger *logger.Logger) DecisionService {
	return &decisionService{
		decisionRepo: decisionRepo,
		pickRepo:     pickRepo,
		logger:       logger,
	}
}

type decisionService struct {
	decisionRepo repository.UserDecisionRepository
	pickRepo     repository.PickRepository
	logger       *logger.Logger
}

// CreateDecision records a bet or fade call on a pick. Decisions are immutable
// and rejected once the game has started.
func (s *decisionService) CreateDecision(ctx context.Context, req *dto.CreateDecisionRequest) (*dto.DecisionResponse, error) {
	decisionType := entity.DecisionType(req.Decision)
	if decisionType != entity.DecisionBet && decisionType != entity.DecisionFade {
		return nil, ErrInvalidDecision
	}

	pick, err := s.pickRepo.FindByID(ctx, req.PickID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("pick %d not found", req.PickID)
		}
		return nil, err
	}

	if !utils.TimeNowET().Before(pick.GameTime) {
		return nil, ErrPickLocked
	}

	decision := &entity.UserDecision{
		UserID:   req.UserID,
		PickID:   req.PickID,
		Decision: decisionType,
		Outcome:  entity.PickStatusPending,
	}

	if err := s.decisionRepo.Create(ctx, decision); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDecisionExists
		}
		s.logger.Error("Failed to create decision", logger.ErrorField(err), logger.Field("pick_id", req.PickID))
		return nil, err
	}

	s.logger.Info("Decision recorded",
		logger.StringField("user_id", req.UserID),
		logger.Field("pick_id", req.PickID),
		logger.StringField("decision", req.Decision))

	resp := mapToDecisionResponse(decision)
	resp.Pick = mapToPickResponse(pick)
	return resp, nil
}

// GetUserDecisions retrieves a user's decision history, newest first.
func (s *decisionService) GetUserDecisions(ctx context.Context, userID string, limit int) ([]*dto.DecisionResponse, error) {
	decisions, err := s.decisionRepo.FindByUser(ctx, userID, limit)
	if err != nil {
		s.logger.Error("Failed to get user decisions", logger.ErrorField(err), logger.StringField("user_id", userID))
		return nil, err
	}

	responses := make([]*dto.DecisionResponse, 0, len(decisions))
	for i := range decisions {
		resp := mapToDecisionResponse(&decisions[i])
		if decisions[i].Pick.ID != 0 {
			resp.Pick = mapToPickResponse(&decisions[i].Pick)
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func mapToDecisionResponse(decision *entity.UserDecision) *dto.DecisionResponse {
	return &dto.DecisionResponse{
		ID:        decision.ID,
		UserID:    decision.UserID,
		PickID:    decision.PickID,
		Decision:  string(decision.Decision),
		Outcome:   string(decision.Outcome),
		SettledAt: decision.SettledAt,
		CreatedAt: decision.CreatedAt,
	}
}
