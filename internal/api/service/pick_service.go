package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gary-picks-engine/internal/api/dto"
	"gary-picks-engine/internal/api/repository"
	"gary-picks-engine/internal/entity"
	"gary-picks-engine/pkg/logger"
	"gary-picks-engine/pkg/utils"
)

// ErrInvalidPickStatus means the requested status is not a settlement state.
var ErrInvalidPickStatus = errors.New("invalid pick status")

// PickService defines the read interface for generated picks.
type PickService interface {
	GetTodayPicks(ctx context.Context, sport string) ([]*dto.PickResponse, error)
	GetPicksByStatus(ctx context.Context, status string, limit int) ([]*dto.PickResponse, error)
	GetPickByID(ctx context.Context, id uint) (*dto.PickResponse, error)
	GetTodayPropPicks(ctx context.Context, sport string) ([]*dto.PropPickResponse, error)
	GetPropPickByID(ctx context.Context, id uint) (*dto.PropPickResponse, error)
}

// NewPickService creates a new pick service.
func NewPickService(pickRepo repository.PickRepository, logger *logger.Logger) PickService {
	return &pickService{
		pickRepo: pickRepo,
		logger:   logger,
	}
}

type pickService struct {
	pickRepo repository.PickRepository
	logger   *logger.Logger
}

// GetTodayPicks retrieves picks for games on today's Eastern-time slate.
func (s *pickService) GetTodayPicks(ctx context.Context, sport string) ([]*dto.PickResponse, error) {
	from, to := todayBounds()
	picks, err := s.pickRepo.FindByDate(ctx, from, to, sport)
	if err != nil {
		s.logger.Error("Failed to get today's picks", logger.ErrorField(err))
		return nil, err
	}

	responses := make([]*dto.PickResponse, 0, len(picks))
	for i := range picks {
		responses = append(responses, mapToPickResponse(&picks[i]))
	}
	return responses, nil
}

// GetPicksByStatus retrieves picks in one settlement state.
func (s *pickService) GetPicksByStatus(ctx context.Context, status string, limit int) ([]*dto.PickResponse, error) {
	parsed, ok := parsePickStatus(status)
	if !ok {
		return nil, ErrInvalidPickStatus
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	picks, err := s.pickRepo.FindByStatus(ctx, parsed, limit)
	if err != nil {
		s.logger.Error("Failed to get picks by status", logger.ErrorField(err), logger.StringField("status", status))
		return nil, err
	}

	responses := make([]*dto.PickResponse, 0, len(picks))
	for i := range picks {
		responses = append(responses, mapToPickResponse(&picks[i]))
	}
	return responses, nil
}

// GetPickByID retrieves a single pick.
func (s *pickService) GetPickByID(ctx context.Context, id uint) (*dto.PickResponse, error) {
	pick, err := s.pickRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapToPickResponse(pick), nil
}

// GetTodayPropPicks retrieves prop picks for today's Eastern-time slate.
func (s *pickService) GetTodayPropPicks(ctx context.Context, sport string) ([]*dto.PropPickResponse, error) {
	from, to := todayBounds()
	props, err := s.pickRepo.FindPropsByDate(ctx, from, to, sport)
	if err != nil {
		s.logger.Error("Failed to get today's prop picks", logger.ErrorField(err))
		return nil, err
	}

	responses := make([]*dto.PropPickResponse, 0, len(props))
	for i := range props {
		responses = append(responses, mapToPropPickResponse(&props[i]))
	}
	return responses, nil
}

// GetPropPickByID retrieves a single prop pick.
func (s *pickService) GetPropPickByID(ctx context.Context, id uint) (*dto.PropPickResponse, error) {
	prop, err := s.pickRepo.FindPropByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapToPropPickResponse(prop), nil
}

func parsePickStatus(status string) (entity.PickStatus, bool) {
	parsed := entity.PickStatus(strings.ToLower(status))
	switch parsed {
	case entity.PickStatusPending, entity.PickStatusWon, entity.PickStatusLost,
		entity.PickStatusPush, entity.PickStatusPostponed:
		return parsed, true
	}
	return "", false
}

func todayBounds() (time.Time, time.Time) {
	now := utils.TimeNowET()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return from, from.Add(24 * time.Hour)
}

func mapToPickResponse(pick *entity.Pick) *dto.PickResponse {
	return &dto.PickResponse{
		ID:              pick.ID,
		Sport:           pick.Sport,
		League:          pick.League,
		HomeTeam:        pick.HomeTeam,
		AwayTeam:        pick.AwayTeam,
		PickTeam:        pick.PickTeam,
		BetType:         string(pick.BetType),
		Spread:          pick.Spread,
		OddsAmerican:    pick.OddsAmerican,
		ConfidenceScore: pick.ConfidenceScore,
		Rationale:       pick.Rationale,
		Status:          string(pick.Status),
		GameTime:        pick.GameTime,
		CreatedAt:       pick.CreatedAt,
	}
}

func mapToPropPickResponse(prop *entity.PropPick) *dto.PropPickResponse {
	return &dto.PropPickResponse{
		ID:              prop.ID,
		Sport:           prop.Sport,
		PlayerName:      prop.PlayerName,
		Team:            prop.Team,
		Opponent:        prop.Opponent,
		StatType:        prop.StatType,
		Line:            prop.Line,
		Side:            string(prop.Side),
		OddsAmerican:    prop.OddsAmerican,
		ConfidenceScore: prop.ConfidenceScore,
		Rationale:       prop.Rationale,
		Status:          string(prop.Status),
		ActualValue:     prop.ActualValue,
		GameTime:        prop.GameTime,
		CreatedAt:       prop.CreatedAt,
	}
}
