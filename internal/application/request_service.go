package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	itemDomain "github.com/shareit-platform/service-booking/internal/domain/item"
	requestDomain "github.com/shareit-platform/service-booking/internal/domain/request"
	userDomain "github.com/shareit-platform/service-booking/internal/domain/user"
	"github.com/shareit-platform/service-booking/internal/platform/clock"
	"github.com/shareit-platform/service-booking/internal/platform/domain"
)

// CreateRequestRequest is the request DTO for asking for an item.
type CreateRequestRequest struct {
	Description string `json:"description"`
}

// RequestAnswerDTO is an item listed in answer to a request.
type RequestAnswerDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	OwnerID     uuid.UUID `json:"owner_id"`
	RequestID   uuid.UUID `json:"request_id"`
}

// ItemRequestDTO is the response representation of an item request and its answers.
type ItemRequestDTO struct {
	ID          uuid.UUID          `json:"id"`
	Description string             `json:"description"`
	RequesterID uuid.UUID          `json:"requester_id"`
	Created     time.Time          `json:"created"`
	Items       []RequestAnswerDTO `json:"items"`
}

// RequestService handles item requests and the items listed in answer to them.
type RequestService struct {
	requests requestDomain.ItemRequestRepository
	items    itemDomain.ItemRepository
	users    userDomain.UserRepository
	clock    clock.Clock
	logger   *zap.Logger
}

// NewRequestService creates a new RequestService.
func NewRequestService(
	requests requestDomain.ItemRequestRepository,
	items itemDomain.ItemRepository,
	users userDomain.UserRepository,
	clk clock.Clock,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		requests: requests,
		items:    items,
		users:    users,
		clock:    clk,
		logger:   logger,
	}
}

// CreateRequest records a new item request. It has no answers yet.
func (s *RequestService) CreateRequest(ctx context.Context, requesterID uuid.UUID, req CreateRequestRequest) (*ItemRequestDTO, error) {
	if err := requireUser(ctx, s.users, requesterID); err != nil {
		return nil, err
	}

	r, err := requestDomain.NewItemRequest(requesterID, req.Description, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.requests.Save(ctx, r); err != nil {
		s.logger.Error("failed to create item request", zap.Error(err))
		return nil, err
	}

	s.logger.Info("item request created",
		zap.String("request_id", r.ID().String()),
		zap.String("user_id", requesterID.String()),
	)
	result := toItemRequestDTO(r, nil)
	return &result, nil
}

// ListOwn returns all of the caller's requests, newest first.
func (s *RequestService) ListOwn(ctx context.Context, requesterID uuid.UUID) ([]ItemRequestDTO, error) {
	if err := requireUser(ctx, s.users, requesterID); err != nil {
		return nil, err
	}

	requests, err := s.requests.FindByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.withAnswers(ctx, requests)
}

// ListOthers returns a page of other users' requests, newest first.
func (s *RequestService) ListOthers(ctx context.Context, callerID uuid.UUID, from, size int) (*domain.PaginatedResult[ItemRequestDTO], error) {
	if err := requireUser(ctx, s.users, callerID); err != nil {
		return nil, err
	}
	page, err := domain.NewPageRequest(from, size)
	if err != nil {
		return nil, err
	}

	requests, total, err := s.requests.FindOthers(ctx, callerID, page)
	if err != nil {
		return nil, err
	}
	dtos, err := s.withAnswers(ctx, requests)
	if err != nil {
		return nil, err
	}

	result := domain.NewPaginatedResult(dtos, total, page)
	return &result, nil
}

// GetRequest returns one request with its answers. Any known user may view it.
func (s *RequestService) GetRequest(ctx context.Context, callerID, requestID uuid.UUID) (*ItemRequestDTO, error) {
	if err := requireUser(ctx, s.users, callerID); err != nil {
		return nil, err
	}

	r, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	dtos, err := s.withAnswers(ctx, []*requestDomain.ItemRequest{r})
	if err != nil {
		return nil, err
	}
	return &dtos[0], nil
}

// withAnswers loads the answering items of all requests in one query.
func (s *RequestService) withAnswers(ctx context.Context, requests []*requestDomain.ItemRequest) ([]ItemRequestDTO, error) {
	if len(requests) == 0 {
		return []ItemRequestDTO{}, nil
	}

	ids := make([]uuid.UUID, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.ID())
	}
	items, err := s.items.FindByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	answers := itemDomain.GroupByRequest(items)

	dtos := make([]ItemRequestDTO, 0, len(requests))
	for _, r := range requests {
		dtos = append(dtos, toItemRequestDTO(r, answers[r.ID()]))
	}
	return dtos, nil
}

func toItemRequestDTO(r *requestDomain.ItemRequest, answers []*itemDomain.Item) ItemRequestDTO {
	items := make([]RequestAnswerDTO, 0, len(answers))
	for _, it := range answers {
		items = append(items, RequestAnswerDTO{
			ID:          it.ID(),
			Name:        it.Name(),
			Description: it.Description(),
			Available:   it.Available(),
			OwnerID:     it.OwnerID(),
			RequestID:   r.ID(),
		})
	}
	return ItemRequestDTO{
		ID:          r.ID(),
		Description: r.Description(),
		RequesterID: r.RequesterID(),
		Created:     r.CreatedAt(),
		Items:       items,
	}
}
