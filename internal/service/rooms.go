package service

import (
	"context"
	"time"

	"quickstay/internal/model"
)

// RoomStore is the catalog persistence capability consumed by RoomService
type RoomStore interface {
	ListRooms(ctx context.Context, amenities []string) ([]model.Room, error)
	GetRoomByID(ctx context.Context, id string) (*model.Room, error)
}

// RoomService handles room catalog business logic
type RoomService struct {
	store RoomStore
}

// NewRoomService creates a new room service
func NewRoomService(store RoomStore) *RoomService {
	return &RoomService{store: store}
}

// Query lists rooms matching the request. Amenity restrictions are pushed
// to the store; type/price filtering and ordering go through ApplyQuery so
// the HTTP endpoint and the catalog snapshot share one set of semantics.
func (s *RoomService) Query(ctx context.Context, req *model.RoomsRequest) (*model.RoomsResponse, error) {
	startTime := time.Now()

	catalog, err := s.store.ListRooms(ctx, req.Amenities)
	if err != nil {
		return nil, err
	}

	filtered := ApplyQuery(catalog, req.Filters)
	total := len(filtered)

	// Paginate after filtering so Total reflects the whole result set
	offset := req.Offset
	if offset > total {
		offset = total
	}
	end := offset + req.Limit
	if req.Limit <= 0 || end > total {
		end = total
	}
	page := filtered[offset:end]

	pageSize := req.Limit
	if pageSize <= 0 {
		pageSize = total
	}
	pageNum := 1
	if pageSize > 0 {
		pageNum = offset/pageSize + 1
	}

	return &model.RoomsResponse{
		Results:  page,
		Total:    total,
		Page:     pageNum,
		PageSize: pageSize,
		HasMore:  end < total,
		Took:     time.Since(startTime).Milliseconds(),
	}, nil
}

// GetRoom retrieves a single room by ID
func (s *RoomService) GetRoom(ctx context.Context, id string) (*model.Room, error) {
	return s.store.GetRoomByID(ctx, id)
}
