package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quickstay/internal/model"
	"quickstay/internal/service"

	"github.com/gin-gonic/gin"
)

// staticRoomStore serves a fixed catalog
type staticRoomStore struct {
	rooms []model.Room
}

func (s *staticRoomStore) ListRooms(_ context.Context, _ []string) ([]model.Room, error) {
	return s.rooms, nil
}

func (s *staticRoomStore) GetRoomByID(_ context.Context, id string) (*model.Room, error) {
	for _, r := range s.rooms {
		if r.ID == id {
			copied := r
			return &copied, nil
		}
	}
	return nil, nil
}

func newRoomRouter(rooms []model.Room) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewRoomHandler(service.NewRoomService(&staticRoomStore{rooms: rooms}), 20, 100)
	router := gin.New()
	router.GET("/api/v1/rooms", h.List)
	router.GET("/api/v1/rooms/:id", h.Get)
	return router
}

func catalogFixture() []model.Room {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return []model.Room{
		{ID: "r1", RoomType: model.RoomTypeSingleBed, PricePerNight: 400, CreatedAt: base},
		{ID: "r2", RoomType: model.RoomTypeDoubleBed, PricePerNight: 900, CreatedAt: base.Add(time.Hour)},
		{ID: "r3", RoomType: model.RoomTypeLuxuryRoom, PricePerNight: 2500, CreatedAt: base.Add(2 * time.Hour)},
	}
}

func listRooms(t *testing.T, router *gin.Engine, query string) model.RoomsResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms"+query, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp model.RoomsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Decode response: %v", err)
	}
	return resp
}

func TestRoomHandler_ListUnfiltered(t *testing.T) {
	router := newRoomRouter(catalogFixture())

	resp := listRooms(t, router, "")

	if resp.Total != 3 || len(resp.Results) != 3 {
		t.Fatalf("Expected full catalog, got total=%d results=%d", resp.Total, len(resp.Results))
	}
	if resp.Results[0].ID != "r1" {
		t.Errorf("Expected catalog order, got %s first", resp.Results[0].ID)
	}
}

func TestRoomHandler_ListFilteredAndSorted(t *testing.T) {
	router := newRoomRouter(catalogFixture())

	resp := listRooms(t, router, "?room_types=Double+Bed,Luxury+Room&sort=Price+High+to+Low")

	if len(resp.Results) != 2 {
		t.Fatalf("Expected 2 rooms, got %d", len(resp.Results))
	}
	if resp.Results[0].ID != "r3" || resp.Results[1].ID != "r2" {
		t.Errorf("Expected r3 then r2, got %s then %s", resp.Results[0].ID, resp.Results[1].ID)
	}
}

func TestRoomHandler_ListPriceRange(t *testing.T) {
	router := newRoomRouter(catalogFixture())

	resp := listRooms(t, router, "?price_ranges=0+to+500&price_ranges=2000+to+3000")

	if len(resp.Results) != 2 {
		t.Fatalf("Expected 2 rooms, got %d", len(resp.Results))
	}
	if resp.Results[0].ID != "r1" || resp.Results[1].ID != "r3" {
		t.Errorf("Expected r1 and r3, got %v", []string{resp.Results[0].ID, resp.Results[1].ID})
	}
}

func TestRoomHandler_Pagination(t *testing.T) {
	router := newRoomRouter(catalogFixture())

	resp := listRooms(t, router, "?limit=2")

	if len(resp.Results) != 2 || resp.Total != 3 {
		t.Fatalf("Expected 2 of 3, got %d of %d", len(resp.Results), resp.Total)
	}
	if !resp.HasMore {
		t.Error("Expected HasMore for a truncated page")
	}

	rest := listRooms(t, router, "?limit=2&offset=2")
	if len(rest.Results) != 1 || rest.HasMore {
		t.Errorf("Expected final page of 1, got %d (has_more=%v)", len(rest.Results), rest.HasMore)
	}
}

func TestRoomHandler_GetRoom(t *testing.T) {
	router := newRoomRouter(catalogFixture())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms/r2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/rooms/missing", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown room, got %d", w.Code)
	}
}
