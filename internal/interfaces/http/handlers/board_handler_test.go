package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"suburbia-skate.backend/internal/domain/entities"
	domainerrors "suburbia-skate.backend/internal/domain/errors"
)

type boardServiceStub struct {
	getFn        func(ctx context.Context, id uuid.UUID) (*entities.Board, error)
	getByMintFn  func(ctx context.Context, mintAddress string) (*entities.Board, error)
	listFn       func(ctx context.Context, limit, offset int) ([]*entities.Board, int64, error)
	favoriteFn   func(ctx context.Context, userID, boardID uuid.UUID) (*entities.User, error)
	unfavoriteFn func(ctx context.Context, userID, boardID uuid.UUID) (*entities.User, error)
}

func (s boardServiceStub) Get(ctx context.Context, id uuid.UUID) (*entities.Board, error) {
	return s.getFn(ctx, id)
}
func (s boardServiceStub) GetByMint(ctx context.Context, mintAddress string) (*entities.Board, error) {
	return s.getByMintFn(ctx, mintAddress)
}
func (s boardServiceStub) List(ctx context.Context, limit, offset int) ([]*entities.Board, int64, error) {
	return s.listFn(ctx, limit, offset)
}
func (s boardServiceStub) Favorite(ctx context.Context, userID, boardID uuid.UUID) (*entities.User, error) {
	return s.favoriteFn(ctx, userID, boardID)
}
func (s boardServiceStub) Unfavorite(ctx context.Context, userID, boardID uuid.UUID) (*entities.User, error) {
	return s.unfavoriteFn(ctx, userID, boardID)
}

func TestBoardHandler_GetAndList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	boardID := uuid.New()
	mintAddr := "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"

	service := boardServiceStub{
		getFn: func(_ context.Context, id uuid.UUID) (*entities.Board, error) {
			if id == boardID {
				return &entities.Board{ID: id, Name: "Sunset Cruiser", MintAddress: mintAddr}, nil
			}
			return nil, domainerrors.ErrNotFound
		},
		getByMintFn: func(_ context.Context, addr string) (*entities.Board, error) {
			if addr == mintAddr {
				return &entities.Board{ID: boardID, Name: "Sunset Cruiser", MintAddress: addr}, nil
			}
			return nil, domainerrors.ErrNotFound
		},
		listFn: func(_ context.Context, limit, offset int) ([]*entities.Board, int64, error) {
			return []*entities.Board{{ID: boardID, Name: "Sunset Cruiser"}}, 1, nil
		},
	}

	h := NewBoardHandler(service)
	r := gin.New()
	r.GET("/boards", h.List)
	r.GET("/boards/:id", h.Get)
	r.GET("/boards/mint/:mintAddress", h.GetByMint)

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	if w := get("/boards"); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"totalCount":1`) {
		t.Fatalf("list failed: %d %s", w.Code, w.Body.String())
	}

	if w := get("/boards/" + boardID.String()); w.Code != http.StatusOK {
		t.Fatalf("get failed: %d %s", w.Code, w.Body.String())
	}

	if w := get("/boards/not-a-uuid"); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad ID, got %d", w.Code)
	}

	if w := get("/boards/" + uuid.NewString()); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown board, got %d", w.Code)
	}

	if w := get("/boards/mint/" + mintAddr); w.Code != http.StatusOK {
		t.Fatalf("get by mint failed: %d %s", w.Code, w.Body.String())
	}

	if w := get("/boards/mint/unknown"); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown mint, got %d", w.Code)
	}
}

func TestBoardHandler_FavoriteUnfavorite(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	boardID := uuid.New()

	service := boardServiceStub{
		favoriteFn: func(_ context.Context, gotUserID, gotBoardID uuid.UUID) (*entities.User, error) {
			if gotUserID != userID || gotBoardID != boardID {
				return nil, domainerrors.ErrNotFound
			}
			return &entities.User{ID: userID, FavoriteBoards: []uuid.UUID{boardID}}, nil
		},
		unfavoriteFn: func(_ context.Context, gotUserID, gotBoardID uuid.UUID) (*entities.User, error) {
			return &entities.User{ID: userID, FavoriteBoards: []uuid.UUID{}}, nil
		},
	}

	h := NewBoardHandler(service)
	r := gin.New()
	r.POST("/boards/:id/favorite", withUserID(userID), h.Favorite)
	r.DELETE("/boards/:id/favorite", withUserID(userID), h.Unfavorite)

	req := httptest.NewRequest(http.MethodPost, "/boards/"+boardID.String()+"/favorite", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), boardID.String()) {
		t.Fatalf("favorite failed: %d %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/boards/"+uuid.NewString()+"/favorite", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown board, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/boards/"+boardID.String()+"/favorite", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"favoriteBoards":[]`) {
		t.Fatalf("unfavorite failed: %d %s", w.Code, w.Body.String())
	}
}
