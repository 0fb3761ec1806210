package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/cajafund/cajafund/internal/adapter/http/dto"
	"github.com/cajafund/cajafund/internal/domain"
	"github.com/cajafund/cajafund/internal/usecase"
)

type memberServiceStub struct {
	createFn     func(ctx context.Context, input usecase.CreateMemberInput) (*domain.Member, error)
	getFn        func(ctx context.Context, id string) (*domain.Member, error)
	listFn       func(ctx context.Context, input usecase.ListMembersInput) ([]*domain.Member, error)
	deactivateFn func(ctx context.Context, id string) (*domain.Member, error)
}

func (s *memberServiceStub) CreateMember(ctx context.Context, input usecase.CreateMemberInput) (*domain.Member, error) {
	return s.createFn(ctx, input)
}

func (s *memberServiceStub) GetMember(ctx context.Context, id string) (*domain.Member, error) {
	return s.getFn(ctx, id)
}

func (s *memberServiceStub) ListMembers(ctx context.Context, input usecase.ListMembersInput) ([]*domain.Member, error) {
	return s.listFn(ctx, input)
}

func (s *memberServiceStub) DeactivateMember(ctx context.Context, id string) (*domain.Member, error) {
	return s.deactivateFn(ctx, id)
}

func TestMemberHandler_Create_Success(t *testing.T) {
	member := &domain.Member{ID: "m-1", NationalID: "123456789", Status: domain.MemberActive}

	var captured usecase.CreateMemberInput
	h := NewMemberHandler(&memberServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateMemberInput) (*domain.Member, error) {
			captured = input
			return member, nil
		},
	})

	body, _ := json.Marshal(dto.CreateMemberRequest{
		NationalID: "123456789",
		FirstName:  "Ana",
		LastName:   "Reyes",
	})

	req := httptest.NewRequest(http.MethodPost, "/members", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.NationalID != "123456789" || captured.FirstName != "Ana" {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.MemberResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "m-1" {
		t.Fatalf("expected member ID m-1, got %s", resp.ID)
	}
}

func TestMemberHandler_Create_InvalidJSON(t *testing.T) {
	h := NewMemberHandler(&memberServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateMemberInput) (*domain.Member, error) {
			t.Fatal("CreateMember should not be called for invalid payload")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/members", bytes.NewBufferString("{invalid json"))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestMemberHandler_Create_Duplicate(t *testing.T) {
	h := NewMemberHandler(&memberServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateMemberInput) (*domain.Member, error) {
			return nil, domain.ErrDuplicateMember
		},
	})

	body, _ := json.Marshal(dto.CreateMemberRequest{NationalID: "123456789"})
	req := httptest.NewRequest(http.MethodPost, "/members", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestMemberHandler_Get_NotFound(t *testing.T) {
	h := NewMemberHandler(&memberServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Member, error) {
			return nil, domain.ErrMemberNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/members/m-404", nil)
	req = setChiURLParam(req, "id", "m-404")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestMemberHandler_List(t *testing.T) {
	h := NewMemberHandler(&memberServiceStub{
		listFn: func(ctx context.Context, input usecase.ListMembersInput) ([]*domain.Member, error) {
			if !input.ActiveOnly {
				t.Fatalf("expected active-only listing by default, got %+v", input)
			}
			if input.Limit != 5 || input.Offset != 2 {
				t.Fatalf("expected limit=5 offset=2, got %+v", input)
			}
			return []*domain.Member{{ID: "m-1"}, {ID: "m-2"}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/members?limit=5&offset=2", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListMembersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(resp.Members))
	}
}

func TestMemberHandler_List_IncludeInactive(t *testing.T) {
	h := NewMemberHandler(&memberServiceStub{
		listFn: func(ctx context.Context, input usecase.ListMembersInput) ([]*domain.Member, error) {
			if input.ActiveOnly {
				t.Fatalf("expected inactive members to be included")
			}
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/members?include_inactive=true", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestMemberHandler_Deactivate_OpenLoans(t *testing.T) {
	h := NewMemberHandler(&memberServiceStub{
		deactivateFn: func(ctx context.Context, id string) (*domain.Member, error) {
			return nil, domain.ErrMemberHasOpenLoans
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/members/m-1", nil)
	req = setChiURLParam(req, "id", "m-1")
	rec := httptest.NewRecorder()

	h.Deactivate(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{key},
			Values: []string{value},
		},
	}))
}
