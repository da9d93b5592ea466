package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/gfvrho/go-report-backend/internal/domain"
	"github.com/gfvrho/go-report-backend/internal/services"
)

type stubUserService struct {
	getErr    error
	updateErr error
	user      *domain.User
	lastUpd   services.ProfileUpdate
}

func (s *stubUserService) Get(_ context.Context, _ string) (*domain.User, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.user, nil
}

func (s *stubUserService) UpdateProfile(_ context.Context, _ string, upd services.ProfileUpdate) (*domain.User, error) {
	s.lastUpd = upd
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return s.user, nil
}

func newUserRouter(svc UserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("userID", "u-1") })
	h := New(nil, nil, svc)
	r.GET("/user/me", h.GetProfile)
	r.PUT("/user/me", h.UpdateProfile)
	return r
}

func TestGetProfile(t *testing.T) {
	svc := &stubUserService{user: &domain.User{ID: "u-1", Email: "a@b.com", Username: "alice", PasswordHash: "hash"}}
	r := newUserRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/user/me", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["email"] != "a@b.com" {
		t.Fatalf("body = %v", body)
	}
	if _, leaked := body["password_hash"]; leaked {
		t.Fatal("password hash leaked in response")
	}
}

func TestUpdateProfilePassesFields(t *testing.T) {
	svc := &stubUserService{user: &domain.User{ID: "u-1", Username: "alice2"}}
	r := newUserRouter(svc)

	w := doJSON(t, r, http.MethodPut, "/user/me", gin.H{"username": "alice2"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	if svc.lastUpd.Username == nil || *svc.lastUpd.Username != "alice2" {
		t.Fatalf("update = %+v", svc.lastUpd)
	}
	if svc.lastUpd.Email != nil || svc.lastUpd.Password != nil {
		t.Fatal("unset fields should stay nil")
	}
}

func TestUpdateProfileValidation(t *testing.T) {
	r := newUserRouter(&stubUserService{})

	if w := doJSON(t, r, http.MethodPut, "/user/me", gin.H{"email": "nope"}); w.Code != http.StatusBadRequest {
		t.Fatalf("bad email: status = %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodPut, "/user/me", gin.H{"password": "short"}); w.Code != http.StatusBadRequest {
		t.Fatalf("short password: status = %d", w.Code)
	}
}

func TestUpdateProfileConflict(t *testing.T) {
	r := newUserRouter(&stubUserService{updateErr: services.ErrDuplicateUser})

	w := doJSON(t, r, http.MethodPut, "/user/me", gin.H{"username": "taken"})
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d", w.Code)
	}
}
