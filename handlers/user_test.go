package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/foodcart/backoffice/config"
	"github.com/foodcart/backoffice/middlewares"
	"github.com/foodcart/backoffice/models"
	"github.com/foodcart/backoffice/utils"
)

func TestRefreshTokenKeepsIdentityAndRoles(t *testing.T) {
	config.SecretKey = []byte("test-secret")
	mock := setupMockDB(t)

	userID := uuid.New()
	_, refreshToken, err := utils.GenerateTokens(userID, []string{"manager"})
	if err != nil {
		t.Fatalf("GenerateTokens() error = %v", err)
	}

	// roles come from the database at refresh time, not from the token
	mock.ExpectQuery("SELECT role FROM user_roles").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow("manager"))

	req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: refreshToken})
	rec := httptest.NewRecorder()
	RefreshToken(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	claims := &middlewares.Claims{}
	token, err := jwt.ParseWithClaims(body["access_token"], claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(config.SecretKey), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("refreshed access token does not parse: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("refreshed token UserID = %s, want %s", claims.UserID, userID)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "manager" {
		t.Errorf("refreshed token Roles = %v, want [manager]", claims.Roles)
	}

	// the refreshed token must still open the manager back office
	var reached bool
	gate := middlewares.AuthMiddleware(
		middlewares.RoleBasedMiddleware(models.RoleAdmin, models.RoleManager)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				w.WriteHeader(http.StatusOK)
			})))

	managerReq := httptest.NewRequest(http.MethodGet, "/api/manager/orders", nil)
	managerReq.Header.Set("Authorization", "Bearer "+body["access_token"])
	managerRec := httptest.NewRecorder()
	gate.ServeHTTP(managerRec, managerReq)

	if managerRec.Code != http.StatusOK || !reached {
		t.Errorf("manager gate returned %d with refreshed token, want 200", managerRec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRefreshTokenUserWithoutRoles(t *testing.T) {
	config.SecretKey = []byte("test-secret")
	mock := setupMockDB(t)

	userID := uuid.New()
	_, refreshToken, err := utils.GenerateTokens(userID, []string{"manager"})
	if err != nil {
		t.Fatalf("GenerateTokens() error = %v", err)
	}

	// all roles revoked since the refresh token was issued
	mock.ExpectQuery("SELECT role FROM user_roles").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"role"}))

	req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: refreshToken})
	rec := httptest.NewRecorder()
	RefreshToken(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
