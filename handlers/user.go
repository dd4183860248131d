package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/foodcart/backoffice/config"
	"github.com/foodcart/backoffice/database"
	"github.com/foodcart/backoffice/database/dbhelper"
	"github.com/foodcart/backoffice/models"
	"github.com/foodcart/backoffice/utils"
)

func Register(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "all fields are required", http.StatusBadRequest)
		return
	}

	if len(req.Password) < 6 {
		http.Error(w, "password must be at least 6 characters", http.StatusBadRequest)
		return
	}

	exists, err := dbhelper.IsUserExists(req.Email)
	if err != nil {
		http.Error(w, "failed to check user existence", http.StatusInternalServerError)
		return
	}
	if exists {
		http.Error(w, "user already exists", http.StatusBadRequest)
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		http.Error(w, "failed to hash password", http.StatusInternalServerError)
		return
	}

	var userID uuid.UUID
	var accToken, refToken string
	txErr := database.Tx(func(tx *sql.Tx) error { // user row and role row commit together or not at all
		userID, err = dbhelper.CreateUser(tx, req.Name, req.Email, hashedPassword)
		if err != nil {
			logrus.Printf("failed to create user, error: %v", err)
			return err
		}

		err = dbhelper.AssignRole(tx, userID, models.RoleUser)
		if err != nil {
			logrus.Printf("failed to assign role to the user, error: %v", err)
			return err
		}

		accToken, refToken, err = utils.GenerateTokens(userID, []string{string(models.RoleUser)})
		if err != nil {
			logrus.Printf("failed to generate token, error: %v", err)
			return err
		}

		return nil
	})
	if txErr != nil {
		http.Error(w, "failed to register user", http.StatusInternalServerError)
		return
	}

	setRefreshCookie(w, refToken, time.Now().Add(7*24*time.Hour))
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":      userID,
		"email":        req.Email,
		"name":         req.Name,
		"access_token": accToken,
	})
}

func Login(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		http.Error(w, "email and password required", http.StatusBadRequest)
		return
	}

	userID, name, err := dbhelper.GetUserByPassword(req.Email, req.Password)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	roles, err := dbhelper.GetUserRoles(userID)
	if err != nil {
		http.Error(w, "could not fetch roles", http.StatusInternalServerError)
		return
	}
	if len(roles) == 0 {
		http.Error(w, "no roles assigned", http.StatusForbidden)
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(userID, roles)
	if err != nil {
		http.Error(w, "failed to generate tokens", http.StatusInternalServerError)
		return
	}

	setRefreshCookie(w, refreshToken, time.Now().Add(7*24*time.Hour))
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":      userID,
		"name":         name,
		"email":        req.Email,
		"access_token": accessToken,
		"roles":        roles,
	})
}

func RefreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		http.Error(w, "refresh token missing", http.StatusUnauthorized)
		return
	}

	// Refresh tokens only carry the user id in Subject; roles are
	// re-read from the database so role changes take effect on the
	// next refresh instead of living on in old tokens.
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(config.SecretKey), nil
	})
	if err != nil || !token.Valid {
		http.Error(w, "invalid or expired refresh token", http.StatusUnauthorized)
		return
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		http.Error(w, "invalid or expired refresh token", http.StatusUnauthorized)
		return
	}

	roles, err := dbhelper.GetUserRoles(userID)
	if err != nil {
		http.Error(w, "could not fetch roles", http.StatusInternalServerError)
		return
	}
	if len(roles) == 0 {
		http.Error(w, "no roles assigned", http.StatusForbidden)
		return
	}

	newAccessToken, newRefreshToken, err := utils.GenerateTokens(userID, roles)
	if err != nil {
		http.Error(w, "failed to generate token", http.StatusInternalServerError)
		return
	}

	setRefreshCookie(w, newRefreshToken, time.Now().Add(7*24*time.Hour))
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"access_token": newAccessToken,
	})
}

func Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    "",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "successfully logged out",
	})
}

// PromoteManager grants an existing user the manager role, which gates
// the order-listing view.
func PromoteManager(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Email string `json:"email"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	userID, err := dbhelper.GetUserByEmail(req.Email)
	if err == sql.ErrNoRows {
		http.Error(w, "user does not exist", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	isManager, err := dbhelper.IsManager(userID)
	if err != nil {
		http.Error(w, "role check failed", http.StatusInternalServerError)
		return
	}
	if isManager {
		http.Error(w, "user is already a manager", http.StatusConflict)
		return
	}

	if err := dbhelper.MakeManager(userID); err != nil {
		http.Error(w, "failed to assign manager role", http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "manager role granted",
		"user_id": userID.String(),
	})
}

func ListManagers(w http.ResponseWriter, r *http.Request) {
	managers, err := dbhelper.ListManagers()
	if err != nil {
		http.Error(w, "failed to query managers", http.StatusInternalServerError)
		return
	}
	utils.RespondJSON(w, http.StatusOK, managers)
}

func setRefreshCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		Expires:  expires,
	})
}
