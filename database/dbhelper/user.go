package dbhelper

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/foodcart/backoffice/database"
	"github.com/foodcart/backoffice/models"
)

func CreateUser(tx *sql.Tx, name, email, hashedPassword string) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(`
		INSERT INTO users (name, email, password, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		name, email, hashedPassword, uuid.Nil).Scan(&id)
	return id, err
}

func IsUserExists(email string) (bool, error) {
	var count int
	err := database.FoodCart.QueryRow(`SELECT COUNT(*) FROM users WHERE LOWER(email) = LOWER($1)`, email).Scan(&count)
	return count > 0, err
}

func AssignRole(tx *sql.Tx, userID uuid.UUID, role models.Role) error {
	_, err := tx.Exec(`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`, userID, role)
	return err
}

func GetUserByPassword(email, password string) (uuid.UUID, string, error) {
	var id uuid.UUID
	var name, hashedPassword string

	err := database.FoodCart.QueryRow(`
		SELECT id, name, password FROM users
		WHERE LOWER(email) = LOWER($1) AND archived_at IS NULL`, email).
		Scan(&id, &name, &hashedPassword)
	if err != nil {
		return uuid.Nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) != nil {
		return uuid.Nil, "", fmt.Errorf("incorrect password")
	}

	return id, name, nil
}

func GetUserByEmail(email string) (uuid.UUID, error) {
	var userID uuid.UUID
	err := database.FoodCart.QueryRow(`
		SELECT id FROM users
		WHERE LOWER(email) = LOWER($1) AND archived_at IS NULL`, email).
		Scan(&userID)
	if err != nil {
		return uuid.Nil, err
	}
	return userID, nil
}

func IsManager(id uuid.UUID) (bool, error) {
	var roleExists bool
	err := database.FoodCart.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM user_roles
			WHERE user_id = $1 AND role = 'manager' AND archived_at IS NULL
		)`, id).Scan(&roleExists)
	if err != nil {
		return false, err
	}
	return roleExists, nil
}

func GetUserRoles(userID uuid.UUID) ([]string, error) {
	rows, err := database.FoodCart.Query(`
		SELECT role FROM user_roles
		WHERE user_id = $1 AND archived_at IS NULL`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func ListManagers() ([]models.User, error) {
	rows, err := database.FoodCart.Query(`
		SELECT u.id, u.name, u.email, u.created_at
		FROM users u
		JOIN user_roles ur ON u.id = ur.user_id
		WHERE ur.role = 'manager' AND u.archived_at IS NULL AND ur.archived_at IS NULL
		ORDER BY u.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var managers []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt); err != nil {
			return nil, err
		}
		managers = append(managers, u)
	}
	return managers, rows.Err()
}

func MakeManager(id uuid.UUID) error {
	_, err := database.FoodCart.Exec(`
		INSERT INTO user_roles (user_id, role)
		VALUES ($1, 'manager')
		ON CONFLICT (user_id, role) DO NOTHING`, id)
	return err
}
