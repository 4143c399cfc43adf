package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"storefront-backend/internal/domains/identity/model"
	"storefront-backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
}

// UserRecord is one entry of the users file. Seed files may carry a plain
// password, which is hashed on load and never kept.
type UserRecord struct {
	model.Identity
	Password     string `json:"password,omitempty"`
	PasswordHash string `json:"password_hash,omitempty"`
}

// JSONFileRepository serves accounts loaded from a JSON file. It is read-only.
type JSONFileRepository struct {
	byEmail map[string]*model.User
	byID    map[int64]*model.User
}

// LoadJSONFile reads the users file at path
func LoadJSONFile(path string, cost int) (*JSONFileRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read users %s: %w", path, err)
	}

	var records []UserRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse users %s: %w", path, err)
	}
	return NewRepository(records, cost)
}

// NewRepository indexes records by normalized email and id
func NewRepository(records []UserRecord, cost int) (*JSONFileRepository, error) {
	r := &JSONFileRepository{
		byEmail: make(map[string]*model.User, len(records)),
		byID:    make(map[int64]*model.User, len(records)),
	}

	for _, rec := range records {
		email := strings.ToLower(strings.TrimSpace(rec.Email))
		if rec.ID <= 0 || email == "" {
			logger.Warn("skipping user without id or email", map[string]interface{}{"id": rec.ID})
			continue
		}
		if _, dup := r.byEmail[email]; dup {
			logger.Warn("skipping duplicate user email", map[string]interface{}{"id": rec.ID})
			continue
		}

		hash := rec.PasswordHash
		if hash == "" && rec.Password != "" {
			b, err := bcrypt.GenerateFromPassword([]byte(rec.Password), cost)
			if err != nil {
				return nil, fmt.Errorf("hash password of user %d: %w", rec.ID, err)
			}
			hash = string(b)
		}
		if hash == "" {
			logger.Warn("skipping user without password", map[string]interface{}{"id": rec.ID})
			continue
		}

		user := &model.User{Identity: rec.Identity, PasswordHash: hash}
		user.Email = email
		if user.Role == "" {
			user.Role = model.RoleCustomer
		}
		r.byEmail[email] = user
		r.byID[user.ID] = user
	}
	return r, nil
}

func (r *JSONFileRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	u, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (r *JSONFileRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (r *JSONFileRepository) Len() int {
	return len(r.byID)
}
