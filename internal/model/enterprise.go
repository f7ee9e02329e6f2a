package model

import (
	"time"

	"github.com/google/uuid"
)

// Enterprise is the tenant that owns tests, questions and sessions.
type Enterprise struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminAccount is an enterprise administrator login.
type AdminAccount struct {
	ID           int64     `json:"id"`
	EnterpriseID uuid.UUID `json:"enterprise_id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterEnterpriseRequest is the payload for registering a new enterprise.
type RegisterEnterpriseRequest struct {
	Name          string `json:"name" binding:"required,min=2,max=255"`
	AdminUsername string `json:"admin_username" binding:"required,min=3,max=64"`
	AdminPassword string `json:"admin_password" binding:"required,min=8,max=128"`
}

// AdminLoginRequest is the payload for an administrator login.
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
