package handler

import (
	"encoding/json"
	"time"

	"github.com/crusher-sewa/materials-api/internal/core/domain"
)

// --- Shared response types ---

// userResponse is the public shape of an account. The password hash has no
// field here, so it cannot leak.
type userResponse struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
	IsActive bool        `json:"isActive"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}

type materialResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	RatePerCuMetre float64   `json:"ratePerCuMetre"`
	Unit           string    `json:"unit"`
	Stock          float64   `json:"stock"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func toMaterialResponse(m *domain.Material) materialResponse {
	return materialResponse{
		ID:             m.ID,
		Name:           m.Name,
		RatePerCuMetre: m.RatePerCuMetre,
		Unit:           m.Unit,
		Stock:          m.Stock,
		ImageURL:       m.ImageURL,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User    userResponse `json:"user"`
	Token   string       `json:"token"`
	Message string       `json:"message"`
}

// --- Admin ---

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type userMessageResponse struct {
	User    userResponse `json:"user"`
	Message string       `json:"message"`
}

type listUsersResponse struct {
	Users []userResponse `json:"users"`
}

type updateStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// --- Materials ---

// formNumber accepts a JSON number or a numeric string, preserving the raw
// text so the service applies one coercion policy for JSON and multipart.
type formNumber string

func (n *formNumber) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = formNumber(s)
		return nil
	}
	*n = formNumber(b)
	return nil
}

// updateMaterialRequest is the JSON form of a partial update. Every field is
// independently optional; absent fields stay untouched.
type updateMaterialRequest struct {
	Name           *string     `json:"name"`
	RatePerCuMetre *formNumber `json:"ratePerCuMetre"`
	Unit           *string     `json:"unit"`
	Stock          *formNumber `json:"stock"`
}

type materialMessageResponse struct {
	Material materialResponse `json:"material"`
	Message  string           `json:"message"`
}

type listMaterialsResponse struct {
	Materials []materialResponse `json:"materials"`
}

type messageResponse struct {
	Message string `json:"message"`
}
