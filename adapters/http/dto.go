package http

import (
	"time"

	"github.com/khoahotran/cvhub/internal/domain/cv"
	"github.com/khoahotran/cvhub/internal/domain/recommendation"
	"github.com/khoahotran/cvhub/internal/domain/user"
)

// User DTOs

type RegisterRequest struct {
	FirstName string `json:"firstname" binding:"required,min=1,max=20,personname"`
	LastName  string `json:"lastname" binding:"required,min=1,max=20,personname"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateMeRequest struct {
	FirstName string `json:"firstname" binding:"required,min=1,max=20,personname"`
	LastName  string `json:"lastname" binding:"required,min=1,max=20,personname"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"omitempty,min=6"`
}

type UserDTO struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstname"`
	LastName  string    `json:"lastname"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:        u.ID.String(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	User        user.Principal `json:"user"`
}

// CV DTOs

type CVDTO struct {
	ID      string  `json:"id"`
	OwnerID *string `json:"owner_id"`
	cv.Draft
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToCVDTO(c *cv.CV) CVDTO {
	dto := CVDTO{
		ID:        c.ID.String(),
		Draft:     c.Draft.Normalized(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.OwnerID != nil {
		owner := c.OwnerID.String()
		dto.OwnerID = &owner
	}
	return dto
}

func ToCVDTOs(cvs []*cv.CV) []CVDTO {
	dtos := make([]CVDTO, len(cvs))
	for i, c := range cvs {
		dtos[i] = ToCVDTO(c)
	}
	return dtos
}

// Recommendation DTOs

type RecommendationDTO struct {
	ID          string                `json:"id"`
	Author      recommendation.Author `json:"author"`
	CVID        string                `json:"cv_id"`
	Description string                `json:"description"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

func ToRecommendationDTO(r *recommendation.Recommendation) RecommendationDTO {
	return RecommendationDTO{
		ID:          r.ID.String(),
		Author:      r.Author,
		CVID:        r.CVID.String(),
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func ToRecommendationDTOs(recs []*recommendation.Recommendation) []RecommendationDTO {
	dtos := make([]RecommendationDTO, len(recs))
	for i, r := range recs {
		dtos[i] = ToRecommendationDTO(r)
	}
	return dtos
}
