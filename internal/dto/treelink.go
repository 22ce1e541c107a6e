package dto

import "treelink-backend/internal/models"

// Body for POST /api/treelink
type AddLinkRequest struct {
	AccountID    string `json:"accountId" validate:"required"`
	Email        string `json:"email" validate:"required"`
	Title        string `json:"title" validate:"required"`
	URL          string `json:"url" validate:"required"`
	ProfileImage string `json:"profileImage"` // optional on first create
}

// Body for PUT /api/treelink
type SetHandleRequest struct {
	Email     string `json:"email" validate:"required"`
	NewHandle string `json:"newHandle" validate:"required"`
}

// Body for PUT /api/treelink/photo
type SetImageRequest struct {
	Email        string `json:"email" validate:"required"`
	ProfileImage string `json:"profileImage" validate:"required"`
}

// Response for GET /api/treelink and GET /api/u/{handle}.
// A missing profile is an empty 200, never a 404.
type ProfileResponse struct {
	Links        models.LinkList `json:"links"`
	AccountID    string          `json:"accountId"`
	ProfileImage string          `json:"profileImage"`
}

// Response for mutations that only acknowledge.
type MessageResponse struct {
	Message string `json:"message"`
}

// Response for PUT /api/treelink/photo — echoes the upserted profile.
type SetImageResponse struct {
	Message string              `json:"message"`
	Profile *models.LinkProfile `json:"profile"`
}
