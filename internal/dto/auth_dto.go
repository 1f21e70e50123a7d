package dto

import "time"

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Username    string `json:"username"`
}

type SessionResponse struct {
	Username     string    `json:"username"`
	SiteID       string    `json:"site_id"`
	LastActivity time.Time `json:"last_activity"`
}
