package dto

import "github.com/vibast-solutions/ms-go-jobtrack/app/entity"

type LoginResult struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}
