package middleware

import (
	"healthtracker/config"
	"healthtracker/internal/database"
	"healthtracker/internal/repositories"
	"healthtracker/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type Middleware struct {
	DB           database.DB
	userRepo     repositories.UserRepository
	tokenService *services.TokenService
	Config       config.Config
	log          logger.Logger
}

func New(
	db database.DB,
	config config.Config,
	repos repositories.Repository,
	services services.Service,
) Middleware {
	return Middleware{
		DB:           db,
		userRepo:     repos.User,
		tokenService: services.Token,
		Config:       config,
		log:          logger.New("middleware"),
	}
}
