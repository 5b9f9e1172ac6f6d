package main

import (
	"context"
	"errors"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/t2-user-service/config"
	"github.com/oksasatya/t2-user-service/internal/application"
	"github.com/oksasatya/t2-user-service/internal/container"
	"github.com/oksasatya/t2-user-service/internal/infrastructure/hash"
	"github.com/oksasatya/t2-user-service/pkg/helpers"
)

func main() {
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}
	ctx := context.Background()

	users, closeUsers, err := container.OpenUsers(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to open users repository")
	}
	defer closeUsers()

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "password123"
	}
	in := application.CreateUserInput{
		Name:     "Demo Admin",
		Email:    "admin@t2.local",
		Phone:    "(31) 99999-8888",
		CPF:      "165.432.190-76",
		Password: password,
	}

	svc := application.NewUserService(users, hash.NewBCrypt(cfg.BcryptCost), nil, nil, logger)
	u, err := svc.Create(ctx, in)
	if errors.Is(err, application.ErrDuplicateEmail) {
		logger.WithField("email", in.Email).Info("seed user already exists")
		return
	}
	if err != nil {
		logger.WithError(err).Fatal("failed to seed user")
	}
	logger.WithFields(logrus.Fields{"id": u.ID, "email": u.Email}).Info("seeded user")
}
