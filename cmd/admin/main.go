package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"sweetshop-api/internal/core/config"
	"sweetshop-api/internal/core/database"
	"sweetshop-api/internal/core/logger"
	"sweetshop-api/internal/domain"
	"sweetshop-api/internal/repo"
	"sweetshop-api/pkg/utils"
)

// 一次性引导工具：确保店长（admin）账号存在。
// 用法：go run ./cmd/admin -email shop@example.com -password s3cret
func main() {
	var (
		email    = flag.String("email", os.Getenv("ADMIN_EMAIL"), "admin email")
		password = flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password")
	)
	flag.Parse()
	addr := strings.ToLower(strings.TrimSpace(*email))

	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	if addr == "" || *password == "" {
		log.Fatal("need -email and -password (or ADMIN_EMAIL / ADMIN_PASSWORD)")
	}

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		log.Fatal("automigrate failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := repo.NewUserRepo(db)
	existing, err := users.FindByEmail(ctx, addr)
	if err != nil {
		log.Fatal("find admin", zap.Error(err))
	}
	if existing != nil {
		log.Info("admin already exists, nothing to do",
			zap.String("email", existing.Email), zap.String("role", string(existing.Role)))
		return
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Email:        addr,
		PasswordHash: utils.HashPassword(*password),
		Role:         domain.RoleAdmin,
	}
	if err := users.Create(ctx, u); err != nil {
		log.Fatal("create admin", zap.Error(err))
	}
	log.Info("admin created", zap.String("email", u.Email), zap.String("id", u.ID))
}
