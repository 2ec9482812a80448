package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/vinimoraes/lembretes-api/api"
	"github.com/vinimoraes/lembretes-api/api/handlers"
	"github.com/vinimoraes/lembretes-api/config"
	"github.com/vinimoraes/lembretes-api/mailer"
	"github.com/vinimoraes/lembretes-api/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := repository.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close()

	m, err := mailer.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize mailer: %v", err)
	}

	h := handlers.NewReminderHandler(db, m)
	r := api.NewRouter(h)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
