package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"proplens/internal/api"
	"proplens/internal/config"
	"proplens/internal/container"
	"proplens/internal/testkit"
	"proplens/ui"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	gin.SetMode(cfg.Server.GinMode)

	ctx := context.Background()
	c, err := container.New(ctx, cfg)
	if err != nil {
		log.Fatalf("container: %v", err)
	}
	defer c.Close()

	server := api.NewServer(c.Dashboard, c.PropertyRepo, c.Exporter, c.Logger)

	if c.PropertyRepo != nil {
		if err := server.Refresh(ctx); err != nil {
			log.Fatalf("initial load: %v", err)
		}
	} else {
		c.Logger.Info("[api] no DATABASE_URL set, serving generated demo portfolio")
		gen := testkit.NewPropertyGenerator(testkit.DefaultPropertyConfig())
		views, err := c.Dashboard.NormalizeRecords(ctx, gen.Generate(), nil)
		if err != nil {
			log.Fatalf("demo normalization: %v", err)
		}
		server.SetViews(views)
	}

	uiApp := ui.NewApp(c.Dashboard, server)
	go func() {
		c.Logger.Info("[ui] report UI listening on :%s", cfg.Server.UIPort)
		if err := uiApp.Start(ui.Config{Port: cfg.Server.UIPort}); err != nil {
			log.Fatalf("ui server: %v", err)
		}
	}()

	c.Logger.Info("[api] API listening on :%s", cfg.Server.Port)
	if err := server.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("api server: %v", err)
	}
}
