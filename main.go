package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/nabilnabti/tapeat-sub001/configs"
	"github.com/nabilnabti/tapeat-sub001/middlewares"
	"github.com/nabilnabti/tapeat-sub001/routes"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg)
	db := configs.DB()

	// migrate
	if err := configs.SetupDatabase(); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	if err := configs.SeedAdmin(); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())

	// uploaded menu pictures
	r.Static("/uploads", "./"+cfg.UploadDir)

	routes.RegisterRoutes(r, db, cfg)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("🚀 Server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
