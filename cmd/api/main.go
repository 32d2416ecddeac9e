package main

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/project-college/backend/config"
	"github.com/project-college/backend/database"
	"github.com/project-college/backend/routes"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	database.Connect(cfg)

	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	routes.Register(e, cfg)

	e.Logger.Fatal(e.Start(":" + cfg.AppPort))
}
