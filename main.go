package main

import (
	"flag"
	"html/template"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/OPpuolitaival/recipe-example-app/config"
	"github.com/OPpuolitaival/recipe-example-app/internal/handlers"
	"github.com/OPpuolitaival/recipe-example-app/internal/middleware"
	"github.com/OPpuolitaival/recipe-example-app/internal/routes"
	"github.com/OPpuolitaival/recipe-example-app/internal/seed"
	"github.com/OPpuolitaival/recipe-example-app/models"
)

func main() {
	seedCount := flag.Int("seed", 0, "create N sample recipes and exit")
	clearData := flag.Bool("clear", false, "with -seed, wipe existing recipe data first")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	config.ConnectDB()
	config.ConnectRedis()
	config.InitAuth()
	if err := config.InitGoogleServices(); err != nil {
		slog.Warn("Recipe suggestions disabled", "error", err)
	}

	err := config.DB.AutoMigrate(
		&models.Recipe{},
		&models.Ingredient{},
		&models.RecipeIngredient{},
		&models.User{},
	)
	if err != nil {
		slog.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	if *seedCount > 0 || *clearData {
		runSeed(*seedCount, *clearData)
		return
	}

	handlers.EnsureAdminUser()

	r := gin.Default()
	r.Use(middleware.RequestID())

	tmpl := template.Must(template.ParseGlob("templates/*.html"))
	tmpl = template.Must(tmpl.ParseGlob("templates/includes/*.html"))
	r.SetHTMLTemplate(tmpl)

	routes.SetupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	slog.Info("Starting server", "port", port)
	if err := r.Run(":" + port); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func runSeed(count int, clear bool) {
	if clear {
		if err := seed.Clear(config.DB); err != nil {
			slog.Error("Failed to clear recipe data", "error", err)
			os.Exit(1)
		}
		slog.Info("Recipe data cleared")
	}
	if count > 0 {
		if err := seed.Generate(config.DB, count); err != nil {
			slog.Error("Failed to seed recipes", "error", err)
			os.Exit(1)
		}
	}
}
