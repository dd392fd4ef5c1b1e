package handlers

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/OPpuolitaival/recipe-example-app/config"
	"github.com/OPpuolitaival/recipe-example-app/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const sessionDuration = 24 * time.Hour

// ShowLoginPage renders the admin login form.
func ShowLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// LoginHandler checks the posted credentials and sets the session
// cookie the admin middleware reads.
func LoginHandler(c *gin.Context) {
	login := c.PostForm("login")
	password := c.PostForm("password")

	var user models.User
	if err := config.DB.Where("login = ?", login).First(&user).Error; err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": "Väärä käyttäjätunnus tai salasana."})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": "Väärä käyttäjätunnus tai salasana."})
		return
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(sessionDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString(config.JwtKey)
	if err != nil {
		slog.Error("Failed to sign session token", "error", err)
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"Error": "Kirjautuminen epäonnistui."})
		return
	}

	c.SetCookie("auth_token", tokenStr, int(sessionDuration.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, "/admin")
}

// LogoutHandler clears the session cookie.
func LogoutHandler(c *gin.Context) {
	c.SetCookie("auth_token", "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// ShowAdminPage renders the admin dashboard.
func ShowAdminPage(c *gin.Context) {
	login, _ := c.Get("login")

	var recipeCount, ingredientCount int64
	config.DB.Model(&models.Recipe{}).Count(&recipeCount)
	config.DB.Model(&models.Ingredient{}).Count(&ingredientCount)

	c.HTML(http.StatusOK, "admin.html", gin.H{
		"Login":           login,
		"RecipeCount":     recipeCount,
		"IngredientCount": ingredientCount,
	})
}

// EnsureAdminUser creates the admin account from ADMIN_LOGIN and
// ADMIN_PASSWORD on first start, so a fresh deployment can log in.
func EnsureAdminUser() {
	login := os.Getenv("ADMIN_LOGIN")
	password := os.Getenv("ADMIN_PASSWORD")
	if login == "" || password == "" {
		slog.Warn("ADMIN_LOGIN or ADMIN_PASSWORD not set, skipping admin account setup")
		return
	}

	var existing models.User
	if err := config.DB.Where("login = ?", login).First(&existing).Error; err == nil {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("Failed to hash admin password", "error", err)
		return
	}
	user := models.User{Login: login, Password: string(hashed)}
	if err := config.DB.Create(&user).Error; err != nil {
		slog.Error("Failed to create admin account", "error", err)
		return
	}
	slog.Info("Admin account created", "login", login)
}
