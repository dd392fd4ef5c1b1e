package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/OPpuolitaival/recipe-example-app/config"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
)

// SuggestRecipeInput lists the ingredients the user has at hand.
type SuggestRecipeInput struct {
	Ingredients []string `json:"ingredients" binding:"required,min=1"`
}

// SuggestRecipeHandler asks Gemini for a recipe draft built from the
// given ingredients. The endpoint is only wired when GEMINI_API_KEY
// was configured at startup.
func SuggestRecipeHandler(c *gin.Context) {
	if config.GeminiClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Recipe suggestions are not enabled"})
		return
	}

	var input SuggestRecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prompt := fmt.Sprintf(
		"Ehdota yksi suomalainen resepti, jossa käytetään seuraavia raaka-aineita: %s. "+
			"Vastaa suomeksi. Anna reseptin nimi, lyhyt kuvaus, valmistusohjeet vaiheittain "+
			"sekä raaka-aineluettelo määrineen.",
		strings.Join(input.Ingredients, ", "),
	)

	resp, err := config.GeminiClient.GenerateContent(c.Request.Context(), genai.Text(prompt))
	if err != nil {
		slog.Error("Gemini request failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Suggestion service failed"})
		return
	}

	var suggestion strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				suggestion.WriteString(string(text))
			}
		}
	}
	if suggestion.Len() == 0 {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Suggestion service returned no content"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestion": suggestion.String()})
}
