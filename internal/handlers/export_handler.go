package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/OPpuolitaival/recipe-example-app/config"
	"github.com/OPpuolitaival/recipe-example-app/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportRecipesHandler writes the whole recipe collection as an XLSX
// workbook, one row per recipe with its ingredient lines flattened.
func ExportRecipesHandler(c *gin.Context) {
	var recipes []models.Recipe
	err := config.DB.
		Preload("RecipeIngredients.Ingredient").
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes for export"})
		return
	}

	f := excelize.NewFile()
	sheetName := "Reseptit"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Nimi", "Kuvaus", "Valmistusaika (min)", "Kypsennysaika (min)", "Annokset", "Raaka-aineet", "Luotu"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, r := range recipes {
		row := i + 2
		lines := make([]string, 0, len(r.RecipeIngredients))
		for _, ri := range r.RecipeIngredients {
			lines = append(lines, fmt.Sprintf("%s %s", ri.Quantity, ri.Ingredient.Name))
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.PrepTime)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.CookTime)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), r.Servings)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), strings.Join(lines, "; "))
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), r.CreatedAt.Format("02.01.2006"))
	}

	fileName := fmt.Sprintf("reseptit_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
	}
}
