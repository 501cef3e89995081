// controllers/listing.go - Shared filtered/sorted/paginated listing glue
package controllers

import (
	"net/http"

	"case-management-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// listResource runs the list query contract against base and writes the
// uniform envelope. itemsKey names the page of items in the response
// ("casos", "prestamos", ...). dest must be a pointer to a model slice.
func listResource(c *gin.Context, spec services.ListSpec, base *gorm.DB, dest interface{}, itemsKey string) {
	result, err := spec.Run(base, c.Request.URL.Query(), dest)
	if err != nil {
		respondServerError(c, "list "+itemsKey, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		itemsKey:  dest,
		"pagination": gin.H{
			"current_page": result.Page,
			"last_page":    result.LastPage(),
			"per_page":     result.PerPage,
			"total_count":  result.TotalCount,
			"from":         result.From(),
			"to":           result.To(),
		},
		"filters": result.Applied,
		"sorting": gin.H{
			"sort_by":        result.SortBy,
			"sort_direction": result.SortDir,
		},
		"summary": gin.H{
			"total_count": result.TotalCount,
			"returned":    result.Returned,
		},
	})
}
