// controllers/casos_generales.go - General case management
package controllers

import (
	"net/http"
	"time"

	"case-management-api/config"
	"case-management-api/models"
	"case-management-api/services"
	"case-management-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetCasosGenerales returns the filtered, sorted, paginated case list
func GetCasosGenerales(c *gin.Context) {
	var casos []models.CasoGeneral
	base := config.DB.Model(&models.CasoGeneral{}).Where("delete_at IS NULL")
	listResource(c, casoListSpec(), base, &casos, "casos")
}

// GetCasoGeneral returns one case by its number, with attachments
func GetCasoGeneral(c *gin.Context) {
	numeroCaso := c.Param("numero_caso")

	var caso models.CasoGeneral
	if err := config.DB.Preload("Archivos").
		Where("numero_caso = ? AND delete_at IS NULL", numeroCaso).
		First(&caso).Error; err != nil {
		respondNotFound(c, "Caso not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"caso":    caso,
	})
}

// CreateCasoGeneral registers a new general case with optional attachments
func CreateCasoGeneral(c *gin.Context) {
	userID, _ := c.Get("userID")

	form, formErrors := parseCasoForm(c, false)
	files, firma, fileErrors := validateAttachments(c)
	for field, message := range fileErrors {
		if formErrors == nil {
			formErrors = make(map[string]string)
		}
		formErrors[field] = message
	}
	if len(formErrors) > 0 {
		respondValidationErrors(c, formErrors)
		return
	}

	var caso models.CasoGeneral
	var savedPaths []string

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		numero, err := numberIssuer.Next(tx, services.SerieCasoGeneral)
		if err != nil {
			return err
		}

		now := time.Now()
		caso = models.CasoGeneral{
			NumeroCaso:      numero,
			Fecha:           form.Fecha,
			Estado:          utils.EstadoPendiente,
			Categoria:       form.Categoria,
			Motivo:          form.Motivo,
			Descripcion:     form.Descripcion,
			NombreAprendiz:  form.NombreAprendiz,
			TipoDocumento:   form.TipoDocumento,
			NumeroDocumento: form.NumeroDocumento,
			NumeroFicha:     form.NumeroFicha,
			Responsable:     form.Responsable,
			CreateAt:        &now,
			UpdateAt:        &now,
		}
		if err := tx.Create(&caso).Error; err != nil {
			return err
		}

		savedPaths, err = persistAttachments(c, tx, files, firma,
			numero, models.TipoCasoGeneral, form.NumeroDocumento, userID.(int))
		return err
	})
	if err != nil {
		// ErrIssuanceExhausted also lands here: a server-side capacity
		// problem reported as 500, never a client error.
		cleanupStoredFiles(savedPaths)
		respondServerError(c, "create caso general", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "Caso registrado correctamente",
		"caso_id":     caso.CasoID,
		"numero_caso": caso.NumeroCaso,
		"caso":        caso,
	})
}

// UpdateCasoGeneral edits the mutable case fields (not the number)
func UpdateCasoGeneral(c *gin.Context) {
	numeroCaso := c.Param("numero_caso")

	type updateRequest struct {
		Categoria   *string `json:"categoria"`
		Motivo      *string `json:"motivo"`
		Descripcion *string `json:"descripcion"`
		Responsable *string `json:"responsable"`
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var caso models.CasoGeneral
	if err := config.DB.Where("numero_caso = ? AND delete_at IS NULL", numeroCaso).
		First(&caso).Error; err != nil {
		respondNotFound(c, "Caso not found")
		return
	}

	updates := map[string]interface{}{"update_at": time.Now()}
	if req.Categoria != nil {
		updates["categoria"] = utils.SanitizeInput(*req.Categoria)
	}
	if req.Motivo != nil {
		updates["motivo"] = utils.SanitizeInput(*req.Motivo)
	}
	if req.Descripcion != nil {
		updates["descripcion"] = utils.SanitizeInput(*req.Descripcion)
	}
	if req.Responsable != nil {
		updates["responsable"] = utils.SanitizeInput(*req.Responsable)
	}

	if err := config.DB.Model(&caso).Updates(updates).Error; err != nil {
		respondServerError(c, "update caso general", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Caso actualizado correctamente",
		"caso":    caso,
	})
}

// UpdateEstadoCasoGeneral transitions the case state
func UpdateEstadoCasoGeneral(c *gin.Context) {
	numeroCaso := c.Param("numero_caso")

	estado, ok := resolveEstadoUpdate(c)
	if !ok {
		return
	}

	var caso models.CasoGeneral
	if err := config.DB.Where("numero_caso = ? AND delete_at IS NULL", numeroCaso).
		First(&caso).Error; err != nil {
		respondNotFound(c, "Caso not found")
		return
	}

	if err := config.DB.Model(&caso).Updates(map[string]interface{}{
		"estado":    estado,
		"update_at": time.Now(),
	}).Error; err != nil {
		respondServerError(c, "update estado caso general", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Estado actualizado correctamente",
		"estado":  estado,
	})
}

// DeleteCasoGeneral removes the case and cascades to its attachments
func DeleteCasoGeneral(c *gin.Context) {
	numeroCaso := c.Param("numero_caso")

	var caso models.CasoGeneral
	if err := config.DB.Where("numero_caso = ? AND delete_at IS NULL", numeroCaso).
		First(&caso).Error; err != nil {
		respondNotFound(c, "Caso not found")
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := deleteArchivosDeCaso(tx, numeroCaso); err != nil {
			return err
		}
		now := time.Now()
		return tx.Model(&caso).Update("delete_at", &now).Error
	})
	if err != nil {
		respondServerError(c, "delete caso general", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Caso eliminado correctamente",
	})
}
