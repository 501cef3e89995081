// controllers/casos_acudientes.go - Guardian case management
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

// GetCasosAcudientes returns the filtered guardian-case list
func GetCasosAcudientes(c *gin.Context) {
	var casos []models.CasoAcudiente
	base := config.DB.Model(&models.CasoAcudiente{}).Where("delete_at IS NULL")
	listResource(c, casoListSpec(), base, &casos, "casos")
}

// GetCasoAcudiente returns one guardian case by number
func GetCasoAcudiente(c *gin.Context) {
	numeroCaso := c.Param("numero_caso")

	var caso models.CasoAcudiente
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

// CreateCasoAcudiente registers a new case raised with a guardian present.
func CreateCasoAcudiente(c *gin.Context) {
	userID, _ := c.Get("userID")

	form, formErrors := parseCasoForm(c, true)
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

	var caso models.CasoAcudiente
	var savedPaths []string

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		numero, err := numberIssuer.Next(tx, services.SerieCasoAcudiente)
		if err != nil {
			return err
		}

		now := time.Now()
		caso = models.CasoAcudiente{
			NumeroCaso:        numero,
			Fecha:             form.Fecha,
			Estado:            utils.EstadoPendiente,
			Categoria:         form.Categoria,
			Motivo:            form.Motivo,
			Descripcion:       form.Descripcion,
			NombreAprendiz:    form.NombreAprendiz,
			TipoDocumento:     form.TipoDocumento,
			NumeroDocumento:   form.NumeroDocumento,
			NumeroFicha:       form.NumeroFicha,
			Responsable:       form.Responsable,
			NombreAcudiente:   form.NombreAcudiente,
			Parentesco:        form.Parentesco,
			TelefonoAcudiente: form.TelefonoAcudiente,
			CreateAt:          &now,
			UpdateAt:          &now,
		}
		if err := tx.Create(&caso).Error; err != nil {
			return err
		}

		savedPaths, err = persistAttachments(c, tx, files, firma,
			numero, models.TipoCasoAcudiente, form.NumeroDocumento, userID.(int))
		return err
	})
	if err != nil {
		cleanupStoredFiles(savedPaths)
		respondServerError(c, "create caso acudiente", err)
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

// UpdateCasoAcudiente edits the mutable case fields (not the number)
func UpdateCasoAcudiente(c *gin.Context) {
	numeroCaso := c.Param("numero_caso")

	type updateRequest struct {
		Categoria         *string `json:"categoria"`
		Motivo            *string `json:"motivo"`
		Descripcion       *string `json:"descripcion"`
		Responsable       *string `json:"responsable"`
		NombreAcudiente   *string `json:"nombre_acudiente"`
		Parentesco        *string `json:"parentesco"`
		TelefonoAcudiente *string `json:"telefono_acudiente"`
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var caso models.CasoAcudiente
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
	if req.NombreAcudiente != nil {
		updates["nombre_acudiente"] = utils.SanitizeInput(*req.NombreAcudiente)
	}
	if req.Parentesco != nil {
		updates["parentesco"] = utils.SanitizeInput(*req.Parentesco)
	}
	if req.TelefonoAcudiente != nil {
		updates["telefono_acudiente"] = utils.SanitizeInput(*req.TelefonoAcudiente)
	}

	if err := config.DB.Model(&caso).Updates(updates).Error; err != nil {
		respondServerError(c, "update caso acudiente", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Caso actualizado correctamente",
		"caso":    caso,
	})
}

// UpdateEstadoCasoAcudiente transitions the case state
func UpdateEstadoCasoAcudiente(c *gin.Context) {
	numeroCaso := c.Param("numero_caso")

	estado, ok := resolveEstadoUpdate(c)
	if !ok {
		return
	}

	var caso models.CasoAcudiente
	if err := config.DB.Where("numero_caso = ? AND delete_at IS NULL", numeroCaso).
		First(&caso).Error; err != nil {
		respondNotFound(c, "Caso not found")
		return
	}

	if err := config.DB.Model(&caso).Updates(map[string]interface{}{
		"estado":    estado,
		"update_at": time.Now(),
	}).Error; err != nil {
		respondServerError(c, "update estado caso acudiente", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Estado actualizado correctamente",
		"estado":  estado,
	})
}

// DeleteCasoAcudiente removes the case and cascades to its attachments
func DeleteCasoAcudiente(c *gin.Context) {
	numeroCaso := c.Param("numero_caso")

	var caso models.CasoAcudiente
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
		respondServerError(c, "delete caso acudiente", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Caso eliminado correctamente",
	})
}
