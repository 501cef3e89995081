// controllers/archivos.go - Standalone attachment endpoints
package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"case-management-api/config"
	"case-management-api/models"
	"case-management-api/services"
	"case-management-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// tipoCasoForNumero maps a case number to its record table via the series
// prefix, then confirms the record actually exists and is not deleted.
func tipoCasoForNumero(numeroCaso string) (string, bool) {
	prefix, _, found := strings.Cut(numeroCaso, "-")
	if !found {
		return "", false
	}

	var count int64
	switch prefix {
	case services.SerieCasoGeneral:
		config.DB.Model(&models.CasoGeneral{}).
			Where("numero_caso = ? AND delete_at IS NULL", numeroCaso).Count(&count)
		return models.TipoCasoGeneral, count > 0
	case services.SerieCasoEspecial:
		config.DB.Model(&models.CasoEspecial{}).
			Where("numero_caso = ? AND delete_at IS NULL", numeroCaso).Count(&count)
		return models.TipoCasoEspecial, count > 0
	case services.SerieCasoAcudiente:
		config.DB.Model(&models.CasoAcudiente{}).
			Where("numero_caso = ? AND delete_at IS NULL", numeroCaso).Count(&count)
		return models.TipoCasoAcudiente, count > 0
	case services.SeriePrestamo:
		config.DB.Model(&models.Prestamo{}).
			Where("numero_caso = ? AND delete_at IS NULL", numeroCaso).Count(&count)
		return models.TipoCasoPrestamo, count > 0
	}
	return "", false
}

// UploadArchivo attaches files to an existing case or loan after the fact.
func UploadArchivo(c *gin.Context) {
	userID, _ := c.Get("userID")
	numeroCaso := c.Param("numero_caso")

	if !services.IsCaseNumber(numeroCaso) {
		respondValidationErrors(c, map[string]string{
			"numero_caso": "Numero de caso invalido",
		})
		return
	}

	tipoCaso, exists := tipoCasoForNumero(numeroCaso)
	if !exists {
		respondNotFound(c, "Caso not found")
		return
	}

	files, firma, fileErrors := validateAttachments(c)
	if len(fileErrors) > 0 {
		respondValidationErrors(c, fileErrors)
		return
	}
	if len(files) == 0 && firma == nil {
		respondValidationErrors(c, map[string]string{
			"archivos": "Debe adjuntar al menos un archivo",
		})
		return
	}

	numeroDocumento := utils.SanitizeInput(c.PostForm("numero_documento"))

	var savedPaths []string
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		savedPaths, err = persistAttachments(c, tx, files, firma,
			numeroCaso, tipoCaso, numeroDocumento, userID.(int))
		return err
	})
	if err != nil {
		cleanupStoredFiles(savedPaths)
		respondServerError(c, "upload archivos", err)
		return
	}

	var archivos []models.ArchivoCaso
	config.DB.Where("numero_caso = ?", numeroCaso).
		Order("create_at DESC").Find(&archivos)

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Archivos cargados correctamente",
		"archivos": archivos,
	})
}

// GetArchivosPorCaso lists every attachment of one case or loan
func GetArchivosPorCaso(c *gin.Context) {
	numeroCaso := c.Param("numero_caso")

	var archivos []models.ArchivoCaso
	if err := config.DB.Where("numero_caso = ?", numeroCaso).
		Order("create_at DESC").Find(&archivos).Error; err != nil {
		respondServerError(c, "list archivos por caso", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"archivos": archivos,
		"total":    len(archivos),
	})
}

// GetArchivosPorDocumento lists attachments across every case of one person
func GetArchivosPorDocumento(c *gin.Context) {
	numeroDocumento := c.Param("numero_documento")

	if !utils.ValidateDocumento(numeroDocumento) {
		respondValidationErrors(c, map[string]string{
			"numero_documento": "Numero de documento invalido",
		})
		return
	}

	var archivos []models.ArchivoCaso
	if err := config.DB.Where("numero_documento = ?", numeroDocumento).
		Order("create_at DESC").Find(&archivos).Error; err != nil {
		respondServerError(c, "list archivos por documento", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"archivos": archivos,
		"total":    len(archivos),
	})
}

// DownloadArchivo streams the stored object under its original filename
func DownloadArchivo(c *gin.Context) {
	archivoID, err := strconv.Atoi(c.Param("archivo_id"))
	if err != nil {
		respondNotFound(c, "Archivo not found")
		return
	}

	var archivo models.ArchivoCaso
	if err := config.DB.First(&archivo, archivoID).Error; err != nil {
		respondNotFound(c, "Archivo not found")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+archivo.NombreOriginal+`"`)
	c.Header("Content-Type", archivo.MimeType)
	c.File(archivo.RutaAlmacenada)
}

// DeleteArchivo removes one attachment. Deleting an already-removed archivo
// succeeds: the operation is idempotent.
func DeleteArchivo(c *gin.Context) {
	archivoID, err := strconv.Atoi(c.Param("archivo_id"))
	if err != nil {
		respondNotFound(c, "Archivo not found")
		return
	}

	var archivo models.ArchivoCaso
	if err := config.DB.First(&archivo, archivoID).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Archivo eliminado correctamente",
		})
		return
	}

	if err := config.DB.Delete(&archivo).Error; err != nil {
		respondServerError(c, "delete archivo", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Archivo eliminado correctamente",
	})
}
