// controllers/prestamos.go - Equipment loan tracking
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

func prestamoListSpec() services.ListSpec {
	return services.ListSpec{
		Filters: []services.FilterField{
			{Param: "descripcion_elemento", Column: "descripcion_elemento", Mode: services.MatchPartial},
			{Param: "nombre_solicitante", Column: "nombre_solicitante", Mode: services.MatchPartial},
			{Param: "placa", Column: "placa", Mode: services.MatchExact},
			{Param: "estado", Column: "estado", Mode: services.MatchExact},
			{Param: "numero_documento", Column: "numero_documento", Mode: services.MatchExact},
			{Param: "numero_ficha", Column: "numero_ficha", Mode: services.MatchExact},
			{Param: "fecha_prestamo", Column: "fecha_prestamo", Mode: services.MatchRange},
		},
		SortFields:  []string{"fecha_prestamo", "numero_caso", "estado", "placa", "nombre_solicitante", "create_at"},
		DefaultSort: "fecha_prestamo",
		DefaultDir:  "desc",
		Preloads:    []string{"Archivos"},
	}
}

// GetPrestamos returns the filtered loan list
func GetPrestamos(c *gin.Context) {
	var prestamos []models.Prestamo
	base := config.DB.Model(&models.Prestamo{}).Where("delete_at IS NULL")
	listResource(c, prestamoListSpec(), base, &prestamos, "prestamos")
}

// GetPrestamo returns one loan by number
func GetPrestamo(c *gin.Context) {
	numeroCaso := c.Param("numero_caso")

	var prestamo models.Prestamo
	if err := config.DB.Preload("Archivos").
		Where("numero_caso = ? AND delete_at IS NULL", numeroCaso).
		First(&prestamo).Error; err != nil {
		respondNotFound(c, "Prestamo not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"prestamo": prestamo,
	})
}

// CreatePrestamo lends out an inventory item under a PR number.
func CreatePrestamo(c *gin.Context) {
	userID, _ := c.Get("userID")

	errors := make(map[string]string)

	descripcion := utils.SanitizeInput(c.PostForm("descripcion_elemento"))
	placa := utils.SanitizeInput(c.PostForm("placa"))
	nombreSolicitante := utils.SanitizeInput(c.PostForm("nombre_solicitante"))
	tipoDocumento := utils.SanitizeInput(c.PostForm("tipo_documento"))
	numeroDocumento := utils.SanitizeInput(c.PostForm("numero_documento"))
	numeroFicha := utils.SanitizeInput(c.PostForm("numero_ficha"))
	responsable := utils.SanitizeInput(c.PostForm("responsable"))

	required := map[string]string{
		"descripcion_elemento": descripcion,
		"placa":                placa,
		"nombre_solicitante":   nombreSolicitante,
		"tipo_documento":       tipoDocumento,
		"numero_ficha":         numeroFicha,
		"responsable":          responsable,
	}
	for field, value := range required {
		if value == "" {
			errors[field] = "Este campo es obligatorio"
		}
	}

	if numeroDocumento == "" {
		errors["numero_documento"] = "Este campo es obligatorio"
	} else if !utils.ValidateDocumento(numeroDocumento) {
		errors["numero_documento"] = "Numero de documento invalido"
	}

	var fechaPrestamo time.Time
	rawFecha := utils.SanitizeInput(c.PostForm("fecha_prestamo"))
	if rawFecha == "" {
		fechaPrestamo = time.Now()
	} else if fecha, err := time.Parse(fechaLayout, rawFecha); err != nil {
		errors["fecha_prestamo"] = "Formato de fecha invalido (AAAA-MM-DD)"
	} else {
		fechaPrestamo = fecha
	}

	files, firma, fileErrors := validateAttachments(c)
	for field, message := range fileErrors {
		errors[field] = message
	}

	if len(errors) > 0 {
		respondValidationErrors(c, errors)
		return
	}

	var prestamo models.Prestamo
	var savedPaths []string

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		numero, err := numberIssuer.Next(tx, services.SeriePrestamo)
		if err != nil {
			return err
		}

		now := time.Now()
		prestamo = models.Prestamo{
			NumeroCaso:          numero,
			DescripcionElemento: descripcion,
			Placa:               placa,
			Estado:              models.PrestamoEstadoPrestado,
			FechaPrestamo:       fechaPrestamo,
			NombreSolicitante:   nombreSolicitante,
			TipoDocumento:       tipoDocumento,
			NumeroDocumento:     numeroDocumento,
			NumeroFicha:         numeroFicha,
			Responsable:         responsable,
			CreateAt:            &now,
			UpdateAt:            &now,
		}
		if err := tx.Create(&prestamo).Error; err != nil {
			return err
		}

		savedPaths, err = persistAttachments(c, tx, files, firma,
			numero, models.TipoCasoPrestamo, numeroDocumento, userID.(int))
		return err
	})
	if err != nil {
		cleanupStoredFiles(savedPaths)
		respondServerError(c, "create prestamo", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "Prestamo registrado correctamente",
		"prestamo_id": prestamo.PrestamoID,
		"numero_caso": prestamo.NumeroCaso,
		"prestamo":    prestamo,
	})
}

// DevolverPrestamo marks a loan as returned. A loan already returned is a
// validation error, not a silent overwrite of the return date.
func DevolverPrestamo(c *gin.Context) {
	numeroCaso := c.Param("numero_caso")

	var prestamo models.Prestamo
	if err := config.DB.Where("numero_caso = ? AND delete_at IS NULL", numeroCaso).
		First(&prestamo).Error; err != nil {
		respondNotFound(c, "Prestamo not found")
		return
	}

	if prestamo.Estado == models.PrestamoEstadoDevuelto {
		respondValidationErrors(c, map[string]string{
			"estado": "El prestamo ya fue devuelto",
		})
		return
	}

	now := time.Now()
	fechaDevolucion := now
	rawFecha := utils.SanitizeInput(c.PostForm("fecha_devolucion"))
	if rawFecha != "" {
		fecha, err := time.Parse(fechaLayout, rawFecha)
		if err != nil {
			respondValidationErrors(c, map[string]string{
				"fecha_devolucion": "Formato de fecha invalido (AAAA-MM-DD)",
			})
			return
		}
		fechaDevolucion = fecha
	}

	if err := config.DB.Model(&prestamo).Updates(map[string]interface{}{
		"estado":           models.PrestamoEstadoDevuelto,
		"fecha_devolucion": fechaDevolucion,
		"update_at":        now,
	}).Error; err != nil {
		respondServerError(c, "devolver prestamo", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"message":          "Prestamo devuelto correctamente",
		"numero_caso":      prestamo.NumeroCaso,
		"fecha_devolucion": fechaDevolucion,
	})
}

// DeletePrestamo removes the loan and cascades to its attachments
func DeletePrestamo(c *gin.Context) {
	numeroCaso := c.Param("numero_caso")

	var prestamo models.Prestamo
	if err := config.DB.Where("numero_caso = ? AND delete_at IS NULL", numeroCaso).
		First(&prestamo).Error; err != nil {
		respondNotFound(c, "Prestamo not found")
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := deleteArchivosDeCaso(tx, numeroCaso); err != nil {
			return err
		}
		now := time.Now()
		return tx.Model(&prestamo).Update("delete_at", &now).Error
	})
	if err != nil {
		respondServerError(c, "delete prestamo", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Prestamo eliminado correctamente",
	})
}
