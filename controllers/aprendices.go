// controllers/aprendices.go - Subject registry
package controllers

import (
	"net/http"
	"time"

	"case-management-api/config"
	"case-management-api/models"
	"case-management-api/services"
	"case-management-api/utils"

	"github.com/gin-gonic/gin"
)

func aprendizListSpec() services.ListSpec {
	return services.ListSpec{
		Filters: []services.FilterField{
			{Param: "nombre", Column: "nombre", Mode: services.MatchPartial},
			{Param: "programa", Column: "programa", Mode: services.MatchPartial},
			{Param: "numero_documento", Column: "numero_documento", Mode: services.MatchExact},
			{Param: "numero_ficha", Column: "numero_ficha", Mode: services.MatchExact},
			{Param: "tipo_documento", Column: "tipo_documento", Mode: services.MatchExact},
			{Param: "estado", Column: "estado", Mode: services.MatchExact},
		},
		SortFields:  []string{"nombre", "numero_ficha", "programa", "create_at"},
		DefaultSort: "nombre",
		DefaultDir:  "asc",
	}
}

// GetAprendices lists the registry
func GetAprendices(c *gin.Context) {
	var aprendices []models.Aprendiz
	base := config.DB.Model(&models.Aprendiz{}).Where("delete_at IS NULL")
	listResource(c, aprendizListSpec(), base, &aprendices, "aprendices")
}

// GetAprendiz returns one registry entry by document number
func GetAprendiz(c *gin.Context) {
	numeroDocumento := c.Param("numero_documento")

	var aprendiz models.Aprendiz
	if err := config.DB.Where("numero_documento = ? AND delete_at IS NULL", numeroDocumento).
		First(&aprendiz).Error; err != nil {
		respondNotFound(c, "Aprendiz not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"aprendiz": aprendiz,
	})
}

type aprendizRequest struct {
	Nombre          string `json:"nombre"`
	TipoDocumento   string `json:"tipo_documento"`
	NumeroDocumento string `json:"numero_documento"`
	NumeroFicha     string `json:"numero_ficha"`
	Programa        string `json:"programa"`
	Correo          string `json:"correo"`
	Telefono        string `json:"telefono"`
	Estado          string `json:"estado"`
}

func (r *aprendizRequest) sanitize() {
	r.Nombre = utils.SanitizeInput(r.Nombre)
	r.TipoDocumento = utils.SanitizeInput(r.TipoDocumento)
	r.NumeroDocumento = utils.SanitizeInput(r.NumeroDocumento)
	r.NumeroFicha = utils.SanitizeInput(r.NumeroFicha)
	r.Programa = utils.SanitizeInput(r.Programa)
	r.Correo = utils.SanitizeInput(r.Correo)
	r.Telefono = utils.SanitizeInput(r.Telefono)
	r.Estado = utils.SanitizeInput(r.Estado)
}

func (r *aprendizRequest) validate() map[string]string {
	errors := make(map[string]string)

	required := map[string]string{
		"nombre":         r.Nombre,
		"tipo_documento": r.TipoDocumento,
		"numero_ficha":   r.NumeroFicha,
		"programa":       r.Programa,
	}
	for field, value := range required {
		if value == "" {
			errors[field] = "Este campo es obligatorio"
		}
	}

	if r.NumeroDocumento == "" {
		errors["numero_documento"] = "Este campo es obligatorio"
	} else if !utils.ValidateDocumento(r.NumeroDocumento) {
		errors["numero_documento"] = "Numero de documento invalido"
	}

	if r.Correo != "" && !utils.ValidateEmail(r.Correo) {
		errors["correo"] = "Correo electronico invalido"
	}

	return errors
}

// CreateAprendiz registers a subject
func CreateAprendiz(c *gin.Context) {
	var req aprendizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req.sanitize()
	errors := req.validate()

	if len(errors) == 0 {
		var count int64
		config.DB.Model(&models.Aprendiz{}).
			Where("numero_documento = ? AND delete_at IS NULL", req.NumeroDocumento).
			Count(&count)
		if count > 0 {
			errors["numero_documento"] = "El numero de documento ya esta registrado"
		}
	}

	if len(errors) > 0 {
		respondValidationErrors(c, errors)
		return
	}

	if req.Estado == "" {
		req.Estado = "Activo"
	}

	now := time.Now()
	aprendiz := models.Aprendiz{
		Nombre:          req.Nombre,
		TipoDocumento:   req.TipoDocumento,
		NumeroDocumento: req.NumeroDocumento,
		NumeroFicha:     req.NumeroFicha,
		Programa:        req.Programa,
		Correo:          req.Correo,
		Telefono:        req.Telefono,
		Estado:          req.Estado,
		CreateAt:        &now,
		UpdateAt:        &now,
	}
	if err := config.DB.Create(&aprendiz).Error; err != nil {
		respondServerError(c, "create aprendiz", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Aprendiz registrado correctamente",
		"aprendiz": aprendiz,
	})
}

// UpdateAprendiz edits the registry row. Case rows keep their creation-time
// snapshot of these fields.
func UpdateAprendiz(c *gin.Context) {
	numeroDocumento := c.Param("numero_documento")

	var aprendiz models.Aprendiz
	if err := config.DB.Where("numero_documento = ? AND delete_at IS NULL", numeroDocumento).
		First(&aprendiz).Error; err != nil {
		respondNotFound(c, "Aprendiz not found")
		return
	}

	type updateRequest struct {
		Nombre      *string `json:"nombre"`
		NumeroFicha *string `json:"numero_ficha"`
		Programa    *string `json:"programa"`
		Correo      *string `json:"correo"`
		Telefono    *string `json:"telefono"`
		Estado      *string `json:"estado"`
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	errors := make(map[string]string)
	updates := map[string]interface{}{"update_at": time.Now()}

	if req.Nombre != nil {
		nombre := utils.SanitizeInput(*req.Nombre)
		if nombre == "" {
			errors["nombre"] = "Este campo es obligatorio"
		} else {
			updates["nombre"] = nombre
		}
	}
	if req.NumeroFicha != nil {
		updates["numero_ficha"] = utils.SanitizeInput(*req.NumeroFicha)
	}
	if req.Programa != nil {
		updates["programa"] = utils.SanitizeInput(*req.Programa)
	}
	if req.Correo != nil {
		correo := utils.SanitizeInput(*req.Correo)
		if correo != "" && !utils.ValidateEmail(correo) {
			errors["correo"] = "Correo electronico invalido"
		} else {
			updates["correo"] = correo
		}
	}
	if req.Telefono != nil {
		updates["telefono"] = utils.SanitizeInput(*req.Telefono)
	}
	if req.Estado != nil {
		updates["estado"] = utils.SanitizeInput(*req.Estado)
	}

	if len(errors) > 0 {
		respondValidationErrors(c, errors)
		return
	}

	if err := config.DB.Model(&aprendiz).Updates(updates).Error; err != nil {
		respondServerError(c, "update aprendiz", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Aprendiz actualizado correctamente",
		"aprendiz": aprendiz,
	})
}

// DeleteAprendiz soft-deletes a registry row. Existing cases keep their
// snapshot of the subject fields.
func DeleteAprendiz(c *gin.Context) {
	numeroDocumento := c.Param("numero_documento")

	var aprendiz models.Aprendiz
	if err := config.DB.Where("numero_documento = ? AND delete_at IS NULL", numeroDocumento).
		First(&aprendiz).Error; err != nil {
		respondNotFound(c, "Aprendiz not found")
		return
	}

	now := time.Now()
	if err := config.DB.Model(&aprendiz).Update("delete_at", &now).Error; err != nil {
		respondServerError(c, "delete aprendiz", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Aprendiz eliminado correctamente",
	})
}
