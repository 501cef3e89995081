// controllers/usuarios.go - Staff account management (admin/coordinador only)
package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"case-management-api/config"
	"case-management-api/models"
	"case-management-api/services"
	"case-management-api/utils"

	"github.com/gin-gonic/gin"
)

func usuarioListSpec() services.ListSpec {
	return services.ListSpec{
		Filters: []services.FilterField{
			{Param: "nombre", Column: "nombre", Mode: services.MatchPartial},
			{Param: "email", Column: "email", Mode: services.MatchExact},
			{Param: "role_id", Column: "role_id", Mode: services.MatchExact},
			{Param: "is_active", Column: "is_active", Mode: services.MatchBool},
		},
		SortFields:  []string{"nombre", "email", "create_at"},
		DefaultSort: "create_at",
		DefaultDir:  "desc",
		Preloads:    []string{"Role"},
	}
}

// GetUsuarios lists staff accounts
func GetUsuarios(c *gin.Context) {
	var usuarios []models.User
	base := config.DB.Model(&models.User{}).Where("delete_at IS NULL")
	listResource(c, usuarioListSpec(), base, &usuarios, "usuarios")
}

// GetUsuario returns one staff account
func GetUsuario(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		respondNotFound(c, "Usuario not found")
		return
	}

	var usuario models.User
	if err := config.DB.Preload("Role").
		Where("user_id = ? AND delete_at IS NULL", userID).
		First(&usuario).Error; err != nil {
		respondNotFound(c, "Usuario not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"usuario": usuario,
	})
}

type createUsuarioRequest struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleID   int    `json:"role_id"`
}

// CreateUsuario provisions a staff account. A welcome mail is best-effort:
// the account exists whether or not the mail goes out.
func CreateUsuario(c *gin.Context) {
	var req createUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	errors := make(map[string]string)
	req.Nombre = utils.SanitizeInput(req.Nombre)
	req.Email = utils.SanitizeInput(req.Email)

	if req.Nombre == "" {
		errors["nombre"] = "Este campo es obligatorio"
	}
	if req.Email == "" {
		errors["email"] = "Este campo es obligatorio"
	} else if !utils.ValidateEmail(req.Email) {
		errors["email"] = "Correo electronico invalido"
	}
	if ok, message := utils.ValidatePassword(req.Password); !ok {
		errors["password"] = message
	}
	if !models.IsValidRoleID(req.RoleID) {
		errors["role_id"] = "Rol no valido"
	}

	if len(errors) == 0 {
		var count int64
		config.DB.Model(&models.User{}).
			Where("email = ? AND delete_at IS NULL", req.Email).Count(&count)
		if count > 0 {
			errors["email"] = "El correo ya esta registrado"
		}
	}

	if len(errors) > 0 {
		respondValidationErrors(c, errors)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		respondServerError(c, "hash password", err)
		return
	}

	now := time.Now()
	usuario := models.User{
		Nombre:   req.Nombre,
		Email:    req.Email,
		Password: hashed,
		RoleID:   req.RoleID,
		IsActive: true,
		CreateAt: &now,
		UpdateAt: &now,
	}
	if err := config.DB.Create(&usuario).Error; err != nil {
		respondServerError(c, "create usuario", err)
		return
	}

	go func(nombre, email string) {
		subject := "Cuenta creada - Gestion de Casos"
		body := fmt.Sprintf(`
			<p>Hola %s,</p>
			<p>Se ha creado una cuenta para ti en el sistema de gestion de casos.</p>
			<p>Puedes iniciar sesion con este correo electronico.</p>
		`, nombre)
		if err := config.SendMail([]string{email}, subject, body); err != nil {
			log.Printf("Failed to send welcome email to %s: %v", email, err)
		}
	}(usuario.Nombre, usuario.Email)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Usuario creado correctamente",
		"usuario": usuario,
	})
}

type updateUsuarioRequest struct {
	Nombre   *string `json:"nombre"`
	Email    *string `json:"email"`
	RoleID   *int    `json:"role_id"`
	IsActive *bool   `json:"is_active"`
}

// UpdateUsuario edits account fields. Password changes go through the auth
// endpoints, never through here.
func UpdateUsuario(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		respondNotFound(c, "Usuario not found")
		return
	}

	var req updateUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var usuario models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", userID).
		First(&usuario).Error; err != nil {
		respondNotFound(c, "Usuario not found")
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
	if req.Email != nil {
		email := utils.SanitizeInput(*req.Email)
		if !utils.ValidateEmail(email) {
			errors["email"] = "Correo electronico invalido"
		} else {
			var count int64
			config.DB.Model(&models.User{}).
				Where("email = ? AND user_id != ? AND delete_at IS NULL", email, userID).
				Count(&count)
			if count > 0 {
				errors["email"] = "El correo ya esta registrado"
			} else {
				updates["email"] = email
			}
		}
	}
	if req.RoleID != nil {
		if !models.IsValidRoleID(*req.RoleID) {
			errors["role_id"] = "Rol no valido"
		} else {
			updates["role_id"] = *req.RoleID
		}
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(errors) > 0 {
		respondValidationErrors(c, errors)
		return
	}

	if err := config.DB.Model(&usuario).Updates(updates).Error; err != nil {
		respondServerError(c, "update usuario", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Usuario actualizado correctamente",
		"usuario": usuario,
	})
}

// DeleteUsuario soft-deletes an account; its tokens stop working on the next
// request because the auth middleware re-checks the row.
func DeleteUsuario(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		respondNotFound(c, "Usuario not found")
		return
	}

	requesterID, _ := c.Get("userID")
	if requesterID.(int) == userID {
		respondValidationErrors(c, map[string]string{
			"user_id": "No puedes eliminar tu propia cuenta",
		})
		return
	}

	var usuario models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", userID).
		First(&usuario).Error; err != nil {
		respondNotFound(c, "Usuario not found")
		return
	}

	now := time.Now()
	if err := config.DB.Model(&usuario).Updates(map[string]interface{}{
		"delete_at": &now,
		"is_active": false,
	}).Error; err != nil {
		respondServerError(c, "delete usuario", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Usuario eliminado correctamente",
	})
}
