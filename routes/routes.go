// routes/routes.go - API route definitions
package routes

import (
	"net/http"

	"case-management-api/controllers"
	"case-management-api/middleware"
	"case-management-api/models"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires the API surface under /api/v1.
func SetupRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")

	// Public endpoints
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	api.POST("/login", controllers.Login)
	api.POST("/forgot-password", controllers.ForgotPassword)
	api.POST("/reset-password", controllers.ResetPassword)

	// Everything below requires a valid token
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", controllers.GetProfile)
	protected.POST("/change-password", controllers.ChangePassword)

	casosGenerales := protected.Group("/casos-generales")
	{
		casosGenerales.GET("", controllers.GetCasosGenerales)
		casosGenerales.POST("", controllers.CreateCasoGeneral)
		casosGenerales.GET("/:numero_caso", controllers.GetCasoGeneral)
		casosGenerales.PUT("/:numero_caso", controllers.UpdateCasoGeneral)
		casosGenerales.PATCH("/:numero_caso/estado", controllers.UpdateEstadoCasoGeneral)
		casosGenerales.DELETE("/:numero_caso", controllers.DeleteCasoGeneral)
	}

	casosEspeciales := protected.Group("/casos-especiales")
	{
		casosEspeciales.GET("", controllers.GetCasosEspeciales)
		casosEspeciales.POST("", controllers.CreateCasoEspecial)
		casosEspeciales.GET("/:numero_caso", controllers.GetCasoEspecial)
		casosEspeciales.PUT("/:numero_caso", controllers.UpdateCasoEspecial)
		casosEspeciales.PATCH("/:numero_caso/estado", controllers.UpdateEstadoCasoEspecial)
		casosEspeciales.DELETE("/:numero_caso", controllers.DeleteCasoEspecial)
	}

	casosAcudientes := protected.Group("/casos-acudientes")
	{
		casosAcudientes.GET("", controllers.GetCasosAcudientes)
		casosAcudientes.POST("", controllers.CreateCasoAcudiente)
		casosAcudientes.GET("/:numero_caso", controllers.GetCasoAcudiente)
		casosAcudientes.PUT("/:numero_caso", controllers.UpdateCasoAcudiente)
		casosAcudientes.PATCH("/:numero_caso/estado", controllers.UpdateEstadoCasoAcudiente)
		casosAcudientes.DELETE("/:numero_caso", controllers.DeleteCasoAcudiente)
	}

	prestamos := protected.Group("/prestamos")
	{
		prestamos.GET("", controllers.GetPrestamos)
		prestamos.POST("", controllers.CreatePrestamo)
		prestamos.GET("/:numero_caso", controllers.GetPrestamo)
		prestamos.PATCH("/:numero_caso/devolver", controllers.DevolverPrestamo)
		prestamos.DELETE("/:numero_caso", controllers.DeletePrestamo)
	}

	archivos := protected.Group("/archivos")
	{
		archivos.POST("/caso/:numero_caso", controllers.UploadArchivo)
		archivos.GET("/caso/:numero_caso", controllers.GetArchivosPorCaso)
		archivos.GET("/documento/:numero_documento", controllers.GetArchivosPorDocumento)
		archivos.GET("/:archivo_id/download", controllers.DownloadArchivo)
		archivos.DELETE("/:archivo_id", controllers.DeleteArchivo)
	}

	aprendices := protected.Group("/aprendices")
	{
		aprendices.GET("", controllers.GetAprendices)
		aprendices.POST("", controllers.CreateAprendiz)
		aprendices.GET("/:numero_documento", controllers.GetAprendiz)
		aprendices.PUT("/:numero_documento", controllers.UpdateAprendiz)
		aprendices.DELETE("/:numero_documento", controllers.DeleteAprendiz)
	}

	// Staff management is restricted to admin and coordinador
	usuarios := protected.Group("/usuarios")
	usuarios.Use(middleware.RequireRole(models.RoleAdmin, models.RoleCoordinador))
	{
		usuarios.GET("", controllers.GetUsuarios)
		usuarios.POST("", controllers.CreateUsuario)
		usuarios.GET("/:user_id", controllers.GetUsuario)
		usuarios.PUT("/:user_id", controllers.UpdateUsuario)
		usuarios.DELETE("/:user_id", controllers.DeleteUsuario)
	}
}
