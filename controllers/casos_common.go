// controllers/casos_common.go - Shared case form parsing and attachment persistence
package controllers

import (
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"case-management-api/config"
	"case-management-api/models"
	"case-management-api/services"
	"case-management-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var numberIssuer = services.NewNumberIssuer()

const fechaLayout = "2006-01-02"

// casoForm holds the validated fields shared by the three case variants.
type casoForm struct {
	Fecha           time.Time
	Categoria       string
	Motivo          string
	Descripcion     string
	NombreAprendiz  string
	TipoDocumento   string
	NumeroDocumento string
	NumeroFicha     string
	Responsable     string

	// Guardian fields, required only for casos de acudiente
	NombreAcudiente   string
	Parentesco        string
	TelefonoAcudiente string
}

// parseCasoForm validates the form-encoded case submission and returns a
// field→message map on failure.
func parseCasoForm(c *gin.Context, requireAcudiente bool) (*casoForm, map[string]string) {
	errors := make(map[string]string)

	form := &casoForm{
		Categoria:         utils.SanitizeInput(c.PostForm("categoria")),
		Motivo:            utils.SanitizeInput(c.PostForm("motivo")),
		Descripcion:       utils.SanitizeInput(c.PostForm("descripcion")),
		NombreAprendiz:    utils.SanitizeInput(c.PostForm("nombre_aprendiz")),
		TipoDocumento:     utils.SanitizeInput(c.PostForm("tipo_documento")),
		NumeroDocumento:   utils.SanitizeInput(c.PostForm("numero_documento")),
		NumeroFicha:       utils.SanitizeInput(c.PostForm("numero_ficha")),
		Responsable:       utils.SanitizeInput(c.PostForm("responsable")),
		NombreAcudiente:   utils.SanitizeInput(c.PostForm("nombre_acudiente")),
		Parentesco:        utils.SanitizeInput(c.PostForm("parentesco")),
		TelefonoAcudiente: utils.SanitizeInput(c.PostForm("telefono_acudiente")),
	}

	rawFecha := utils.SanitizeInput(c.PostForm("fecha"))
	if rawFecha == "" {
		errors["fecha"] = "La fecha es obligatoria"
	} else if fecha, err := time.Parse(fechaLayout, rawFecha); err != nil {
		errors["fecha"] = "Formato de fecha invalido (AAAA-MM-DD)"
	} else {
		form.Fecha = fecha
	}

	required := map[string]string{
		"categoria":       form.Categoria,
		"motivo":          form.Motivo,
		"nombre_aprendiz": form.NombreAprendiz,
		"tipo_documento":  form.TipoDocumento,
		"numero_ficha":    form.NumeroFicha,
		"responsable":     form.Responsable,
	}
	for field, value := range required {
		if value == "" {
			errors[field] = "Este campo es obligatorio"
		}
	}

	if form.NumeroDocumento == "" {
		errors["numero_documento"] = "Este campo es obligatorio"
	} else if !utils.ValidateDocumento(form.NumeroDocumento) {
		errors["numero_documento"] = "Numero de documento invalido"
	}

	if requireAcudiente {
		if form.NombreAcudiente == "" {
			errors["nombre_acudiente"] = "Este campo es obligatorio"
		}
		if form.Parentesco == "" {
			errors["parentesco"] = "Este campo es obligatorio"
		}
	}

	if len(errors) > 0 {
		return nil, errors
	}
	return form, nil
}

// validateAttachments checks the optional "archivos" parts and "firma" part
// before anything is persisted.
func validateAttachments(c *gin.Context) ([]*multipart.FileHeader, *multipart.FileHeader, map[string]string) {
	errors := make(map[string]string)

	multipartForm, err := c.MultipartForm()
	if err != nil || multipartForm == nil {
		return nil, nil, nil // no files attached
	}

	files := multipartForm.File["archivos"]
	for _, file := range files {
		if ok, message := utils.ValidateArchivo(file); !ok {
			errors["archivos"] = message
			break
		}
	}

	var firma *multipart.FileHeader
	if firmas := multipartForm.File["firma"]; len(firmas) > 0 {
		firma = firmas[0]
		if ok, message := utils.ValidateFirma(firma); !ok {
			errors["firma"] = message
		}
	}

	if len(errors) > 0 {
		return nil, nil, errors
	}
	return files, firma, nil
}

// persistAttachments stores the uploaded files under the case folder and
// creates their rows inside tx. It returns every path written to disk so the
// caller can clean up when the transaction rolls back.
func persistAttachments(c *gin.Context, tx *gorm.DB, files []*multipart.FileHeader, firma *multipart.FileHeader,
	numeroCaso, tipoCaso, numeroDocumento string, userID int) ([]string, error) {

	all := make([]*multipart.FileHeader, 0, len(files)+1)
	all = append(all, files...)
	if firma != nil {
		all = append(all, firma)
	}
	if len(all) == 0 {
		return nil, nil
	}

	folder, err := utils.EnsureCaseFolder(config.UploadPath(), numeroCaso)
	if err != nil {
		return nil, err
	}

	var saved []string
	for _, file := range all {
		storedName := utils.GenerateStoredFilename(file.Filename)
		fullPath := filepath.Join(folder, storedName)

		if err := c.SaveUploadedFile(file, fullPath); err != nil {
			return saved, err
		}
		saved = append(saved, fullPath)

		mimeType := utils.MimeTypeForFile(file)
		descripcion := ""
		if firma != nil && file == firma {
			descripcion = "firma"
		}

		now := time.Now()
		archivo := models.ArchivoCaso{
			NumeroCaso:      numeroCaso,
			TipoCaso:        tipoCaso,
			NumeroDocumento: numeroDocumento,
			NombreOriginal:  file.Filename,
			RutaAlmacenada:  fullPath,
			MimeType:        mimeType,
			Tamano:          file.Size,
			TipoArchivo:     utils.TipoArchivoFromMime(mimeType),
			Descripcion:     descripcion,
			UploadedBy:      userID,
			CreateAt:        &now,
			UpdateAt:        &now,
		}
		if err := tx.Create(&archivo).Error; err != nil {
			return saved, err
		}
	}

	return saved, nil
}

// cleanupStoredFiles removes files written before a failed transaction.
func cleanupStoredFiles(paths []string) {
	for _, path := range paths {
		_ = os.Remove(path)
	}
}

// deleteArchivosDeCaso hard-deletes the attachment rows of a case one by one
// so the AfterDelete hook removes each stored object.
func deleteArchivosDeCaso(tx *gorm.DB, numeroCaso string) error {
	var archivos []models.ArchivoCaso
	if err := tx.Where("numero_caso = ?", numeroCaso).Find(&archivos).Error; err != nil {
		return err
	}
	for i := range archivos {
		if err := tx.Delete(&archivos[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// casoListSpec is the shared filter/sort table for the three case variants.
func casoListSpec() services.ListSpec {
	return services.ListSpec{
		Filters: []services.FilterField{
			{Param: "nombre_aprendiz", Column: "nombre_aprendiz", Mode: services.MatchPartial},
			{Param: "responsable", Column: "responsable", Mode: services.MatchPartial},
			{Param: "estado", Column: "estado", Mode: services.MatchExact},
			{Param: "categoria", Column: "categoria", Mode: services.MatchExact},
			{Param: "numero_documento", Column: "numero_documento", Mode: services.MatchExact},
			{Param: "numero_ficha", Column: "numero_ficha", Mode: services.MatchExact},
			{Param: "tipo_documento", Column: "tipo_documento", Mode: services.MatchExact},
			{Param: "fecha", Column: "fecha", Mode: services.MatchRange},
		},
		SortFields:     []string{"fecha", "numero_caso", "estado", "nombre_aprendiz", "create_at"},
		DefaultSort:    "fecha",
		DefaultDir:     "desc",
		DefaultPerPage: services.DefaultPerPage,
		MaxPerPage:     services.MaxPerPage,
		Preloads:       []string{"Archivos"},
	}
}

type estadoUpdateRequest struct {
	Estado string `json:"estado" binding:"required"`
}

// resolveEstadoUpdate binds and canonicalizes a state-change payload.
func resolveEstadoUpdate(c *gin.Context) (string, bool) {
	var req estadoUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationErrors(c, map[string]string{"estado": "El estado es obligatorio"})
		return "", false
	}

	estado, ok := utils.CanonicalEstado(req.Estado)
	if !ok {
		respondValidationErrors(c, map[string]string{"estado": "Estado no reconocido"})
		return "", false
	}
	return estado, true
}
