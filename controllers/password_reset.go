package controllers

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"case-management-api/config"
	"case-management-api/models"
	"case-management-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const passwordResetTokenTTL = 10 * time.Minute

var (
	passwordResetTokenGenerator = generateResetToken

	sendMailFunc                              = config.SendMail
	passwordResetRepo passwordResetRepository = &gormPasswordResetRepository{}
)

type passwordResetRepository interface {
	FindUserByEmail(email string) (*models.User, error)
	RevokePasswordResetTokens(userID int, now time.Time) error
	CreateUserToken(token *models.UserToken) error
	FindActivePasswordResetTokens(now time.Time) ([]models.UserToken, error)
	UpdateUserPassword(userID int, hashedPassword string, now time.Time) error
	RevokeToken(tokenID int, now time.Time) error
}

type gormPasswordResetRepository struct{}

func (r *gormPasswordResetRepository) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := config.DB.Where("email = ? AND delete_at IS NULL", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormPasswordResetRepository) RevokePasswordResetTokens(userID int, now time.Time) error {
	if userID == 0 {
		return nil
	}

	return config.DB.Model(&models.UserToken{}).
		Where("user_id = ? AND token_type = ? AND is_revoked = ?", userID, "password_reset", false).
		Updates(map[string]interface{}{
			"is_revoked": true,
			"updated_at": now,
			"expires_at": now,
		}).Error
}

func (r *gormPasswordResetRepository) CreateUserToken(token *models.UserToken) error {
	return config.DB.Create(token).Error
}

func (r *gormPasswordResetRepository) FindActivePasswordResetTokens(now time.Time) ([]models.UserToken, error) {
	var tokens []models.UserToken
	err := config.DB.
		Where("token_type = ? AND is_revoked = ? AND expires_at > ?", "password_reset", false, now).
		Find(&tokens).Error
	return tokens, err
}

func (r *gormPasswordResetRepository) UpdateUserPassword(userID int, hashedPassword string, now time.Time) error {
	return config.DB.Model(&models.User{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"password":  hashedPassword,
			"update_at": now,
		}).Error
}

func (r *gormPasswordResetRepository) RevokeToken(tokenID int, now time.Time) error {
	return config.DB.Model(&models.UserToken{}).
		Where("token_id = ?", tokenID).
		Updates(map[string]interface{}{
			"is_revoked": true,
			"updated_at": now,
		}).Error
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type resetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ForgotPassword handles password reset token generation and email dispatch.
func ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request payload",
		})
		return
	}

	req.Email = utils.SanitizeInput(req.Email)
	if !utils.ValidateEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid email format",
		})
		return
	}

	user, err := passwordResetRepo.FindUserByEmail(req.Email)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			respondServerError(c, "forgot password", err)
			return
		}

		// Always return success for non-existing users to avoid email enumeration.
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "If the email exists, a reset link has been sent.",
		})
		return
	}

	rawToken, err := passwordResetTokenGenerator()
	if err != nil {
		respondServerError(c, "forgot password", err)
		return
	}

	hashedToken, err := utils.HashPassword(rawToken)
	if err != nil {
		respondServerError(c, "forgot password", err)
		return
	}

	now := time.Now()
	if err := passwordResetRepo.RevokePasswordResetTokens(user.UserID, now); err != nil {
		respondServerError(c, "forgot password", err)
		return
	}

	token := models.UserToken{
		UserID:     user.UserID,
		TokenType:  "password_reset",
		Token:      hashedToken,
		ExpiresAt:  now.Add(passwordResetTokenTTL),
		IsRevoked:  false,
		DeviceInfo: "password_reset",
		IPAddress:  c.ClientIP(),
		UserAgent:  c.GetHeader("User-Agent"),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := passwordResetRepo.CreateUserToken(&token); err != nil {
		respondServerError(c, "forgot password", err)
		return
	}

	if err := sendPasswordResetEmail(*user, rawToken); err != nil {
		respondServerError(c, "forgot password", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "If the email exists, a reset link has been sent.",
	})
}

// ResetPassword handles password reset using a previously generated token.
func ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request payload",
		})
		return
	}

	now := time.Now()
	token, err := findActivePasswordResetToken(passwordResetRepo, req.Token, now)
	if err != nil {
		respondServerError(c, "reset password", err)
		return
	}
	if token == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid or expired reset token",
		})
		return
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		respondServerError(c, "reset password", err)
		return
	}

	if err := passwordResetRepo.UpdateUserPassword(token.UserID, hashedPassword, now); err != nil {
		respondServerError(c, "reset password", err)
		return
	}

	if err := passwordResetRepo.RevokeToken(token.TokenID, now); err != nil {
		respondServerError(c, "reset password", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password updated successfully",
	})
}

// findActivePasswordResetToken matches the raw token against active hashed
// tokens. Hashes are not reversible, so each candidate is compared.
func findActivePasswordResetToken(repo passwordResetRepository, rawToken string, now time.Time) (*models.UserToken, error) {
	tokens, err := repo.FindActivePasswordResetTokens(now)
	if err != nil {
		return nil, err
	}

	for i := range tokens {
		if utils.CheckPasswordHash(rawToken, tokens[i].Token) {
			return &tokens[i], nil
		}
	}
	return nil, nil
}

func sendPasswordResetEmail(user models.User, rawToken string) error {
	resetURL, err := buildResetURL(os.Getenv("FRONTEND_BASE_URL"), rawToken)
	if err != nil {
		return err
	}

	subject := "Restablecimiento de contraseña"
	body := fmt.Sprintf(
		"<p>Hola %s,</p>"+
			"<p>Recibimos una solicitud para restablecer tu contraseña. "+
			"El enlace vence en %d minutos.</p>"+
			"<p><a href=\"%s\">Restablecer contraseña</a></p>"+
			"<p>Si no hiciste esta solicitud, ignora este mensaje.</p>",
		user.Nombre, int(passwordResetTokenTTL.Minutes()), resetURL,
	)

	return sendMailFunc([]string{user.Email}, subject, body)
}

func buildResetURL(baseURL, token string) (string, error) {
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}

	parsed.Path = "/reset-password"
	query := parsed.Query()
	query.Set("token", token)
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}
