package auth

import (
	"errors"
	"time"

	"github.com/counterclone/indrita-blog-sub000/internal/middleware"
	"github.com/counterclone/indrita-blog-sub000/internal/models"
	"github.com/counterclone/indrita-blog-sub000/internal/pkg/jwt"
	"github.com/counterclone/indrita-blog-sub000/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 7 * 24 * time.Hour

// ErrBadCredentials covers both unknown-user and wrong-password so the
// response never reveals which one failed.
var ErrBadCredentials = errors.New("invalid username or password")

// Service authenticates admin users.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Login verifies credentials and returns a signed token with the user's role.
func (s *Service) Login(username, password string) (string, *models.UserModel, error) {
	var user models.UserModel
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrBadCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrBadCredentials
	}

	token, err := jwt.Sign(user.ID, user.Role, tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// EnsureAdmin creates the initial admin account when the users table is
// empty. Called once on startup.
func (s *Service) EnsureAdmin(username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	var count int64
	if err := s.db.Model(&models.UserModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.db.Create(&models.UserModel{
		Username: username,
		Password: string(hash),
		Role:     middleware.RoleAdmin,
	}).Error
}

// Handler handles auth HTTP requests.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/auth")

	g.POST("/login", h.login)
	g.GET("/check", authMW, h.check)
}

type loginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// login POST /auth/login
func (h *Handler) login(c *gin.Context) {
	var dto loginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, user, err := h.svc.Login(dto.Username, dto.Password)
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			response.Unauthorized(c)
			return
		}
		response.InternalError(c, err)
		return
	}

	response.OK(c, gin.H{
		"token":    token,
		"username": user.Username,
		"role":     user.Role,
	})
}

// check GET /auth/check  [admin]
func (h *Handler) check(c *gin.Context) {
	response.OK(c, gin.H{
		"authenticated": true,
		"userId":        c.GetString(middleware.ContextKeyUserID),
		"role":          c.GetString(middleware.ContextKeyRole),
	})
}
