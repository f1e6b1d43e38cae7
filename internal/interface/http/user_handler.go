package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/terrasapp/sales-api/internal/application"
	"github.com/terrasapp/sales-api/internal/domain/entity"
	"github.com/terrasapp/sales-api/pkg/paging"
	"github.com/terrasapp/sales-api/pkg/response"
	"github.com/terrasapp/sales-api/pkg/validation"
)

// UserService is the application surface the user handler depends on.
type UserService interface {
	Create(ctx context.Context, in application.CreateUserInput) (*entity.User, error)
	Search(ctx context.Context, parameter string, page, size *int) (paging.Page[entity.UserWithSales], error)
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	Update(ctx context.Context, id int64, in application.UpdateUserInput) (*entity.User, error)
	Delete(ctx context.Context, id int64) (*entity.User, error)
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
	Authenticate(ctx context.Context, login, password string) (*entity.User, string, error)
	RecoverPassword(ctx context.Context, mail string) (*entity.User, error)
}

type UserHandler struct {
	Service UserService
	Logger  *logrus.Logger
}

func NewUserHandler(s UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Service: s, Logger: logger}
}

type createUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Mail     string `json:"mail" binding:"required,email"`
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Mail     string `json:"mail" binding:"required,email"`
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type recoveryRequest struct {
	Mail string `json:"mail" binding:"required,email"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendErrorDetail(c, http.StatusInternalServerError, "error",
			"Falha ao gerar o cadastro do usuário, tente novamente mais tarde", validation.DetailString(err))
		return
	}

	user, err := h.Service.Create(c.Request.Context(), application.CreateUserInput{
		Name:     req.Name,
		Mail:     req.Mail,
		Login:    req.Login,
		Password: req.Password,
	})
	if err != nil {
		h.Logger.WithError(err).Error("user create failed")
		response.SendError(c, err, http.StatusInternalServerError, "error",
			"Falha ao gerar o cadastro do usuário, tente novamente mais tarde")
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Search(c *gin.Context) {
	parameter := c.Query("parameter")
	page := queryInt(c, "page")
	size := queryInt(c, "size")

	result, err := h.Service.Search(c.Request.Context(), parameter, page, size)
	if err != nil {
		h.Logger.WithError(err).Error("user search failed")
		response.SendError(c, err, http.StatusInternalServerError, "error",
			"Falha ao pesquisar usuários, tente novamente mais tarde")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *UserHandler) FindByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.SendErrorDetail(c, http.StatusInternalServerError, "error",
			"Falha ao pesquisar o usuário, tente novamente mais tarde", "id inválido")
		return
	}

	user, err := h.Service.FindByID(c.Request.Context(), id)
	if errors.Is(err, application.ErrUserNotFound) {
		response.SendError(c, nil, http.StatusNotFound, "warning", "Usuário não encontrado")
		return
	}
	if err != nil {
		h.Logger.WithError(err).Error("user lookup failed")
		response.SendError(c, err, http.StatusInternalServerError, "error",
			"Falha ao pesquisar o usuário, tente novamente mais tarde")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.SendErrorDetail(c, http.StatusInternalServerError, "error",
			"Falha ao alterar o cadastro do usuário, tente novamente mais tarde", "id inválido")
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendErrorDetail(c, http.StatusInternalServerError, "error",
			"Falha ao alterar o cadastro do usuário, tente novamente mais tarde", validation.DetailString(err))
		return
	}

	user, err := h.Service.Update(c.Request.Context(), id, application.UpdateUserInput{
		Name:     req.Name,
		Mail:     req.Mail,
		Login:    req.Login,
		Password: req.Password,
	})
	if errors.Is(err, application.ErrUserNotFound) {
		response.SendError(c, nil, http.StatusNotFound, "warning", "Usuário não encontrado")
		return
	}
	if err != nil {
		h.Logger.WithError(err).Error("user update failed")
		response.SendError(c, err, http.StatusInternalServerError, "error",
			"Falha ao alterar o cadastro do usuário, tente novamente mais tarde")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.SendErrorDetail(c, http.StatusInternalServerError, "error",
			"Falha ao deletar o seu cadastro, tente novamente mais tarde", "id inválido")
		return
	}

	user, err := h.Service.Delete(c.Request.Context(), id)
	if errors.Is(err, application.ErrUserNotFound) {
		response.SendError(c, nil, http.StatusNotFound, "warning", "Usuário não encontrado")
		return
	}
	if err != nil {
		h.Logger.WithError(err).Error("user delete failed")
		response.SendError(c, err, http.StatusInternalServerError, "error",
			"Falha ao deletar o seu cadastro, tente novamente mais tarde")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteAll(c *gin.Context) {
	if err := h.Service.DeleteAll(c.Request.Context()); err != nil {
		h.Logger.WithError(err).Error("user delete-all failed")
		response.SendError(c, err, http.StatusInternalServerError, "error",
			"Falha ao deletar o cadastro de todos usuários, tente novamente mais tarde")
		return
	}
	c.String(http.StatusOK, "Todos os usuários foram deletados")
}

// Count answers the legacy single-row aggregate shape: [{"countUsers": n}].
func (h *UserHandler) Count(c *gin.Context) {
	n, err := h.Service.Count(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("user count failed")
		response.SendError(c, err, http.StatusInternalServerError, "error",
			"Falha ao processar a contagem de usuários, tente novamente mais tarde")
		return
	}
	c.JSON(http.StatusOK, []gin.H{{"countUsers": n}})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendErrorDetail(c, http.StatusInternalServerError, "error",
			"Falha ao realizar a sua autenticação, tente novamente mais tarde", validation.DetailString(err))
		return
	}

	user, token, err := h.Service.Authenticate(c.Request.Context(), req.Login, req.Password)
	switch {
	case errors.Is(err, application.ErrInvalidCredentials):
		response.SendError(c, nil, http.StatusNotFound, "warning", "Login e/ou senha inválidos")
	case errors.Is(err, application.ErrInactiveUser):
		response.SendError(c, nil, http.StatusForbidden, "error",
			"O seu cadastro está inativo, tente novamente mais tarde")
	case err != nil:
		h.Logger.WithError(err).Error("authentication failed")
		response.SendError(c, err, http.StatusInternalServerError, "error",
			"Falha ao realizar a sua autenticação, tente novamente mais tarde")
	default:
		c.JSON(http.StatusOK, gin.H{"auth": true, "token": token, "user": user})
	}
}

func (h *UserHandler) RecoverPassword(c *gin.Context) {
	var req recoveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendErrorDetail(c, http.StatusInternalServerError, "error",
			"Falha ao processar a recuperação de senha, tente novamente mais tarde", validation.DetailString(err))
		return
	}

	user, err := h.Service.RecoverPassword(c.Request.Context(), req.Mail)
	switch {
	case errors.Is(err, application.ErrUserNotFound):
		response.SendError(c, nil, http.StatusNotFound, "warning", "Email não encontrado")
	case errors.Is(err, application.ErrInactiveUser):
		response.SendError(c, nil, http.StatusForbidden, "warning",
			"O seu cadastro está inativo, contate nosso o suporte técnico")
	case err != nil:
		h.Logger.WithError(err).Error("password recovery failed")
		response.SendError(c, err, http.StatusInternalServerError, "error",
			"Falha ao processar a recuperação de senha, tente novamente mais tarde")
	default:
		c.JSON(http.StatusOK, user)
	}
}

// queryInt parses an optional integer query parameter, returning nil when
// absent or malformed so the defaults apply downstream.
func queryInt(c *gin.Context, name string) *int {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
