package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/terrasapp/sales-api/internal/application"
	"github.com/terrasapp/sales-api/internal/domain/entity"
	"github.com/terrasapp/sales-api/pkg/paging"
	"github.com/terrasapp/sales-api/pkg/response"
	"github.com/terrasapp/sales-api/pkg/validation"
)

// SaleService is the application surface the sale handler depends on.
type SaleService interface {
	Create(ctx context.Context, in application.SaleInput) (*entity.Sale, error)
	Import(ctx context.Context, inputs []application.SaleInput) error
	Search(ctx context.Context, parameter string, page, size *int) (paging.Page[entity.Sale], error)
	FindByID(ctx context.Context, id int64) (*entity.Sale, error)
	Update(ctx context.Context, id int64, in application.SaleInput) (*entity.Sale, error)
	Delete(ctx context.Context, id int64) (*entity.Sale, error)
	DeleteAll(ctx context.Context) error
	Metrics(ctx context.Context) (entity.SalesMetrics, error)
}

type SaleHandler struct {
	Service SaleService
	Logger  *logrus.Logger
}

func NewSaleHandler(s SaleService, logger *logrus.Logger) *SaleHandler {
	return &SaleHandler{Service: s, Logger: logger}
}

type saleRequest struct {
	PurchaserName   string  `json:"purchaserName" binding:"required"`
	ItemDescription string  `json:"itemDescription" binding:"required"`
	ItemPrice       float64 `json:"itemPrice" binding:"required,gte=0"`
	PurchaseCount   int     `json:"purchaseCount" binding:"required,gte=1"`
	MerchantAddress string  `json:"merchantAddress" binding:"required"`
	MerchantName    string  `json:"merchantName" binding:"required"`
	UserID          *int64  `json:"userId"`
}

func (r saleRequest) toInput() application.SaleInput {
	return application.SaleInput{
		PurchaserName:   r.PurchaserName,
		ItemDescription: r.ItemDescription,
		ItemPrice:       r.ItemPrice,
		PurchaseCount:   r.PurchaseCount,
		MerchantAddress: r.MerchantAddress,
		MerchantName:    r.MerchantName,
		UserID:          r.UserID,
	}
}

func (h *SaleHandler) Create(c *gin.Context) {
	var req saleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendErrorDetail(c, http.StatusInternalServerError, "error",
			"Falha ao gerar o cadastro da venda, tente novamente mais tarde", validation.DetailString(err))
		return
	}

	sale, err := h.Service.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.Logger.WithError(err).Error("sale create failed")
		response.SendError(c, err, http.StatusInternalServerError, "error",
			"Falha ao gerar o cadastro da venda, tente novamente mais tarde")
		return
	}
	c.JSON(http.StatusCreated, sale)
}

// Import receives an array of sales and persists all of them in one
// transaction. Answers a bare "OK" on success.
func (h *SaleHandler) Import(c *gin.Context) {
	var reqs []saleRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		response.SendErrorDetail(c, http.StatusInternalServerError, "error",
			"Falha ao gerar o cadastro da venda, tente novamente mais tarde", validation.DetailString(err))
		return
	}

	inputs := make([]application.SaleInput, 0, len(reqs))
	for _, r := range reqs {
		inputs = append(inputs, r.toInput())
	}

	if err := h.Service.Import(c.Request.Context(), inputs); err != nil {
		h.Logger.WithError(err).Error("sale import failed")
		response.SendError(c, err, http.StatusInternalServerError, "error",
			"Falha ao gerar o cadastro da venda, tente novamente mais tarde")
		return
	}
	c.String(http.StatusCreated, "OK")
}

func (h *SaleHandler) Search(c *gin.Context) {
	parameter := c.Query("parameter")
	page := queryInt(c, "page")
	size := queryInt(c, "size")

	result, err := h.Service.Search(c.Request.Context(), parameter, page, size)
	if err != nil {
		h.Logger.WithError(err).Error("sale search failed")
		response.SendError(c, err, http.StatusInternalServerError, "error",
			"Falha ao pesquisar sales, tente novamente mais tarde")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *SaleHandler) FindByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.SendErrorDetail(c, http.StatusInternalServerError, "error",
			"Falha ao pesquisar a venda, tente novamente mais tarde", "id inválido")
		return
	}

	sale, err := h.Service.FindByID(c.Request.Context(), id)
	if errors.Is(err, application.ErrSaleNotFound) {
		response.SendError(c, nil, http.StatusNotFound, "warning", "Sale não encontrado")
		return
	}
	if err != nil {
		h.Logger.WithError(err).Error("sale lookup failed")
		response.SendError(c, err, http.StatusInternalServerError, "error",
			"Falha ao pesquisar a venda, tente novamente mais tarde")
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (h *SaleHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.SendErrorDetail(c, http.StatusInternalServerError, "error",
			"Falha ao alterar o cadastro da venda, tente novamente mais tarde", "id inválido")
		return
	}

	var req saleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendErrorDetail(c, http.StatusInternalServerError, "error",
			"Falha ao alterar o cadastro da venda, tente novamente mais tarde", validation.DetailString(err))
		return
	}

	sale, err := h.Service.Update(c.Request.Context(), id, req.toInput())
	if errors.Is(err, application.ErrSaleNotFound) {
		response.SendError(c, nil, http.StatusNotFound, "warning", "Sale não encontrado")
		return
	}
	if err != nil {
		h.Logger.WithError(err).Error("sale update failed")
		response.SendError(c, err, http.StatusInternalServerError, "error",
			"Falha ao alterar o cadastro da venda, tente novamente mais tarde")
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (h *SaleHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.SendErrorDetail(c, http.StatusInternalServerError, "error",
			"Falha ao deletar o cadastro da venda, tente novamente mais tarde", "id inválido")
		return
	}

	sale, err := h.Service.Delete(c.Request.Context(), id)
	if errors.Is(err, application.ErrSaleNotFound) {
		response.SendError(c, nil, http.StatusNotFound, "warning", "Sale não encontrado")
		return
	}
	if err != nil {
		h.Logger.WithError(err).Error("sale delete failed")
		response.SendError(c, err, http.StatusInternalServerError, "error",
			"Falha ao deletar o cadastro da venda, tente novamente mais tarde")
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (h *SaleHandler) DeleteAll(c *gin.Context) {
	if err := h.Service.DeleteAll(c.Request.Context()); err != nil {
		h.Logger.WithError(err).Error("sale delete-all failed")
		response.SendError(c, err, http.StatusInternalServerError, "error",
			"Falha ao deletar o cadastro de todas vendas, tente novamente mais tarde")
		return
	}
	c.String(http.StatusOK, "Todos as vendas foram deletados")
}

// Metrics answers the legacy triple: [totalSales, purchasedItems, grossRevenue].
func (h *SaleHandler) Metrics(c *gin.Context) {
	m, err := h.Service.Metrics(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("sale metrics failed")
		response.SendError(c, err, http.StatusInternalServerError, "error",
			"Falha ao obter os indicadores de vendas, tente novamente mais tarde")
		return
	}
	c.JSON(http.StatusOK, []any{m.TotalSales, m.PurchasedItems, m.GrossRevenue})
}
