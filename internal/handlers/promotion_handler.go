package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ebralte/campground-api/backend/internal/middleware"
	"github.com/ebralte/campground-api/backend/internal/models"
	"github.com/ebralte/campground-api/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
)

// PromotionHandler handles HTTP requests related to promotions
type PromotionHandler struct {
	promotionRepository repositories.PromotionRepository
}

// NewPromotionHandler creates a new PromotionHandler
func NewPromotionHandler(promotionRepo repositories.PromotionRepository) *PromotionHandler {
	return &PromotionHandler{promotionRepository: promotionRepo}
}

// RegisterPromotionRoutes registers promotion routes: anonymous reads,
// admin-gated mutations
func (h *PromotionHandler) RegisterPromotionRoutes(g *echo.Group) {
	g.OPTIONS("", Preflight)
	g.GET("", h.ListPromotions)
	g.POST("", h.CreatePromotion, middleware.RequireUser(), middleware.RequireAdmin())
	g.PUT("", OperationNotSupported, middleware.RequireUser())
	g.DELETE("", h.DeleteAllPromotions, middleware.RequireUser(), middleware.RequireAdmin())

	g.OPTIONS("/:promotionId", Preflight)
	g.GET("/:promotionId", h.GetPromotion)
	g.POST("/:promotionId", OperationNotSupported, middleware.RequireUser())
	g.PUT("/:promotionId", h.UpdatePromotion, middleware.RequireUser(), middleware.RequireAdmin())
	g.DELETE("/:promotionId", h.DeletePromotion, middleware.RequireUser(), middleware.RequireAdmin())
}

// ListPromotions returns all promotions
func (h *PromotionHandler) ListPromotions(c echo.Context) error {
	promotions, err := h.promotionRepository.GetAllPromotions(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, promotions)
}

// CreatePromotion creates a new promotion. Admin only.
func (h *PromotionHandler) CreatePromotion(c echo.Context) error {
	var req models.CreatePromotionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	promotion := &models.Promotion{
		Name:        req.Name,
		Image:       req.Image,
		Cost:        req.Cost,
		Description: req.Description,
		Featured:    req.Featured,
	}

	if err := h.promotionRepository.CreatePromotion(c.Request().Context(), promotion); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, promotion)
}

// DeleteAllPromotions removes every promotion. Admin only.
func (h *PromotionHandler) DeleteAllPromotions(c echo.Context) error {
	count, err := h.promotionRepository.DeleteAllPromotions(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"acknowledged": true, "deletedCount": count})
}

// GetPromotion retrieves one promotion
func (h *PromotionHandler) GetPromotion(c echo.Context) error {
	promotionID := c.Param("promotionId")

	promotion, err := h.promotionRepository.GetPromotionByID(c.Request().Context(), promotionID)
	if err != nil {
		return promotionLookupError(err, promotionID)
	}

	return c.JSON(http.StatusOK, promotion)
}

// UpdatePromotion merges the provided fields into an existing promotion.
// Admin only.
func (h *PromotionHandler) UpdatePromotion(c echo.Context) error {
	promotionID := c.Param("promotionId")

	var req models.UpdatePromotionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	update := bson.M{}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Image != nil {
		update["image"] = *req.Image
	}
	if req.Cost != nil {
		update["cost"] = *req.Cost
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.Featured != nil {
		update["featured"] = *req.Featured
	}

	promotion, err := h.promotionRepository.UpdatePromotion(c.Request().Context(), promotionID, update)
	if err != nil {
		return promotionLookupError(err, promotionID)
	}

	return c.JSON(http.StatusOK, promotion)
}

// DeletePromotion removes one promotion and returns the deleted record.
// Admin only.
func (h *PromotionHandler) DeletePromotion(c echo.Context) error {
	promotionID := c.Param("promotionId")

	promotion, err := h.promotionRepository.DeletePromotion(c.Request().Context(), promotionID)
	if err != nil {
		return promotionLookupError(err, promotionID)
	}

	return c.JSON(http.StatusOK, promotion)
}

func promotionLookupError(err error, promotionID string) error {
	if errors.Is(err, repositories.ErrInvalidID) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid promotion")
	}
	if errors.Is(err, repositories.ErrPromotionNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Promotion %s not found", promotionID))
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
