package handlers

import (
	"errors"
	"net/http"

	"github.com/ebralte/campground-api/backend/internal/middleware"
	"github.com/ebralte/campground-api/backend/internal/models"
	"github.com/ebralte/campground-api/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FavoriteHandler handles HTTP requests for per-user favorite sets
type FavoriteHandler struct {
	favoriteRepository repositories.FavoriteRepository
	campsiteRepository repositories.CampsiteRepository // To expand favorited campsites
	userRepository     repositories.UserRepository     // To expand the owning user
}

// NewFavoriteHandler creates a new FavoriteHandler
func NewFavoriteHandler(favoriteRepo repositories.FavoriteRepository, campsiteRepo repositories.CampsiteRepository, userRepo repositories.UserRepository) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteRepository: favoriteRepo,
		campsiteRepository: campsiteRepo,
		userRepository:     userRepo,
	}
}

// RegisterFavoriteRoutes registers favorite routes. Everything except the
// unsupported single-campsite GET requires an authenticated user.
func (h *FavoriteHandler) RegisterFavoriteRoutes(g *echo.Group) {
	g.OPTIONS("", Preflight)
	g.GET("", h.ListMyFavorites, middleware.RequireUser())
	g.POST("", h.AddFavorites, middleware.RequireUser())
	g.PUT("", OperationNotSupported, middleware.RequireUser())
	g.DELETE("", h.DeleteMyFavorites, middleware.RequireUser())

	g.OPTIONS("/:campsiteId", Preflight)
	g.GET("/:campsiteId", OperationNotSupported)
	g.POST("/:campsiteId", h.AddOneFavorite, middleware.RequireUser())
	g.PUT("/:campsiteId", OperationNotSupported, middleware.RequireUser())
	g.DELETE("/:campsiteId", h.RemoveOneFavorite, middleware.RequireUser())
}

// PopulatedFavorite is a favorite document with the user and campsite
// references expanded to full records
type PopulatedFavorite struct {
	models.Favorite
	User      models.UserCompact `json:"user"`
	Campsites []models.Campsite  `json:"campsites"`
}

// ListMyFavorites returns the requester's favorite document, expanded. A
// user without one gets an empty list, not an error.
func (h *FavoriteHandler) ListMyFavorites(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	favorite, err := h.favoriteRepository.GetFavoriteByUser(c.Request().Context(), currentUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrFavoriteNotFound) {
			return c.JSON(http.StatusOK, []PopulatedFavorite{})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	populated, err := h.populateFavorite(c, favorite)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, []PopulatedFavorite{*populated})
}

// AddFavorites bulk-adds campsites to the requester's favorite set with
// set-union semantics: ids already present are silently skipped, and the
// document is created on first use. One upserting write, no read-modify-save.
func (h *FavoriteHandler) AddFavorites(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var refs []models.CampsiteRef
	if err := c.Bind(&refs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	campsiteIDs, err := parseCampsiteRefs(refs)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid campsite")
	}
	if len(campsiteIDs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "No campsites provided")
	}

	favorite, err := h.favoriteRepository.AddCampsites(c.Request().Context(), currentUserID, campsiteIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, favorite)
}

// DeleteMyFavorites removes the requester's whole favorite document
func (h *FavoriteHandler) DeleteMyFavorites(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	favorite, err := h.favoriteRepository.DeleteFavorite(c.Request().Context(), currentUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrFavoriteNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "You do not have any favorites to delete.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, favorite)
}

// AddOneFavorite adds a single campsite to the requester's favorite set.
// Unlike the bulk path, a duplicate is an explicit conflict.
func (h *FavoriteHandler) AddOneFavorite(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	campsiteID, err := primitive.ObjectIDFromHex(c.Param("campsiteId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid campsite")
	}

	favorite, err := h.favoriteRepository.GetFavoriteByUser(c.Request().Context(), currentUserID)
	if err != nil && !errors.Is(err, repositories.ErrFavoriteNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if favorite != nil && favorite.Contains(campsiteID) {
		return echo.NewHTTPError(http.StatusBadRequest, "That campsite is already in the list of favorites!")
	}

	favorite, err = h.favoriteRepository.AddCampsites(c.Request().Context(), currentUserID, []primitive.ObjectID{campsiteID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, favorite)
}

// RemoveOneFavorite removes one campsite from the requester's favorite set
func (h *FavoriteHandler) RemoveOneFavorite(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	campsiteID, err := primitive.ObjectIDFromHex(c.Param("campsiteId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid campsite")
	}

	favorite, err := h.favoriteRepository.GetFavoriteByUser(c.Request().Context(), currentUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrFavoriteNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "There are no favorites to delete")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !favorite.Contains(campsiteID) {
		return echo.NewHTTPError(http.StatusBadRequest, "The campsite does not exist in favorites")
	}

	favorite, err = h.favoriteRepository.RemoveCampsite(c.Request().Context(), currentUserID, campsiteID)
	if err != nil {
		if errors.Is(err, repositories.ErrFavoriteNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "There are no favorites to delete")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, favorite)
}

// populateFavorite expands the user and campsite references of one
// favorite document
func (h *FavoriteHandler) populateFavorite(c echo.Context, favorite *models.Favorite) (*PopulatedFavorite, error) {
	populated := &PopulatedFavorite{
		Favorite:  *favorite,
		Campsites: []models.Campsite{},
	}

	user, err := h.userRepository.GetUserByID(favorite.UserID)
	if err == nil {
		populated.User = user.ToCompact()
	}

	for _, id := range favorite.Campsites {
		campsite, err := h.campsiteRepository.GetCampsiteByID(c.Request().Context(), id.Hex())
		if err != nil {
			if errors.Is(err, repositories.ErrCampsiteNotFound) {
				continue // stale reference, skip
			}
			return nil, err
		}
		populated.Campsites = append(populated.Campsites, *campsite)
	}
	return populated, nil
}

// parseCampsiteRefs converts and deduplicates a bulk-add payload. A single
// bad hex id rejects the whole request.
func parseCampsiteRefs(refs []models.CampsiteRef) ([]primitive.ObjectID, error) {
	seen := make(map[primitive.ObjectID]bool)
	ids := []primitive.ObjectID{}
	for _, ref := range refs {
		id, err := primitive.ObjectIDFromHex(ref.ID)
		if err != nil {
			return nil, err
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}
