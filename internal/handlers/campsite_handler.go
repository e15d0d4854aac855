package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ebralte/campground-api/backend/internal/middleware"
	"github.com/ebralte/campground-api/backend/internal/models"
	"github.com/ebralte/campground-api/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CampsiteHandler handles HTTP requests related to campsites and their
// embedded comments
type CampsiteHandler struct {
	campsiteRepository repositories.CampsiteRepository
	userRepository     repositories.UserRepository // To expand comment authors
}

// NewCampsiteHandler creates a new CampsiteHandler
func NewCampsiteHandler(campsiteRepo repositories.CampsiteRepository, userRepo repositories.UserRepository) *CampsiteHandler {
	return &CampsiteHandler{
		campsiteRepository: campsiteRepo,
		userRepository:     userRepo,
	}
}

// RegisterCampsiteRoutes registers campsite and comment routes. Reads are
// anonymous; campsite mutations are admin-gated and comment mutations are
// gated on the authenticated author.
func (h *CampsiteHandler) RegisterCampsiteRoutes(g *echo.Group) {
	g.OPTIONS("", Preflight)
	g.GET("", h.ListCampsites)
	g.POST("", h.CreateCampsite, middleware.RequireUser(), middleware.RequireAdmin())
	g.PUT("", OperationNotSupported, middleware.RequireUser())
	g.DELETE("", h.DeleteAllCampsites, middleware.RequireUser(), middleware.RequireAdmin())

	g.OPTIONS("/:campsiteId", Preflight)
	g.GET("/:campsiteId", h.GetCampsite)
	g.POST("/:campsiteId", OperationNotSupported, middleware.RequireUser())
	g.PUT("/:campsiteId", h.UpdateCampsite, middleware.RequireUser(), middleware.RequireAdmin())
	g.DELETE("/:campsiteId", h.DeleteCampsite, middleware.RequireUser(), middleware.RequireAdmin())

	g.OPTIONS("/:campsiteId/comments", Preflight)
	g.GET("/:campsiteId/comments", h.ListComments)
	g.POST("/:campsiteId/comments", h.AddComment, middleware.RequireUser())
	g.PUT("/:campsiteId/comments", OperationNotSupported, middleware.RequireUser())
	g.DELETE("/:campsiteId/comments", h.DeleteAllComments, middleware.RequireUser(), middleware.RequireAdmin())

	g.OPTIONS("/:campsiteId/comments/:commentId", Preflight)
	g.GET("/:campsiteId/comments/:commentId", h.GetComment)
	g.POST("/:campsiteId/comments/:commentId", OperationNotSupported, middleware.RequireUser())
	g.PUT("/:campsiteId/comments/:commentId", h.UpdateComment, middleware.RequireUser())
	g.DELETE("/:campsiteId/comments/:commentId", h.DeleteComment, middleware.RequireUser())
}

// PopulatedComment is a comment with its author reference expanded to the
// full user record
type PopulatedComment struct {
	models.Comment
	Author models.UserCompact `json:"author"`
}

// PopulatedCampsite is a campsite whose comment authors are expanded
type PopulatedCampsite struct {
	models.Campsite
	Comments []PopulatedComment `json:"comments"`
}

// ListCampsites returns all campsites with comment authors expanded
func (h *CampsiteHandler) ListCampsites(c echo.Context) error {
	campsites, err := h.campsiteRepository.GetAllCampsites(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	userMap := h.authorMap(campsites)

	populated := make([]PopulatedCampsite, len(campsites))
	for i, campsite := range campsites {
		populated[i] = populateCampsite(campsite, userMap)
	}
	return c.JSON(http.StatusOK, populated)
}

// CreateCampsite creates a new campsite. Admin only.
func (h *CampsiteHandler) CreateCampsite(c echo.Context) error {
	var req models.CreateCampsiteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	campsite := &models.Campsite{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Elevation:   req.Elevation,
		Cost:        req.Cost,
		Featured:    req.Featured,
		Comments:    []models.Comment{},
	}

	if err := h.campsiteRepository.CreateCampsite(c.Request().Context(), campsite); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, campsite)
}

// DeleteAllCampsites removes every campsite, comments included. Admin only.
func (h *CampsiteHandler) DeleteAllCampsites(c echo.Context) error {
	count, err := h.campsiteRepository.DeleteAllCampsites(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"acknowledged": true, "deletedCount": count})
}

// GetCampsite retrieves one campsite with comment authors expanded
func (h *CampsiteHandler) GetCampsite(c echo.Context) error {
	campsiteID := c.Param("campsiteId")

	campsite, err := h.campsiteRepository.GetCampsiteByID(c.Request().Context(), campsiteID)
	if err != nil {
		return campsiteLookupError(err, campsiteID)
	}

	userMap := h.authorMap([]models.Campsite{*campsite})
	return c.JSON(http.StatusOK, populateCampsite(*campsite, userMap))
}

// UpdateCampsite merges the provided fields into an existing campsite.
// Admin only.
func (h *CampsiteHandler) UpdateCampsite(c echo.Context) error {
	campsiteID := c.Param("campsiteId")

	var req models.UpdateCampsiteRequest
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
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.Image != nil {
		update["image"] = *req.Image
	}
	if req.Elevation != nil {
		update["elevation"] = *req.Elevation
	}
	if req.Cost != nil {
		update["cost"] = *req.Cost
	}
	if req.Featured != nil {
		update["featured"] = *req.Featured
	}

	campsite, err := h.campsiteRepository.UpdateCampsite(c.Request().Context(), campsiteID, update)
	if err != nil {
		return campsiteLookupError(err, campsiteID)
	}

	return c.JSON(http.StatusOK, campsite)
}

// DeleteCampsite removes one campsite and returns the deleted record.
// Admin only.
func (h *CampsiteHandler) DeleteCampsite(c echo.Context) error {
	campsiteID := c.Param("campsiteId")

	campsite, err := h.campsiteRepository.DeleteCampsite(c.Request().Context(), campsiteID)
	if err != nil {
		return campsiteLookupError(err, campsiteID)
	}

	return c.JSON(http.StatusOK, campsite)
}

// ListComments returns the comment sequence of one campsite with authors
// expanded
func (h *CampsiteHandler) ListComments(c echo.Context) error {
	campsiteID := c.Param("campsiteId")

	campsite, err := h.campsiteRepository.GetCampsiteByID(c.Request().Context(), campsiteID)
	if err != nil {
		return campsiteLookupError(err, campsiteID)
	}

	userMap := h.authorMap([]models.Campsite{*campsite})

	comments := make([]PopulatedComment, len(campsite.Comments))
	for i, comment := range campsite.Comments {
		comments[i] = PopulatedComment{Comment: comment, Author: userMap[comment.Author]}
	}
	return c.JSON(http.StatusOK, comments)
}

// AddComment appends a comment to a campsite. The author is always the
// authenticated requester; any author in the payload is ignored.
func (h *CampsiteHandler) AddComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	campsiteID := c.Param("campsiteId")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	campsite, err := h.campsiteRepository.GetCampsiteByID(c.Request().Context(), campsiteID)
	if err != nil {
		return campsiteLookupError(err, campsiteID)
	}

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		Rating:    req.Rating,
		Text:      req.Text,
		Author:    currentUserID,
		CreatedAt: time.Now(),
	}
	campsite.Comments = append(campsite.Comments, comment)

	if err := h.campsiteRepository.ReplaceComments(c.Request().Context(), campsiteID, campsite.Comments); err != nil {
		return campsiteLookupError(err, campsiteID)
	}

	return c.JSON(http.StatusOK, campsite)
}

// DeleteAllComments empties a campsite's comment sequence. Admin only.
func (h *CampsiteHandler) DeleteAllComments(c echo.Context) error {
	campsiteID := c.Param("campsiteId")

	campsite, err := h.campsiteRepository.GetCampsiteByID(c.Request().Context(), campsiteID)
	if err != nil {
		return campsiteLookupError(err, campsiteID)
	}

	campsite.Comments = []models.Comment{}
	if err := h.campsiteRepository.ReplaceComments(c.Request().Context(), campsiteID, campsite.Comments); err != nil {
		return campsiteLookupError(err, campsiteID)
	}

	return c.JSON(http.StatusOK, campsite)
}

// GetComment retrieves one comment with its author expanded. A missing
// campsite and a missing comment produce distinct 404s.
func (h *CampsiteHandler) GetComment(c echo.Context) error {
	campsiteID := c.Param("campsiteId")
	commentID := c.Param("commentId")

	campsite, err := h.campsiteRepository.GetCampsiteByID(c.Request().Context(), campsiteID)
	if err != nil {
		return campsiteLookupError(err, campsiteID)
	}

	idx := findCommentIndex(campsite.Comments, commentID)
	if idx < 0 {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Comment %s not found", commentID))
	}

	comment := campsite.Comments[idx]
	userMap := h.authorMap([]models.Campsite{*campsite})
	return c.JSON(http.StatusOK, PopulatedComment{Comment: comment, Author: userMap[comment.Author]})
}

// UpdateComment patches the rating and/or text of one comment. Only the
// comment's author may do this; omitted fields stay untouched.
func (h *CampsiteHandler) UpdateComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	campsiteID := c.Param("campsiteId")
	commentID := c.Param("commentId")

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	campsite, err := h.campsiteRepository.GetCampsiteByID(c.Request().Context(), campsiteID)
	if err != nil {
		return campsiteLookupError(err, campsiteID)
	}

	idx := findCommentIndex(campsite.Comments, commentID)
	if idx < 0 {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Comment %s not found", commentID))
	}

	if campsite.Comments[idx].Author != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not allowed to update this comment.")
	}

	if req.Rating != nil {
		campsite.Comments[idx].Rating = *req.Rating
	}
	if req.Text != nil {
		campsite.Comments[idx].Text = *req.Text
	}

	if err := h.campsiteRepository.ReplaceComments(c.Request().Context(), campsiteID, campsite.Comments); err != nil {
		return campsiteLookupError(err, campsiteID)
	}

	return c.JSON(http.StatusOK, campsite)
}

// DeleteComment removes exactly one comment. Only the comment's author may
// do this.
func (h *CampsiteHandler) DeleteComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	campsiteID := c.Param("campsiteId")
	commentID := c.Param("commentId")

	campsite, err := h.campsiteRepository.GetCampsiteByID(c.Request().Context(), campsiteID)
	if err != nil {
		return campsiteLookupError(err, campsiteID)
	}

	idx := findCommentIndex(campsite.Comments, commentID)
	if idx < 0 {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Comment %s not found", commentID))
	}

	if campsite.Comments[idx].Author != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not allowed to delete this comment.")
	}

	campsite.Comments = append(campsite.Comments[:idx], campsite.Comments[idx+1:]...)

	if err := h.campsiteRepository.ReplaceComments(c.Request().Context(), campsiteID, campsite.Comments); err != nil {
		return campsiteLookupError(err, campsiteID)
	}

	return c.JSON(http.StatusOK, campsite)
}

// authorMap builds a user lookup table for every comment author appearing
// in the given campsites
func (h *CampsiteHandler) authorMap(campsites []models.Campsite) map[uint]models.UserCompact {
	seen := make(map[uint]bool)
	ids := []uint{}
	for _, campsite := range campsites {
		for _, comment := range campsite.Comments {
			if !seen[comment.Author] {
				seen[comment.Author] = true
				ids = append(ids, comment.Author)
			}
		}
	}

	userMap := make(map[uint]models.UserCompact)
	users, err := h.userRepository.GetUsersByIDs(ids)
	if err != nil {
		return userMap
	}
	for i := range users {
		userMap[users[i].ID] = users[i].ToCompact()
	}
	return userMap
}

func populateCampsite(campsite models.Campsite, userMap map[uint]models.UserCompact) PopulatedCampsite {
	comments := make([]PopulatedComment, len(campsite.Comments))
	for i, comment := range campsite.Comments {
		comments[i] = PopulatedComment{Comment: comment, Author: userMap[comment.Author]}
	}
	return PopulatedCampsite{Campsite: campsite, Comments: comments}
}

func findCommentIndex(comments []models.Comment, commentID string) int {
	for i := range comments {
		if comments[i].ID.Hex() == commentID {
			return i
		}
	}
	return -1
}

func campsiteLookupError(err error, campsiteID string) error {
	if errors.Is(err, repositories.ErrInvalidID) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid campsite")
	}
	if errors.Is(err, repositories.ErrCampsiteNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Campsite %s not found", campsiteID))
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
