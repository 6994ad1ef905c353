package handler

import (
	"strconv"

	"skillmatch/internal/delivery/http/dto"
	"skillmatch/internal/delivery/http/middleware"
	"skillmatch/internal/pkg/response"
	"skillmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RecommendationHandler struct {
	uc usecase.RecommendationUsecase
}

func NewRecommendationHandler(uc usecase.RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/recommendations", h.GetRecommendations)
}

func (h *RecommendationHandler) GetRecommendations(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	st, err := dto.ParseStrategy(c.Query("strategy"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, err.Error(), nil, err)
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "limit must be an integer", nil, err)
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "offset must be an integer", nil, err)
	}
	minScore := 0.0
	if s := c.Query("min_score"); s != "" {
		minScore, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "min_score must be a number", nil, err)
		}
	}

	page, err := h.uc.GetRecommendations(c.Context(), userID, usecase.RecommendationParams{
		Strategy: st,
		Limit:    limit,
		Offset:   offset,
		MinScore: minScore,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Page(c, page.Items, response.Meta{
		Limit:  page.Limit,
		Offset: page.Offset,
		Count:  page.Total,
	})
}

func queryInt(c fiber.Ctx, key string, def int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}
