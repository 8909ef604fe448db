// Package list реализует HTTP-обработчик для постраничной выборки каталога.
//
// Handler разбирает параметры запроса (категория, тип, поиск, пагинация),
// собирает из них фильтр и возвращает страницу каталога в JSON-формате.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/pixel-market/internal/http/response"
	"github.com/magabrotheeeer/pixel-market/internal/lib/sl"
	"github.com/magabrotheeeer/pixel-market/internal/models"
)

// Handler обрабатывает запросы на выборку ресурсов каталога.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики выборки каталога.
type Service interface {
	List(ctx context.Context, filter models.AssetFilter) ([]*models.Asset, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Показать страницу каталога
// @Description Возвращает страницу ресурсов по фильтрам категории, типа, поиска и признака платности.
// @Tags Assets
// @Produce  json
// @Param category query string false "Категория"
// @Param asset_type query string false "Тип ресурса"
// @Param premium query bool false "Только платные ресурсы"
// @Param search query string false "Поиск по названию, автору и тегам"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение страницы"
// @Success 200 {object} map[string]any "Страница каталога"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /assets [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.asset.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := parseFilter(r)

	res, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list assets", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list assets"))
		return
	}

	log.Info("list assets", "count", len(res))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"list_count": len(res),
		"assets":     res,
	}))
}

// parseFilter собирает фильтр каталога из query-параметров запроса.
// Некорректные значения пагинации молча заменяются на умолчания.
func parseFilter(r *http.Request) models.AssetFilter {
	var filter models.AssetFilter

	if category := r.URL.Query().Get("category"); category != "" {
		filter.Category = &category
	}
	if assetType := r.URL.Query().Get("asset_type"); assetType != "" {
		filter.AssetType = &assetType
	}
	filter.PremiumOnly, _ = strconv.ParseBool(r.URL.Query().Get("premium"))
	filter.Search = r.URL.Query().Get("search")

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 0
	}
	filter.Limit = limit

	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	filter.Offset = offset

	return filter
}
