// Package list реализует HTTP-обработчик просмотра корзины.
//
// Handler возвращает позиции корзины пользователя вместе с итоговой суммой.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/pixel-market/internal/http/middlewarectx"
	"github.com/magabrotheeeer/pixel-market/internal/http/response"
	"github.com/magabrotheeeer/pixel-market/internal/lib/sl"
	"github.com/magabrotheeeer/pixel-market/internal/models"
)

// Handler обрабатывает запросы на просмотр корзины.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики корзины.
type Service interface {
	List(ctx context.Context, userUID string) ([]*models.Asset, error)
	Total(ctx context.Context, userUID string) (int, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Показать корзину
// @Description Возвращает позиции корзины пользователя и итоговую сумму.
// @Tags Cart
// @Produce  json
// @Success 200 {object} map[string]any "Содержимое корзины"
// @Failure 401 {object} response.ErrorResponse "Пользователь не определен"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /cart [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	items, err := h.service.List(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list cart", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list cart"))
		return
	}

	total, err := h.service.Total(r.Context(), userUID)
	if err != nil {
		log.Error("failed to count cart total", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not count cart total"))
		return
	}

	log.Info("list cart", "count", len(items))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"items_count": len(items),
		"items":       items,
		"total":       total,
	}))
}
