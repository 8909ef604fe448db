// Package clear реализует HTTP-обработчик очистки корзины.
package clear

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/pixel-market/internal/http/middlewarectx"
	"github.com/magabrotheeeer/pixel-market/internal/http/response"
	"github.com/magabrotheeeer/pixel-market/internal/lib/sl"
)

// Handler обрабатывает запросы на очистку корзины.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики корзины.
type Service interface {
	Clear(ctx context.Context, userUID string) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Очистить корзину
// @Description Удаляет все позиции из корзины пользователя. Пустая корзина не считается ошибкой.
// @Tags Cart
// @Produce  json
// @Success 200 {object} response.Response "Корзина очищена"
// @Failure 401 {object} response.ErrorResponse "Пользователь не определен"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /cart [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.clear"

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

	if err := h.service.Clear(r.Context(), userUID); err != nil {
		log.Error("failed to clear cart", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not clear cart"))
		return
	}

	log.Info("cart cleared")
	render.JSON(w, r, response.OK())
}
