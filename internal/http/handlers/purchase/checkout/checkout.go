// Package checkout реализует HTTP-обработчик оформления заказа.
//
// Handler извлекает пользователя из контекста и выкупает всю корзину одной
// атомарной операцией: либо создаются все покупки и корзина очищается,
// либо ни одно состояние не меняется.
package checkout

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/pixel-market/internal/http/middlewarectx"
	"github.com/magabrotheeeer/pixel-market/internal/http/response"
	"github.com/magabrotheeeer/pixel-market/internal/lib/sl"
	"github.com/magabrotheeeer/pixel-market/internal/models"
)

// Handler обрабатывает запросы на оформление заказа.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики оформления заказа.
type Service interface {
	Checkout(ctx context.Context, username, userUID string) (*models.Transaction, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Оформить заказ
// @Description Выкупает все позиции корзины одной атомарной операцией и очищает корзину.
// @Tags Purchases
// @Produce  json
// @Success 200 {object} map[string]any "Данные созданной транзакции"
// @Failure 400 {object} response.ErrorResponse "Корзина пуста"
// @Failure 401 {object} response.ErrorResponse "Пользователь не определен"
// @Failure 409 {object} response.ErrorResponse "Ресурс из корзины уже куплен"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при оформлении заказа"
// @Router /checkout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.purchase.checkout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	trx, err := h.service.Checkout(r.Context(), username, userUID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrEmptyCart):
			log.Error("cart is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("cart is empty"))
		case errors.Is(err, models.ErrAlreadyPurchased):
			log.Error("cart contains already purchased asset", sl.Err(err))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("cart contains already purchased asset"))
		default:
			log.Error("failed to checkout", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not checkout"))
		}
		return
	}

	log.Info("checkout completed",
		slog.Int("transaction_id", trx.ID),
		slog.Int("total", trx.Total))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"transaction": trx,
	}))
}
