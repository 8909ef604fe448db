// Package add реализует HTTP-обработчик добавления ресурса в корзину.
//
// Handler извлекает ID ресурса из URL и UID пользователя из контекста,
// добавляет ресурс в корзину через сервис. Повторное добавление безвредно,
// уже купленный ресурс добавить нельзя.
package add

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/pixel-market/internal/http/middlewarectx"
	"github.com/magabrotheeeer/pixel-market/internal/http/response"
	"github.com/magabrotheeeer/pixel-market/internal/lib/sl"
	"github.com/magabrotheeeer/pixel-market/internal/models"
)

// Handler обрабатывает запросы на добавление ресурса в корзину.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики корзины.
type Service interface {
	Add(ctx context.Context, userUID string, assetID int) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Добавить ресурс в корзину
// @Description Кладёт ресурс в корзину пользователя. Повторное добавление не создаёт дубликат.
// @Tags Cart
// @Produce  json
// @Param id path int true "ID ресурса"
// @Success 200 {object} response.Response "Ресурс добавлен"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не определен"
// @Failure 404 {object} response.ErrorResponse "Ресурс не найден"
// @Failure 409 {object} response.ErrorResponse "Ресурс уже куплен"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /cart/{id} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.add"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.Add(r.Context(), userUID, id); err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			log.Error("asset not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("asset not found"))
		case errors.Is(err, models.ErrAlreadyOwned):
			log.Error("asset already owned", slog.Int("id", id))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("asset already purchased"))
		default:
			log.Error("failed to add asset to cart", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not add asset to cart"))
		}
		return
	}

	log.Info("asset added to cart", slog.Int("asset_id", id))
	render.JSON(w, r, response.OK())
}
