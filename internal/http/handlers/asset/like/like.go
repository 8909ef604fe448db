// Package like реализует HTTP-обработчик переключения лайка ресурса.
//
// Handler извлекает ID ресурса из URL и UID пользователя из контекста,
// переключает лайк через сервис и возвращает новое состояние.
package like

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

// Handler обрабатывает запросы на переключение лайка.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики лайков.
type Service interface {
	ToggleLike(ctx context.Context, userUID string, assetID int) (bool, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Переключить лайк ресурса
// @Description Ставит лайк ресурсу или снимает его, если лайк уже стоит.
// @Tags Assets
// @Produce  json
// @Param id path int true "ID ресурса"
// @Success 200 {object} map[string]any "Новое состояние лайка"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не определен"
// @Failure 404 {object} response.ErrorResponse "Ресурс не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /assets/{id}/like [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.asset.like"

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

	liked, err := h.service.ToggleLike(r.Context(), userUID, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Error("asset not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("asset not found"))
			return
		}
		log.Error("failed to toggle like", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not toggle like"))
		return
	}

	log.Info("toggled like", slog.Int("asset_id", id), slog.Bool("liked", liked))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"liked": liked,
	}))
}
