// Package download реализует HTTP-обработчик скачивания ресурса.
//
// Handler извлекает ID ресурса из URL и UID пользователя из контекста,
// проверяет право на скачивание через сервис и возвращает ссылку на файл.
// Платный ресурс доступен только после покупки.
package download

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

// Handler обрабатывает запросы на скачивание ресурса.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики скачивания.
type Service interface {
	Download(ctx context.Context, userUID string, assetID int) (string, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Скачать ресурс
// @Description Возвращает ссылку на файл ресурса. Платный ресурс доступен только после покупки.
// @Tags Assets
// @Produce  json
// @Param id path int true "ID ресурса"
// @Success 200 {object} map[string]any "Ссылка на файл"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не определен"
// @Failure 403 {object} response.ErrorResponse "Платный ресурс не куплен"
// @Failure 404 {object} response.ErrorResponse "Ресурс не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /assets/{id}/download [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.asset.download"

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

	ref, err := h.service.Download(r.Context(), userUID, id)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			log.Error("asset not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("asset not found"))
		case errors.Is(err, models.ErrPremiumOnly):
			log.Error("premium asset is not purchased", slog.Int("id", id))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("premium asset requires purchase"))
		default:
			log.Error("failed to download asset", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not download asset"))
		}
		return
	}

	log.Info("asset downloaded", slog.Int("asset_id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"image_ref": ref,
	}))
}
