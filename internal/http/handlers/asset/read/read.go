// Package read реализует HTTP-обработчик для получения карточки ресурса по ID.
//
// Handler извлекает ID из URL-параметров, вызывает бизнес-логику для чтения
// ресурса, регистрирует просмотр и возвращает данные ресурса в JSON-формате.
//
// В случае ошибок формирует соответствующие HTTP-ответы с описанием проблемы.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/pixel-market/internal/http/response"
	"github.com/magabrotheeeer/pixel-market/internal/lib/sl"
	"github.com/magabrotheeeer/pixel-market/internal/models"
)

// Handler обрабатывает запросы на получение ресурса по уникальному идентификатору.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики каталога
}

// Service описывает интерфейс бизнес-логики чтения ресурса.
type Service interface {
	Read(ctx context.Context, id int) (*models.Asset, error)
	RecordView(ctx context.Context, id int)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить карточку ресурса
// @Description Возвращает данные ресурса по ID и регистрирует просмотр.
// @Tags Assets
// @Produce  json
// @Param id path int true "ID ресурса"
// @Success 200 {object} map[string]any "Данные ресурса"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Ресурс не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /assets/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.asset.read"

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

	res, err := h.service.Read(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Error("asset not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("asset not found"))
			return
		}
		log.Error("failed to read asset", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read asset"))
		return
	}

	h.service.RecordView(r.Context(), id)

	log.Info("success to read asset", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"asset": res,
	}))
}
