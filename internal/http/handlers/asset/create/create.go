// Package create реализует HTTP-обработчик для публикации новых ресурсов в каталоге.
//
// Handler принимает JSON-запрос с данными ресурса, валидирует их, извлекает UID
// пользователя из контекста, вызывает бизнес-логику создания ресурса через сервис
// и возвращает ID созданной записи в JSON-формате.
//
// В случае ошибок формируются соответствующие HTTP-ответы с описанием проблемы.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/pixel-market/internal/http/middlewarectx"
	"github.com/magabrotheeeer/pixel-market/internal/http/response"
	"github.com/magabrotheeeer/pixel-market/internal/lib/sl"
	"github.com/magabrotheeeer/pixel-market/internal/models"
)

// Handler управляет HTTP-запросами на публикацию новых ресурсов.
//
// Использует логгер для записи операций и ошибок,
// сервис бизнес-логики для создания ресурса,
// а также валидатор для проверки структуры входных данных.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики каталога
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания ресурса.
type Service interface {
	Create(ctx context.Context, authorUID string, req models.DummyAsset) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Опубликовать новый ресурс
// @Description Добавляет новый ресурс в каталог. Возвращает ID созданной записи.
// @Tags Assets
// @Accept  json
// @Produce  json
// @Param request body models.DummyAsset true "Данные нового ресурса"
// @Success 200 {object} map[string]any "Успешная публикация ресурса"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не определен"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании ресурса"
// @Router /assets [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.asset.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyAsset
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	id, err := h.service.Create(r.Context(), userUID, req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidAsset) {
			log.Error("invalid asset fields", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}
		log.Error("failed to create asset", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create asset"))
		return
	}

	log.Info("success to create asset", slog.Any("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"asset_id": id,
	}))
}
