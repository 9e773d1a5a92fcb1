// Package upload реализует HTTP-обработчик загрузки скана документа.
//
// Файл принимается из multipart-формы, проверяется на тип и размер до
// записи на диск и прикрепляется к черновику анкеты.
package upload

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/nerdshive/membership-portal/internal/http/response"
	"github.com/nerdshive/membership-portal/internal/lib/sl"
	"github.com/nerdshive/membership-portal/internal/registration"
)

// Handler обрабатывает HTTP-запросы загрузки документов.
type Handler struct {
	log     *slog.Logger
	service Service
	files   FileStore
	bucket  string
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	AttachDocument(ctx context.Context, id string, ref registration.FileRef) (*registration.Draft, error)
}

// FileStore описывает хранилище загружаемых файлов.
type FileStore interface {
	Save(bucket, originalName string, r io.Reader) (string, error)
}

// New создает новый экземпляр Handler. bucket — подкаталог хранилища
// для сканов документов.
func New(log *slog.Logger, service Service, files FileStore, bucket string) *Handler {
	return &Handler{log: log, service: service, files: files, bucket: bucket}
}

// ServeHTTP godoc
// @Summary Загрузить скан документа
// @Description Принимает файл из поля формы "document", проверяет тип и размер, прикрепляет к анкете.
// @Tags Register
// @Accept mpfd
// @Produce json
// @Param id path string true "Идентификатор черновика"
// @Param document formData file true "Скан документа (JPG, PNG или PDF, до 5 МиБ)"
// @Success 200 {object} response.Response "Черновик с прикреплённым документом"
// @Failure 400 {object} response.ErrorResponse "Файл отсутствует в форме"
// @Failure 404 {object} response.ErrorResponse "Черновик не найден или истек"
// @Failure 422 {object} response.Response "Файл нарушает ограничения"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /register/{id}/document [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.register.upload"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	draftID := chi.URLParam(r, "id")

	file, header, err := r.FormFile("document")
	if err != nil {
		log.Error("missing form file", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("form file \"document\" is required"))
		return
	}
	defer func() {
		_ = file.Close()
	}()

	mimeType := header.Header.Get("Content-Type")

	// Ограничения проверяются до записи на диск, чтобы не плодить
	// объекты, которые анкета все равно отвергнет.
	if msg := registration.ValidateFile(mimeType, header.Size); msg != "" {
		log.Info("document rejected",
			slog.String("draft_id", draftID), slog.String("reason", msg))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.FieldErrors("document rejected",
			map[string]string{"id_file": msg}))
		return
	}

	url, err := h.files.Save(h.bucket, header.Filename, file)
	if err != nil {
		log.Error("failed to store document", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	draft, err := h.service.AttachDocument(r.Context(), draftID, registration.FileRef{
		Name:     header.Filename,
		MIMEType: mimeType,
		Size:     header.Size,
		URL:      url,
	})
	if err != nil {
		if errors.Is(err, registration.ErrDraftNotFound) {
			log.Warn("draft not found", slog.String("draft_id", draftID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("registration draft not found or expired"))
			return
		}
		log.Error("failed to attach document", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	log.Info("document attached",
		slog.String("draft_id", draftID), slog.String("url", url))
	render.JSON(w, r, response.StatusOKWithData(draft))
}
