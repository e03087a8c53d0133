package handlers

import (
	"ShareAMeal/internal/config"
	"ShareAMeal/internal/image"
	"ShareAMeal/internal/model"
	"ShareAMeal/internal/service"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DonationHandler обрабатывает объявления и загрузку изображений.
type DonationHandler struct {
	Donations service.Lifecycle
	Images    image.Encoder
	Logger    *zap.SugaredLogger
	Config    *config.Config
}

// NewDonationHandler создаёт хендлер объявлений
func NewDonationHandler(donations service.Lifecycle, enc image.Encoder, logger *zap.SugaredLogger, cfg *config.Config) *DonationHandler {
	return &DonationHandler{Donations: donations, Images: enc, Logger: logger, Config: cfg}
}

// CreateRequest: поля формы объявления.
type CreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Address     string `json:"address"`
	ContactInfo string `json:"contactInfo"`
	Expiry      string `json:"expiry"`
	Image       string `json:"image"`
	Password    string `json:"password"`
}

// DeleteRequest: пароль для удаления.
type DeleteRequest struct {
	Password string `json:"password"`
}

// DonationDTO: запись без пароля.
type DonationDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Image       string `json:"image"`
	ContactInfo string `json:"contactInfo"`
	Expiry      string `json:"expiry"`
	CreatedAt   string `json:"createdAt"`
}

const createBodySlack = 64 << 10

type errorDTO struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func toDTO(d model.Donation) DonationDTO {
	return DonationDTO{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Address:     d.Address,
		Image:       d.Image,
		ContactInfo: d.ContactInfo,
		Expiry:      d.Expiry,
		CreatedAt:   d.CreatedAt,
	}
}

// List отдаёт все объявления в порядке добавления.
func (h *DonationHandler) List(w http.ResponseWriter, r *http.Request) {
	list := h.Donations.List(r.Context())
	out := make([]DonationDTO, 0, len(list))
	for _, d := range list {
		out = append(out, toDTO(d))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get отдаёт одно объявление.
func (h *DonationHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.Donations.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDTO(d))
}

// Create публикует объявление.
func (h *DonationHandler) Create(w http.ResponseWriter, r *http.Request) {
	// data URI раздувает изображение на треть, плюс запас на текстовые поля
	r.Body = http.MaxBytesReader(w, r.Body, h.Config.ImageMaxBytes()*4/3+createBodySlack)
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorDTO{Error: model.ErrImageTooLarge.Error()})
			return
		}
		h.Logger.Warnw("Create: invalid request body", "error", err)
		writeJSON(w, http.StatusBadRequest, errorDTO{Error: "invalid request"})
		return
	}
	d, err := h.Donations.Create(r.Context(), model.CandidateFields{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		ContactInfo: req.ContactInfo,
		Expiry:      req.Expiry,
		Image:       req.Image,
		Password:    req.Password,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDTO(d))
}

// Delete удаляет объявление при совпадении пароля.
func (h *DonationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Delete: invalid request body", "error", err)
		writeJSON(w, http.StatusBadRequest, errorDTO{Error: "invalid request"})
		return
	}
	if err := h.Donations.Delete(r.Context(), chi.URLParam(r, "id"), req.Password); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadImage принимает multipart-поле file и возвращает data URI для поля image.
func (h *DonationHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	limit := h.Config.ImageMaxBytes()
	// лимит тела: файл + запас на multipart-заголовки
	r.Body = http.MaxBytesReader(w, r.Body, limit+1<<20)
	if err := r.ParseMultipartForm(limit + 1<<20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorDTO{Error: model.ErrImageTooLarge.Error()})
			return
		}
		h.Logger.Warnw("UploadImage: invalid multipart form", "error", err)
		writeJSON(w, http.StatusBadRequest, errorDTO{Error: "invalid multipart form"})
		return
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorDTO{Error: "missing file"})
		return
	}
	defer f.Close()

	uri, err := h.Images.Encode(f, hdr.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, model.ErrImageTooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorDTO{Error: model.ErrImageTooLarge.Error()})
			return
		}
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"image": uri})
}

func (h *DonationHandler) writeError(w http.ResponseWriter, err error) {
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorDTO{Error: "validation failed", Fields: ve.Fields})
	case errors.Is(err, model.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorDTO{Error: err.Error()})
	case errors.Is(err, model.ErrUnauthorized):
		writeJSON(w, http.StatusForbidden, errorDTO{Error: err.Error()})
	default:
		h.Logger.Errorw("donation handler: service error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorDTO{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
