package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/aradsms/users_phonebook/internal/users_service/domain"
)

// UsersService is the application surface the handler depends on.
type UsersService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	FindUsersByName(ctx context.Context, partName string) ([]*domain.User, error)

	ListPhoneRecords(ctx context.Context, userID int64) ([]domain.PhoneRecord, error)
	CreatePhoneRecord(ctx context.Context, userID int64, record *domain.PhoneRecord) (*domain.PhoneRecord, error)
	GetPhoneRecord(ctx context.Context, userID, recordID int64) (*domain.PhoneRecord, error)
	DeletePhoneRecord(ctx context.Context, userID, recordID int64) (*domain.PhoneRecord, error)
	UpdatePhoneRecord(ctx context.Context, userID int64, record *domain.PhoneRecord) (*domain.PhoneRecord, error)
	FindPhoneRecordsByNumber(ctx context.Context, userID int64, number string) ([]domain.PhoneRecord, error)
}

// UsersHandler handles HTTP requests for users and their phone records.
type UsersHandler struct {
	service  UsersService
	logger   *slog.Logger
	validate *validator.Validate
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(service UsersService, logger *slog.Logger, validate *validator.Validate) *UsersHandler {
	return &UsersHandler{
		service:  service,
		logger:   logger,
		validate: validate,
	}
}

// RegisterRoutes mounts the handler on r. Paths are relative to the /users prefix.
func (h *UsersHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.ListUsers)
	r.Post("/", h.CreateUser)
	r.Put("/", h.UpdateUser)
	r.Get("/name", h.FindUsersByName)
	r.Get("/{userId}", h.GetUser)
	r.Delete("/{userId}", h.DeleteUser)

	r.Get("/phoneRecords/{userId}", h.ListPhoneRecords)
	r.Get("/phoneRecords/phoneNumber/{userId}", h.FindPhoneRecordsByNumber)
	r.Post("/phoneRecord/{userId}", h.CreatePhoneRecord)
	r.Get("/phoneRecord/{userId}", h.GetPhoneRecord)
	r.Put("/phoneRecord/{userId}", h.UpdatePhoneRecord)
	r.Delete("/phoneRecord/{userId}", h.DeletePhoneRecord)
}

func userIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
}

// decodeBody decodes and validates a JSON body. A literal null body decodes to
// nil and is passed on so the service rejects it. On failure decodeBody writes
// the 400 response itself and reports false.
func decodeBody[T any](h *UsersHandler, w http.ResponseWriter, r *http.Request) (*T, bool) {
	defer r.Body.Close()
	var dst *T
	if err := json.NewDecoder(r.Body).Decode(&dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return nil, false
	}
	if dst == nil {
		return nil, true
	}
	if err := h.validate.StructCtx(r.Context(), dst); err != nil {
		h.logger.DebugContext(r.Context(), "Validation failed for request body", "error", err)
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return nil, false
	}
	return dst, true
}

// recordIDQuery reads and validates the id query parameter.
func (h *UsersHandler) recordIDQuery(w http.ResponseWriter, r *http.Request) (int64, bool) {
	var q phoneRecordIDQuery
	if raw, ok := r.URL.Query()["id"]; ok && len(raw) > 0 {
		id, err := strconv.ParseInt(raw[0], 10, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid phone record ID")
			return 0, false
		}
		q.ID = &id
	}
	if err := h.validate.StructCtx(r.Context(), q); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return 0, false
	}
	return *q.ID, true
}

// queryParam returns a pointer to the first value of key, or nil if absent.
func queryParam(r *http.Request, key string) *string {
	values, ok := r.URL.Query()[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

// --- User Handler Methods ---

func (h *UsersHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		respondWithDomainError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toUserDTOs(users))
}

func (h *UsersHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	reqDTO, ok := decodeBody[UserDTO](h, w, r)
	if !ok {
		return
	}
	created, err := h.service.CreateUser(r.Context(), reqDTO.toDomain())
	if err != nil {
		respondWithDomainError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, toUserDTO(created))
}

func (h *UsersHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := userIDParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		respondWithDomainError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toUserDTO(user))
}

func (h *UsersHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := userIDParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	deleted, err := h.service.DeleteUser(r.Context(), id)
	if err != nil {
		respondWithDomainError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toUserDTO(deleted))
}

// UpdateUser replaces the user named by the body's userId.
func (h *UsersHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	reqDTO, ok := decodeBody[UserDTO](h, w, r)
	if !ok {
		return
	}
	updated, err := h.service.UpdateUser(r.Context(), reqDTO.toDomain())
	if err != nil {
		respondWithDomainError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toUserDTO(updated))
}

func (h *UsersHandler) FindUsersByName(w http.ResponseWriter, r *http.Request) {
	q := findUsersByNameQuery{PartName: queryParam(r, "partName")}
	if err := h.validate.StructCtx(r.Context(), q); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	users, err := h.service.FindUsersByName(r.Context(), *q.PartName)
	if err != nil {
		respondWithDomainError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toUserDTOs(users))
}

// --- Phone Record Handler Methods ---

// ListPhoneRecords answers an unknown user with an empty list.
func (h *UsersHandler) ListPhoneRecords(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	records, err := h.service.ListPhoneRecords(r.Context(), userID)
	if errors.Is(err, domain.ErrNotFound) {
		records, err = nil, nil
	}
	if err != nil {
		respondWithDomainError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toPhoneRecordDTOs(records))
}

func (h *UsersHandler) CreatePhoneRecord(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	reqDTO, ok := decodeBody[PhoneRecordDTO](h, w, r)
	if !ok {
		return
	}
	created, err := h.service.CreatePhoneRecord(r.Context(), userID, reqDTO.toDomain())
	if err != nil {
		respondWithDomainError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, toPhoneRecordDTO(*created))
}

func (h *UsersHandler) GetPhoneRecord(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	recordID, ok := h.recordIDQuery(w, r)
	if !ok {
		return
	}
	record, err := h.service.GetPhoneRecord(r.Context(), userID, recordID)
	if err != nil {
		respondWithDomainError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toPhoneRecordDTO(*record))
}

func (h *UsersHandler) DeletePhoneRecord(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	recordID, ok := h.recordIDQuery(w, r)
	if !ok {
		return
	}
	deleted, err := h.service.DeletePhoneRecord(r.Context(), userID, recordID)
	if err != nil {
		respondWithDomainError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toPhoneRecordDTO(*deleted))
}

// UpdatePhoneRecord replaces the record named by the body's phoneRecordId.
func (h *UsersHandler) UpdatePhoneRecord(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	reqDTO, ok := decodeBody[PhoneRecordDTO](h, w, r)
	if !ok {
		return
	}
	updated, err := h.service.UpdatePhoneRecord(r.Context(), userID, reqDTO.toDomain())
	if err != nil {
		respondWithDomainError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toPhoneRecordDTO(*updated))
}

func (h *UsersHandler) FindPhoneRecordsByNumber(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	q := phoneNumberQuery{PhoneNumber: queryParam(r, "phoneNumber")}
	if err := h.validate.StructCtx(r.Context(), q); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	records, err := h.service.FindPhoneRecordsByNumber(r.Context(), userID, *q.PhoneNumber)
	if err != nil {
		respondWithDomainError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toPhoneRecordDTOs(records))
}
