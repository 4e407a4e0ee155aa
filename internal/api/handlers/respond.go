package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

const (
	msgInternalError = "внутренняя ошибка сервера"
)

var (
	// ErrEmptyBody возвращается при пустом теле запроса
	ErrEmptyBody = errors.New("request body is empty")
)

// ErrorResponse стандартный формат ошибки API
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Detail  interface{} `json:"detail,omitempty"`
}

// DecodeJSON декодирует тело запроса в целевую структуру
// Запрещает неизвестные поля, чтобы опечатки в ключах не проходили молча
func DecodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}

	return nil
}

// RespondJSON отправляет JSON-ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError отправляет ошибку с кодом и сообщением
func RespondError(w http.ResponseWriter, status int, code string, message string) {
	RespondJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// RespondErrorDetail отправляет ошибку со структурированными деталями
// Используется для ответов, где клиенту нужны данные для принятия решения
// (список конфликтов расписаний, текущая заполненность и т.п.)
func RespondErrorDetail(w http.ResponseWriter, status int, code string, message string, detail interface{}) {
	RespondJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
		Detail:  detail,
	})
}

// RespondBadRequest отправляет 400 Bad Request
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", message)
}

// RespondNotFound отправляет 404 Not Found
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, "NOT_FOUND", message)
}

// RespondConflict отправляет 409 Conflict
func RespondConflict(w http.ResponseWriter, code string, message string, detail interface{}) {
	RespondErrorDetail(w, http.StatusConflict, code, message, detail)
}

// RespondInternalError отправляет 500 Internal Server Error
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", msgInternalError)
}
