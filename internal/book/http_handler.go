package book

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"bookcrud/internal/httpx"
	"bookcrud/internal/outcome"

	"go.uber.org/zap"
)

// bookBody is the wire shape shared by create and update. Pointers let
// validation tell a missing field from an empty string.
type bookBody struct {
	Title       *string `json:"title" validate:"required"`
	Description *string `json:"description" validate:"required"`
}

type HTTPHandler struct {
	store  Store
	logger *zap.Logger
}

func NewHTTPHandler(store Store, logger *zap.Logger) *HTTPHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPHandler{store: store, logger: logger}
}

// Register mounts the book routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /books", h.List)
	mux.HandleFunc("POST /books", h.Create)
	mux.HandleFunc("GET /books/{id}", h.GetByID)
	mux.HandleFunc("PUT /books/{id}", h.Update)
	mux.HandleFunc("DELETE /books/{id}", h.Delete)
}

// List handles GET /books
// @Summary List books
// @Tags books
// @Produce json
// @Success 200 {array} Summary
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := httpx.RequestLogger(h.logger, r)
	h.withService(w, r, logger, func(ctx context.Context, svc *Service) error {
		res, err := svc.List(ctx)
		if err != nil {
			return err
		}
		httpx.WriteOutcome(w, r, res)
		return nil
	})
}

// GetByID handles GET /books/{id}
// @Summary Get book by id
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} Detail
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [get]
func (h *HTTPHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	logger := httpx.RequestLogger(h.logger, r)
	id, ok := pathID(r)
	if !ok {
		httpx.NotFound(w, r, "Book not found")
		return
	}

	h.withService(w, r, logger, func(ctx context.Context, svc *Service) error {
		res, err := svc.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if res.Kind() == outcome.KindNotFound {
			httpx.NotFound(w, r, "Book not found")
			return nil
		}
		httpx.WriteOutcome(w, r, res)
		return nil
	})
}

// Create handles POST /books
// @Summary Create a book
// @Tags books
// @Accept json
// @Produce json
// @Success 201 {object} CreatedBook
// @Failure 400 {object} httpx.ErrorResponse
// @Router /books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := httpx.RequestLogger(h.logger, r)
	body, ok := decodeBody(w, r, logger)
	if !ok {
		return
	}

	req := CreateRequest{Title: *body.Title, Description: *body.Description}
	h.withService(w, r, logger, func(ctx context.Context, svc *Service) error {
		res, err := svc.Create(ctx, req)
		if err != nil {
			return err
		}
		if v, ok := res.Value(); ok {
			logger.Info("book created", zap.Int64("book.id", v.ID))
		}
		httpx.WriteOutcome(w, r, res)
		return nil
	})
}

// Update handles PUT /books/{id}
// @Summary Replace a book's title and description
// @Tags books
// @Accept json
// @Param id path int true "Book ID"
// @Success 204
// @Failure 400 {object} httpx.ErrorResponse
// @Router /books/{id} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger := httpx.RequestLogger(h.logger, r)
	id, ok := pathID(r)
	if !ok {
		httpx.NotFound(w, r, "Book not found")
		return
	}
	body, ok := decodeBody(w, r, logger)
	if !ok {
		return
	}

	req := UpdateRequest{Title: *body.Title, Description: *body.Description}
	h.withService(w, r, logger, func(ctx context.Context, svc *Service) error {
		res, err := svc.Update(ctx, id, req)
		if err != nil {
			return err
		}
		if res.Kind() == outcome.KindBadRequest {
			logger.Info("book update rejected", zap.Int64("book.id", id))
		}
		httpx.WriteOutcome(w, r, res)
		return nil
	})
}

// Delete handles DELETE /books/{id}
// @Summary Delete a book
// @Tags books
// @Param id path int true "Book ID"
// @Success 204
// @Failure 400 {object} httpx.ErrorResponse
// @Router /books/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := httpx.RequestLogger(h.logger, r)
	id, ok := pathID(r)
	if !ok {
		httpx.NotFound(w, r, "Book not found")
		return
	}

	h.withService(w, r, logger, func(ctx context.Context, svc *Service) error {
		res, err := svc.Delete(ctx, id)
		if err != nil {
			return err
		}
		if res.Kind() == outcome.KindBadRequest {
			logger.Info("book delete rejected", zap.Int64("book.id", id))
		}
		httpx.WriteOutcome(w, r, res)
		return nil
	})
}

// withService opens a storage session for the request, runs fn with a
// service bound to it and closes the session afterwards. An error from
// fn becomes a 500.
func (h *HTTPHandler) withService(w http.ResponseWriter, r *http.Request, logger *zap.Logger, fn func(ctx context.Context, svc *Service) error) {
	ctx := r.Context()
	session, err := h.store.Begin(ctx)
	if err != nil {
		logger.Error("failed to open storage session", zap.Error(err))
		httpx.InternalError(w, r)
		return
	}
	defer func() {
		if err := session.Close(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("failed to close storage session", zap.Error(err))
		}
	}()

	if err := fn(ctx, NewService(session, logger)); err != nil {
		logger.Error("book operation failed", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
		httpx.InternalError(w, r)
	}
}

// pathID parses the {id} path value. A non-integer id does not address
// any book.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (bookBody, bool) {
	var body bookBody
	if err := httpx.DecodeJSON(r, &body); err != nil {
		logger.Debug("rejected request body", zap.Error(err))
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.JSONError(w, r, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large", nil)
			return body, false
		}
		httpx.BadRequest(w, r, err.Error(), nil)
		return body, false
	}
	if details := httpx.ValidateStruct(body); len(details) > 0 {
		httpx.BadRequest(w, r, "Validation failed", details)
		return body, false
	}
	return body, true
}
