package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"shopmate/internal/catalog"
	"shopmate/internal/core"
	"shopmate/internal/store"
)

type APIHandler struct {
	authService       *core.AuthService
	chatService       *core.ChatService
	sentimentService  *core.SentimentService
	similarityService *core.SimilarityService
	products          *catalog.Catalog
	logger            *zap.Logger
}

func NewAPIHandler(
	auth *core.AuthService,
	chat *core.ChatService,
	sentiment *core.SentimentService,
	similarity *core.SimilarityService,
	products *catalog.Catalog,
	logger *zap.Logger,
) *APIHandler {
	return &APIHandler{
		authService:       auth,
		chatService:       chat,
		sentimentService:  sentiment,
		similarityService: similarity,
		products:          products,
		logger:            logger,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps a domain error onto the HTTP taxonomy: bad input,
// conflicts and credential mismatches are 400s, everything else is a 500.
// Failures always surface as a JSON body, never a stack trace.
func (h *APIHandler) writeServiceError(w http.ResponseWriter, err error) {
	var validationErr *core.ValidationError
	var extractionErr *core.ExtractionError

	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Msg)
	case errors.Is(err, store.ErrDuplicateUser):
		writeError(w, http.StatusBadRequest, "Username already exists. Try with another username.")
	case errors.Is(err, core.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, "Invalid username, password, or role")
	case errors.Is(err, catalog.ErrNotLoaded):
		writeError(w, http.StatusInternalServerError, "Database not initialized")
	case errors.Is(err, core.ErrChatUnavailable):
		writeError(w, http.StatusInternalServerError, "Chat service not initialized. Please check GEMINI_API_KEY.")
	case errors.As(err, &extractionErr):
		h.logger.Error("model inference failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, extractionErr.Msg)
	default:
		h.logger.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

func (h *APIHandler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	// A missing or malformed body is treated the same as an empty message.
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		req = ChatRequest{}
	}

	// The original contract: an absent message is a 200 with a canned body.
	if req.Message == "" {
		writeJSON(w, http.StatusOK, map[string]string{"bot": "Please send a valid message."})
		return
	}

	reply, sessionID, err := h.chatService.Send(r.Context(), req.SessionID, req.Message)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"bot":        reply,
		"session_id": sessionID,
	})
}

type SentimentRequest struct {
	Comment string `json:"comment"`
}

func (h *APIHandler) AnalyzeSentimentHandler(w http.ResponseWriter, r *http.Request) {
	var req SentimentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "No comment provided")
		return
	}

	result, err := h.sentimentService.Analyze(r.Context(), req.Comment)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *APIHandler) decodeCredentials(w http.ResponseWriter, r *http.Request) (*CredentialsRequest, store.Role, bool) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return nil, "", false
	}

	if req.Username == "" || req.Password == "" || req.Role == "" {
		writeError(w, http.StatusBadRequest, "Missing username, password, or role")
		return nil, "", false
	}

	role, err := store.ParseRole(req.Role)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, "", false
	}
	return &req, role, true
}

func (h *APIHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	req, role, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	msg, err := h.authService.Register(req.Username, req.Password, role)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	req, role, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	msg, err := h.authService.Login(req.Username, req.Password, role)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

func (h *APIHandler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "No images provided")
		return
	}

	image1, _, err1 := r.FormFile("image1")
	image2, _, err2 := r.FormFile("image2")
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, "No images provided")
		return
	}
	defer image1.Close()
	defer image2.Close()

	result, err := h.similarityService.Compare(r.Context(), image1, image2)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *APIHandler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.All()
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

type ProductTypeRequest struct {
	ArticleType string `json:"articleType"`
}

func (h *APIHandler) ProductsByTypeHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	products, err := h.products.ByType(req.ArticleType)
	if errors.Is(err, catalog.ErrNoMatch) {
		// An empty result is a lookup miss, not a failure.
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "No items found for the given article type."})
		return
	}
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

type ProductCategoryRequest struct {
	Category string `json:"category"`
}

func (h *APIHandler) ProductsByCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	products, err := h.products.ByCategory(req.Category)
	if errors.Is(err, catalog.ErrNoMatch) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "No items found in this category."})
		return
	}
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}
