package http

import (
	"encoding/json"
	"net/http"

	"github.com/pollpulse/api/internal/core/ports"
)

// maxUploadSize bounds profile and poll image uploads.
const maxUploadSize = 10 << 20 // 10 MiB

type AuthHandler struct {
	auth  ports.AuthService
	users ports.UserService
	files ports.FileStore
}

func NewAuthHandler(auth ports.AuthService, users ports.UserService, files ports.FileStore) *AuthHandler {
	return &AuthHandler{
		auth:  auth,
		users: users,
		files: files,
	}
}

type registerRequest struct {
	FullName        string `json:"full_name"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ProfileImageURL string `json:"profile_image_url"`
}

// Register godoc
// @Summary      Registers a user
// @Description  Creates an account and returns the user with a signed access token
// @Tags         auth
// @Accept       json
// @Success      201
// @Failure      400
// @Router       /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.auth.Register(r.Context(), ports.RegisterInput{
		FullName:        req.FullName,
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Me returns the authenticated user's profile with activity counters.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing user context")
		return
	}

	info, err := h.users.GetInfo(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

// UploadImage stores a multipart image and returns its public URL.
func (h *AuthHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	url, err := h.files.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"image_url": url})
}
