package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kaganatalay/ciz.im/internal/api/apierr"
	"github.com/kaganatalay/ciz.im/internal/api/response"
	"github.com/kaganatalay/ciz.im/internal/gateway"
	"github.com/kaganatalay/ciz.im/internal/model"
	"github.com/kaganatalay/ciz.im/internal/services/registry"
)

// RoomHandler handles room lifecycle endpoints
type RoomHandler struct {
	registry registry.ControllerInterface
	gateway  *gateway.Gateway
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(registry registry.ControllerInterface, gateway *gateway.Gateway) *RoomHandler {
	return &RoomHandler{
		registry: registry,
		gateway:  gateway,
	}
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, err := h.registry.CreateSession(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.NewRoomResponse(session))
}

// Get handles GET /api/v1/rooms/{code}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := model.SessionCode(mux.Vars(r)["code"])

	session, err := h.registry.GetSession(r.Context(), code)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.NewRoomResponse(session))
}

// Connect handles GET /api/v1/rooms/{code}/ws
func (h *RoomHandler) Connect(w http.ResponseWriter, r *http.Request) {
	code := model.SessionCode(mux.Vars(r)["code"])

	if err := h.gateway.ServeWS(w, r, code); err != nil {
		apierr.WriteError(w, err)
	}
}
