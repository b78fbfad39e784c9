package identity

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pet-adoption-api/internal/domain/apperr"
	"pet-adoption-api/internal/middleware"
	"pet-adoption-api/internal/platform/metrics"
	"pet-adoption-api/internal/transport/httpjson"
)

func RegisterRoutes(r chi.Router, svc *Service, m *metrics.Metrics, requireAuth func(http.Handler) http.Handler) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", registerHandler(svc, m))
		ar.Post("/login", loginHandler(svc, m))

		ar.Group(func(pr chi.Router) {
			pr.Use(requireAuth)
			pr.Get("/me", meHandler(svc))
		})
	})
}

type entityRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

type registerRequest struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Role     string         `json:"role"`
	EntityID string         `json:"entity_id"`
	Entity   *entityRequest `json:"entity"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	EntityID *string `json:"entity_id,omitempty"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func registerHandler(svc *Service, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpjson.WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "JSON inválido."})
			return
		}

		in := RegisterInput{
			Email:    req.Email,
			Password: req.Password,
			Role:     req.Role,
			EntityID: req.EntityID,
		}
		if req.Entity != nil {
			in.Entity = &EntityInput{
				Name:    req.Entity.Name,
				Address: req.Entity.Address,
				Phone:   req.Entity.Phone,
				Email:   req.Entity.Email,
			}
		}

		res, err := svc.Register(r.Context(), in)
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}

		m.UsersRegistered.Inc()
		httpjson.WriteJSON(w, http.StatusCreated, authResponse{
			Token: res.Token,
			User:  toUserResponse(res.User),
		})
	}
}

func loginHandler(svc *Service, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpjson.WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "JSON inválido."})
			return
		}

		res, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}

		m.Logins.Inc()
		httpjson.WriteJSON(w, http.StatusOK, authResponse{
			Token: res.Token,
			User:  toUserResponse(res.User),
		})
	}
}

func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := middleware.GetPrincipal(r.Context())
		if !ok {
			httpjson.WriteError(w, apperr.ErrTokenMissing)
			return
		}

		u, err := svc.Principal(r.Context(), p.ID)
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, map[string]userResponse{"user": toUserResponse(u)})
	}
}

func toUserResponse(u PublicUser) userResponse {
	return userResponse{
		ID:       u.ID,
		Email:    u.Email,
		Role:     string(u.Role),
		EntityID: u.EntityID,
	}
}
