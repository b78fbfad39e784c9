package adopters

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-adoption-api/internal/transport/httpjson"
)

func RegisterRoutes(r chi.Router, svc *Service, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/adopters", func(ar chi.Router) {
		ar.Get("/", listAdoptersHandler(svc))
		ar.Get("/{adopterID}", getAdopterHandler(svc))

		ar.Group(func(pr chi.Router) {
			pr.Use(requireAdmin)
			pr.Post("/", createAdopterHandler(svc))
			pr.Put("/{adopterID}", updateAdopterHandler(svc))
			pr.Delete("/{adopterID}", deleteAdopterHandler(svc))
		})
	})
}

type createAdopterRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type updateAdopterRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type adopterResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func createAdopterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAdopterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpjson.WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "JSON inválido."})
			return
		}

		a, err := svc.Create(r.Context(), CreateInput{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Address: req.Address,
		})
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusCreated, toAdopterResponse(a))
	}
}

func listAdoptersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}

		out := make([]adopterResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAdopterResponse(a))
		}
		httpjson.WriteJSON(w, http.StatusOK, out)
	}
}

func getAdopterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "adopterID"))
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toAdopterResponse(a))
	}
}

func updateAdopterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateAdopterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpjson.WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "JSON inválido."})
			return
		}

		a, err := svc.Update(r.Context(), chi.URLParam(r, "adopterID"), UpdateInput{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Address: req.Address,
		})
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toAdopterResponse(a))
	}
}

func deleteAdopterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "adopterID")); err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, map[string]string{"message": "Adotante excluído com sucesso."})
	}
}

func toAdopterResponse(a Adopter) adopterResponse {
	return adopterResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Phone:     a.Phone,
		Address:   a.Address,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
