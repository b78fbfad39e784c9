package shelters

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-adoption-api/internal/transport/httpjson"
)

// RegisterRoutes monta el CRUD de abrigos. Las lecturas son públicas,
// las escrituras pasan por el gate de admin.
func RegisterRoutes(r chi.Router, svc *Service, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/shelters", func(sr chi.Router) {
		sr.Get("/", listSheltersHandler(svc))
		sr.Get("/{shelterID}", getShelterHandler(svc))

		sr.Group(func(pr chi.Router) {
			pr.Use(requireAdmin)
			pr.Post("/", createShelterHandler(svc))
			pr.Put("/{shelterID}", updateShelterHandler(svc))
			pr.Delete("/{shelterID}", deleteShelterHandler(svc))
		})
	})
}

type createShelterRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

type updateShelterRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
}

type shelterResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func createShelterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createShelterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpjson.WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "JSON inválido."})
			return
		}

		sh, err := svc.Create(r.Context(), CreateInput{
			Name:    req.Name,
			Address: req.Address,
			Phone:   req.Phone,
			Email:   req.Email,
		})
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}

		httpjson.WriteJSON(w, http.StatusCreated, toShelterResponse(sh))
	}
}

func listSheltersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}

		out := make([]shelterResponse, 0, len(items))
		for _, sh := range items {
			out = append(out, toShelterResponse(sh))
		}
		httpjson.WriteJSON(w, http.StatusOK, out)
	}
}

func getShelterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sh, err := svc.GetByID(r.Context(), chi.URLParam(r, "shelterID"))
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toShelterResponse(sh))
	}
}

func updateShelterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateShelterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpjson.WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "JSON inválido."})
			return
		}

		sh, err := svc.Update(r.Context(), chi.URLParam(r, "shelterID"), UpdateInput{
			Name:    req.Name,
			Address: req.Address,
			Phone:   req.Phone,
			Email:   req.Email,
		})
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toShelterResponse(sh))
	}
}

func deleteShelterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "shelterID")); err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, map[string]string{"message": "Abrigo excluído com sucesso."})
	}
}

func toShelterResponse(sh Shelter) shelterResponse {
	return shelterResponse{
		ID:        sh.ID,
		Name:      sh.Name,
		Address:   sh.Address,
		Phone:     sh.Phone,
		Email:     sh.Email,
		CreatedAt: sh.CreatedAt,
		UpdatedAt: sh.UpdatedAt,
	}
}
