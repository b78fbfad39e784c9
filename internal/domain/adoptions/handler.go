package adoptions

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-adoption-api/internal/platform/metrics"
	"pet-adoption-api/internal/transport/httpjson"
)

// RegisterRoutes monta el CRUD de adopciones, todo detrás del gate de admin.
func RegisterRoutes(r chi.Router, svc *Service, m *metrics.Metrics, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/adoptions", func(ar chi.Router) {
		ar.Use(requireAdmin)
		ar.Post("/", createAdoptionHandler(svc, m))
		ar.Get("/", listAdoptionsHandler(svc))
		ar.Get("/{adoptionID}", getAdoptionHandler(svc))
		ar.Put("/{adoptionID}", updateAdoptionHandler(svc))
		ar.Delete("/{adoptionID}", deleteAdoptionHandler(svc))
	})
}

type createAdoptionRequest struct {
	AdopterID    string `json:"adopter_id"`
	AnimalID     string `json:"animal_id"`
	AdoptionDate string `json:"adoption_date"` // RFC3339 o YYYY-MM-DD, opcional
}

type updateAdoptionRequest struct {
	AdopterID    *string `json:"adopter_id"`
	AnimalID     *string `json:"animal_id"`
	AdoptionDate *string `json:"adoption_date"`
}

type adopterSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type animalSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Species string `json:"species"`
	Breed   string `json:"breed,omitempty"`
}

type adoptionResponse struct {
	ID           string          `json:"id"`
	AdopterID    string          `json:"adopter_id"`
	AnimalID     string          `json:"animal_id"`
	Adopter      *adopterSummary `json:"adopter,omitempty"`
	Animal       *animalSummary  `json:"animal,omitempty"`
	AdoptionDate time.Time       `json:"adoption_date"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func createAdoptionHandler(svc *Service, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAdoptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpjson.WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "JSON inválido."})
			return
		}

		var date *time.Time
		if req.AdoptionDate != "" {
			t, err := parseDate(req.AdoptionDate)
			if err != nil {
				httpjson.WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "Data de adoção inválida."})
				return
			}
			date = &t
		}

		a, err := svc.Create(r.Context(), CreateInput{
			AdopterID:    req.AdopterID,
			AnimalID:     req.AnimalID,
			AdoptionDate: date,
		})
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}

		m.AdoptionsCreated.Inc()
		httpjson.WriteJSON(w, http.StatusCreated, toAdoptionResponse(r, svc, a))
	}
}

func listAdoptionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := svc.List(r.Context(), Filter{
			AdopterID: q.Get("adopter"),
			AnimalID:  q.Get("animal"),
		})
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}

		out := make([]adoptionResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAdoptionResponse(r, svc, a))
		}
		httpjson.WriteJSON(w, http.StatusOK, out)
	}
}

func getAdoptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "adoptionID"))
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toAdoptionResponse(r, svc, a))
	}
}

func updateAdoptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateAdoptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpjson.WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "JSON inválido."})
			return
		}

		var date *time.Time
		if req.AdoptionDate != nil {
			t, err := parseDate(*req.AdoptionDate)
			if err != nil {
				httpjson.WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "Data de adoção inválida."})
				return
			}
			date = &t
		}

		a, err := svc.Update(r.Context(), chi.URLParam(r, "adoptionID"), UpdateInput{
			AdopterID:    req.AdopterID,
			AnimalID:     req.AnimalID,
			AdoptionDate: date,
		})
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toAdoptionResponse(r, svc, a))
	}
}

func deleteAdoptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "adoptionID")); err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, map[string]string{"message": "Adoção excluída com sucesso."})
	}
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// toAdoptionResponse puebla los resúmenes; si una referencia quedó colgando
// (borrado sin cascada) la respuesta sale solo con los ids.
func toAdoptionResponse(r *http.Request, svc *Service, a Adoption) adoptionResponse {
	resp := adoptionResponse{
		ID:           a.ID,
		AdopterID:    a.AdopterID,
		AnimalID:     a.AnimalID,
		AdoptionDate: a.AdoptionDate,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}

	if ad, err := svc.AdopterInfo(r.Context(), a.AdopterID); err == nil {
		resp.Adopter = &adopterSummary{ID: ad.ID, Name: ad.Name, Email: ad.Email, Phone: ad.Phone}
	}
	if an, err := svc.AnimalInfo(r.Context(), a.AnimalID); err == nil {
		resp.Animal = &animalSummary{ID: an.ID, Name: an.Name, Species: string(an.Species), Breed: an.Breed}
	}
	return resp
}
