package animals

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-adoption-api/internal/transport/httpjson"
)

// RegisterRoutes monta el CRUD de animales. Lecturas públicas con filtros;
// escrituras para operadores de abrigo y admins.
func RegisterRoutes(r chi.Router, svc *Service, requireStaff func(http.Handler) http.Handler) {
	r.Route("/animals", func(ar chi.Router) {
		ar.Get("/", listAnimalsHandler(svc))
		ar.Get("/{animalID}", getAnimalHandler(svc))

		ar.Group(func(pr chi.Router) {
			pr.Use(requireStaff)
			pr.Post("/", createAnimalHandler(svc))
			pr.Put("/{animalID}", updateAnimalHandler(svc))
			pr.Delete("/{animalID}", deleteAnimalHandler(svc))
		})
	})
}

type createAnimalRequest struct {
	Name        string   `json:"name"`
	Species     string   `json:"species"`
	Breed       string   `json:"breed"`
	Age         *int     `json:"age"`
	Sex         string   `json:"sex"`
	Description string   `json:"description"`
	Photos      []string `json:"photos"`
	ShelterID   string   `json:"shelter_id"`
}

type updateAnimalRequest struct {
	Name        *string   `json:"name"`
	Species     *string   `json:"species"`
	Breed       *string   `json:"breed"`
	Age         *int      `json:"age"`
	Sex         *string   `json:"sex"`
	Description *string   `json:"description"`
	Photos      *[]string `json:"photos"`
	ShelterID   *string   `json:"shelter_id"`
}

// shelterSummary reproduce el populate del abrigo en las lecturas.
type shelterSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type animalResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Species     string          `json:"species"`
	Breed       string          `json:"breed,omitempty"`
	Age         int             `json:"age"`
	Sex         string          `json:"sex"`
	Description string          `json:"description"`
	Photos      []string        `json:"photos"`
	ShelterID   string          `json:"shelter_id"`
	Shelter     *shelterSummary `json:"shelter,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func createAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpjson.WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "JSON inválido."})
			return
		}

		a, err := svc.Create(r.Context(), CreateInput{
			Name:        req.Name,
			Species:     req.Species,
			Breed:       req.Breed,
			Age:         req.Age,
			Sex:         req.Sex,
			Description: req.Description,
			Photos:      req.Photos,
			ShelterID:   req.ShelterID,
		})
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusCreated, toAnimalResponse(a, nil))
	}
}

func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var f Filter
		f.Species = q.Get("species")
		f.Breed = q.Get("breed")
		f.ShelterID = q.Get("shelter")
		if v := q.Get("age"); v != "" {
			age, err := strconv.Atoi(v)
			if err != nil {
				httpjson.WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "Idade inválida no filtro."})
				return
			}
			f.Age = &age
		}

		items, err := svc.List(r.Context(), f)
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}

		out := make([]animalResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAnimalResponse(a, lookupShelter(r, svc, a.ShelterID)))
		}
		httpjson.WriteJSON(w, http.StatusOK, out)
	}
}

func getAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toAnimalResponse(a, lookupShelter(r, svc, a.ShelterID)))
	}
}

func updateAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpjson.WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "JSON inválido."})
			return
		}

		a, err := svc.Update(r.Context(), chi.URLParam(r, "animalID"), UpdateInput{
			Name:        req.Name,
			Species:     req.Species,
			Breed:       req.Breed,
			Age:         req.Age,
			Sex:         req.Sex,
			Description: req.Description,
			Photos:      req.Photos,
			ShelterID:   req.ShelterID,
		})
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toAnimalResponse(a, lookupShelter(r, svc, a.ShelterID)))
	}
}

func deleteAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "animalID")); err != nil {
			httpjson.WriteError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, map[string]string{"message": "Animal excluído com sucesso."})
	}
}

// lookupShelter tolera referencias colgantes (abrigo borrado sin cascada):
// si no resuelve, la respuesta sale sin resumen.
func lookupShelter(r *http.Request, svc *Service, shelterID string) *shelterSummary {
	sh, err := svc.ShelterInfo(r.Context(), shelterID)
	if err != nil {
		return nil
	}
	return &shelterSummary{ID: sh.ID, Name: sh.Name, Email: sh.Email, Phone: sh.Phone}
}

func toAnimalResponse(a Animal, sh *shelterSummary) animalResponse {
	return animalResponse{
		ID:          a.ID,
		Name:        a.Name,
		Species:     string(a.Species),
		Breed:       a.Breed,
		Age:         a.Age,
		Sex:         string(a.Sex),
		Description: a.Description,
		Photos:      a.Photos,
		ShelterID:   a.ShelterID,
		Shelter:     sh,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
