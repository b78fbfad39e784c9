package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pet-adoption-api/internal/adapters/auth/jwtauth"
	"pet-adoption-api/internal/ports/auth"
	"pet-adoption-api/internal/router"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_AdoptionFlow(t *testing.T) {
	ts := newServer(t)

	// 1) Admin se registra sin entidad
	adminToken, admin := register(t, ts.URL, map[string]any{
		"email":    "admin@plataforma.com",
		"password": "secret123",
		"role":     "admin",
	})
	if admin["entity_id"] != nil {
		t.Fatalf("admin should not carry entity_id: %v", admin)
	}

	// 2) Operador de abrigo se registra creando su entidad en el mismo paso
	shelterToken, shelterUser := register(t, ts.URL, map[string]any{
		"email":    "contato@abrigo.com",
		"password": "secret123",
		"role":     "shelter",
		"entity": map[string]any{
			"name":    "Abrigo X",
			"address": "Rua das Flores, 123",
			"phone":   "(11) 99999-8888",
		},
	})
	shelterID, _ := shelterUser["entity_id"].(string)
	if shelterID == "" {
		t.Fatalf("shelter register missing entity_id: %v", shelterUser)
	}

	// 3) La entidad quedó visible en el registro público
	{
		st, body := doReq(t, ts.URL, "GET", "/shelters/"+shelterID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get shelter, got %d body=%s", st, string(body))
		}
		var sh map[string]any
		_ = json.Unmarshal(body, &sh)
		if sh["name"] != "Abrigo X" {
			t.Fatalf("unexpected shelter body %v", sh)
		}
		if sh["email"] != "contato@abrigo.com" {
			t.Fatalf("entity email should inherit login email, got %v", sh["email"])
		}
	}

	// 4) Adoptante se registra creando su entidad
	adopterToken, adopterUser := register(t, ts.URL, map[string]any{
		"email":    "maria@mail.com",
		"password": "secret123",
		"role":     "adopter",
		"entity": map[string]any{
			"name":    "Maria Silva",
			"address": "Av. Central, 45",
			"phone":   "(21) 98888-7777",
		},
	})
	adopterID, _ := adopterUser["entity_id"].(string)
	if adopterID == "" {
		t.Fatalf("adopter register missing entity_id: %v", adopterUser)
	}

	// 5) El operador publica un animal
	var animalID string
	{
		st, body := doReq(t, ts.URL, "POST", "/animals", shelterToken, map[string]any{
			"name":        "Rex",
			"species":     "dog",
			"breed":       "vira-lata",
			"age":         3,
			"sex":         "male",
			"description": "Muito dócil e brincalhão.",
			"photos":      []string{"https://example.com/rex.jpg"},
			"shelter_id":  shelterID,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create animal, got %d body=%s", st, string(body))
		}
		var a map[string]any
		_ = json.Unmarshal(body, &a)
		animalID, _ = a["id"].(string)
		if animalID == "" {
			t.Fatalf("create animal: missing id body=%s", string(body))
		}
	}

	// 6) Lectura pública con populate del abrigo
	{
		st, body := doReq(t, ts.URL, "GET", "/animals/"+animalID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get animal, got %d body=%s", st, string(body))
		}
		var a struct {
			Shelter *struct {
				Name string `json:"name"`
			} `json:"shelter"`
		}
		_ = json.Unmarshal(body, &a)
		if a.Shelter == nil || a.Shelter.Name != "Abrigo X" {
			t.Fatalf("expected populated shelter summary, body=%s", string(body))
		}
	}

	// 7) El filtro por abrigo encuentra al animal
	{
		st, body := doReq(t, ts.URL, "GET", "/animals?shelter="+shelterID+"&species=dog", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list animals, got %d body=%s", st, string(body))
		}
		var items []map[string]any
		_ = json.Unmarshal(body, &items)
		if len(items) != 1 {
			t.Fatalf("expected 1 animal, got %d", len(items))
		}
	}

	// 8) El adoptante no puede registrar la adopción (solo admin)
	{
		st, _ := doReq(t, ts.URL, "POST", "/adoptions", adopterToken, map[string]any{
			"adopter_id": adopterID,
			"animal_id":  animalID,
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 create adoption as adopter, got %d", st)
		}
	}

	// 9) El admin registra la adopción; la fecha se asume "ahora"
	var adoptionID string
	{
		st, body := doReq(t, ts.URL, "POST", "/adoptions", adminToken, map[string]any{
			"adopter_id": adopterID,
			"animal_id":  animalID,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create adoption, got %d body=%s", st, string(body))
		}
		var a struct {
			ID      string `json:"id"`
			Adopter *struct {
				Name string `json:"name"`
			} `json:"adopter"`
			Animal *struct {
				Name string `json:"name"`
			} `json:"animal"`
			AdoptionDate time.Time `json:"adoption_date"`
		}
		_ = json.Unmarshal(body, &a)
		adoptionID = a.ID
		if a.Adopter == nil || a.Adopter.Name != "Maria Silva" {
			t.Fatalf("expected populated adopter, body=%s", string(body))
		}
		if a.Animal == nil || a.Animal.Name != "Rex" {
			t.Fatalf("expected populated animal, body=%s", string(body))
		}
		if a.AdoptionDate.IsZero() {
			t.Fatalf("adoption date not defaulted, body=%s", string(body))
		}
	}

	// 10) Listado de adopciones filtrado por adoptante
	{
		st, body := doReq(t, ts.URL, "GET", "/adoptions?adopter="+adopterID, adminToken, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list adoptions, got %d body=%s", st, string(body))
		}
		var items []map[string]any
		_ = json.Unmarshal(body, &items)
		if len(items) != 1 || items[0]["id"] != adoptionID {
			t.Fatalf("unexpected listing %v", items)
		}
	}
}

func TestHTTP_DanglingReference_Rejected(t *testing.T) {
	ts := newServer(t)

	token, _ := register(t, ts.URL, map[string]any{
		"email":    "admin@plataforma.com",
		"password": "secret123",
		"role":     "admin",
	})

	// id bien formado pero inexistente => 404
	{
		st, body := doReq(t, ts.URL, "POST", "/animals", token, map[string]any{
			"name":        "Rex",
			"species":     "dog",
			"age":         3,
			"sex":         "male",
			"description": "Muito dócil e brincalhão.",
			"photos":      []string{"https://example.com/rex.jpg"},
			"shelter_id":  "3f2c8a44-5d1e-4f6a-9b7c-2e8d4a1c6f90",
		})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for missing shelter, got %d body=%s", st, string(body))
		}
	}

	// id malformado => 400, sin tocar el store
	{
		st, _ := doReq(t, ts.URL, "POST", "/animals", token, map[string]any{
			"name":        "Rex",
			"species":     "dog",
			"age":         3,
			"sex":         "male",
			"description": "Muito dócil e brincalhão.",
			"photos":      []string{"https://example.com/rex.jpg"},
			"shelter_id":  "no-es-uuid",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for malformed shelter id, got %d", st)
		}
	}
}

func TestHTTP_RoleGates(t *testing.T) {
	ts := newServer(t)

	adminToken, _ := register(t, ts.URL, map[string]any{
		"email":    "admin@plataforma.com",
		"password": "secret123",
		"role":     "admin",
	})
	adopterToken, _ := register(t, ts.URL, map[string]any{
		"email":    "maria@mail.com",
		"password": "secret123",
		"role":     "adopter",
		"entity": map[string]any{
			"name":    "Maria Silva",
			"address": "Av. Central, 45",
			"phone":   "(21) 98888-7777",
		},
	})

	var shelterID string
	{
		st, body := doReq(t, ts.URL, "POST", "/shelters", adminToken, map[string]any{
			"name":    "Abrigo X",
			"address": "Rua A, 1",
			"phone":   "(11) 99999-8888",
			"email":   "x@abrigo.com",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create shelter, got %d body=%s", st, string(body))
		}
		var sh map[string]any
		_ = json.Unmarshal(body, &sh)
		shelterID, _ = sh["id"].(string)
	}

	// Sin token => 401
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/shelters/"+shelterID, "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without token, got %d", st)
		}
	}

	// Adoptante => 403 con el papel en el mensaje
	{
		st, body := doReq(t, ts.URL, "DELETE", "/shelters/"+shelterID, adopterToken, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 as adopter, got %d body=%s", st, string(body))
		}
		var resp map[string]string
		_ = json.Unmarshal(body, &resp)
		if resp["message"] != "Usuário com papel 'adopter' não autorizado a acessar esta rota." {
			t.Fatalf("unexpected forbidden message %q", resp["message"])
		}
	}

	// El adoptante tampoco publica animales (gate de staff)
	{
		st, _ := doReq(t, ts.URL, "POST", "/animals", adopterToken, map[string]any{
			"name": "Rex",
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 create animal as adopter, got %d", st)
		}
	}

	// Admin => 200 con mensaje de éxito
	{
		st, body := doReq(t, ts.URL, "DELETE", "/shelters/"+shelterID, adminToken, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 delete as admin, got %d body=%s", st, string(body))
		}
		var resp map[string]string
		_ = json.Unmarshal(body, &resp)
		if resp["message"] != "Abrigo excluído com sucesso." {
			t.Fatalf("unexpected delete message %q", resp["message"])
		}
	}
}

func TestHTTP_LoginAndMe(t *testing.T) {
	ts := newServer(t)

	register(t, ts.URL, map[string]any{
		"email":    "admin@plataforma.com",
		"password": "secret123",
		"role":     "admin",
	})

	// Credenciales incorrectas => mensaje uniforme
	{
		st, body := doReq(t, ts.URL, "POST", "/auth/login", "", map[string]any{
			"email":    "admin@plataforma.com",
			"password": "wrong-pass",
		})
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 bad password, got %d", st)
		}
		var resp map[string]string
		_ = json.Unmarshal(body, &resp)
		if resp["message"] != "Credenciais inválidas." {
			t.Fatalf("unexpected message %q", resp["message"])
		}
	}

	var token string
	{
		st, body := doReq(t, ts.URL, "POST", "/auth/login", "", map[string]any{
			"email":    "admin@plataforma.com",
			"password": "secret123",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 login, got %d body=%s", st, string(body))
		}
		var resp struct {
			Token string `json:"token"`
		}
		_ = json.Unmarshal(body, &resp)
		token = resp.Token
	}

	st, body := doReq(t, ts.URL, "GET", "/auth/me", token, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 me, got %d body=%s", st, string(body))
	}
	var resp struct {
		User struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.User.Email != "admin@plataforma.com" || resp.User.Role != "admin" {
		t.Fatalf("unexpected me body %s", string(body))
	}
}

func TestHTTP_ExpiredToken(t *testing.T) {
	ts := newServer(t)

	_, admin := register(t, ts.URL, map[string]any{
		"email":    "admin@plataforma.com",
		"password": "secret123",
		"role":     "admin",
	})

	// Token firmado con el secreto por defecto pero ya vencido.
	expired := jwtauth.New("dev-secret-change-in-production", -time.Minute)
	tok, err := expired.Issue(auth.Claims{IdentityID: admin["id"].(string), Role: "admin"})
	if err != nil {
		t.Fatalf("issue expired token: %v", err)
	}

	st, body := doReq(t, ts.URL, "GET", "/auth/me", tok, nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 expired token, got %d body=%s", st, string(body))
	}
	var resp map[string]string
	_ = json.Unmarshal(body, &resp)
	if resp["message"] != "Não autorizado, token falhou." {
		t.Fatalf("unexpected message %q", resp["message"])
	}
}

func TestHTTP_HealthAndMetrics(t *testing.T) {
	ts := newServer(t)

	if st, _ := doReq(t, ts.URL, "GET", "/health", "", nil); st != http.StatusOK {
		t.Fatalf("expected 200 health, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/metrics", "", nil); st != http.StatusOK {
		t.Fatalf("expected 200 metrics, got %d", st)
	}
}

// -------------------------
// Helpers
// -------------------------

func register(t *testing.T, baseURL string, payload map[string]any) (string, map[string]any) {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/auth/register", "", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 register, got %d body=%s", st, string(body))
	}

	var resp struct {
		Token string         `json:"token"`
		User  map[string]any `json:"user"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Token == "" {
		t.Fatalf("register: missing token body=%s", string(body))
	}
	return resp.Token, resp.User
}

func doReq(t *testing.T, baseURL, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, out
}
