package config

import (
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Server agrupa la configuración que main necesita para levantar la API.
type Server struct {
	Addr       string
	DBDSN      string
	JWTSecret  string
	JWTTTL     time.Duration
	BcryptCost int
}

// FromEnv arma la configuración desde variables de entorno para que main
// quede chico. Defaults pensados para dev; en producción JWT_SECRET es
// obligatorio sobreescribirlo.
func FromEnv() Server {
	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-in-production"
	}

	ttl := time.Hour
	if v := os.Getenv("JWT_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			ttl = d
		}
	}

	return Server{
		Addr:       addr,
		DBDSN:      os.Getenv("DB_DSN"),
		JWTSecret:  secret,
		JWTTTL:     ttl,
		BcryptCost: bcrypt.DefaultCost,
	}
}
