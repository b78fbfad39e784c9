// Package apperr centraliza la taxonomía de errores que comparten todos los
// módulos de dominio. Cada error lleva el mensaje visible para el cliente
// (en portugués, el idioma de la API); el mapeo a status HTTP vive en
// transport/httpjson.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinelas de autenticación. Mensaje uniforme para email desconocido o
// contraseña incorrecta (evita enumeración de usuarios).
var (
	ErrInvalidCredentials = errors.New("Credenciais inválidas.")
	ErrTokenMissing       = errors.New("Não autorizado, nenhum token.")
	ErrTokenInvalid       = errors.New("Não autorizado, token falhou.")
	ErrIdentityNotFound   = errors.New("Não autorizado, usuário não encontrado.")
)

// ErrNotFound es el sentinel que devuelven los repos cuando el registro
// primario no existe. Los services lo envuelven en NotFound con el mensaje
// específico de su entidad.
var ErrNotFound = errors.New("not found")

// Validation junta los mensajes por campo en un solo error 400.
type Validation struct {
	Messages []string
}

func (e *Validation) Error() string { return strings.Join(e.Messages, ", ") }

// NewValidation es un atajo para un único mensaje.
func NewValidation(msgs ...string) *Validation { return &Validation{Messages: msgs} }

// Duplicate indica violación de unicidad en el store (email, nombre).
type Duplicate struct {
	Message string
}

func (e *Duplicate) Error() string { return e.Message }

// InvalidReference: id de referencia con formato inválido. Se detecta antes
// de consultar el store, por eso es un error distinto de ReferenceNotFound.
type InvalidReference struct {
	Message string
}

func (e *InvalidReference) Error() string { return e.Message }

// ReferenceNotFound: referencia bien formada que no resuelve a ningún
// registro. Entity nombra el tipo referenciado para diagnóstico.
type ReferenceNotFound struct {
	Entity  string
	Message string
}

func (e *ReferenceNotFound) Error() string { return e.Message }

// NotFound: el registro primario de la operación no existe.
type NotFound struct {
	Message string
}

func (e *NotFound) Error() string { return e.Message }

// Forbidden: rol autenticado fuera del conjunto permitido de la ruta.
// El mensaje nombra el rol presentado, no los requeridos.
type Forbidden struct {
	Role string
}

func (e *Forbidden) Error() string {
	return fmt.Sprintf("Usuário com papel '%s' não autorizado a acessar esta rota.", e.Role)
}
