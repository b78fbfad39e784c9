package auth

// Claims es la información que viaja dentro del token de sesión.
// EntityID queda vacío cuando la identidad no tiene entidad vinculada (admin).
type Claims struct {
	IdentityID string
	Role       string
	EntityID   string
}
