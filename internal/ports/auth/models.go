package auth

// Claims identifica al miembro del staff que hace la operación.
// La autenticación real queda fuera del servicio; sólo se usa para auditar overrides.
type Claims struct {
	StaffID string
}
