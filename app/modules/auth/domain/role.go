package authdomain

// Role represents an API client's role for authorization purposes.
type Role string

const (
	// RoleGateway is a Discord gateway instance: it publishes inbound league
	// events and consumes gateway-bound commands.
	RoleGateway Role = "gateway"

	// RoleReadOnly can read league state over NATS but publish nothing.
	RoleReadOnly Role = "readonly"
)

// IsValid checks if the role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleGateway, RoleReadOnly:
		return true
	default:
		return false
	}
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}
