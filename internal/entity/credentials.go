package entity

// Credentials are the login identifier and password supplied on the command
// line. They are never read from configuration.
type Credentials struct {
	Identifier string
	Password   string
}

// String never includes the password.
func (c Credentials) String() string {
	return c.Identifier + ":********"
}
