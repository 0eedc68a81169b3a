package schema

// Credentials is the username/password pair used by the auth endpoints.
type Credentials struct {
	Username string
	Password string
}

// ParseCredentials validates a user insert or login payload.
func ParseCredentials(body []byte) (Credentials, error) {
	obj, err := decodeObject(body)
	if err != nil {
		return Credentials{}, err
	}
	var creds Credentials
	creds.Username, _ = obj.text("username", true)
	creds.Password, _ = obj.text("password", true)
	if err := obj.violations.orNil(); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}
