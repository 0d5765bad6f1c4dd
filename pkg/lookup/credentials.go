package lookup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Credentials identify and authenticate against the external store.
// The JSON shape matches the dbCreds object of the /rule endpoint.
type Credentials struct {
	Username    string `json:"username" yaml:"username"`
	Password    string `json:"password" yaml:"password"`
	Host        string `json:"host" yaml:"host"`
	Port        string `json:"port" yaml:"port"`
	ServiceName string `json:"serviceName" yaml:"service_name"`
}

// Validate ensures every field is present and the port is numeric.
func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Username, validation.Required),
		validation.Field(&c.Password, validation.Required),
		validation.Field(&c.Host, validation.Required),
		validation.Field(&c.Port, validation.Required, is.Port),
		validation.Field(&c.ServiceName, validation.Required),
	)
}

// IsZero reports whether no field is set.
func (c Credentials) IsZero() bool {
	return c == Credentials{}
}

// Identity returns the endpoint identity without any secret, suitable for
// logs: user@host:port/service.
func (c Credentials) Identity() string {
	return fmt.Sprintf("%s@%s:%s/%s", c.Username, c.Host, c.Port, c.ServiceName)
}

// CacheKey derives a key from the full credential set and the rule name.
// The password participates so that two users of one endpoint never share
// entries, but it cannot be recovered from the key.
func (c Credentials) CacheKey(name string) string {
	h := sha256.New()
	for _, part := range []string{c.Username, c.Password, c.Host, c.Port, c.ServiceName, name} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// String returns the identity so formatted output never includes the
// password.
func (c Credentials) String() string {
	return c.Identity()
}

// LogValue implements slog.LogValuer.
func (c Credentials) LogValue() slog.Value {
	return slog.StringValue(c.Identity())
}

// UnmarshalJSON accepts the port as a string or a number.
func (c *Credentials) UnmarshalJSON(data []byte) error {
	var raw struct {
		Username    string          `json:"username"`
		Password    string          `json:"password"`
		Host        string          `json:"host"`
		Port        json.RawMessage `json:"port"`
		ServiceName string          `json:"serviceName"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	port := ""
	if len(raw.Port) > 0 && string(raw.Port) != "null" {
		var s string
		if err := json.Unmarshal(raw.Port, &s); err == nil {
			port = s
		} else {
			var n json.Number
			if err := json.Unmarshal(raw.Port, &n); err != nil {
				return fmt.Errorf("port must be a string or a number")
			}
			port = n.String()
		}
	}

	*c = Credentials{
		Username:    raw.Username,
		Password:    raw.Password,
		Host:        raw.Host,
		Port:        port,
		ServiceName: raw.ServiceName,
	}
	return nil
}
