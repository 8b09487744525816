package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// UserRole represents the role of an application user
type UserRole int

const (
	UserRoleUser  UserRole = 0
	UserRoleAdmin UserRole = 1
)

func (r UserRole) String() string {
	return [...]string{"user", "admin"}[r]
}

// Valid reports whether the role is a known value
func (r UserRole) Valid() bool {
	return r == UserRoleUser || r == UserRoleAdmin
}

func (r UserRole) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *UserRole) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*r = UserRole(i)
		return nil
	}
	switch str {
	case "user":
		*r = UserRoleUser
	case "admin":
		*r = UserRoleAdmin
	default:
		// Unknown names decode to an out-of-range value so Valid() rejects them
		*r = UserRole(-1)
	}
	return nil
}

func (r UserRole) Value() (driver.Value, error) {
	return int64(r), nil
}

func (r *UserRole) Scan(value interface{}) error {
	if value == nil {
		*r = UserRoleUser
		return nil
	}
	switch v := value.(type) {
	case int64:
		*r = UserRole(v)
	case int:
		*r = UserRole(v)
	}
	return nil
}
