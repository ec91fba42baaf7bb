package enum

import (
	"database/sql/driver"
	"fmt"
)

// Role decides which screens and records a user can reach
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleKeeper Role = "keeper"
	RoleSeller Role = "seller"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleKeeper, RoleSeller:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

func (r *Role) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*r = RoleSeller
	case string:
		*r = Role(v)
	case []byte:
		*r = Role(v)
	default:
		return fmt.Errorf("cannot scan %T into Role", value)
	}
	return nil
}
