package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// Role is the closed set of account kinds. The zero value is not a valid role.
type Role uint8

const (
	RoleCustomer Role = iota + 1
	RoleOwner
	RoleAdmin
)

var ErrUnknownRole = errors.New("unknown role")

// ParseRole maps the wire name to a Role. An empty name is a customer.
func ParseRole(s string) (Role, error) {
	switch s {
	case "", "customer":
		return RoleCustomer, nil
	case "owner":
		return RoleOwner, nil
	case "admin":
		return RoleAdmin, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "customer"
	case RoleOwner:
		return "owner"
	case RoleAdmin:
		return "admin"
	}
	return fmt.Sprintf("Role(%d)", uint8(r))
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r Role) Value() (driver.Value, error) {
	return r.String(), nil
}

func (r *Role) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("role: unsupported scan type %T", src)
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
