package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"     json:"id"`
	FirstName      string     `                                json:"first_name"`
	LastName       string     `                                json:"last_name"`
	Username       string     `gorm:"uniqueIndex;not null"     json:"username"`
	Email          string     `                                json:"email"`
	PasswordDigest string     `gorm:"not null"                 json:"-"`
	Role           Role       `gorm:"type:varchar(16);not null" json:"type"`
	State          bool       `gorm:"not null;default:false"   json:"state"`
	CR             string     `                                json:"cr"`
	ShopID         *uuid.UUID `gorm:"type:uuid"                json:"shop,omitempty"`
	CartRefs       []UserCart `gorm:"foreignKey:UserID"        json:"-"`
	CreatedAt      time.Time  `                                json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// CanLogin reports whether credentials alone are enough to open a session.
// Owners additionally need admin approval.
func (u *User) CanLogin() bool {
	switch u.Role {
	case RoleOwner:
		return u.State
	case RoleCustomer, RoleAdmin:
		return true
	}
	return false
}

func (u *User) HasCart(cartID uuid.UUID) bool {
	for _, ref := range u.CartRefs {
		if ref.CartID == cartID {
			return true
		}
	}
	return false
}

// UserCart is one entry of a user's cart-reference list.
type UserCart struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CartID uuid.UUID `gorm:"type:uuid;primaryKey" json:"cart_id"`
}

func (UserCart) TableName() string {
	return "user_carts"
}

type Shop struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"         json:"id"`
	OwnerID     uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"owner"`
	Name        string    `gorm:"not null"                     json:"name"`
	Description string    `                                    json:"description"`
}

func (s *Shop) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type Item struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"       json:"id"`
	ShopID      uuid.UUID `gorm:"type:uuid;index;not null"   json:"shop"`
	Name        string    `gorm:"not null"                   json:"name"`
	Description string    `                                  json:"description"`
	Price       float64   `gorm:"not null"                   json:"price"`
	Image       string    `                                  json:"image"`
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type Cart struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"            json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;index;not null"        json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID"               json:"user,omitempty"`
	Items      []CartLine `gorm:"foreignKey:CartID"               json:"items"`
	CheckedOut bool       `gorm:"index;not null;default:false"    json:"checked_out"`
	TotalPrice float64    `gorm:"not null;default:0"              json:"total_price"`
	Date       time.Time  `                                       json:"date"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CartLine is a line item. Position keeps the insertion order of the lines.
type CartLine struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"     json:"-"`
	CartID   uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`
	Position int       `gorm:"not null"                 json:"-"`
	ItemID   uuid.UUID `gorm:"type:uuid;not null"       json:"item"`
	Item     *Item     `gorm:"foreignKey:ItemID"        json:"item_details,omitempty"`
	Quantity int       `gorm:"not null"                 json:"quantity"`
}

func (l *CartLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (CartLine) TableName() string {
	return "cart_lines"
}

// All lists every model for migration.
func All() []any {
	return []any{&User{}, &UserCart{}, &Shop{}, &Item{}, &Cart{}, &CartLine{}}
}
