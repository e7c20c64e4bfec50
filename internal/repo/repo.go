package repo

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var ErrUserAlreadyExist = errors.New("user already exist")

// GormRepo is the document-style store for accounts, catalog and carts.
type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}
