package transport

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/marketplace/internal/models"
)

type LineItem struct {
	Item     uuid.UUID `json:"item"`
	Quantity int       `json:"quantity"`
}

type AddItemsRequest struct {
	// Items stays raw so a missing or non-array value can be told apart from
	// an empty array.
	Items      json.RawMessage `json:"items"`
	Date       *time.Time      `json:"date"`
	TotalPrice float64         `json:"total_price"`
}

// Lines decodes Items. It returns nil, nil when Items is not a JSON array.
func (r AddItemsRequest) Lines() ([]models.CartLine, error) {
	raw := bytes.TrimSpace(r.Items)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, nil
	}
	var in []LineItem
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, err
	}
	lines := make([]models.CartLine, len(in))
	for i, it := range in {
		lines[i] = models.CartLine{ItemID: it.Item, Quantity: it.Quantity}
	}
	return lines, nil
}

type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Type      string `json:"type"`
	CR        string `json:"cr"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordRequest struct {
	Username    string `json:"username"`
	NewPassword string `json:"newPassword"`
}

type SearchResponse struct {
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Size  int           `json:"size"`
	Items []models.Item `json:"items"`
}
