package domain

import (
	"time"

	"github.com/google/uuid"
)

// Media - элемент галереи автомобиля (фото хранится как base64 blob,
// по той же схеме, что и логотип компании)
type Media struct {
	ID          uuid.UUID `json:"id"`
	VehicleID   string    `json:"vehicle_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	DataBase64  string    `json:"data_base64"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate проверяет корректность данных медиа
func (m *Media) Validate() error {
	if m.VehicleID == "" {
		return ErrInvalidMediaData
	}
	if m.DataBase64 == "" {
		return ErrInvalidMediaData
	}
	return nil
}
