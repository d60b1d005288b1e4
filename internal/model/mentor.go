package model

import "time"

type Mentor struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Headline  string    `json:"headline"`  // краткое описание специализации
	Timezone  string    `json:"timezone"`  // IANA зона, только для отображения
	IsActive  bool      `json:"is_active"` // принимает ли ментор новые сессии
	CreatedAt time.Time `json:"created_at"`
}
