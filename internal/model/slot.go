package model

// ResolvedSlot конкретный слот, в который можно записаться к ментору.
// Вычисляется из правила доступности для одной даты, никогда не хранится.
type ResolvedSlot struct {
	Date      string `json:"date"` // "YYYY-MM-DD"
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}

// DaySlots слоты одного календарного дня, отсортированные по времени начала
type DaySlots struct {
	Date  string         `json:"date"`
	Slots []ResolvedSlot `json:"slots"`
}
