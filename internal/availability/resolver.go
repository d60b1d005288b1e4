package availability

import (
	"sort"
	"time"

	"github.com/mentorlink/mentorbot/internal/model"
)

// Resolve возвращает слоты ментора на одну календарную дату.
// Функция чистая: не меняет rules и при одинаковых входных данных
// всегда возвращает одинаковую отсортированную последовательность.
//
// Слоты не дедуплицируются: если еженедельное правило и правило на
// конкретную дату покрывают одно и то же время, в результате будут оба.
// Обрезать длинные списки для показа — задача вызывающей стороны.
func Resolve(rules []model.AvailabilityRule, date time.Time) []model.ResolvedSlot {
	dateStr := date.Format(model.DateLayout)

	var slots []model.ResolvedSlot
	for _, rule := range rules {
		if rule == nil || !rule.AppliesTo(date) {
			continue
		}

		w := rule.Window()
		slots = append(slots, model.ResolvedSlot{
			Date:      dateStr,
			StartTime: w.Start,
			EndTime:   w.End,
			Available: true,
		})
	}

	// Время хранится строками "HH:MM" с ведущими нулями,
	// поэтому лексикографическая сортировка корректна
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartTime < slots[j].StartTime
	})

	return slots
}

// ResolveWindow возвращает слоты на каждый день окна [start, start+days).
// Результат всегда содержит ровно days записей, по одной на дату, в порядке
// следования дат. Дни без слотов присутствуют с пустым списком.
func ResolveWindow(rules []model.AvailabilityRule, start time.Time, days int) []model.DaySlots {
	if days <= 0 {
		return nil
	}

	window := make([]model.DaySlots, 0, days)
	for i := 0; i < days; i++ {
		date := dateOnly(start).AddDate(0, 0, i)
		window = append(window, model.DaySlots{
			Date:  date.Format(model.DateLayout),
			Slots: Resolve(rules, date),
		})
	}

	return window
}

// dateOnly нормализует момент времени к полудню UTC той же календарной даты.
// Арифметика окна идёт по календарным датам, а не по инстантам, иначе
// переход на летнее время может сдвинуть окно на день.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
}
