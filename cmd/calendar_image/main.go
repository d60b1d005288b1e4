package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mentorlink/mentorbot/internal/controller/callbacks/common"
	"github.com/mentorlink/mentorbot/internal/model"
)

// Рисует картинку недели на тестовых данных и сохраняет в week.png.
// Путь к TTF можно передать первым аргументом.
func main() {
	fontPath := ""
	if len(os.Args) > 1 {
		fontPath = os.Args[1]
	}

	// Начинаем с понедельника текущей недели
	startDate := time.Now()
	for startDate.Weekday() != time.Monday {
		startDate = startDate.AddDate(0, 0, -1)
	}

	days := make([]model.DaySlots, 7)
	for i := range days {
		days[i] = model.DaySlots{Date: startDate.AddDate(0, 0, i).Format(model.DateLayout)}
	}

	// Тестовые слоты
	days[0].Slots = []model.ResolvedSlot{
		{Date: days[0].Date, StartTime: "09:00", EndTime: "10:00", Available: true},
		{Date: days[0].Date, StartTime: "14:00", EndTime: "15:30", Available: true},
	}
	days[1].Slots = []model.ResolvedSlot{
		{Date: days[1].Date, StartTime: "10:00", EndTime: "11:00", Available: true},
	}
	days[2].Slots = []model.ResolvedSlot{
		{Date: days[2].Date, StartTime: "09:00", EndTime: "10:00", Available: true},
		{Date: days[2].Date, StartTime: "15:00", EndTime: "16:00", Available: true},
	}
	days[4].Slots = []model.ResolvedSlot{
		{Date: days[4].Date, StartTime: "11:00", EndTime: "12:00", Available: true},
		{Date: days[4].Date, StartTime: "13:00", EndTime: "14:00", Available: true},
	}

	imageData, err := common.GenerateWeekImage(days, fontPath)
	if err != nil {
		fmt.Printf("Ошибка генерации изображения: %v\n", err)
		os.Exit(1)
	}

	filename := "week.png"
	if err := os.WriteFile(filename, imageData, 0644); err != nil {
		fmt.Printf("Ошибка сохранения файла: %v\n", err)
		os.Exit(1)
	}

	total := 0
	for _, day := range days {
		total += len(day.Slots)
	}

	fmt.Printf("✅ Изображение успешно сохранено в %s\n", filename)
	fmt.Printf("📅 Период: %s - %s\n", days[0].Date, days[6].Date)
	fmt.Printf("📊 Слотов: %d\n", total)
}
