package common

import (
	"bytes"
	"image/color"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/fogleman/gg"
	"github.com/mentorlink/mentorbot/internal/model"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// Константы размеров и отступов
const (
	imageWidth      = 1400
	imageHeight     = 900
	headerHeight    = 100
	leftLabelsWidth = 80
	dayPaddingX     = 8
	minSlotHeight   = 10.0
	slotRadius      = 6.0
	daysInWeek      = 7
	hourPaddingTop  = 1
	hourPaddingBot  = 1
	defaultMinHour  = 8
	defaultMaxHour  = 20
)

// Константы шрифтов
const (
	titleFontSize     = 25.0
	dayFontSize       = 27.0
	hourLabelFontSize = 18.0
	slotTimeFontSize  = 17.0
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 220}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	hourLineColor  = color.NRGBA{150, 150, 150, 255}
	todayBgColor   = color.NRGBA{255, 99, 71, 125}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{220, 220, 220, 255}

	slotFreeColor = color.RGBA{133, 193, 85, 220}
	slotTextColor = color.RGBA{20, 24, 28, 230}
)

// hourRange содержит диапазон часов для отображения
type hourRange struct {
	start int
	end   int
	total int
}

var (
	fontOnce   sync.Once
	loadedFont *opentype.Font
)

// loadFont устанавливает шрифт из TTF по указанному пути.
// Если путь пустой или файл не читается, используется basicfont.
func loadFont(dc *gg.Context, size float64, fontPath string) {
	fontOnce.Do(func() {
		if fontPath == "" {
			return
		}
		data, err := os.ReadFile(fontPath)
		if err != nil {
			return
		}
		parsed, err := opentype.Parse(data)
		if err != nil {
			return
		}
		loadedFont = parsed
	})

	if loadedFont != nil {
		face, err := opentype.NewFace(loadedFont, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			dc.SetFontFace(face)
			return
		}
	}
	dc.SetFontFace(basicfont.Face7x13)
}

// GenerateWeekImage генерирует картинку недели со свободными слотами ментора.
// days - до семи дней календаря, в том порядке, в котором их нужно рисовать.
func GenerateWeekImage(days []model.DaySlots, fontPath string) ([]byte, error) {
	if len(days) > daysInWeek {
		days = days[:daysInWeek]
	}

	hours := calculateHourRange(days)
	today := time.Now().Format(model.DateLayout)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()

	dayWidth := (imageWidth - leftLabelsWidth) / daysInWeek
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	drawHeader(dc, days, fontPath)
	drawHourLabels(dc, hours, cellHeight, fontPath)

	for dayIndex, day := range days {
		x := float64(leftLabelsWidth + dayIndex*dayWidth)
		y := float64(headerHeight)

		drawDayBackground(dc, x, y, dayWidth, dayHeight, dayIndex, day.Date == today)
		drawDayHeader(dc, day.Date, x, y, dayWidth, fontPath)
		drawHourLines(dc, x, y, dayWidth, hours, cellHeight)

		for _, slot := range day.Slots {
			drawSlot(dc, slot, x, y, dayWidth, hours, cellHeight, fontPath)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// calculateHourRange определяет диапазон часов для отображения
func calculateHourRange(days []model.DaySlots) hourRange {
	minHour := 24
	maxHour := 0

	for _, day := range days {
		for _, slot := range day.Slots {
			startH := int(clockToHours(slot.StartTime))
			endF := clockToHours(slot.EndTime)
			endH := int(endF)
			if endF > float64(endH) {
				endH++
			}
			if startH < minHour {
				minHour = startH
			}
			if endH > maxHour {
				maxHour = endH
			}
		}
	}

	if minHour == 24 {
		minHour = defaultMinHour
		maxHour = defaultMaxHour
	}

	startHour := minHour - hourPaddingTop
	endHour := maxHour + hourPaddingBot
	if startHour < 0 {
		startHour = 0
	}
	if endHour > 23 {
		endHour = 23
	}

	return hourRange{
		start: startHour,
		end:   endHour,
		total: endHour - startHour + 1,
	}
}

// clockToHours переводит "HH:MM" в часы с дробной частью
func clockToHours(clock string) float64 {
	if len(clock) != 5 {
		return 0
	}
	h, err1 := strconv.Atoi(clock[:2])
	m, err2 := strconv.Atoi(clock[3:])
	if err1 != nil || err2 != nil {
		return 0
	}
	return float64(h) + float64(m)/60.0
}

// drawHeader рисует заголовок с диапазоном дат недели
func drawHeader(dc *gg.Context, days []model.DaySlots, fontPath string) {
	if len(days) == 0 {
		return
	}

	title := formatHeaderDate(days[0].Date)
	if len(days) > 1 {
		title += " - " + formatHeaderDate(days[len(days)-1].Date)
	}

	loadFont(dc, titleFontSize, fontPath)
	dc.SetColor(textColor)
	w, h := dc.MeasureString(title)
	dc.DrawStringAnchored(title, w/2+20, float64(headerHeight)/8+h/2, 0, 0)
}

func formatHeaderDate(dateStr string) string {
	t, err := time.Parse(model.DateLayout, dateStr)
	if err != nil {
		return dateStr
	}
	return t.Format("02.01")
}

// drawHourLabels рисует колонку с часами слева
func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64, fontPath string) {
	loadFont(dc, hourLabelFontSize, fontPath)
	dc.SetColor(hourLabelColor)

	for hIdx := 0; hIdx < hours.total; hIdx++ {
		actualHour := hours.start + hIdx
		y := float64(headerHeight) + float64(hIdx)*cellHeight
		dc.DrawStringAnchored(formatHourLabel(actualHour), float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

// drawDayBackground рисует фон дня
func drawDayBackground(dc *gg.Context, x, y float64, dayWidth, dayHeight, dayIndex int, isToday bool) {
	if isToday {
		dc.SetColor(todayBgColor)
	} else if dayIndex%2 == 0 {
		dc.SetColor(evenDayColor)
	} else {
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()
}

// drawDayHeader рисует название дня недели и дату
func drawDayHeader(dc *gg.Context, dateStr string, x, y float64, dayWidth int, fontPath string) {
	weekdayStr := "?"
	displayDate := dateStr
	if t, err := time.Parse(model.DateLayout, dateStr); err == nil {
		weekdayStr = getWeekdayShort(t.Weekday())
		displayDate = t.Format("02.01")
	}

	loadFont(dc, dayFontSize, fontPath)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(displayDate, x+float64(dayWidth)/2, y, 0.5, -1)
	dc.DrawStringAnchored(weekdayStr, x+float64(dayWidth)/2, y, 0.5, -0.2)
}

// drawHourLines рисует горизонтальные линии часов
func drawHourLines(dc *gg.Context, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)

	for hIdx := 0; hIdx <= hours.total; hIdx++ {
		hy := y + float64(hIdx)*cellHeight
		dc.DrawLine(x, hy, x+float64(dayWidth), hy)
		dc.Stroke()
	}
}

// drawSlot рисует один свободный слот
func drawSlot(dc *gg.Context, slot model.ResolvedSlot, x, y float64, dayWidth int, hours hourRange, cellHeight float64, fontPath string) {
	slotStartHour := clockToHours(slot.StartTime)
	slotEndHour := clockToHours(slot.EndTime)

	slotY := y + (slotStartHour-float64(hours.start))*cellHeight
	slotHeight := (slotEndHour - slotStartHour) * cellHeight
	if slotHeight < minSlotHeight {
		slotHeight = minSlotHeight
	}

	slotWidth := float64(dayWidth) - float64(dayPaddingX*2)

	dc.SetColor(slotFreeColor)
	dc.DrawRoundedRectangle(x+float64(dayPaddingX), slotY+2, slotWidth, slotHeight-4, slotRadius)
	dc.Fill()

	borderColor := darkenColor(slotFreeColor, 0.8)
	dc.SetColor(borderColor)
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x+float64(dayPaddingX), slotY+2, slotWidth, slotHeight-4, slotRadius)
	dc.Stroke()

	loadFont(dc, slotTimeFontSize, fontPath)
	dc.SetColor(slotTextColor)
	dc.DrawStringAnchored(slot.StartTime, x+float64(dayPaddingX)+8, slotY+18, 0, 0)
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// формат числа с двумя цифрами
func formatTwoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func formatHourLabel(h int) string {
	return formatTwoDigits(h) + ":00"
}

// короткие дни недели
func getWeekdayShort(weekday time.Weekday) string {
	weekdays := map[time.Weekday]string{
		time.Monday:    "Пн",
		time.Tuesday:   "Вт",
		time.Wednesday: "Ср",
		time.Thursday:  "Чт",
		time.Friday:    "Пт",
		time.Saturday:  "Сб",
		time.Sunday:    "Вс",
	}
	return weekdays[weekday]
}
