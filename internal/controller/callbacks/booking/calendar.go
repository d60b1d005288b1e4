package booking

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mentorlink/mentorbot/internal/availability"
	"github.com/mentorlink/mentorbot/internal/controller/callbacks/callbacktypes"
	"github.com/mentorlink/mentorbot/internal/controller/callbacks/common"
	"github.com/mentorlink/mentorbot/internal/controller/callbacks/common/formatting"
	"github.com/mentorlink/mentorbot/internal/controller/callbacks/common/keyboard"
	"github.com/mentorlink/mentorbot/internal/model"
	"github.com/mentorlink/mentorbot/internal/service"
	"go.uber.org/zap"
)

const (
	// calendarWeeks сколько недель вперёд доступно в календаре
	calendarWeeks = service.RulesFetchDays / 7

	// slotsPreviewPerDay сколько слотов показывается в дне до кнопки "ещё"
	slotsPreviewPerDay = 6
)

// HandleCalendarPage показывает неделю календаря ментора.
// Формат callback: "cal:mentorID:week", week считается от текущей даты.
func HandleCalendarPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	parts, err := common.ParseCallbackParts(callback.Data, 2)
	if err != nil {
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	mentorID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	week, err := strconv.Atoi(parts[1])
	if err != nil || week < 0 {
		week = 0
	}
	if week >= calendarWeeks {
		week = calendarWeeks - 1
	}

	mentor, err := h.MentorService.GetMentor(ctx, mentorID)
	if err != nil || mentor == nil {
		h.Logger.Error("Failed to fetch mentor for calendar",
			zap.Int64("mentor_id", mentorID),
			zap.Error(err))
		hc.AnswerAlert(common.ErrorMessage(common.ErrMentorNotFound))
		return
	}

	startDate := time.Now().AddDate(0, 0, week*7)
	days, err := h.MentorService.GetCalendar(ctx, mentorID, startDate, 7)
	if err != nil {
		h.Logger.Error("Failed to resolve calendar",
			zap.Int64("mentor_id", mentorID),
			zap.Error(err))
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	caption, kb := buildWeekScreen(mentor, days, week)

	imageData, imgErr := common.GenerateWeekImage(days, h.CalendarFontPath)
	if imgErr != nil {
		h.Logger.Warn("Failed to render week image", zap.Error(imgErr))
	}

	// Картинку нельзя подложить в текстовое сообщение, поэтому шлём
	// новое сообщение и убираем старое
	if imgErr == nil {
		b.SendPhoto(ctx, &bot.SendPhotoParams{
			ChatID:      hc.ChatID,
			Photo:       &models.InputFileUpload{Filename: "week.png", Data: bytes.NewReader(imageData)},
			Caption:     caption,
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: kb,
		})
	} else {
		hc.SendMessage(caption, kb)
	}
	hc.DeleteMessage()
	hc.Answer("")
}

// buildWeekScreen собирает подпись и клавиатуру недели
func buildWeekScreen(mentor *model.Mentor, days []model.DaySlots, week int) (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder()

	totalSlots := 0
	for _, day := range days {
		if len(day.Slots) == 0 {
			continue
		}
		totalSlots += len(day.Slots)
		label := fmt.Sprintf("%s — %d %s",
			formatting.FormatDayLabel(day.Date),
			len(day.Slots),
			formatting.PluralizeSlots(len(day.Slots)))
		kb.Row(keyboard.Button(label, fmt.Sprintf("day:%d:%d:%s", mentor.ID, week, day.Date)))
	}

	kb.AddRow(keyboard.WeekPagination(fmt.Sprintf("cal:%d:", mentor.ID), week, calendarWeeks))
	kb.Row(keyboard.Button("⬅️ К ментору", fmt.Sprintf("mentor:%d", mentor.ID)))

	caption := fmt.Sprintf("📅 <b>%s</b>\n\nСвободное время на неделю. Выберите день, чтобы увидеть слоты.", mentor.Name)
	if totalSlots == 0 {
		caption = fmt.Sprintf("📅 <b>%s</b>\n\nНа этой неделе свободных слотов нет. Попробуйте другую неделю.", mentor.Name)
	}

	return caption, kb.Build()
}

// HandleDayView показывает слоты одного дня.
// Форматы callback: "day:mentorID:week:date" и "day_all:mentorID:week:date",
// второй снимает ограничение на количество показанных слотов.
func HandleDayView(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	showAll := strings.HasPrefix(callback.Data, "day_all:")

	parts, err := common.ParseCallbackParts(callback.Data, 3)
	if err != nil {
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	mentorID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	week, err := strconv.Atoi(parts[1])
	if err != nil || week < 0 {
		week = 0
	}

	dateStr := parts[2]
	date, err := formatting.ParseDate(dateStr)
	if err != nil {
		hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	days, err := h.MentorService.GetCalendar(ctx, mentorID, date, 1)
	if err != nil || len(days) != 1 {
		h.Logger.Error("Failed to resolve day",
			zap.Int64("mentor_id", mentorID),
			zap.String("date", dateStr),
			zap.Error(err))
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	slots := days[0].Slots
	shown := slots
	if !showAll && len(slots) > slotsPreviewPerDay {
		shown = slots[:slotsPreviewPerDay]
	}

	kb := keyboard.NewBuilder()
	var row []models.InlineKeyboardButton
	for _, slot := range shown {
		row = append(row, keyboard.Button(
			formatting.FormatSlotRange(slot),
			slotCallbackData(mentorID, slot),
		))
		if len(row) == 2 {
			kb.Row(row...)
			row = nil
		}
	}
	kb.Row(row...)

	if !showAll && len(slots) > slotsPreviewPerDay {
		rest := len(slots) - slotsPreviewPerDay
		kb.Row(keyboard.Button(
			fmt.Sprintf("➕ Ещё %d %s", rest, formatting.PluralizeSlots(rest)),
			fmt.Sprintf("day_all:%d:%d:%s", mentorID, week, dateStr),
		))
	}
	kb.Row(keyboard.Button("⬅️ К неделе", fmt.Sprintf("cal:%d:%d", mentorID, week)))

	caption := fmt.Sprintf("🗓 <b>%s</b>\n\nВыберите время для сессии:", formatting.FormatDateWithWeekday(dateStr))
	if len(slots) == 0 {
		caption = fmt.Sprintf("🗓 <b>%s</b>\n\nВ этот день свободных слотов нет.", formatting.FormatDateWithWeekday(dateStr))
	}

	// Сообщение недели - картинка, правим только подпись и клавиатуру
	var editErr error
	if hc.Message != nil && len(hc.Message.Photo) > 0 {
		editErr = hc.EditCaption(caption, kb.Build())
	} else {
		editErr = hc.EditMessage(caption, kb.Build())
	}
	if editErr != nil {
		h.Logger.Error("Failed to show day view", zap.Error(editErr))
	}
	hc.Answer("")
}

// slotCallbackData кодирует слот в callback data.
// Время пишется без двоеточий, иначе оно ломает разбор по ":".
// Пример: "slot:12:2026-03-02:0900:1030"
func slotCallbackData(mentorID int64, slot model.ResolvedSlot) string {
	return fmt.Sprintf("slot:%d:%s:%s:%s",
		mentorID,
		slot.Date,
		strings.ReplaceAll(slot.StartTime, ":", ""),
		strings.ReplaceAll(slot.EndTime, ":", ""),
	)
}

// decodeClock восстанавливает "HHMM" обратно в "HH:MM".
// Callback data приходит от клиента и может быть подделана, поэтому
// результат проверяется как настоящее время суток, а не только по длине.
func decodeClock(packed string) (string, error) {
	if len(packed) != 4 {
		return "", common.ErrInvalidFormat
	}
	clock, err := availability.NormalizeClock(packed[:2] + ":" + packed[2:])
	if err != nil {
		return "", common.ErrInvalidFormat
	}
	return clock, nil
}
