package mentors

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mentorlink/mentorbot/internal/controller/callbacks/callbacktypes"
	"github.com/mentorlink/mentorbot/internal/controller/callbacks/common"
	"github.com/mentorlink/mentorbot/internal/controller/callbacks/common/formatting"
	"github.com/mentorlink/mentorbot/internal/controller/callbacks/common/keyboard"
	"github.com/mentorlink/mentorbot/internal/model"
	"go.uber.org/zap"
)

// HandleViewMentor показывает карточку ментора
func HandleViewMentor(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	mentorID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	if err := hc.RequireUser(); err != nil {
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	showCard(hc, mentorID)
	hc.Answer("")
}

// HandleToggleFavorite добавляет или убирает ментора из избранного
func HandleToggleFavorite(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	mentorID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	if err := hc.RequireUser(); err != nil {
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	nowFavorite, err := h.UserService.ToggleFavorite(ctx, hc.User.ID, mentorID)
	if err != nil {
		h.Logger.Error("Failed to toggle favorite",
			zap.Int64("mentor_id", mentorID),
			zap.Error(err))
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	if nowFavorite {
		hc.Answer("⭐️ Ментор добавлен в избранное")
	} else {
		hc.Answer("Ментор убран из избранного")
	}

	showCard(hc, mentorID)
}

// showCard рисует карточку ментора поверх сообщения callback.
// Если callback пришёл с картинки календаря, сообщение нельзя
// отредактировать как текст - удаляем его и шлём карточку заново.
func showCard(hc *common.HandlerContext, mentorID int64) {
	h := hc.Handler

	mentor, err := h.MentorService.GetMentor(hc.Ctx, mentorID)
	if err != nil {
		h.Logger.Error("Failed to fetch mentor",
			zap.Int64("mentor_id", mentorID),
			zap.Error(err))
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}
	if mentor == nil {
		hc.AnswerAlert(common.ErrorMessage(common.ErrMentorNotFound))
		return
	}

	isFavorite, err := h.UserService.IsFavorite(hc.Ctx, hc.User.ID, mentorID)
	if err != nil {
		h.Logger.Warn("Failed to check favorite", zap.Error(err))
	}

	text := buildCardText(h, mentor)
	kb := buildCardKeyboard(mentor, isFavorite)

	var sendErr error
	if hc.Message != nil && len(hc.Message.Photo) > 0 {
		hc.DeleteMessage()
		sendErr = hc.SendMessage(text, kb)
	} else {
		sendErr = hc.EditMessage(text, kb)
	}
	if sendErr != nil {
		h.Logger.Error("Failed to show mentor card", zap.Error(sendErr))
	}
}

func buildCardText(h *callbacktypes.Handler, mentor *model.Mentor) string {
	text := fmt.Sprintf("🧑‍🏫 <b>%s</b>\n", mentor.Name)
	if mentor.Headline != "" {
		text += fmt.Sprintf("\n%s\n", mentor.Headline)
	}

	if mentor.Timezone != "" {
		delta := h.MentorService.TimezoneDelta(mentor, time.Local.String())
		text += fmt.Sprintf("\n🕑 Часовой пояс: %s (%s)\n", mentor.Timezone, formatting.FormatOffsetDelta(delta))
	}

	if !mentor.IsActive {
		text += "\n⏸ Сейчас не принимает новые сессии\n"
	}

	return text
}

func buildCardKeyboard(mentor *model.Mentor, isFavorite bool) *models.InlineKeyboardMarkup {
	favLabel := "⭐️ В избранное"
	if isFavorite {
		favLabel = "💔 Убрать из избранного"
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button(favLabel, fmt.Sprintf("fav:%d", mentor.ID)))

	if mentor.IsActive {
		kb.Row(keyboard.Button("📅 Выбрать время", fmt.Sprintf("cal:%d:0", mentor.ID)))
	}

	kb.Row(keyboard.Button("⬅️ К списку менторов", "mentors_page:0"))
	return kb.Build()
}
