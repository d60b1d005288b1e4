package mentors

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mentorlink/mentorbot/internal/controller/callbacks/callbacktypes"
	"github.com/mentorlink/mentorbot/internal/controller/callbacks/common"
	"github.com/mentorlink/mentorbot/internal/controller/callbacks/common/formatting"
	"github.com/mentorlink/mentorbot/internal/controller/callbacks/common/keyboard"
	"github.com/mentorlink/mentorbot/internal/model"
	"go.uber.org/zap"
)

const mentorsPerPage = 5

// BuildListScreen собирает текст и клавиатуру страницы списка менторов.
// Используется и из callback пагинации, и из команды /mentors.
func BuildListScreen(allMentors []*model.Mentor, page int) (string, *models.InlineKeyboardMarkup) {
	totalPages := (len(allMentors) + mentorsPerPage - 1) / mentorsPerPage
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 0 {
		page = 0
	}
	if page >= totalPages {
		page = totalPages - 1
	}

	start := page * mentorsPerPage
	end := start + mentorsPerPage
	if end > len(allMentors) {
		end = len(allMentors)
	}

	kb := keyboard.NewBuilder()
	for _, mentor := range allMentors[start:end] {
		label := mentor.Name
		if mentor.Headline != "" {
			label = fmt.Sprintf("%s — %s", mentor.Name, mentor.Headline)
		}
		kb.Row(keyboard.Button(label, fmt.Sprintf("mentor:%d", mentor.ID)))
	}
	kb.AddPagination("mentors_page:", page, totalPages)

	text := fmt.Sprintf("🧑‍🏫 <b>Менторы сообщества</b>\n\nДоступно %d %s. Выберите, чтобы посмотреть профиль и свободное время.",
		len(allMentors), formatting.PluralizeMentors(len(allMentors)))
	if len(allMentors) == 0 {
		text = "🧑‍🏫 <b>Менторы сообщества</b>\n\nПока нет ни одного активного ментора. Загляните позже."
	}

	return text, kb.Build()
}

// HandleMentorsPage обрабатывает пагинацию списка менторов
func HandleMentorsPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	page := 0
	if parts := strings.Split(callback.Data, ":"); len(parts) == 2 {
		if p, err := strconv.Atoi(parts[1]); err == nil {
			page = p
		}
	}

	allMentors, err := h.MentorService.ListMentors(ctx)
	if err != nil {
		h.Logger.Error("Failed to list mentors", zap.Error(err))
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	text, kb := BuildListScreen(allMentors, page)
	if err := hc.EditMessage(text, kb); err != nil {
		h.Logger.Error("Failed to show mentors page", zap.Error(err))
	}
	hc.Answer("")
}
