// Package notify pushes slot lifecycle events to the admins' Telegram chat.
// Delivery is best effort: failures are logged and never surfaced to the
// request that triggered them.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/lessonhub/scheduler/internal/model"
	"go.uber.org/zap"
)

type Telegram struct {
	bot         *bot.Bot
	adminChatID int64
	location    *time.Location
	logger      *zap.Logger
}

func NewTelegram(token string, adminChatID int64, loc *time.Location, logger *zap.Logger) (*Telegram, error) {
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Telegram{
		bot:         b,
		adminChatID: adminChatID,
		location:    loc,
		logger:      logger,
	}, nil
}

func (t *Telegram) SlotRequested(ctx context.Context, slot *model.TimeSlot) {
	teacherID := int64(0)
	if slot.TeacherID != nil {
		teacherID = *slot.TeacherID
	}
	text := fmt.Sprintf("New slot request\nGrade %d, %s\nTeacher %d",
		slot.GradeID, t.formatWindow(slot), teacherID)
	if slot.RequestNotes != "" {
		text += "\nNotes: " + slot.RequestNotes
	}
	t.send(ctx, text)
}

func (t *Telegram) SlotApproved(ctx context.Context, slot *model.TimeSlot) {
	t.send(ctx, fmt.Sprintf("Slot approved\nGrade %d, %s", slot.GradeID, t.formatWindow(slot)))
}

func (t *Telegram) SlotRejected(ctx context.Context, slot *model.TimeSlot) {
	text := fmt.Sprintf("Slot rejected\nGrade %d, %s", slot.GradeID, t.formatWindow(slot))
	if slot.RejectionReason != "" {
		text += "\nReason: " + slot.RejectionReason
	}
	t.send(ctx, text)
}

func (t *Telegram) formatWindow(slot *model.TimeSlot) string {
	start := slot.StartTime.In(t.location)
	end := slot.EndTime.In(t.location)
	return fmt.Sprintf("%s %s-%s", start.Format("Mon 02 Jan"), start.Format("15:04"), end.Format("15:04"))
}

func (t *Telegram) send(ctx context.Context, text string) {
	_, err := t.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: t.adminChatID,
		Text:   text,
	})
	if err != nil {
		t.logger.Warn("Failed to send telegram notification", zap.Error(err))
	}
}
