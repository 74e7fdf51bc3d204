package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/saelmaa/pso-itsmentormatch/internal/model"
)

// ── 会话日历邀请 ──────────────────────────────────────────
//
// 单个 VEVENT，UID 由会话 ID 派生：重复下载同一会话得到同一事件，
// 日历客户端据此更新而不是新增。
// ─────────────────────────────────────────────────────────

const calendarProductID = "-//ITS MentorMatch//Sessions//EN"

func (s *sessionService) Calendar(ctx context.Context, userID, id string) ([]byte, string, error) {
	sess, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, "", err
	}

	body := buildSessionCalendar(sess, s.now(), s.baseURL)
	filename := fmt.Sprintf("mentormatch-session-%s.ics", sess.SessionID[:8])

	s.logger.Debug("生成会话日历", zap.String("session_id", id))
	return []byte(body), filename, nil
}

// buildSessionCalendar 将会话序列化为 iCalendar 文本；日期时间按 now 的时区解释
func buildSessionCalendar(sess *model.Session, now time.Time, baseURL string) string {
	loc := now.Location()

	cal := ics.NewCalendar()
	cal.SetProductId(calendarProductID)
	cal.SetMethod(ics.MethodPublish)

	event := cal.AddEvent(sess.SessionID + "@its-mentormatch")
	event.SetDtStampTime(now)
	event.SetCreatedTime(sess.CreatedAt)
	event.SetModifiedAt(sess.UpdatedAt)
	event.SetStartAt(sess.StartsAt(loc))
	event.SetEndAt(sess.EndsAt(loc))

	mentorName := "Mentor"
	if sess.Mentor != nil {
		mentorName = sess.Mentor.Name
		event.SetOrganizer("mailto:"+sess.Mentor.Email, ics.WithCN(sess.Mentor.Name))
		if sess.Type == model.SessionTypeInPerson && sess.Mentor.Location != "" {
			event.SetLocation(sess.Mentor.Location)
		}
	}
	event.SetSummary(fmt.Sprintf("%s with %s", sess.Topic, mentorName))

	desc := fmt.Sprintf("%s session (%d min).", sess.TypeLabel(), sess.Duration)
	if sess.Description != "" {
		desc += "\n\n" + sess.Description
	}
	event.SetDescription(desc)
	if baseURL != "" {
		event.SetURL(baseURL + "/sessions")
	}

	switch sess.Status {
	case model.SessionStatusCancelled:
		event.SetStatus(ics.ObjectStatusCancelled)
	case model.SessionStatusPending:
		event.SetStatus(ics.ObjectStatusTentative)
	default:
		event.SetStatus(ics.ObjectStatusConfirmed)
	}

	return cal.Serialize()
}
