package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/saelmaa/pso-itsmentormatch/internal/model"
)

// Factory 生成演示数据；同一 seed 与 now 生成的数据完全一致
type Factory struct {
	rnd *rand.Rand
	now time.Time
	seq int
}

// NewFactory 创建 Factory
func NewFactory(seed int64, now time.Time) *Factory {
	return &Factory{rnd: rand.New(rand.NewSource(seed)), now: now}
}

func pick[T any](r *rand.Rand, items []T) T {
	return items[r.Intn(len(items))]
}

func (f *Factory) between(lo, hi int) int {
	return lo + f.rnd.Intn(hi-lo+1)
}

func (f *Factory) name() string {
	return pick(f.rnd, firstNames) + " " + pick(f.rnd, lastNames)
}

// slug "Sari Wijaya" -> "sari.wijaya"
func slug(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "."))
}

// Mentor 院系、专长与技能取自同一院系目录；评分统计留给评价重算
func (f *Factory) Mentor() *model.Mentor {
	f.seq++
	name := f.name()
	dept := pick(f.rnd, departmentNames)
	profile := departments[dept]
	expertise := pick(f.rnd, profile.Expertise)

	skills := append([]string(nil), profile.Skills...)
	f.rnd.Shuffle(len(skills), func(i, j int) { skills[i], skills[j] = skills[j], skills[i] })

	status := model.AvailabilityAvailable
	if f.rnd.Intn(3) == 0 {
		status = model.AvailabilityBusy
	}

	return &model.Mentor{
		Name:               name,
		Email:              fmt.Sprintf("%s.%d@its.ac.id", slug(name), 100+f.seq),
		Department:         dept,
		Expertise:          expertise,
		Bio:                pick(f.rnd, bios) + " Specializes in " + strings.ToLower(expertise) + ".",
		ExperienceYears:    f.between(3, 15),
		AvailabilityStatus: status,
		Skills:             datatypes.JSONSlice[string](skills),
		Location:           pick(f.rnd, cities),
		Price:              "Free",
	}
}

// User passwordHash 由调用方统一生成，避免逐个 bcrypt
func (f *Factory) User(passwordHash string) *model.User {
	f.seq++
	name := f.name()
	return &model.User{
		Name:         name,
		Email:        fmt.Sprintf("%s.%d@student.its.ac.id", slug(name), f.seq),
		PasswordHash: passwordHash,
		Department:   pick(f.rnd, departmentNames),
		StudentID:    fmt.Sprintf("50252%05d", f.seq),
		Phone:        fmt.Sprintf("08%010d", f.rnd.Int63n(1e10)),
	}
}

// Session 状态决定日期：已完成为过去 30 天内，待确认为未来 21 天内，已取消任意
// 话题取导师的专长方向，便于学习目标按话题匹配
func (f *Factory) Session(user *model.User, mentor *model.Mentor, status string) *model.Session {
	var day time.Time
	switch status {
	case model.SessionStatusCompleted:
		day = f.now.AddDate(0, 0, -f.between(1, 30))
	case model.SessionStatusPending, model.SessionStatusConfirmed:
		day = f.now.AddDate(0, 0, f.between(1, 21))
	default:
		day = f.now.AddDate(0, 0, f.between(-30, 21))
	}

	sess := &model.Session{
		UserID:      user.UserID,
		MentorID:    mentor.MentorID,
		Topic:       mentor.Expertise,
		Description: "Discuss " + strings.ToLower(mentor.Expertise) + " fundamentals and next steps.",
		SessionDate: datatypes.Date(time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())),
		SessionTime: datatypes.NewTime(f.between(8, 19), pick(f.rnd, []int{0, 30}), 0, 0),
		Duration:    pick(f.rnd, sessionDurations),
		Type:        pick(f.rnd, []string{model.SessionTypeVideoCall, model.SessionTypeInPerson, model.SessionTypePhone}),
		Status:      status,
	}
	if status == model.SessionStatusCompleted {
		sess.Notes = "Reviewed progress on " + strings.ToLower(mentor.Expertise) + "."
	}
	return sess
}

// SessionStatus 待确认 / 已完成 / 已取消 按 3:5:2 分布
func (f *Factory) SessionStatus() string {
	switch n := f.rnd.Intn(10); {
	case n < 3:
		return model.SessionStatusPending
	case n < 8:
		return model.SessionStatusCompleted
	default:
		return model.SessionStatusCancelled
	}
}

// Review 评分偏向 4-5 星
func (f *Factory) Review(sess *model.Session) *model.Review {
	rating := pick(f.rnd, []int{3, 4, 4, 5, 5, 5})
	if f.rnd.Intn(20) == 0 {
		rating = model.MinRating
	}
	sessionID := sess.SessionID
	return &model.Review{
		SessionID: &sessionID,
		UserID:    sess.UserID,
		MentorID:  sess.MentorID,
		Rating:    rating,
		Feedback:  pick(f.rnd, feedbacks),
	}
}

// Goal 标题沿用会话话题，截止日期在 1-6 个月后
func (f *Factory) Goal(user *model.User, mentor *model.Mentor) *model.Goal {
	deadline := datatypes.Date(f.now.AddDate(0, f.between(1, 6), 0))
	return &model.Goal{
		UserID:         user.UserID,
		Title:          mentor.Expertise,
		MentorName:     mentor.Name,
		TargetSessions: f.between(3, 10),
		Deadline:       &deadline,
	}
}
