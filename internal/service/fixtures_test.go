package service

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/saelmaa/pso-itsmentormatch/internal/model"
)

// ── 测试辅助 ──

var jakarta = time.FixedZone("WIB", 7*3600)

// fixedNow 所有业务测试共用的“当前时刻”
var fixedNow = time.Date(2026, 3, 10, 14, 30, 0, 0, jakarta)

func fixedClock() Clock {
	return func() time.Time { return fixedNow }
}

const (
	userA = "00000000-0000-4000-8000-00000000000a"
	userB = "00000000-0000-4000-8000-00000000000b"
)

var nopLogger = zap.NewNop()

func seedUser(store *memStore, id, name, email string) *model.User {
	u := &model.User{UserID: id, Name: name, Email: email, PasswordHash: "x"}
	store.users[id] = u
	return u
}

func seedMentor(store *memStore, name, department, expertise string, rating float64, totalSessions int) *model.Mentor {
	m := &model.Mentor{
		MentorID:           uuidFor(name),
		Name:               name,
		Email:              uuidFor(name)[:8] + "@its.ac.id",
		Department:         department,
		Expertise:          expertise,
		Rating:             rating,
		TotalSessions:      totalSessions,
		AvailabilityStatus: model.AvailabilityAvailable,
		Price:              "Free",
	}
	store.mentors[m.MentorID] = m
	return m
}

func seedSession(store *memStore, userID, mentorID, topic string, at time.Time, status string) *model.Session {
	s := &model.Session{
		SessionID:   uuidFor(topic + at.String() + status + userID),
		UserID:      userID,
		MentorID:    mentorID,
		Topic:       topic,
		SessionDate: datatypes.Date(at),
		SessionTime: datatypes.NewTime(at.Hour(), at.Minute(), at.Second(), 0),
		Duration:    60,
		Type:        model.SessionTypeVideoCall,
		Status:      status,
	}
	store.sessions[s.SessionID] = s
	return s
}

func seedReview(store *memStore, userID, mentorID string, sessionID *string, rating int) *model.Review {
	r := &model.Review{
		ReviewID:  uuid.NewString(),
		SessionID: sessionID,
		UserID:    userID,
		MentorID:  mentorID,
		Rating:    rating,
	}
	store.reviews[r.ReviewID] = r
	return r
}
