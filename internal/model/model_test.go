package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

var jakarta = time.FixedZone("WIB", 7*3600)

func sessionAt(at time.Time, status string) Session {
	return Session{
		SessionDate: datatypes.Date(at),
		SessionTime: datatypes.NewTime(at.Hour(), at.Minute(), at.Second(), 0),
		Duration:    60,
		Status:      status,
	}
}

func TestSession_StartsAt(t *testing.T) {
	at := time.Date(2026, 3, 10, 14, 30, 15, 0, jakarta)
	s := sessionAt(at, SessionStatusPending)

	assert.True(t, s.StartsAt(jakarta).Equal(at))
	assert.True(t, s.EndsAt(jakarta).Equal(at.Add(time.Hour)))
	assert.Equal(t, "2026-03-10", s.DateString())
	assert.Equal(t, "14:30", s.TimeString())
}

func TestSession_EditWindowBoundary(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, jakarta)

	tests := []struct {
		name     string
		start    time.Time
		status   string
		wantPast bool
		wantEdit bool
	}{
		{"恰好现在", now, SessionStatusPending, false, true},
		{"一秒之前", now.Add(-time.Second), SessionStatusPending, true, false},
		{"一秒之后", now.Add(time.Second), SessionStatusConfirmed, false, true},
		{"昨天待确认", now.AddDate(0, 0, -1), SessionStatusPending, true, false},
		{"明天待确认", now.AddDate(0, 0, 1), SessionStatusPending, false, true},
		{"明天已完成", now.AddDate(0, 0, 1), SessionStatusCompleted, false, false},
		{"明天已取消", now.AddDate(0, 0, 1), SessionStatusCancelled, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := sessionAt(tt.start, tt.status)
			assert.Equal(t, tt.wantPast, s.IsPast(now), "IsPast")
			assert.Equal(t, tt.wantEdit, s.CanBeEdited(now), "CanBeEdited")
			assert.Equal(t, tt.wantEdit, s.CanBeCancelled(now), "CanBeCancelled")
		})
	}
}

func TestSession_IsPastUsesNowLocation(t *testing.T) {
	// 会话 08:00；now 为 09:00 WIB，即 02:00 UTC
	s := sessionAt(time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC), SessionStatusPending)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, jakarta)

	assert.True(t, s.IsPast(now))
	assert.False(t, s.IsPast(now.UTC()))
}

func TestSession_TypeLabel(t *testing.T) {
	assert.Equal(t, "Video Call", (&Session{Type: SessionTypeVideoCall}).TypeLabel())
	assert.Equal(t, "In Person", (&Session{Type: SessionTypeInPerson}).TypeLabel())
	assert.Equal(t, "Phone", (&Session{Type: SessionTypePhone}).TypeLabel())
}

func TestGoal_Progress(t *testing.T) {
	completed := func(topic string) Session {
		return Session{Topic: topic, Status: SessionStatusCompleted}
	}
	sessions := []Session{
		completed("Learn Laravel"),
		completed("  learn laravel "),
		completed("LEARN LARAVEL"),
		completed("Learn Go"),
		{Topic: "Learn Laravel", Status: SessionStatusPending},
		{Topic: "Learn Laravel", Status: SessionStatusCancelled},
	}

	g := Goal{Title: "Learn Laravel", TargetSessions: 5}
	require.Equal(t, 3, g.CountCompleted(sessions))
	assert.Equal(t, 3, g.SessionsCompleted)
	assert.InDelta(t, 60.0, g.Percent(), 0.0001)

	none := Goal{Title: "Learn Rust", TargetSessions: 2}
	assert.Equal(t, 0, none.CountCompleted(sessions))
	assert.Zero(t, none.Percent())
}

func TestGoal_PercentCapped(t *testing.T) {
	g := Goal{TargetSessions: 2, SessionsCompleted: 5}
	assert.Equal(t, 100.0, g.Percent())

	zero := Goal{TargetSessions: 0, SessionsCompleted: 1}
	assert.Zero(t, zero.Percent())
}

func TestGoal_IsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, jakarta)
	yesterday := datatypes.Date(now.AddDate(0, 0, -1))
	today := datatypes.Date(now)

	assert.True(t, (&Goal{TargetSessions: 3, Deadline: &yesterday}).IsOverdue(now))
	assert.False(t, (&Goal{TargetSessions: 3, Deadline: &today}).IsOverdue(now))
	assert.False(t, (&Goal{TargetSessions: 1, SessionsCompleted: 1, Deadline: &yesterday}).IsOverdue(now))
	assert.False(t, (&Goal{TargetSessions: 3}).IsOverdue(now))
}

func TestRoundRating(t *testing.T) {
	assert.Equal(t, 4.5, RoundRating(9.0/2))
	assert.Equal(t, 4.0, RoundRating(12.0/3))
	assert.Equal(t, 4.33, RoundRating(13.0/3))
	assert.Equal(t, 4.67, RoundRating(14.0/3))
	assert.Equal(t, 0.0, RoundRating(0))
}

func TestMentor_Helpers(t *testing.T) {
	m := Mentor{Name: "Budi Santoso Wijaya", AvailabilityStatus: AvailabilityAvailable}
	assert.Equal(t, "BS", m.Initials())
	assert.True(t, m.IsAvailable())

	m.AvailabilityStatus = AvailabilityBusy
	assert.False(t, m.IsAvailable())
}

func TestReview_Stars(t *testing.T) {
	r := Review{Rating: 3}
	assert.Equal(t, []bool{true, true, true, false, false}, r.Stars())
}
