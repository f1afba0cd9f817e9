package calendar

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pfrederiksen/class-schedule/internal/schedule"
)

func TestInspect_RoundTrip(t *testing.T) {
	longName := strings.TrimSpace(strings.Repeat("مبانی برنامه نویسی ", 4))
	classes := []schedule.ClassSchedule{
		{
			ClassName: "ریاضی",
			Sessions: []schedule.Session{
				session(t, "ریاضی", 1, "یکشنبه ۱۳ مهر ۱۴۰۴ - ۱۴:۰۰", "یکشنبه ۱۳ مهر ۱۴۰۴ - ۱۵:۰۰"),
				session(t, "ریاضی", 2, "پنج شنبه ۲۴ مهر ۱۴۰۴ - ۱۸:۰۰", "پنج شنبه ۲۴ مهر ۱۴۰۴ - ۱۹:۰۰"),
			},
		},
		{
			ClassName: longName,
			Sessions: []schedule.Session{
				session(t, longName, 1, "دوشنبه ۱۴ اسفند ۱۴۰۴ - ۰۸:۰۰", "دوشنبه ۱۴ اسفند ۱۴۰۴ - ۱۰:۰۰"),
			},
		},
	}

	var buf bytes.Buffer
	if _, err := newTestSerializer().Write(&buf, classes); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	events, err := Inspect(&buf)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}

	want := []EventSummary{
		{UID: "ریاضی_1_20251005T140000", Summary: "ریاضی", Start: "20251005T140000", End: "20251005T150000"},
		{UID: "ریاضی_2_20251016T180000", Summary: "ریاضی", Start: "20251016T180000", End: "20251016T190000"},
		{UID: longName + "_1_20260305T080000", Summary: longName, Start: "20260305T080000", End: "20260305T100000"},
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, events[i], want[i])
		}
		if events[i].Start >= events[i].End {
			t.Errorf("event %d does not end after it starts", i)
		}
	}
}
