package notify

import "testing"

func TestFanout(t *testing.T) {
	t.Parallel()

	a := NewRecorder()
	b := NewRecorder()
	f := NewFanout(a, b)

	f.Notify("hello", SeverityInfo)
	f.SetBadgeCount(3)

	for _, r := range []*Recorder{a, b} {
		toasts := r.Toasts()
		if len(toasts) != 1 || toasts[0].Message != "hello" || toasts[0].Severity != SeverityInfo {
			t.Fatalf("unexpected toasts: %+v", toasts)
		}
		if r.BadgeCount() != 3 {
			t.Fatalf("badge: got %d", r.BadgeCount())
		}
	}
}

func TestFanout_Empty(t *testing.T) {
	t.Parallel()

	f := NewFanout()
	f.Notify("nobody listening", SeverityError)
	f.SetBadgeCount(1)
}
