package model

import "testing"

func slot(day, start, end int) TimetableSlotModel {
	return TimetableSlotModel{
		TimetableSlotDayOfWeek:    day,
		TimetableSlotStartMinutes: start,
		TimetableSlotEndMinutes:   end,
	}
}

func TestTimetableSlotOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b TimetableSlotModel
		want bool
	}{
		{"beda hari", slot(1, 420, 480), slot(2, 420, 480), false},
		{"beririsan sebagian", slot(1, 420, 480), slot(1, 450, 510), true},
		{"identik", slot(1, 420, 480), slot(1, 420, 480), true},
		{"nempel tanpa irisan", slot(1, 420, 480), slot(1, 480, 540), false},
		{"tercakup penuh", slot(1, 400, 600), slot(1, 450, 500), true},
		{"sebelum sama sekali", slot(1, 300, 360), slot(1, 420, 480), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(&tc.b); got != tc.want {
				t.Fatalf("Overlaps = %v, want %v", got, tc.want)
			}
			// simetris
			if got := tc.b.Overlaps(&tc.a); got != tc.want {
				t.Fatalf("Overlaps (kebalikan) = %v, want %v", got, tc.want)
			}
		})
	}
}
