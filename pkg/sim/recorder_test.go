package sim

import (
	"testing"
)

// TestRecorder_AppendAndAccess tests basic accumulation
func TestRecorder_AppendAndAccess(t *testing.T) {
	rec := NewRecorder(2)

	rec.Append(0, []int{2, 2})
	rec.Append(1, []int{3, 2})

	if rec.Len() != 2 {
		t.Fatalf("Expected 2 snapshots, got %d", rec.Len())
	}
	if rec.At(0).Iteration != 0 || rec.At(1).Iteration != 1 {
		t.Error("Iteration indices out of order")
	}
	if rec.At(1).Count(0) != 3 {
		t.Errorf("Expected count 3, got %d", rec.At(1).Count(0))
	}
	if rec.At(1).Total() != 5 {
		t.Errorf("Expected total 5, got %d", rec.At(1).Total())
	}
}

// TestRecorder_CopiesCounts tests that appended slices are not aliased
func TestRecorder_CopiesCounts(t *testing.T) {
	rec := NewRecorder(1)

	counts := []int{1, 1}
	rec.Append(0, counts)
	counts[0] = 42

	if rec.At(0).Count(0) != 1 {
		t.Error("Recorder must copy the counts slice on append")
	}
}

// TestRecorder_Observers tests streaming notification
func TestRecorder_Observers(t *testing.T) {
	rec := NewRecorder(3)

	var seen []Snapshot
	rec.Observe(func(s Snapshot) {
		seen = append(seen, s)
	})

	rec.Append(0, []int{1})
	rec.Append(1, []int{2})

	if len(seen) != 2 {
		t.Fatalf("Expected 2 notifications, got %d", len(seen))
	}
	if seen[1].Count(0) != 2 {
		t.Errorf("Expected observed count 2, got %d", seen[1].Count(0))
	}
}
