package timewindows

import (
	"slices"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// MergeWindows сортирует окна по (start, end) и склеивает окна, у которых
// конец одного точно совпадает с началом другого.
// Пересекающиеся окна без общей границы не объединяются.
// Пустые окна отбрасываются. Повторный вызов на результате ничего не меняет.
func MergeWindows(windows []domain.TimeWindow) []domain.TimeWindow {
	sorted := make([]domain.TimeWindow, 0, len(windows))
	for _, w := range windows {
		if !w.IsEmpty() {
			sorted = append(sorted, w)
		}
	}
	slices.SortFunc(sorted, compareWindows)

	merged := make([]domain.TimeWindow, 0, len(sorted))
	for _, w := range sorted {
		coalesced := false
		for i := range merged {
			if merged[i].End.Equal(w.Start) {
				merged[i].End = w.End
				coalesced = true
				break
			}
		}
		if !coalesced {
			merged = append(merged, w)
		}
	}

	slices.SortFunc(merged, compareWindows)
	return merged
}

func compareWindows(a, b domain.TimeWindow) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}
