package habits

import (
	"fmt"

	"github.com/julianstephens/habitharbor/internal/logger"
	"github.com/julianstephens/habitharbor/internal/models"
	"github.com/julianstephens/habitharbor/internal/storage"
	"github.com/julianstephens/habitharbor/internal/utils"
)

// decode parses a stored or imported blob and enforces the collection
// invariants: habit ids are unique, record dates are valid day keys, and a
// habit has at most one record per day. Repeated days are merged, the later
// record replacing the earlier one in place.
func decode(data []byte) (storage.Document, error) {
	doc, err := storage.Decode(data)
	if err != nil {
		return storage.Document{}, err
	}

	ids := make(map[string]bool, len(doc.Habits))
	for i := range doc.Habits {
		h := &doc.Habits[i]
		if ids[h.ID] {
			return storage.Document{}, fmt.Errorf("%w: %q", ErrDuplicateID, h.ID)
		}
		ids[h.ID] = true

		records, merged, err := mergeRecords(h.Records)
		if err != nil {
			return storage.Document{}, fmt.Errorf("habit %q: %w", h.Name, err)
		}
		if merged > 0 {
			logger.Warn("Merged duplicate records", "habit", h.ID, "days", merged)
		}
		h.Records = records
	}
	return doc, nil
}

func mergeRecords(records []models.HabitRecord) ([]models.HabitRecord, int, error) {
	out := make([]models.HabitRecord, 0, len(records))
	pos := make(map[string]int, len(records))
	merged := 0
	for _, r := range records {
		if _, err := utils.ParseDay(r.Date); err != nil {
			return nil, 0, fmt.Errorf("%w: %q", ErrInvalidDate, r.Date)
		}
		if i, ok := pos[r.Date]; ok {
			out[i] = r
			merged++
			continue
		}
		pos[r.Date] = len(out)
		out = append(out, r)
	}
	return out, merged, nil
}
