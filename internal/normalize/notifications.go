package normalize

import (
	"sort"
	"strconv"

	"schoolapp-backend-go/internal/legacy"
)

// NotificationItem is one class circular. Read state is not part of the
// backend payload; the gateway overlays it from its own store.
type NotificationItem struct {
	ID      string `json:"id"`
	Message string `json:"message,omitempty"`
	Date    string `json:"date,omitempty"`
	Read    bool   `json:"read"`
}

// NotificationsFrom accepts the classcirculars payload: an object keyed by
// circular id whose values carry circularDate and circular (the message
// text), or a row list where each row names its own id. Entries without an
// id are dropped because the read overlay has nothing to key on.
func NotificationsFrom(payload any) ([]NotificationItem, error) {
	var items []NotificationItem
	if rows := rowsCarryingIDs(payload); rows != nil {
		for _, raw := range rows {
			row, ok := asMap(raw)
			if !ok {
				continue
			}
			id := firstString(row, "circularId", "circularid", "id")
			if id == "" {
				continue
			}
			items = append(items, notificationFrom(id, row))
		}
	} else if m, ok := asMap(payload); ok {
		for id, raw := range m {
			row, ok := asMap(raw)
			if !ok || id == "" {
				continue
			}
			items = append(items, notificationFrom(id, row))
		}
		// Map iteration order is random; newest circulars carry the
		// highest ids, so sort descending for the feed.
		sort.Slice(items, func(i, j int) bool {
			a, errA := strconv.Atoi(items[i].ID)
			b, errB := strconv.Atoi(items[j].ID)
			if errA == nil && errB == nil {
				return a > b
			}
			return items[i].ID > items[j].ID
		})
	} else {
		return nil, legacy.ErrMissingField("circulars")
	}
	if items == nil {
		items = []NotificationItem{}
	}
	return items, nil
}

func notificationFrom(id string, row map[string]any) NotificationItem {
	return NotificationItem{
		ID:      id,
		Message: firstString(row, "circular", "circularMessage", "message"),
		Date:    firstString(row, "circularDate", "date"),
	}
}

// rowsCarryingIDs returns the payload as a row list when its rows identify
// themselves via a circularId field, nil otherwise.
func rowsCarryingIDs(payload any) []any {
	rows, ok := payload.([]any)
	if !ok {
		m, isMap := asMap(payload)
		if !isMap {
			return nil
		}
		rows = valueList(m)
	}
	for _, raw := range rows {
		if row, ok := asMap(raw); ok {
			if firstString(row, "circularId", "circularid", "id") != "" {
				return rows
			}
		}
	}
	return nil
}
