package normalize

import (
	"strings"

	"schoolapp-backend-go/internal/legacy"
)

// ActivityItem is one school activity or event banner.
type ActivityItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Date        string `json:"date,omitempty"`
	Category    string `json:"category"`
}

// ActivitiesFrom accepts the allactivities payload, an array or index-keyed
// object of activity rows. Rows without an id are dropped, never fatal.
func ActivitiesFrom(payload any) ([]ActivityItem, error) {
	rows := extractRows(payload)
	if rows == nil {
		return nil, legacy.ErrMissingField("activities")
	}

	items := make([]ActivityItem, 0, len(rows))
	for _, raw := range rows {
		row, ok := asMap(raw)
		if !ok {
			continue
		}
		id := firstString(row, "activityId", "activityid", "id")
		if id == "" {
			continue
		}
		title := firstString(row, "activityName", "activityname", "title")
		items = append(items, ActivityItem{
			ID:          id,
			Title:       title,
			Description: firstString(row, "subject", "description"),
			ImageURL:    RepairImageURL(firstString(row, "activityImage", "activityimage", "image")),
			Date:        firstString(row, "activityDate", "activitydate", "date"),
			Category:    InferCategory(title),
		})
	}
	return items, nil
}

// RepairImageURL fixes the backend's image path quirks: path separators come
// through as '#' and the scheme is usually missing. Empty input stays empty
// so callers can render a placeholder.
func RepairImageURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	fixed := strings.ReplaceAll(raw, "#", "/")
	if !strings.HasPrefix(fixed, "http://") && !strings.HasPrefix(fixed, "https://") {
		fixed = "https://" + strings.TrimLeft(fixed, "/")
	}
	return fixed
}

// InferCategory guesses a display category from title keywords. Advisory
// only; unknown titles land in "general".
func InferCategory(title string) string {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "science") || strings.Contains(lower, "lab") || strings.Contains(lower, "experiment"):
		return "science"
	case strings.Contains(lower, "quiz") || strings.Contains(lower, "olympiad") || strings.Contains(lower, "competition"):
		return "quiz"
	case strings.Contains(lower, "cultur") || strings.Contains(lower, "dance") || strings.Contains(lower, "music") || strings.Contains(lower, "art"):
		return "cultural"
	default:
		return "general"
	}
}
