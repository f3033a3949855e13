package normalize

import (
	"sort"

	"schoolapp-backend-go/internal/legacy"
)

// Branch is one school branch from the public homepage feed.
type Branch struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// SchoolInfo is the normalized apphomepage payload: the branch list plus the
// activity banner items shown before login.
type SchoolInfo struct {
	Branches   []Branch       `json:"branches"`
	Activities []ActivityItem `json:"activities"`
}

// SchoolInfoFrom expects {branch: {code: name}, activities: rows}. A missing
// activities block is tolerated; a missing branch map is not, because the
// login screen cannot render without it.
func SchoolInfoFrom(payload any) (*SchoolInfo, error) {
	root, ok := asMap(payload)
	if !ok {
		return nil, legacy.ErrMissingField("school info")
	}
	branchMap, ok := asMap(root["branch"])
	if !ok || len(branchMap) == 0 {
		return nil, legacy.ErrMissingField("branch list")
	}

	info := &SchoolInfo{Branches: make([]Branch, 0, len(branchMap))}
	codes := make([]string, 0, len(branchMap))
	for code := range branchMap {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		info.Branches = append(info.Branches, Branch{Code: code, Name: asString(branchMap[code])})
	}

	if raw, exists := root["activities"]; exists {
		if items, err := ActivitiesFrom(raw); err == nil {
			info.Activities = items
		}
	}
	return info, nil
}
