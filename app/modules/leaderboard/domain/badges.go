package leaderboarddomain

import "time"

// Badge is an awarded badge on a leaderboard entry.
type Badge struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	EarnedAt    time.Time `json:"earnedAt"`
}

// Achievement is an unlocked achievement on a leaderboard entry.
type Achievement struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	UnlockedAt  time.Time `json:"unlockedAt"`
	Value       float64   `json:"value"`
}

// BadgeLedger is an append-only, name-deduplicated badge collection. Dedup is
// keyed rather than scanned; insertion order is preserved for storage.
type BadgeLedger struct {
	byName  map[string]struct{}
	ordered []Badge
}

// NewBadgeLedger builds a ledger from the stored sequence.
func NewBadgeLedger(existing []Badge) *BadgeLedger {
	l := &BadgeLedger{byName: make(map[string]struct{}, len(existing))}
	for _, b := range existing {
		if _, ok := l.byName[b.Name]; ok {
			continue
		}
		l.byName[b.Name] = struct{}{}
		l.ordered = append(l.ordered, b)
	}
	return l
}

// Add appends a badge unless one with the same name (case-sensitive) exists.
// A duplicate is a no-op and leaves the first write untouched. Reports whether
// the badge was added.
func (l *BadgeLedger) Add(badge Badge) bool {
	if _, ok := l.byName[badge.Name]; ok {
		return false
	}
	l.byName[badge.Name] = struct{}{}
	l.ordered = append(l.ordered, badge)
	return true
}

// Badges returns the ledger in insertion order for the storage boundary.
func (l *BadgeLedger) Badges() []Badge {
	return l.ordered
}

// AchievementLedger mirrors BadgeLedger, keyed by achievement type.
type AchievementLedger struct {
	byType  map[string]struct{}
	ordered []Achievement
}

// NewAchievementLedger builds a ledger from the stored sequence.
func NewAchievementLedger(existing []Achievement) *AchievementLedger {
	l := &AchievementLedger{byType: make(map[string]struct{}, len(existing))}
	for _, a := range existing {
		if _, ok := l.byType[a.Type]; ok {
			continue
		}
		l.byType[a.Type] = struct{}{}
		l.ordered = append(l.ordered, a)
	}
	return l
}

// Add appends an achievement unless one of the same type exists. Reports
// whether the achievement was added.
func (l *AchievementLedger) Add(achievement Achievement) bool {
	if _, ok := l.byType[achievement.Type]; ok {
		return false
	}
	l.byType[achievement.Type] = struct{}{}
	l.ordered = append(l.ordered, achievement)
	return true
}

// Achievements returns the ledger in insertion order.
func (l *AchievementLedger) Achievements() []Achievement {
	return l.ordered
}
