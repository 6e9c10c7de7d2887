package domain

// LevelConfig is the interview configuration snapshot for one experience
// tier. Interviews copy these values at creation and never re-resolve them.
type LevelConfig struct {
	QuestionCount      int
	SecondsPerQuestion int
	TotalMinutes       int
}

// Experience tier names, indexed by level.
var LevelNames = [5]string{"Fresher", "Junior", "Mid", "Senior", "Expert"}

// levelConfigs maps experience level (0-4) to its fixed tier.
var levelConfigs = [5]LevelConfig{
	{QuestionCount: 8, SecondsPerQuestion: 180, TotalMinutes: 24},   // Fresher
	{QuestionCount: 10, SecondsPerQuestion: 180, TotalMinutes: 30},  // Junior
	{QuestionCount: 10, SecondsPerQuestion: 240, TotalMinutes: 40},  // Mid
	{QuestionCount: 12, SecondsPerQuestion: 300, TotalMinutes: 60},  // Senior
	{QuestionCount: 15, SecondsPerQuestion: 300, TotalMinutes: 75},  // Expert
}

// ConfigForLevel resolves the configuration for an experience level.
// Levels outside [0,4] resolve to the Junior tier. That is defined
// behavior, not an error: the engine validates level range at its own
// boundary, and this function stays total.
func ConfigForLevel(experienceLevel int) LevelConfig {
	if experienceLevel < 0 || experienceLevel > 4 {
		return levelConfigs[1]
	}
	return levelConfigs[experienceLevel]
}

// LevelName returns the display name for an experience level, defaulting
// to Junior for out-of-range values, consistent with ConfigForLevel.
func LevelName(experienceLevel int) string {
	if experienceLevel < 0 || experienceLevel > 4 {
		return LevelNames[1]
	}
	return LevelNames[experienceLevel]
}

// IsValidExperienceLevel reports whether level is within the accepted range.
func IsValidExperienceLevel(level int) bool {
	return level >= 0 && level <= 4
}
