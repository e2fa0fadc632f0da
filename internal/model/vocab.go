package model

// 阅读节奏 / 篇幅
const (
	PaceSlow   = "slow"
	PaceMedium = "medium"
	PaceFast   = "fast"

	LengthShort  = "short"
	LengthMedium = "medium"
	LengthLong   = "long"
)

// vibe 偏好维度
const (
	VibeDimAtmospheric     = "atmospheric"
	VibeDimPlotDriven      = "plotDriven"
	VibeDimCharacterDriven = "characterDriven"
	VibeDimPhilosophical   = "philosophical"
	VibeDimActionPacked    = "actionPacked"
)

// 滑动操作
const (
	SwipeLike      = "like"
	SwipeDislike   = "dislike"
	SwipeSuperLike = "super_like"
)

// 场景目的
const (
	PurposeTravel = "travel"
	PurposeRelax  = "relax"
	PurposeLearn  = "learn"
	PurposeEscape = "escape"
)

var SetPace = map[string]bool{
	PaceSlow:   true,
	PaceMedium: true,
	PaceFast:   true,
}

var SetLength = map[string]bool{
	LengthShort:  true,
	LengthMedium: true,
	LengthLong:   true,
}

var SetVibeDimension = map[string]bool{
	VibeDimAtmospheric:     true,
	VibeDimPlotDriven:      true,
	VibeDimCharacterDriven: true,
	VibeDimPhilosophical:   true,
	VibeDimActionPacked:    true,
}

var SetSwipeAction = map[string]bool{
	SwipeLike:      true,
	SwipeDislike:   true,
	SwipeSuperLike: true,
}

var SetVibeTag = map[string]bool{
	"cozy":              true,
	"atmospheric":       true,
	"thought-provoking": true,
	"fast-paced":        true,
	"emotional":         true,
	"dark":              true,
	"uplifting":         true,
	"mysterious":        true,
	"romantic":          true,
	"adventurous":       true,
}

var SetMoodTag = map[string]bool{
	"melancholic": true,
	"hopeful":     true,
	"tense":       true,
	"peaceful":    true,
	"excited":     true,
	"reflective":  true,
	"joyful":      true,
	"anxious":     true,
}

var SetAtmosphereTag = map[string]bool{
	"rainy-day":      true,
	"winter-night":   true,
	"summer-beach":   true,
	"cozy-cafe":      true,
	"mountain-cabin": true,
	"city-night":     true,
	"countryside":    true,
	"autumn-forest":  true,
}

// IsPositiveSwipe like / super_like 视为正反馈
func IsPositiveSwipe(action string) bool {
	return action == SwipeLike || action == SwipeSuperLike
}

// FilterVocabulary 仅保留 vocabulary 中存在的标签，去重并保持顺序
func FilterVocabulary(tags []string, vocabulary map[string]bool) StringList {
	out := make(StringList, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if !vocabulary[t] {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
