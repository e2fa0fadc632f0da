package matcher

// MatchScore 书目与阅读画像的匹配结果，不落库
type MatchScore struct {
	BookID  string   `json:"book_id"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}

// RecommendationContext 当下的情境信号，可选
type RecommendationContext struct {
	Mood       []string `json:"mood,omitempty"`
	Atmosphere string   `json:"atmosphere,omitempty"`
	Purpose    string   `json:"purpose,omitempty"`
	// TimeAvailable 目前不参与打分
	TimeAvailable string `json:"time_available,omitempty"`
}

const (
	genreWeight   = 25.0
	paceWeight    = 15.0
	moodWeight    = 20.0
	vibeWeight    = 30.0
	contextWeight = 10.0

	maxScore = 100.0
	maxVibe  = 10.0
)

const (
	ReasonPace       = "Ritmo ideal para você"
	ReasonMood       = "Mood compatível"
	ReasonVibe       = "Vibe perfeita"
	reasonGenreFmt   = "%d gênero(s) em comum"
	reasonPurposeFmt = "Perfeito para %s"
	reasonNoPurpose  = "este momento"
)

// vibeToPreference 书目 vibe 标签 -> 画像 vibe 维度，未列出的标签不参与 vibe 打分
var vibeToPreference = map[string]string{
	"atmospheric":       "atmospheric",
	"thought-provoking": "philosophical",
	"fast-paced":        "actionPacked",
	"emotional":         "characterDriven",
}

// purposeVibes relax 中的 peaceful 是 mood 标签，与 vibeTags 求交永远不会命中，保持原样
var purposeVibes = map[string][]string{
	"travel": {"adventurous", "fast-paced"},
	"relax":  {"cozy", "peaceful"},
	"learn":  {"thought-provoking", "philosophical"},
	"escape": {"mysterious", "romantic"},
}

// overlapCount 统计 items 中出现在 set 里的不同元素个数
func overlapCount(items []string, set map[string]struct{}) int {
	if len(items) == 0 || len(set) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(items))
	n := 0
	for _, it := range items {
		if _, ok := set[it]; !ok {
			continue
		}
		if _, dup := seen[it]; dup {
			continue
		}
		seen[it] = struct{}{}
		n++
	}
	return n
}

// overlapRatio |items ∩ base| / |base|，base 为空时返回 0
func overlapRatio(items, base []string) float64 {
	set := toSet(base)
	if len(set) == 0 {
		return 0
	}
	return float64(overlapCount(items, set)) / float64(len(set))
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}
