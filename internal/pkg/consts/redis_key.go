package consts

const (
	BookSearchKey       = "books:search:"
	BookVolumeKey       = "books:volume:"
	RecommendationKey   = "recommend:user:"
	ProfileCacheKey     = "profile:user:"
)

const (
	PopularWarmLock = "lock:popular:warm"
)
