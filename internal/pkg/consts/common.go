package consts

const (
	HeaderUserID = "X-User-ID"
	UserIDKey    = "user_id"
)

const (
	DefaultSwipeListLimit = 50
	MaxSwipeListLimit     = 200
	SearchByTitleResults  = 10
)
