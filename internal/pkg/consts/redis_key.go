package consts

const (
	OAuthStateKey   = "oauth:state:"
	MetricTodayKey  = "metric:today:"
	ScoreTodayKey   = "score:today:"
	MetricFetchLock = "metric:fetch:lock:"
)
