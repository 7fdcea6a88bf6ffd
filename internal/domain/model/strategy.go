package model

type CacheStrategy string

const (
	CacheNone       CacheStrategy = "no_cache"
	CacheShortTerm  CacheStrategy = "short_term"
	CacheMediumTerm CacheStrategy = "medium_term"
	CacheLongTerm   CacheStrategy = "long_term"
)

func (s CacheStrategy) String() string {
	return string(s)
}
