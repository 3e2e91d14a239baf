package service

type SearchAnimeResult struct {
	Success      bool          `json:"success"`
	ErrorCode    int           `json:"errorCode"`
	ErrorMessage string        `json:"errorMessage"`
	Animes       []AnimeResult `json:"animes"`
}

type AnimeResult struct {
	AnimeId      int64  `json:"animeId"`
	BangumiId    string `json:"bangumiId"`
	AnimeTitle   string `json:"animeTitle"`
	Type         string `json:"type"`
	TypeDesc     string `json:"typeDescription"`
	ImageUrl     string `json:"imageUrl"`
	StartDate    string `json:"startDate"` // 2025-10-31T00:00:00Z
	EpisodeCount int    `json:"episodeCount"`
	Rating       int    `json:"rating"`
	Favorite     bool   `json:"isFavorited"`

	Episodes []EpisodeResult `json:"episodes,omitempty"`
}

type BangumiResult struct {
	Success      bool         `json:"success"`
	ErrorCode    int          `json:"errorCode"`
	ErrorMessage string       `json:"errorMessage"`
	Bangumi      *AnimeResult `json:"bangumi"`
}

type EpisodeResult struct {
	EpisodeId     int64  `json:"episodeId"`
	EpisodeTitle  string `json:"episodeTitle"`
	EpisodeNumber string `json:"episodeNumber"`
}

type CommentResult struct {
	Count    int64      `json:"count"`
	Comments []*Comment `json:"comments"`
}

type Comment struct {
	CID int64  `json:"cid"`
	P   string `json:"p"`
	M   string `json:"m"`
}
