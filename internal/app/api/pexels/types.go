package pexels

// Orientations accepted by the video search endpoint.
const (
	OrientationLandscape = "landscape"
	OrientationPortrait  = "portrait"
	OrientationSquare    = "square"
)

// SearchResponse is the /videos/search response envelope.
type SearchResponse struct {
	Page         int     `json:"page"`
	PerPage      int     `json:"per_page"`
	TotalResults int     `json:"total_results"`
	Videos       []Video `json:"videos"`
}

// Video is one stock video result.
type Video struct {
	ID       int64       `json:"id"`
	URL      string      `json:"url"`
	Duration int         `json:"duration"`
	Image    string      `json:"image"`
	Files    []VideoFile `json:"video_files"`
}

// VideoFile is one downloadable rendition of a video. Quality is one of
// "hd", "sd" or "uhd".
type VideoFile struct {
	ID       int64  `json:"id"`
	Quality  string `json:"quality"`
	FileType string `json:"file_type"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Link     string `json:"link"`
}
