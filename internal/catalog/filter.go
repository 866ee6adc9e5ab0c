package catalog

// PathFilter specifies criteria for listing paths.
type PathFilter struct {
	MediaType *MediaType
	Limit     int // 0 = no limit
	Offset    int
}

// ItemFilter specifies criteria for listing items.
type ItemFilter struct {
	PathID    *int64
	Tag       *string
	MediaType *MediaType // joins path
	Limit     int
	Offset    int
}
