package dto

// DownloadQuery holds the query parameters of GET /download.
type DownloadQuery struct {
	Format string `form:"format,default=csv"`
}
