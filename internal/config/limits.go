package config

const (
	// MaxAdNameIDLength is the maximum length for ad name/id fields.
	// Kept short because the value becomes part of the block name and
	// the uploaded image filename.
	MaxAdNameIDLength = 100

	// MaxHeadlineLength is the maximum length for an ad headline.
	MaxHeadlineLength = 255

	// MaxMainCopyLength is the maximum length for the ad main copy.
	MaxMainCopyLength = 10000

	// MaxUploadBytes caps a single image/GIF upload. Drive accepts far
	// larger files, but ad creatives beyond this indicate a wrong file.
	MaxUploadBytes = 20 << 20

	// MaxBatchItems caps one batch submission request. The batch runs
	// sequentially inside a single handler invocation, so each item adds
	// several remote round-trips.
	MaxBatchItems = 20
)
