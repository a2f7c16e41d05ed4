package patch

var (
	CropSignature = cropSignature
	SplitLines    = splitLines
)
