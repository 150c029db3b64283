package export

// PageOffsets returns the vertical pixel offsets of consecutive page
// bands for a raster of totalHeight sliced into pages of pageHeight.
// There is always at least one page, matching the export flow that emits
// the first page unconditionally; a remainder shorter than a full page
// still gets its own band.
func PageOffsets(totalHeight, pageHeight int) []int {
	offsets := []int{0}
	if pageHeight <= 0 {
		return offsets
	}
	for off := pageHeight; off < totalHeight; off += pageHeight {
		offsets = append(offsets, off)
	}
	return offsets
}
