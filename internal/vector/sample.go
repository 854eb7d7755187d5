package vector

import "unicode/utf8"

// Content sampling bounds. Long documents are reduced before encoding to
// respect model input limits and keep encoding cost fixed.
const (
	// SampleThreshold is the content length above which sampling kicks in.
	SampleThreshold = 5000

	// SampleSliceLen is the length of each sampled slice.
	SampleSliceLen = 1500
)

// SampleContent reduces long content to three fixed-size slices: the
// opening, a window centered at the midpoint, and the ending, joined by
// single spaces. The slices approximate the introduction, core method,
// and conclusion of a paper. Overlap on shorter documents is not
// deduplicated. Content at or below the threshold is returned unchanged.
//
// Cut points are snapped back to rune boundaries so slicing never splits
// a multi-byte character; the encoder always sees valid UTF-8.
func SampleContent(content string) string {
	if len(content) <= SampleThreshold {
		return content
	}

	mid := len(content) / 2
	half := SampleSliceLen / 2
	return content[:runeStart(content, SampleSliceLen)] + " " +
		content[runeStart(content, mid-half):runeStart(content, mid+half)] + " " +
		content[runeStart(content, len(content)-SampleSliceLen):]
}

// runeStart walks a byte offset back to the start of the rune it falls
// inside of.
func runeStart(s string, i int) int {
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}
