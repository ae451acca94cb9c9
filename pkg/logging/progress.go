package logging

import (
	"fmt"
	"io"
	"strings"
)

// NewProgressBar returns a progress callback drawing "\r[#####.....] 42.57%" on w.
// A newline follows the final update.
func NewProgressBar(w io.Writer, width int) func(total, done int) {
	if width <= 0 {
		width = 40
	}
	return func(total, done int) {
		if total <= 0 {
			return
		}
		frac := float64(done) / float64(total)
		filled := int(frac * float64(width))
		filled = min(max(filled, 0), width)

		fmt.Fprintf(w, "\r[%s%s] %.2f%%", strings.Repeat("#", filled), strings.Repeat(".", width-filled), 100*frac)
		if done >= total {
			fmt.Fprintln(w)
		}
	}
}
