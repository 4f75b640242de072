package bundle

// isBinaryContent checks if sampled bytes look binary rather than text:
// more than 10% null bytes or more than 30% non-printable characters.
// Empty files are considered text.
func isBinaryContent(sample []byte) bool {
	if len(sample) == 0 {
		return false
	}

	nullBytes := 0
	nonPrintable := 0
	for _, b := range sample {
		if b == 0 {
			nullBytes++
		}
		if !isPrintable(b) {
			nonPrintable++
		}
	}

	total := float64(len(sample))
	if float64(nullBytes)/total > 0.1 {
		return true
	}
	return float64(nonPrintable)/total > 0.3
}

// isPrintable checks if a byte represents a printable ASCII character
func isPrintable(b byte) bool {
	return (b >= 32 && b <= 126) || b == '\n' || b == '\r' || b == '\t'
}
