package search

// splitWords splits text on single ASCII space bytes. The returned tokens
// are substrings of the input, so splitting allocates nothing per token.
// Consecutive spaces yield empty tokens; callers filter or reject those as
// their semantics require.
func splitWords(text string) []string {
	words := make([]string, 0, 8)
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == ' ' {
			words = append(words, text[start:i])
			start = i + 1
		}
	}
	return append(words, text[start:])
}

// isValidWord reports whether the word is free of control bytes.
func isValidWord(word string) bool {
	for i := 0; i < len(word); i++ {
		if word[i] < 0x20 {
			return false
		}
	}
	return true
}
