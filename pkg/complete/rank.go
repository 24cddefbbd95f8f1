package complete

// rank removes duplicate replacement texts, keeping the first occurrence,
// numbers the proposals in order and applies the item limit. Candidates are
// already in grammar or declaration order, which is the final order.
func rank(items []Proposal, maxItems int) []Proposal {
	out := make([]Proposal, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if item.ReplacementText == "" || seen[item.ReplacementText] {
			continue
		}
		seen[item.ReplacementText] = true
		item.Rank = len(out)
		out = append(out, item)
		if maxItems > 0 && len(out) == maxItems {
			break
		}
	}
	return out
}
