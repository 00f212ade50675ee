package service

// chunkIDs splits ids into slices of at most limit elements, preserving
// order. The store rejects membership queries beyond its id limit, so
// callers fan out one query per chunk.
func chunkIDs(ids []string, limit int) [][]string {
	if limit <= 0 || len(ids) == 0 {
		return nil
	}

	chunks := make([][]string, 0, (len(ids)+limit-1)/limit)
	for start := 0; start < len(ids); start += limit {
		end := start + limit
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

// mergeUnique returns ids with duplicates removed, keeping first occurrence
// order.
func mergeUnique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
