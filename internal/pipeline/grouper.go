package pipeline

import "github.com/dgallion1/sumtree/internal/doctree"

// GroupChunks partitions same-level chunks into contiguous batches of at
// most size chunks, preserving order. Every input chunk lands in exactly
// one group; only the final group may be smaller than size.
func GroupChunks(chunks []*doctree.Chunk, size int) [][]*doctree.Chunk {
	if size < 1 {
		size = 1
	}
	var groups [][]*doctree.Chunk
	for i := 0; i < len(chunks); i += size {
		end := i + size
		if end > len(chunks) {
			end = len(chunks)
		}
		groups = append(groups, chunks[i:end:end])
	}
	return groups
}

// GroupChunksHeadingAware batches like GroupChunks but additionally closes
// the current group early when the heading changes, so summaries tend to
// stay within one topic. A fully packed group is never split.
func GroupChunksHeadingAware(chunks []*doctree.Chunk, size int) [][]*doctree.Chunk {
	if size < 1 {
		size = 1
	}
	var groups [][]*doctree.Chunk
	var cur []*doctree.Chunk

	for _, c := range chunks {
		if len(cur) > 0 && (len(cur) >= size || c.Heading != cur[len(cur)-1].Heading) {
			groups = append(groups, cur)
			cur = nil
		}
		cur = append(cur, c)
	}
	if len(cur) > 0 {
		groups = append(groups, cur)
	}
	return groups
}
