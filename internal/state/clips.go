// Package state holds the client-side model shared by the stackpad surfaces:
// the clip cache, the selection set and the pastebook pointers. Everything
// here is a cache of backend truth, mutated only from a surface's event loop,
// so none of it is locked.
package state

import (
	"strings"

	"github.com/Bhanujeet/stackpad/internal/message"
)

// ClipCache is the ordered clip list of the active pastebook. Loads are
// generation-tagged: a surface takes a generation with NextGen before issuing
// get_clips and hands it back to Replace with the response, so a response
// overtaken by a newer load is discarded instead of clobbering fresher data.
type ClipCache struct {
	clips  []message.Clip
	issued uint64
}

// NextGen registers a new load and returns its generation tag.
func (c *ClipCache) NextGen() uint64 {
	c.issued++
	return c.issued
}

// Replace installs clips wholesale if gen is still the newest issued load.
// It reports whether the response was applied.
func (c *ClipCache) Replace(gen uint64, clips []message.Clip) bool {
	if gen != c.issued {
		return false
	}
	c.clips = clips
	return true
}

// Prepend inserts clip at the front (a clip-captured push).
func (c *ClipCache) Prepend(clip message.Clip) {
	c.clips = append([]message.Clip{clip}, c.clips...)
}

// Remove drops the clip with the given id, reporting whether it was present.
func (c *ClipCache) Remove(id string) bool {
	for i, clip := range c.clips {
		if clip.ID == id {
			c.clips = append(c.clips[:i], c.clips[i+1:]...)
			return true
		}
	}
	return false
}

// SetContent replaces the content of the clip with the given id.
func (c *ClipCache) SetContent(id, content string) bool {
	for i := range c.clips {
		if c.clips[i].ID == id {
			c.clips[i].Content = content
			return true
		}
	}
	return false
}

// Reorder rearranges the cache to match ids: listed clips first in the given
// order, then any unlisted clips in their prior relative order. Unknown ids
// are ignored. This mirrors the backend's reorder semantics so an optimistic
// local reorder agrees with the confirmed result.
func (c *ClipCache) Reorder(ids []string) {
	ordered := make([]message.Clip, 0, len(c.clips))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		if clip, ok := c.Get(id); ok {
			ordered = append(ordered, clip)
			seen[id] = true
		}
	}
	for _, clip := range c.clips {
		if !seen[clip.ID] {
			ordered = append(ordered, clip)
		}
	}
	c.clips = ordered
}

// Get returns the clip with the given id.
func (c *ClipCache) Get(id string) (message.Clip, bool) {
	for _, clip := range c.clips {
		if clip.ID == id {
			return clip, true
		}
	}
	return message.Clip{}, false
}

// Clips returns the cached clips in order. Callers must not mutate the
// returned slice.
func (c *ClipCache) Clips() []message.Clip { return c.clips }

// Len returns the number of cached clips.
func (c *ClipCache) Len() int { return len(c.clips) }

// IDs returns the cached clip ids in order.
func (c *ClipCache) IDs() []string {
	ids := make([]string, len(c.clips))
	for i, clip := range c.clips {
		ids[i] = clip.ID
	}
	return ids
}

// Filter returns the clips matching query: a case-insensitive substring
// match over content, source app and window title. An empty query returns
// all clips.
func (c *ClipCache) Filter(query string) []message.Clip {
	if query == "" {
		return c.clips
	}
	q := strings.ToLower(query)
	var out []message.Clip
	for _, clip := range c.clips {
		if strings.Contains(strings.ToLower(clip.Content), q) ||
			strings.Contains(strings.ToLower(clip.Metadata.SourceApp), q) ||
			strings.Contains(strings.ToLower(clip.Metadata.WindowTitle), q) {
			out = append(out, clip)
		}
	}
	return out
}
