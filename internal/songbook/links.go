package songbook

import "github.com/acortes/atril/internal/models"

// linkSongs sets NextID and PreviousID on every song in the order-sorted
// sequence. The first song has no previous id and the last no next id.
//
// Linkage is always recomputed in full when the set is rebuilt; there is no
// incremental patching, so links can never go stale after a reordering.
func linkSongs(songs []*models.Song) {
	for i, song := range songs {
		song.PreviousID = ""
		song.NextID = ""
		if i > 0 {
			song.PreviousID = songs[i-1].ID
		}
		if i < len(songs)-1 {
			song.NextID = songs[i+1].ID
		}
	}
}

// nextAfter scans the order-sorted sequence for the song with the given id
// and returns the one that follows it. The second return is false when the
// id is absent or the match is the last song.
func nextAfter(songs []*models.Song, id string) (*models.Song, bool) {
	for i, song := range songs {
		if song.ID == id {
			if i == len(songs)-1 {
				return nil, false
			}
			return songs[i+1], true
		}
	}
	return nil, false
}
