// Package seed installs and removes a fixed set of demo livestreams so the
// directory has content to show before any real streamer goes live.
package seed

import (
	"context"
	"fmt"

	"github.com/Vu1can09/twitch-clone/internal/domain"
	"github.com/Vu1can09/twitch-clone/internal/store"
)

// demoStreams mirrors the sample content the UI ships with. Owner handles use
// the demo_ prefix so removal cannot touch real streamers.
var demoStreams = []domain.LiveStream{
	{
		Name:            "Ranked grind to Diamond",
		Categories:      []string{"gaming", "fps"},
		UserName:        "demo_nova",
		ProfileImageURL: "https://placehold.co/96x96?text=nova",
	},
	{
		Name:            "Lo-fi beats & pixel art",
		Categories:      []string{"music", "art"},
		UserName:        "demo_kiri",
		ProfileImageURL: "https://placehold.co/96x96?text=kiri",
	},
	{
		Name:            "Speedrunning classics",
		Categories:      []string{"gaming", "retro"},
		UserName:        "demo_flux",
		ProfileImageURL: "https://placehold.co/96x96?text=flux",
	},
	{
		Name:            "Cooking with chat",
		Categories:      []string{"irl", "food"},
		UserName:        "demo_remy",
		ProfileImageURL: "https://placehold.co/96x96?text=remy",
	},
}

// Install inserts the demo livestreams.
func Install(ctx context.Context, streams store.LiveStreams) error {
	for i := range demoStreams {
		stream := demoStreams[i]
		if err := streams.Insert(ctx, &stream); err != nil {
			return fmt.Errorf("seed livestream %q: %w", stream.Name, err)
		}
	}
	return nil
}

// Remove deletes every livestream owned by a demo handle. Deletion is by
// owner, so repeated Install calls are cleaned up in one pass.
func Remove(ctx context.Context, streams store.LiveStreams) (int64, error) {
	var removed int64
	for _, stream := range demoStreams {
		n, err := streams.DeleteByOwner(ctx, stream.UserName)
		if err != nil {
			return removed, fmt.Errorf("remove seed livestreams for %q: %w", stream.UserName, err)
		}
		removed += n
	}
	return removed, nil
}
