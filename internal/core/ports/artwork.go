package ports

import "context"

// ArtworkResolver resolves display titles for Art Institute artworks.
type ArtworkResolver interface {
	// ResolveTitle returns the artwork title, or nil when the artwork exists
	// but has no usable title. It fails with artwork.ErrNotFound or an
	// *artwork.UnreachableError.
	ResolveTitle(ctx context.Context, externalID string) (*string, error)
}

// TitleCache is the store the resolver consults before calling out.
type TitleCache interface {
	Get(key string) (string, bool)
	Set(key string, value string)
	Len() int
}
