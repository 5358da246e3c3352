package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"suburbia-skate.backend/internal/domain/entities"
	domainerrors "suburbia-skate.backend/internal/domain/errors"
	"suburbia-skate.backend/internal/infrastructure/storage"
	"suburbia-skate.backend/internal/usecases/metrics"
)

const (
	imagePathPrefix    = "assets/nfts"
	metadataPathPrefix = "assets/metadata"

	metadataSymbol       = "SKATE"
	sellerFeeBasisPoints = 500
)

// tokenMetadata is the off-chain metadata document referenced by the mint
type tokenMetadata struct {
	Name                 string                   `json:"name"`
	Symbol               string                   `json:"symbol"`
	Description          string                   `json:"description"`
	Image                string                   `json:"image"`
	SellerFeeBasisPoints int                      `json:"seller_fee_basis_points"`
	Attributes           []entities.BoardAttribute `json:"attributes,omitempty"`
}

// UploadResult carries the public URLs of the stored asset pair
type UploadResult struct {
	ImageURL    string
	MetadataURI string
}

// AssetUploader stores a capture image and its metadata document off-chain.
// Paths are slug+timestamp derived, so repeated uploads of the same design
// never collide; the store is not required to be idempotent.
type AssetUploader struct {
	store storage.ContentStore
	now   func() time.Time
}

func NewAssetUploader(store storage.ContentStore) *AssetUploader {
	return &AssetUploader{
		store: store,
		now:   time.Now,
	}
}

// Upload stores the image first, then a metadata document embedding the
// image's public URL. The metadata URI is what the mint references.
func (u *AssetUploader) Upload(ctx context.Context, name, description string, image []byte, attributes []entities.BoardAttribute) (*UploadResult, error) {
	base := fmt.Sprintf("%s-%d", slug.Make(name), u.now().Unix())

	imagePath := fmt.Sprintf("%s/%s.png", imagePathPrefix, base)
	imageURL, err := u.store.Put(ctx, imagePath, image, fmt.Sprintf("Add NFT image: %s", name))
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("image", "failed").Inc()
		return nil, domainerrors.NewError("failed to upload image", domainerrors.ErrUploadFailed)
	}
	metrics.UploadsTotal.WithLabelValues("image", "ok").Inc()

	doc := tokenMetadata{
		Name:                 name,
		Symbol:               metadataSymbol,
		Description:          description,
		Image:                imageURL,
		SellerFeeBasisPoints: sellerFeeBasisPoints,
		Attributes:           attributes,
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}

	metadataPath := fmt.Sprintf("%s/%s.json", metadataPathPrefix, base)
	metadataURI, err := u.store.Put(ctx, metadataPath, raw, fmt.Sprintf("Add NFT metadata: %s", name))
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("metadata", "failed").Inc()
		return nil, domainerrors.NewError("failed to upload metadata", domainerrors.ErrUploadFailed)
	}
	metrics.UploadsTotal.WithLabelValues("metadata", "ok").Inc()

	return &UploadResult{
		ImageURL:    imageURL,
		MetadataURI: metadataURI,
	}, nil
}
