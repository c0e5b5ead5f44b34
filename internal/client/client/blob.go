package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/skykit/internal/client/models"
	"github.com/dmitrijs2005/skykit/internal/lexicon"
	"github.com/dmitrijs2005/skykit/internal/xrpc"
	"github.com/gabriel-vasile/mimetype"
)

// MaxImageSize is the largest image blob the service accepts.
const MaxImageSize = 1_000_000

// UploadImage uploads data as a blob and returns an Image ready to attach
// to a post through models.ImagesEmbed. The MIME type is sniffed from data.
func (c *Client) UploadImage(ctx context.Context, data []byte, alt string) (models.Image, error) {
	const op = "uploadImage"
	if _, err := c.requireSession(op); err != nil {
		return models.Image{}, err
	}

	if len(data) == 0 {
		return models.Image{}, opError(op, ErrInvalidArgument, fmt.Errorf("empty image"))
	}
	if len(data) > MaxImageSize {
		return models.Image{}, opError(op, ErrInvalidArgument, fmt.Errorf("image is %d bytes, limit is %d", len(data), MaxImageSize))
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return models.Image{}, opError(op, ErrInvalidArgument, fmt.Errorf("unsupported image type %s", mt.String()))
	}

	var out lexicon.UploadBlobOutput
	if err := c.call(ctx, lexicon.RepoUploadBlob, xrpc.Blob{MimeType: mt.String(), Data: data}, &out); err != nil {
		return models.Image{}, mapError(op, nil, err)
	}
	return models.Image{Blob: out.Blob, Alt: alt}, nil
}
