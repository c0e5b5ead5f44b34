package models

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/skykit/internal/lexicon"
)

var ErrUnknownEmbed = errors.New("unknown embed type")

// Embed is data attached to a post or message. It is one of *ImagesEmbed,
// *ExternalEmbed, *RecordEmbed or *RawEmbed.
type Embed interface {
	EmbedType() string
}

// Image is one picture in an ImagesEmbed.
type Image struct {
	Blob        lexicon.BlobRef
	Alt         string
	AspectRatio *lexicon.AspectRatio
}

// CID returns the content hash of the image blob.
func (i Image) CID() string { return i.Blob.Ref.Link }

type ImagesEmbed struct {
	Images []Image
}

func (*ImagesEmbed) EmbedType() string { return lexicon.EmbedImagesType }

// ExternalEmbed is a link card.
type ExternalEmbed struct {
	URI         string
	Title       string
	Description string
	Thumb       *lexicon.BlobRef
}

func (*ExternalEmbed) EmbedType() string { return lexicon.EmbedExternalType }

// RecordEmbed quotes another record.
type RecordEmbed struct {
	Record lexicon.StrongRef
}

func (*RecordEmbed) EmbedType() string { return lexicon.EmbedRecordType }

// RawEmbed keeps an embed of a type this package does not model.
type RawEmbed struct {
	Type string
	Raw  json.RawMessage
}

func (e *RawEmbed) EmbedType() string { return e.Type }

// MarshalEmbed encodes e in its wire form with the $type tag set. A nil
// embed encodes to nil.
func MarshalEmbed(e Embed) (json.RawMessage, error) {
	var v any
	switch x := e.(type) {
	case nil:
		return nil, nil
	case *ImagesEmbed:
		images := make([]lexicon.EmbedImage, len(x.Images))
		for i, img := range x.Images {
			images[i] = lexicon.EmbedImage{Image: img.Blob, Alt: img.Alt, AspectRatio: img.AspectRatio}
		}
		v = lexicon.EmbedImages{Type: lexicon.EmbedImagesType, Images: images}
	case *ExternalEmbed:
		v = lexicon.EmbedExternal{Type: lexicon.EmbedExternalType, External: lexicon.ExternalLink{
			URI:         x.URI,
			Title:       x.Title,
			Description: x.Description,
			Thumb:       x.Thumb,
		}}
	case *RecordEmbed:
		v = lexicon.EmbedRecord{Type: lexicon.EmbedRecordType, Record: x.Record}
	case *RawEmbed:
		return x.Raw, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownEmbed, e)
	}
	return json.Marshal(v)
}

// UnmarshalEmbed decodes a wire embed by its $type. Types without a model
// come back as *RawEmbed. Empty input yields a nil Embed.
func UnmarshalEmbed(raw json.RawMessage) (Embed, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var head struct {
		Type string `json:"$type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("decode embed: %w", err)
	}

	switch head.Type {
	case lexicon.EmbedImagesType:
		var v lexicon.EmbedImages
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", head.Type, err)
		}
		out := &ImagesEmbed{Images: make([]Image, len(v.Images))}
		for i, img := range v.Images {
			out.Images[i] = Image{Blob: img.Image, Alt: img.Alt, AspectRatio: img.AspectRatio}
		}
		return out, nil
	case lexicon.EmbedExternalType:
		var v lexicon.EmbedExternal
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", head.Type, err)
		}
		return &ExternalEmbed{
			URI:         v.External.URI,
			Title:       v.External.Title,
			Description: v.External.Description,
			Thumb:       v.External.Thumb,
		}, nil
	case lexicon.EmbedRecordType:
		var v lexicon.EmbedRecord
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", head.Type, err)
		}
		return &RecordEmbed{Record: v.Record}, nil
	default:
		return &RawEmbed{Type: head.Type, Raw: append(json.RawMessage(nil), raw...)}, nil
	}
}
