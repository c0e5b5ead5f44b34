package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/skykit/internal/client/models"
)

var errUsage = errors.New("wrong arguments, see 'help'")

// readFile is a test seam for os.ReadFile.
var readFile = os.ReadFile

func (a *App) Profile(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	p, err := a.client.GetProfile(ctx, args[0])
	if err != nil {
		return err
	}
	printProfile(a.out, p)
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	p, err := a.client.GetPost(ctx, args[0])
	if err != nil {
		return err
	}
	author, _, err := p.Author(ctx)
	if err != nil {
		return err
	}
	printPost(a.out, p, author)
	return nil
}

// Post publishes the arguments as text. Without arguments it prompts for
// multiline text and an optional image to upload and attach.
func (a *App) Post(ctx context.Context, args []string) error {
	payload := models.PostPayload{Text: strings.Join(args, " ")}

	if payload.Text == "" {
		text, err := getMultiline(a.reader, "Post text", a.out)
		if err != nil {
			return err
		}
		payload.Text = text

		path, err := getSimpleText(a.reader, "Image path (empty for none)", a.out)
		if err != nil {
			return err
		}
		if path != "" {
			img, err := a.uploadImage(ctx, path)
			if err != nil {
				return err
			}
			payload.Embed = &models.ImagesEmbed{Images: []models.Image{img}}
		}
	}

	p, err := a.client.Post(ctx, payload)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Posted", p.URI)
	return nil
}

func (a *App) uploadImage(ctx context.Context, path string) (models.Image, error) {
	data, err := readFile(path)
	if err != nil {
		return models.Image{}, err
	}
	alt, err := getSimpleText(a.reader, "Alt text", a.out)
	if err != nil {
		return models.Image{}, err
	}
	return a.client.UploadImage(ctx, data, alt)
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	if err := a.client.DeletePost(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted", args[0])
	return nil
}
