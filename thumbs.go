package agendah

import (
	"bytes"
	"encoding/base64"
	"image/jpeg"

	"github.com/disintegration/imaging"
)

// thumbMaxSide bounds report thumbnails. Originals can be photos of several
// megabytes; embedding them verbatim would make the printable document
// enormous, so images are downscaled before inlining.
const thumbMaxSide = 480

// newThumb converts an attachment into its report representation: an inline
// data URL for decodable images with a payload, a labeled placeholder for
// everything else (including images whose payload is missing or corrupt).
func newThumb(a *Attachment) Thumb {
	t := Thumb{Name: a.Name, Kind: a.Kind()}
	if !a.IsImage() || len(a.Payload) == 0 {
		return t
	}
	url, err := inlineImage(a.Payload)
	if err != nil {
		return t
	}
	t.DataURL = url
	return t
}

// inlineImage decodes, downscales and re-encodes an image payload into a
// self-contained "data:image/jpeg;base64,..." URL.
func inlineImage(payload []byte) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(payload), imaging.AutoOrientation(true))
	if err != nil {
		return "", err
	}
	img = imaging.Fit(img, thumbMaxSide, thumbMaxSide, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		return "", err
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
