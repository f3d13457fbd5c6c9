// Package classifier detects the garment shown in an uploaded image.
package classifier

import "context"

// Classifier maps image bytes to a garment class label. An image with no
// recognizable garment yields common.ErrNoDetection.
type Classifier interface {
	Classify(ctx context.Context, image []byte) (string, error)
}

// DefaultStaticLabel is returned by StaticClassifier when no label is set.
const DefaultStaticLabel = "short_sleeve_top"

// StaticClassifier returns the same label for every image. It stands in for
// the model when no classification service is configured.
type StaticClassifier struct {
	Label string
}

func (c StaticClassifier) Classify(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if c.Label == "" {
		return DefaultStaticLabel, nil
	}
	return c.Label, nil
}
