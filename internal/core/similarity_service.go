package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"shopmate/internal/utils"
)

const (
	// Input geometry expected by the feature extractor.
	featureInputSize = 224

	// Two images are "similar" iff cosine similarity exceeds this.
	similarityThreshold = 0.70
)

// Channel means the extractor's preprocessing contract subtracts, in BGR
// order (ImageNet statistics).
var channelMeans = [3]float32{103.939, 116.779, 123.68}

// SimilarityResult is the verdict for one image pair.
type SimilarityResult struct {
	SimilarityScore  float64 `json:"similarity_score"`
	SimilarityResult string  `json:"similarity_result"`
}

type predictRequest struct {
	Instances [][][][]float32 `json:"instances"`
}

type predictResponse struct {
	Predictions [][]float32 `json:"predictions"`
}

// SimilarityService scores how alike two images are. Feature extraction is
// delegated to an external CNN served behind a predict endpoint; this
// service only preprocesses pixels and compares the returned vectors.
type SimilarityService struct {
	client       *resty.Client
	extractorURL string
	logger       *zap.Logger
}

func NewSimilarityService(extractorURL string, logger *zap.Logger) *SimilarityService {
	return &SimilarityService{
		client:       resty.New().SetTimeout(60 * time.Second),
		extractorURL: extractorURL,
		logger:       logger,
	}
}

// Compare extracts a feature vector per image and classifies the pair by
// cosine similarity against a fixed threshold.
func (s *SimilarityService) Compare(ctx context.Context, image1, image2 io.Reader) (*SimilarityResult, error) {
	features1, err := s.extractFeatures(ctx, image1)
	if err != nil {
		return nil, err
	}
	features2, err := s.extractFeatures(ctx, image2)
	if err != nil {
		return nil, err
	}

	similarity, err := utils.CosineSimilarity(features1, features2)
	if err != nil {
		return nil, &ExtractionError{Msg: "failed to compare feature vectors", Err: err}
	}

	result := "different"
	if similarity > similarityThreshold {
		result = "similar"
	}

	s.logger.Debug("image pair scored",
		zap.Float32("similarity", similarity),
		zap.String("result", result))

	return &SimilarityResult{
		SimilarityScore:  float64(similarity),
		SimilarityResult: result,
	}, nil
}

// extractFeatures stages the upload in a temp file, preprocesses it and
// asks the external model for an L2-normalized feature vector. The temp
// file is removed on every exit path.
func (s *SimilarityService) extractFeatures(ctx context.Context, image io.Reader) ([]float32, error) {
	tmp, err := os.CreateTemp("", "upload-*.img")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		tmp.Close()
		if err := os.Remove(tmp.Name()); err != nil {
			s.logger.Warn("failed to remove temp image", zap.String("path", tmp.Name()), zap.Error(err))
		}
	}()

	if _, err := io.Copy(tmp, image); err != nil {
		return nil, fmt.Errorf("failed to stage uploaded image: %w", err)
	}

	tensor, err := preprocessImage(tmp.Name())
	if err != nil {
		return nil, &ExtractionError{Msg: "failed to decode image", Err: err}
	}

	var result predictResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(predictRequest{Instances: [][][][]float32{tensor}}).
		SetResult(&result).
		Post(s.extractorURL)
	if err != nil {
		return nil, &ExtractionError{Msg: "feature extraction request failed", Err: err}
	}
	if resp.IsError() {
		return nil, &ExtractionError{Msg: fmt.Sprintf("feature extractor returned status %d", resp.StatusCode())}
	}
	if len(result.Predictions) == 0 || len(result.Predictions[0]) == 0 {
		return nil, &ExtractionError{Msg: "feature extractor returned no vector"}
	}

	return utils.L2Normalize(result.Predictions[0]), nil
}

// preprocessImage decodes and resizes an image to the extractor's input
// geometry and applies its channel normalization (BGR, mean-subtracted).
func preprocessImage(path string) ([][][]float32, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, err
	}
	resized := imaging.Resize(img, featureInputSize, featureInputSize, imaging.Lanczos)

	tensor := make([][][]float32, featureInputSize)
	for y := 0; y < featureInputSize; y++ {
		row := make([][]float32, featureInputSize)
		for x := 0; x < featureInputSize; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()
			row[x] = []float32{
				float32(b>>8) - channelMeans[0],
				float32(g>>8) - channelMeans[1],
				float32(r>>8) - channelMeans[2],
			}
		}
		tensor[y] = row
	}
	return tensor, nil
}
