package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

var ErrInvalidPrediction = errors.New("classifier returned an invalid prediction")

// RemoteModel posts the image to an external classifier service that answers
// {"disease": "...", "confidence": 0.87}.
type RemoteModel struct {
	url    string
	client *http.Client
}

func NewRemoteModel(url string, timeout time.Duration) *RemoteModel {
	return &RemoteModel{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (m *RemoteModel) Predict(ctx context.Context, image []byte) (Prediction, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("image", "image")
	if err != nil {
		return Prediction{}, err
	}
	if _, err := part.Write(image); err != nil {
		return Prediction{}, err
	}
	if err := writer.Close(); err != nil {
		return Prediction{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, body)
	if err != nil {
		return Prediction{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := m.client.Do(req)
	if err != nil {
		return Prediction{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Prediction{}, fmt.Errorf("classifier error: %s - %s", resp.Status, string(bodyBytes))
	}

	var out struct {
		Disease    string  `json:"disease"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Prediction{}, err
	}
	if out.Disease == "" || out.Confidence < 0 || out.Confidence > 1 {
		return Prediction{}, ErrInvalidPrediction
	}

	return Prediction{
		Disease:    out.Disease,
		Confidence: out.Confidence,
		Solution:   SolutionFor(out.Disease),
	}, nil
}

// NewModelLoader picks RemoteModel when url is set and RandomModel otherwise.
func NewModelLoader(url string, timeout time.Duration) *Loader {
	return NewLoader(func(ctx context.Context) (Model, error) {
		if url != "" {
			return NewRemoteModel(url, timeout), nil
		}
		return NewRandomModel(nil), nil
	})
}
