// Package classifier predicts crop diseases from leaf images.
package classifier

import (
	"context"
	"sync"
)

const (
	LabelHealthy       = "Healthy"
	LabelLeafBlight    = "Leaf Blight"
	LabelPowderyMildew = "Powdery Mildew"
	LabelRust          = "Rust"
	LabelBacterialSpot = "Bacterial Spot"

	DefaultSolution = "Consult a local agricultural expert for specific advice."
)

var Labels = []string{
	LabelHealthy,
	LabelLeafBlight,
	LabelPowderyMildew,
	LabelRust,
	LabelBacterialSpot,
}

var solutions = map[string]string{
	LabelHealthy:       "Your crop appears healthy. Continue with good farming practices.",
	LabelLeafBlight:    "Apply copper-based fungicide. Improve air circulation and avoid overhead watering.",
	LabelPowderyMildew: "Use sulfur-based fungicide. Ensure proper spacing between plants.",
	LabelRust:          "Remove infected leaves. Apply fungicide containing triazole.",
	LabelBacterialSpot: "Use copper fungicide. Avoid working with wet plants. Rotate crops.",
}

type (
	Prediction struct {
		Disease    string  `json:"disease"`
		Confidence float64 `json:"confidence"`
		Solution   string  `json:"solution"`
	}

	Model interface {
		Predict(ctx context.Context, image []byte) (Prediction, error)
	}

	// Loader loads a Model once and hands out the same instance afterwards.
	// A failed load is retried on the next call.
	Loader struct {
		mu    sync.Mutex
		load  func(ctx context.Context) (Model, error)
		model Model
	}
)

// SolutionFor maps a label to its remediation text.
func SolutionFor(label string) string {
	if s, ok := solutions[label]; ok {
		return s
	}
	return DefaultSolution
}

func IsKnownLabel(label string) bool {
	_, ok := solutions[label]
	return ok
}

func NewLoader(load func(ctx context.Context) (Model, error)) *Loader {
	return &Loader{load: load}
}

func (l *Loader) Load(ctx context.Context) (Model, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.model != nil {
		return l.model, nil
	}

	model, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	l.model = model
	return model, nil
}

func (l *Loader) Predict(ctx context.Context, image []byte) (Prediction, error) {
	model, err := l.Load(ctx)
	if err != nil {
		return Prediction{}, err
	}
	return model.Predict(ctx, image)
}
