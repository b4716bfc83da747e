package classifier

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// RandomModel ignores the image and draws a label uniformly at random.
type RandomModel struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandomModel(src rand.Source) *RandomModel {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &RandomModel{rnd: rand.New(src)}
}

func (m *RandomModel) Predict(ctx context.Context, _ []byte) (Prediction, error) {
	if err := ctx.Err(); err != nil {
		return Prediction{}, err
	}

	m.mu.Lock()
	label := Labels[m.rnd.Intn(len(Labels))]
	confidence := 0.5 + m.rnd.Float64()*0.5
	m.mu.Unlock()

	return Prediction{
		Disease:    label,
		Confidence: confidence,
		Solution:   SolutionFor(label),
	}, nil
}
